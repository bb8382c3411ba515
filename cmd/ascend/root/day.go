package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ascend/internal/dateutil"
	"ascend/internal/ui"
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show or simulate the current day",
		Long: `Show or override the day used for completions and penalties.

Setting a day simulates time travel: completions stamp the simulated day,
and jumping forward makes the next reconciliation settle the skipped days.
Clearing the override returns to the real calendar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDay(cmd)
		},
	}

	set := &cobra.Command{
		Use:   "set <YYYY-MM-DD>",
		Short: "Override the current day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day, err := dateutil.Parse(args[0])
			if err != nil {
				return err
			}
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.SetSelectedDay(ctx, day); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Day set to %s (simulated)", ui.IconPin, day)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Run any command to settle days skipped over."))
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Return to the real calendar day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.ClearSelectedDay(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Back to real time (%s)", ui.IconDone, dateutil.Today())))
			return nil
		},
	}

	next := &cobra.Command{
		Use:   "next",
		Short: "Advance the simulated day by one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := svc.SelectedDay(ctx)
			if err != nil {
				return err
			}
			day = day.AddDays(1)
			if err := svc.SetSelectedDay(ctx, day); err != nil {
				return err
			}
			if err := reconcileAndReport(ctx, svc, cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Day advanced to %s (simulated)", ui.IconPin, day)))
			return nil
		},
	}

	cmd.AddCommand(set, clear, next)
	return cmd
}

func showDay(cmd *cobra.Command) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	day, err := svc.SelectedDay(ctx)
	if err != nil {
		return err
	}
	p, err := svc.Progress(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if p.SelectedDay != nil {
		fmt.Fprintln(out, ui.LabelValue(ui.IconPin+" Day", fmt.Sprintf("%s %s", day, ui.Warn.Render("(simulated)"))))
		fmt.Fprintln(out, ui.LabelValue("Real day", dateutil.Today()))
	} else {
		fmt.Fprintln(out, ui.LabelValue(ui.IconPin+" Day", day))
	}
	fmt.Fprintln(out, ui.LabelValue("Settled through", p.LastProcessed))
	return nil
}

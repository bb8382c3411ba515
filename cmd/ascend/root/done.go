package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ascend/internal/engine"
	"ascend/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task for the current day",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := reconcileAndReport(ctx, svc, cmd.OutOrStdout()); err != nil {
				return err
			}

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.CompleteTask(ctx, id)

			var already engine.AlreadyCompletedError
			var notFound engine.TaskNotFoundError
			switch {
			case errors.As(err, &already):
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Task %d is already done on %s", ui.IconWarn, already.TaskID, already.Day)))
				return nil
			case errors.As(err, &notFound):
				return fmt.Errorf("no task with id %d", notFound.ID)
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n",
				ui.Good.Render(ui.IconDone+" Completed"), res.TaskID,
				ui.Muted.Render(fmt.Sprintf("(+%d pts, +%d health)", res.Points, res.HealthRecovered)))
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n",
					ui.IconTrophy+" "+ui.BadgeLevelUp,
					ui.Muted.Render(fmt.Sprintf("Lv %d", res.LevelBefore)),
					ui.RankStyle(res.NewRank.Color).Render(fmt.Sprintf("Lv %d %s", res.LevelAfter, res.NewRank.Name)))
			}
			if res.Streak > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.LabelValue(ui.IconFlame+" Streak", fmt.Sprintf("%d day(s)", res.Streak)))
			}
			return nil
		},
	}

	return cmd
}

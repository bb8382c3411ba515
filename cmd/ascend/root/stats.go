package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ascend/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
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

			st, err := svc.Stats(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("📊", "Statistics"))
			fmt.Fprintln(out, ui.LabelValue("Tasks", st.TotalTasks))
			fmt.Fprintln(out, ui.LabelValue("Completions", st.TotalCompletions))
			fmt.Fprintln(out, ui.LabelValue("Completion rate", fmt.Sprintf("%.0f%%", st.CompletionRate)))
			fmt.Fprintln(out, ui.LabelValue("Avg points/day (7d)", fmt.Sprintf("%.1f", st.AveragePointsPerDay)))
			fmt.Fprintln(out, ui.LabelValue(ui.IconFlame+" Streak", fmt.Sprintf("%d day(s)", st.CurrentStreak)))
			if st.StreakBonus > 0 {
				fmt.Fprintln(out, ui.LabelValue("Streak bonus", fmt.Sprintf("+%d", st.StreakBonus)))
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Last 7 days"))
			for _, d := range st.LastWeek {
				bar := ""
				for i := 0; i < d.Completions; i++ {
					bar += "█"
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.Muted.Render(d.Day.String()), ui.Good.Render(bar), ui.Muted.Render(fmt.Sprintf("%d pts", d.Points)))
			}

			if len(st.ByCategory) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("By category"))
				for _, c := range st.ByCategory {
					fmt.Fprintf(out, "- %s: %d task(s), %d completion(s)\n", ui.CategoryText(string(c.Category)), c.Tasks, c.Completed)
				}
			}
			return nil
		},
	}

	return cmd
}

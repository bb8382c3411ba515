package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ascend/internal/engine"
	"ascend/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show rank, points, health and streak",
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

			p, err := svc.Progress(ctx)
			if err != nil {
				return err
			}
			day, err := svc.SelectedDay(ctx)
			if err != nil {
				return err
			}
			rank := engine.LevelFor(p.TotalPoints)
			prog := engine.ProgressToNext(p.TotalPoints)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Cultivation Status"))
			fmt.Fprintln(out, ui.LabelValue("Rank", fmt.Sprintf("%s %s", ui.RankStyle(rank.Color).Render(rank.Name), ui.Muted.Render(fmt.Sprintf("(Lv %d)", rank.Tier)))))
			if rank.IsTerminal() {
				fmt.Fprintln(out, ui.LabelValue("Points", fmt.Sprintf("%d %s", p.TotalPoints, ui.Gold.Render("(peak rank reached)"))))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Points", fmt.Sprintf("%d (next rank at %d, %d to go)", p.TotalPoints, rank.MaxPoints+1, prog.PointsRemaining)))
				fmt.Fprintln(out, ui.LabelValue("Progress", ui.ProgressBar(prog.Percent, 24)))
			}
			fmt.Fprintln(out, ui.LabelValue(ui.IconHeart+" Health", ui.HealthBar(p.Health, p.MaxHealth, 12)))
			if engine.IsHealthCritical(p.Health, p.MaxHealth) {
				fmt.Fprintln(out, ui.Bad.Render(ui.IconWarn+" Health critical — complete mandatory tasks to recover"))
			}
			fmt.Fprintln(out, ui.LabelValue(ui.IconFlame+" Streak", fmt.Sprintf("%d day(s)", p.Streak)))
			if bonus := engine.StreakBonus(p.Streak); bonus > 0 {
				fmt.Fprintln(out, ui.LabelValue("Streak bonus", fmt.Sprintf("+%d", bonus)))
			}
			fmt.Fprintln(out, ui.LabelValue(ui.IconPin+" Day", day))
			if p.SelectedDay != nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Simulated day active — `ascend day clear` to return to real time"))
			}
			return nil
		},
	}

	return cmd
}

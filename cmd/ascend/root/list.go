package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"ascend/internal/engine"
	"ascend/internal/storage"
	"ascend/internal/ui"
)

func newListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with today's completion state",
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

			var tasks []storage.Task
			if category != "" {
				cat, err := engine.ParseCategory(category)
				if err != nil {
					return err
				}
				tasks, err = svc.TaskRepo().ListByCategory(ctx, string(cat))
				if err != nil {
					return err
				}
			} else {
				tasks, err = svc.TaskRepo().ListAll(ctx)
				if err != nil {
					return err
				}
			}
			done, err := svc.CompletedToday(ctx, tasks)
			if err != nil {
				return err
			}
			day, err := svc.SelectedDay(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, fmt.Sprintf("Tasks — %s", day)))
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no tasks yet — try `ascend add \"Meditate\" -d 2 -c mandatory`)"))
				return nil
			}

			sort.Slice(tasks, func(i, j int) bool {
				if tasks[i].Category != tasks[j].Category {
					return tasks[i].Category == string(engine.CategoryMandatory)
				}
				return tasks[i].ID < tasks[j].ID
			})
			for _, t := range tasks {
				mark := "[ ]"
				if done[t.ID] {
					mark = ui.Good.Render("[x]")
				}
				repeat := ""
				if t.Repeatable {
					repeat = " " + ui.IconLoop
				}
				desc := ""
				if t.Description != nil && *t.Description != "" {
					desc = " " + ui.Muted.Render("— "+*t.Description)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s d%d%s%s\n",
					mark, t.ID, t.Name, ui.CategoryText(t.Category), t.Difficulty, repeat, desc)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show one category (mandatory|optional)")

	return cmd
}

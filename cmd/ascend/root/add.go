package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ascend/internal/engine"
	"ascend/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff int
	var category string
	var description string
	var repeatable bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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

			cat, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}
			in := engine.AddTaskInput{
				Name:       args[0],
				Difficulty: engine.Difficulty(diff),
				Category:   cat,
				Repeatable: repeatable,
			}
			if description != "" {
				in.Description = &description
			}
			id, err := svc.AddTask(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				ui.Good.Render(ui.IconSparkle+" Added"), id, args[0],
				ui.Muted.Render(fmt.Sprintf("(d%d, %s)", diff, cat)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&diff, "diff", "d", 1, "Difficulty (1-5)")
	cmd.Flags().StringVarP(&category, "category", "c", "optional", "Category (mandatory|optional)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().BoolVarP(&repeatable, "repeat", "r", false, "Allow completing more than once per day")

	return cmd
}

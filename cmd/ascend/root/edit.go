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

func newEditCmd() *cobra.Command {
	var name string
	var description string
	var diff int
	var category string
	var repeatable bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task (past completions keep their awarded points)",
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
			var in engine.UpdateTaskInput
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("desc") {
				in.Description = &description
			}
			if cmd.Flags().Changed("diff") {
				d := engine.Difficulty(diff)
				in.Difficulty = &d
			}
			if cmd.Flags().Changed("category") {
				cat, err := engine.ParseCategory(category)
				if err != nil {
					return err
				}
				in.Category = &cat
			}
			if cmd.Flags().Changed("repeat") {
				in.Repeatable = &repeatable
			}

			err = svc.UpdateTask(ctx, id, in)
			var notFound engine.TaskNotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("no task with id %d", notFound.ID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Good.Render(ui.IconDone+" Updated"), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().IntVarP(&diff, "diff", "d", 0, "New difficulty (1-5)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category (mandatory|optional)")
	cmd.Flags().BoolVarP(&repeatable, "repeat", "r", false, "Allow completing more than once per day")

	return cmd
}

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

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task and its completion history",
		Long: `Delete a task and every completion recorded for it.

Earned points, health and streak are NOT recalculated: history is settled
the moment it happens and removing a task never rewrites the past.`,
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
			err = svc.DeleteTask(ctx, id)
			var notFound engine.TaskNotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("no task with id %d", notFound.ID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("🗑 Deleted"), id)
			return nil
		},
	}

	return cmd
}

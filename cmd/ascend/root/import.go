package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ascend/internal/engine"
	"ascend/internal/ui"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data from a JSON export",
		Long: `Replace every task, completion and the progression state with the
contents of a JSON export. The import is atomic: a malformed or
inconsistent file changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			err = svc.Import(ctx, data)
			var malformed engine.SnapshotFormatError
			if errors.As(err, &malformed) {
				return fmt.Errorf("import rejected, nothing changed: %s", malformed.Reason)
			}
			if err != nil {
				return err
			}

			p, err := svc.Progress(ctx)
			if err != nil {
				return err
			}
			rank := engine.LevelFor(p.TotalPoints)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconDone+" Imported"), args[0])
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Rank", fmt.Sprintf("%s (Lv %d), %d pts", rank.Name, rank.Tier, p.TotalPoints)))
			return nil
		},
	}

	return cmd
}

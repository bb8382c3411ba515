package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ascend/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "ascend",
	Short:         "Ascend — local-first habit tracker with cultivation progression",
	Long:          "Ascend is a local-first CLI/TUI habit tracker. Completing tasks earns points, health and rank; skipping mandatory tasks costs them, settled day by day on next launch.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newListCmd(),
		newEditCmd(),
		newRmCmd(),
		newStatusCmd(),
		newStatsCmd(),
		newBoardCmd(),
		newDayCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

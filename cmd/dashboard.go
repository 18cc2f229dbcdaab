package cmd

import (
	"github.com/spf13/cobra"

	"github.com/punchcard-cli/punchcard/internal/tui"
)

// dashboardCmd opens the interactive TUI dashboard.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard showing recent time entries
and the local template collection.

Keyboard Controls:
  r - Refresh data
  q - Quit dashboard`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.DashboardConfig{
		Session: sess,
	})
}

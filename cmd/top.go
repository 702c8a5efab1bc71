package cmd

import (
	"github.com/contriboard/contriboard/core"
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/spf13/cobra"
)

// topCmd shows the top contributors per activity type.
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the top contributors per activity type.",
	Long: `Rank contributors separately within each activity type for the selected
reporting period. Activity types with no qualifying contributors are omitted.

Examples:
  # Top contributors across the full catalog this week
  contriboard top

  # Only pull requests and reviews, monthly
  contriboard top --period month --activities pr,review`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			return core.ExecuteTop(rootCtx, cfg, st)
		})
		if err != nil {
			contract.LogFatal("Cannot run top-contributor query", err)
		}
	},
}

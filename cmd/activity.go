package cmd

import (
	"github.com/contriboard/contriboard/core"
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/spf13/cobra"
)

// activityCmd shows the recent activity feed grouped by type.
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity grouped by activity type.",
	Long: `List recent activities inside the lookback window, grouped by activity
type. Groups come out in catalog order; activities within a group are newest
first.

Examples:
  # Activity over the default window
  contriboard activity

  # The last 30 days
  contriboard activity --lookback-days 30`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			return core.ExecuteActivity(rootCtx, cfg, st)
		})
		if err != nil {
			contract.LogFatal("Cannot run activity query", err)
		}
	},
}

package cmd

import (
	"github.com/contriboard/contriboard/core"
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/spf13/cobra"
)

// leaderboardCmd shows the ranked leaderboard for a period.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the contributor leaderboard for a period.",
	Long: `Rank contributors by total points over the selected reporting period.

Each entry carries a per-activity breakdown and a gapless daily series, so
the table doubles as a quick activity health check.

Examples:
  # This week's leaderboard
  contriboard leaderboard

  # Monthly standings as JSON
  contriboard leaderboard --period month --output json

  # Export yearly standings to CSV for tracking
  contriboard leaderboard --period year --output csv --output-file standings.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			return core.ExecuteLeaderboard(rootCtx, cfg, st)
		})
		if err != nil {
			contract.LogFatal("Cannot run leaderboard query", err)
		}
	},
}

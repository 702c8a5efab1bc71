package cmd

import (
	"github.com/contriboard/contriboard/core"
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/spf13/cobra"
)

// peopleCmd shows the contributor roster.
var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Show the contributor roster with all-time points.",
	Long: `List every contributor with their all-time points, ordered by username.

Contributors whose role is in the hidden-roles list are excluded from the
roster; contributors without a role always appear.

Examples:
  # The full roster
  contriboard people

  # Hide bots and staff accounts
  contriboard people --hidden-roles bot,staff`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			return core.ExecutePeople(rootCtx, cfg, st)
		})
		if err != nil {
			contract.LogFatal("Cannot run people query", err)
		}
	},
}

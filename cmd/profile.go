package cmd

import (
	"github.com/contriboard/contriboard/core"
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/spf13/cobra"
)

// profileCmd shows one contributor's profile and timeline.
var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Show one contributor's profile and activity timeline.",
	Long: `Display a contributor's profile with their complete activity history,
all-time points and a contribution graph of the last 30 days.

An unknown username renders a not-found state instead of failing.

Examples:
  # Show a contributor's profile
  contriboard profile alice

  # Full profile document as JSON
  contriboard profile alice --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		err := withStore(func(st contract.Store) error {
			return core.ExecuteProfile(rootCtx, cfg, st, args[0])
		})
		if err != nil {
			contract.LogFatal("Cannot run profile query", err)
		}
	},
}

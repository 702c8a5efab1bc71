package cmd

import (
	"fmt"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/seed"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// seedCmd fills the store with generated demo data.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with generated demo data.",
	Long: `Generate fake contributors and activities for demos and local
development. The demo catalog has three activity types: pull requests,
reviews and chat updates.

Examples:
  # Default demo dataset
  contriboard seed

  # A bigger community over a longer window
  contriboard seed --contributors 50 --days 90`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			contributors, activities, err := seed.Populate(rootCtx, st,
				viper.GetInt("contributors"), viper.GetInt("days"))
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d contributors with %d activities\n", contributors, activities)
			return nil
		})
		if err != nil {
			contract.LogFatal("Cannot seed demo data", err)
		}
	},
}

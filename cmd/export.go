package cmd

import (
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/staticdata"
	"github.com/spf13/cobra"
)

// exportCmd writes the full static JSON snapshot tree.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all aggregates as static JSON files.",
	Long: `Write one complete snapshot of every aggregate view into <data-dir>/static.

The snapshot contains the sorted username index, the activity catalog, the
roster, the recent activity feed, one leaderboard per period and one profile
file per contributor. Re-running against unchanged data reproduces every
file byte for byte, so the output can be committed or served directly.

Examples:
  # Export into the default data directory
  contriboard export

  # Export into a custom directory with bots hidden from the roster
  contriboard export --data-dir site/public/data --hidden-roles bot`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			return staticdata.NewExporter(st, cfg).ExportAll(rootCtx)
		})
		if err != nil {
			contract.LogFatal("Cannot export static data", err)
		}
	},
}

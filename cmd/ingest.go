package cmd

import (
	"fmt"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/ingest"
	"github.com/spf13/cobra"
)

// ingestCmd loads a JSON document into the store.
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Load contributors, definitions and activities from a JSON file.",
	Long: `Read a JSON document with contributors, definitions and activities
sections and write it into the store.

Contributors and definitions are upserted. Activities are immutable and
keyed by slug, so re-ingesting the same document is a no-op.

Examples:
  # Load a data drop
  contriboard ingest drop.json

  # Re-running is safe
  contriboard ingest drop.json && contriboard ingest drop.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		err := withStore(func(st contract.Store) error {
			res, err := ingest.IngestFile(rootCtx, st, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Ingested %d contributors, %d definitions, %d activities from %s\n",
				res.Contributors, res.Definitions, res.Activities, args[0])
			return nil
		})
		if err != nil {
			contract.LogFatal("Cannot ingest file", err)
		}
	},
}

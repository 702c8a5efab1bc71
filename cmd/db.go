package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/parquet"
	"github.com/contriboard/contriboard/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dbCmd focused on database management.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the activity database",
	Long: `Manage the activity database that backs all queries and exports.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  migrate - Apply schema migrations up or down
  status  - Show row counts and connection info
  clear   - Remove all stored data
  dump    - Export the raw dataset as Parquet files

Examples:
  # Check database status
  contriboard db status

  # Start over
  contriboard db clear`,
}

// dbMigrateCmd applies schema migrations.
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations to the configured backend",
	Long: `Migrate the database schema to a target version.

The default target (-1) migrates to the latest version. A target of 0 rolls
all migrations back. A positive target pins the schema to that version.

Examples:
  # Migrate to the latest schema
  contriboard db migrate

  # Roll everything back
  contriboard db migrate --target-version 0`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := store.Migrate(cfg, target); err != nil {
			contract.LogFatal("Failed to migrate database", err)
		}
		fmt.Println("Database migrated successfully.")
	},
}

// dbStatusCmd shows database status.
var dbStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display row counts and connection details",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			status, err := st.Status(rootCtx)
			if err != nil {
				return err
			}
			fmt.Printf("Backend:      %s\n", status.Backend)
			fmt.Printf("Contributors: %d\n", status.Contributors)
			fmt.Printf("Definitions:  %d\n", status.Definitions)
			fmt.Printf("Activities:   %d\n", status.Activities)
			return nil
		})
		if err != nil {
			contract.LogFatal("Failed to get database status", err)
		}
	},
}

// dbClearCmd removes all stored data.
var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored contributor data",
	Long: `Delete all stored data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Rolls all migrations back, dropping the tables

Examples:
  # Clear the SQLite store (default)
  contriboard db clear

  # Clear a server backend (set connection string via env variable)
  CONTRIBOARD_DB_BACKEND=postgresql CONTRIBOARD_DB_CONNECT="..." contriboard db clear`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Clear(cfg); err != nil {
			contract.LogFatal("Failed to clear database", err)
		}
		fmt.Println("Database cleared successfully.")
	},
}

// dbDumpCmd exports the raw dataset as Parquet files.
var dbDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export contributors and activities as Parquet files",
	Long: `Write the full raw dataset into <data-dir> as two Parquet files:
contributors.parquet and activities.parquet.

Examples:
  # Dump into the default data directory
  contriboard db dump

  # Dump somewhere else
  contriboard db dump --data-dir /tmp/contriboard`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := withStore(func(st contract.Store) error {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			// No role filter here: a dump is the whole dataset.
			people, err := st.ContributorsWithAvatars(rootCtx, nil)
			if err != nil {
				return err
			}
			contributorsPath := filepath.Join(cfg.DataDir, "contributors.parquet")
			if err := parquet.WriteContributorsParquet(parquet.ConvertContributors(people), contributorsPath); err != nil {
				return err
			}

			groups, err := st.RecentActivitiesGroupedByType(rootCtx, contract.MaxLookbackDays)
			if err != nil {
				return err
			}
			records := parquet.ConvertActivities(groups)
			activitiesPath := filepath.Join(cfg.DataDir, "activities.parquet")
			if err := parquet.WriteActivitiesParquet(records, activitiesPath); err != nil {
				return err
			}

			fmt.Printf("Dumped %d contributors and %d activities to %s\n", len(people), len(records), cfg.DataDir)
			return nil
		})
		if err != nil {
			contract.LogFatal("Failed to dump database", err)
		}
	},
}

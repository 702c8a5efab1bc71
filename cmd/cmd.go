// Package cmd defines the command-line interface for contriboard.
package cmd

import (
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/seed"
	"github.com/contriboard/contriboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(peopleCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the db subcommands to the parent db command
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbClearCmd)
	dbCmd.AddCommand(dbDumpCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Storage backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("db-path", "", "SQLite database file path (use ':memory:' for a transient store)")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql")
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Root directory for the static export tree")
	rootCmd.PersistentFlags().Int("lookback-days", contract.DefaultLookbackDays, "Lookback window in days for recent activity")
	rootCmd.PersistentFlags().String("hidden-roles", "", "Comma-separated roles excluded from the roster")
	rootCmd.PersistentFlags().StringP("period", "p", string(schema.WeekPeriod), "Reporting period: week or month or year")
	rootCmd.PersistentFlags().String("activities", "", "Comma-separated activity slugs for top-contributor views")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of seedCmd to Viper
	seedCmd.Flags().Int("contributors", seed.DefaultContributors, "Number of demo contributors to generate")
	seedCmd.Flags().Int("days", seed.DefaultDays, "Spread generated activity across this many trailing days")
	if err := viper.BindPFlags(seedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding seed flags", err)
	}

	// Bind all flags of dbMigrateCmd to Viper
	dbMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(dbMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding db migrate flags", err)
	}
}

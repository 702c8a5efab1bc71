package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/contriboard/contriboard/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays = 7
	DefaultDataDir      = "data"
	MaxLookbackDays     = 3650
)

// Config holds the validated runtime configuration. It is constructed once
// at process start and threaded through as a parameter; no code below the
// command layer reads the environment.
type Config struct {
	DBBackend    schema.DatabaseBackend // Storage backend: sqlite, mysql, postgresql
	DBPath       string                 // SQLite file path; schema.MemoryDBPath selects a transient instance
	DBConnect    string                 // Connection string for server backends
	DataDir      string                 // Root of the static export tree
	LookbackDays int                    // Default window for recent-activity feeds
	HiddenRoles  []string               // Roles excluded from the roster view (FINAL processed list)
	Period       schema.Period          // Reporting period for leaderboard commands
	Activities   []string               // Activity-definition slugs selected for top-contributor views
	Output       schema.OutputMode      // Output format for interactive commands
	OutputFile   string                 // Optional path to write output to
	Width        int                    // Terminal width override (0 = auto-detect)
	Color        bool                   // Colored labels in table output
}

// ConfigRawInput holds the raw inputs from flags, env and config file that
// require parsing or validation. Viper unmarshals into this struct.
type ConfigRawInput struct {
	DBBackendStr   string `mapstructure:"db-backend"`
	DBPath         string `mapstructure:"db-path"`
	DBConnect      string `mapstructure:"db-connect"`
	DataDir        string `mapstructure:"data-dir"`
	LookbackDays   int    `mapstructure:"lookback-days"`
	HiddenRolesStr string `mapstructure:"hidden-roles"`
	PeriodStr      string `mapstructure:"period"`
	ActivitiesStr  string `mapstructure:"activities"`
	OutputStr      string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	ColorStr       string `mapstructure:"color"`
}

// Clone returns a copy of the configuration for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	clone.HiddenRoles = append([]string(nil), c.HiddenRoles...)
	clone.Activities = append([]string(nil), c.Activities...)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. It must run before any I/O so that
// configuration errors surface synchronously.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Backend Validation ---
	backend := schema.DatabaseBackend(strings.ToLower(input.DBBackendStr))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid db-backend '%s'. must be sqlite, mysql, postgresql", input.DBBackendStr)
	}
	cfg.DBBackend = backend

	// --- 2. Database Location Validation ---
	switch backend {
	case schema.SQLiteBackend:
		cfg.DBPath = input.DBPath
		if cfg.DBPath == "" {
			cfg.DBPath = DefaultDBFilePath()
		}
	default:
		if input.DBConnect == "" {
			return fmt.Errorf("db-connect is required for the %s backend", backend)
		}
		cfg.DBConnect = input.DBConnect
	}

	// --- 3. Data Directory ---
	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	// --- 4. Lookback Validation ---
	if input.LookbackDays <= 0 || input.LookbackDays > MaxLookbackDays {
		return fmt.Errorf("lookback-days must be between 1 and %d (received %d)", MaxLookbackDays, input.LookbackDays)
	}
	cfg.LookbackDays = input.LookbackDays

	// --- 5. Hidden Roles Processing ---
	cfg.HiddenRoles = SplitList(input.HiddenRolesStr)

	// --- 6. Period Validation ---
	period := schema.Period(strings.ToLower(input.PeriodStr))
	if _, ok := schema.ValidPeriods[period]; !ok {
		return fmt.Errorf("invalid period '%s'. must be week, month, year", input.PeriodStr)
	}
	cfg.Period = period

	// --- 7. Activity Selector Processing ---
	cfg.Activities = SplitList(input.ActivitiesStr)

	// --- 8. Output Validation ---
	output := schema.OutputMode(strings.ToLower(input.OutputStr))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.OutputStr)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	// --- 9. Width and Color ---
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width
	cfg.Color = parseBoolFlag(input.ColorStr, true)

	return nil
}

// SplitList splits a comma-separated flag value into trimmed, non-empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseBoolFlag interprets the loose yes/no flag convention.
func parseBoolFlag(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

// DefaultDBFilePath returns the path to the SQLite DB file for storage.
func DefaultDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".contriboard.db"
	}
	return filepath.Join(homeDir, ".contriboard.db")
}

package contract

import (
	"testing"

	"github.com/contriboard/contriboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DBBackendStr: "sqlite",
		DBPath:       schema.MemoryDBPath,
		DataDir:      "data",
		LookbackDays: 7,
		PeriodStr:    "week",
		OutputStr:    "text",
		ColorStr:     "yes",
	}
}

// TestProcessAndValidate tests config parsing and validation.
func TestProcessAndValidate(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, validInput()))
		assert.Equal(t, schema.SQLiteBackend, cfg.DBBackend)
		assert.Equal(t, schema.MemoryDBPath, cfg.DBPath)
		assert.Equal(t, 7, cfg.LookbackDays)
		assert.Equal(t, schema.WeekPeriod, cfg.Period)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.True(t, cfg.Color)
	})

	t.Run("invalid backend", func(t *testing.T) {
		input := validInput()
		input.DBBackendStr = "oracle"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("server backend requires connect string", func(t *testing.T) {
		input := validInput()
		input.DBBackendStr = "postgresql"
		assert.Error(t, ProcessAndValidate(&Config{}, input))

		input.DBConnect = "host=localhost port=5432 user=postgres dbname=contriboard"
		assert.NoError(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("lookback bounds", func(t *testing.T) {
		input := validInput()
		input.LookbackDays = 0
		assert.Error(t, ProcessAndValidate(&Config{}, input))

		input.LookbackDays = MaxLookbackDays + 1
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("invalid period", func(t *testing.T) {
		input := validInput()
		input.PeriodStr = "quarter"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("invalid output", func(t *testing.T) {
		input := validInput()
		input.OutputStr = "xml"
		assert.Error(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("hidden roles and activities are split and trimmed", func(t *testing.T) {
		cfg := &Config{}
		input := validInput()
		input.HiddenRolesStr = "bot, staff ,"
		input.ActivitiesStr = "pr,review"
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, []string{"bot", "staff"}, cfg.HiddenRoles)
		assert.Equal(t, []string{"pr", "review"}, cfg.Activities)
	})
}

// TestSplitList tests list splitting edge cases.
func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,b"))
}

// TestClone tests that clones do not share slice storage.
func TestClone(t *testing.T) {
	cfg := &Config{HiddenRoles: []string{"bot"}, Activities: []string{"pr"}}
	clone := cfg.Clone()
	clone.HiddenRoles[0] = "staff"
	assert.Equal(t, "bot", cfg.HiddenRoles[0])
}

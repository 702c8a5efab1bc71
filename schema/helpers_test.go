package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestContributionLevel tests the contribution-graph thresholds.
func TestContributionLevel(t *testing.T) {
	cases := []struct {
		count int
		level int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{5, 2},
		{6, 3},
		{9, 3},
		{10, 4},
		{100, 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, ContributionLevel(c.count), "count %d", c.count)
	}
}

// TestTimeRoundTrip tests that formatted timestamps parse back to the
// same point in time at second precision.
func TestTimeRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	original := time.Date(2025, 3, 9, 18, 4, 5, 0, loc)
	parsed, err := ParseTime(FormatTime(original))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(original))
}

// TestDayKey tests UTC day bucketing near midnight boundaries.
func TestDayKey(t *testing.T) {
	utc := time.Date(2025, 1, 2, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2025-01-02", DayKey(utc))

	// 23:00 in UTC-2 is already the next UTC day.
	west := time.Date(2025, 1, 2, 23, 0, 0, 0, time.FixedZone("W", -2*3600))
	assert.Equal(t, "2025-01-03", DayKey(west))
}

// TestDisplayName tests display-name fallback behavior.
func TestDisplayName(t *testing.T) {
	name := "Ada Lovelace"
	empty := ""

	c := &Contributor{Username: "ada"}
	assert.Equal(t, "ada", c.DisplayName())

	c.Name = &empty
	assert.Equal(t, "ada", c.DisplayName())

	c.Name = &name
	assert.Equal(t, "Ada Lovelace", c.DisplayName())
}

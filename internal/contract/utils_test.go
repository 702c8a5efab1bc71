package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetPlainRankLabel tests medal labels for podium ranks.
func TestGetPlainRankLabel(t *testing.T) {
	assert.Equal(t, GoldValue, GetPlainRankLabel(1))
	assert.Equal(t, SilverValue, GetPlainRankLabel(2))
	assert.Equal(t, BronzeValue, GetPlainRankLabel(3))
	assert.Equal(t, "", GetPlainRankLabel(4))
	assert.Equal(t, "", GetPlainRankLabel(0))
}

// TestTruncate tests tail-preserving truncation.
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "short", Truncate("short", 0))
	assert.Equal(t, "...ontributor", Truncate("a-very-long-contributor", 13))
	assert.Equal(t, "or", Truncate("contributor", 2))
}

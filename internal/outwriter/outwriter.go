// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/contriboard/contriboard/internal/contract"
	"golang.org/x/term"
)

// getMaxTableNameWidth calculates the maximum width for contributor names
// and titles in table output based on terminal width.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for rank, points and label columns with borders/padding
	baseWidth := 40

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}

// rankLabel picks the colored or plain medal label per configuration.
func rankLabel(cfg *contract.Config, rank int) string {
	if cfg.Color {
		return contract.GetColorRankLabel(rank)
	}
	return contract.GetPlainRankLabel(rank)
}

package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Rank label constants.
const (
	GoldValue   = "Gold"
	SilverValue = "Silver"
	BronzeValue = "Bronze"
)

// Color variables for console output.
var (
	GoldColor   = color.New(color.FgYellow, color.Bold)
	SilverColor = color.New(color.FgWhite, color.Bold)
	BronzeColor = color.New(color.FgRed)
)

// GetPlainRankLabel returns the plain text medal label for a 1-based rank.
// Ranks beyond the podium have no label. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainRankLabel(rank int) string {
	switch rank {
	case 1:
		return GoldValue
	case 2:
		return SilverValue
	case 3:
		return BronzeValue
	default:
		return ""
	}
}

// GetColorRankLabel returns a colored medal label for console output.
// It uses GetPlainRankLabel to determine the string, then applies color.
func GetColorRankLabel(rank int) string {
	text := GetPlainRankLabel(rank)

	switch text {
	case GoldValue:
		return GoldColor.Sprint(text)
	case SilverValue:
		return SilverColor.Sprint(text)
	case BronzeValue:
		return BronzeColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// Truncate shortens a string to at most width runes, keeping the tail,
// which preserves the most distinctive part of long names and links.
func Truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[len(s)-width:]
	}
	return "..." + s[len(s)-(width-3):]
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

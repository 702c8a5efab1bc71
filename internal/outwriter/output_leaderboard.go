package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteLeaderboard outputs the ranked leaderboard, dispatching based on the
// output format configured. Entries must already be ranked.
func WriteLeaderboard(entries []schema.LeaderboardEntry, start, end time.Time, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeLeaderboardJSON(entries, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeLeaderboardCSV(entries, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardTable(entries, start, end, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeLeaderboardTable generates and writes the human-readable table.
func writeLeaderboardTable(entries []schema.LeaderboardEntry, start, end time.Time, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Contributor", "Points", "Events", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	var totalPoints int64
	for i, e := range entries {
		events := 0
		for _, stat := range e.ActivityBreakdown {
			events += stat.Count
		}
		totalPoints += e.TotalPoints
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.Truncate(displayName(e.Username, e.Name), nameWidth),
			strconv.FormatInt(e.TotalPoints, 10),
			strconv.Itoa(events),
			rankLabel(cfg, i + 1),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d contributors from %s to %s (total points: %d)\n",
		len(entries), start.Format(schema.DateFormat), end.Format(schema.DateFormat), totalPoints); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Query completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeLeaderboardCSV handles opening the file and writing the CSV rows.
func writeLeaderboardCSV(entries []schema.LeaderboardEntry, cfg *contract.Config) error {
	header := []string{"rank", "username", "name", "role", "points", "events", "label"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, e := range entries {
				events := 0
				for _, stat := range e.ActivityBreakdown {
					events += stat.Count
				}
				rec := []string{
					strconv.Itoa(i + 1),
					e.Username,
					derefString(e.Name),
					derefString(e.Role),
					strconv.FormatInt(e.TotalPoints, 10),
					strconv.Itoa(events),
					contract.GetPlainRankLabel(i + 1),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeLeaderboardJSON writes entries with rank and label added.
func writeLeaderboardJSON(entries []schema.LeaderboardEntry, cfg *contract.Config) error {
	type JSONLeaderboardEntry struct {
		Rank  int    `json:"rank"`
		Label string `json:"label,omitempty"`
		schema.LeaderboardEntry
	}

	output := make([]JSONLeaderboardEntry, len(entries))
	for i, e := range entries {
		output[i] = JSONLeaderboardEntry{
			Rank:             i + 1,
			Label:            contract.GetPlainRankLabel(i + 1),
			LeaderboardEntry: e,
		}
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// displayName prefers the contributor's name and falls back to the username.
func displayName(username string, name *string) string {
	if name != nil && *name != "" {
		return *name
	}
	return username
}

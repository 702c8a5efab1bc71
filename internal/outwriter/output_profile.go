package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// contributionGlyphs maps a contribution level to a console glyph.
var contributionGlyphs = [5]string{".", "-", "+", "*", "#"}

// graphDays is the span of the console contribution graph.
const graphDays = 30

// WriteProfileNotFound renders the not-found state for an unknown username.
// JSON mode emits an empty profile so downstream tooling keeps parsing.
func WriteProfileNotFound(username string, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		empty := schema.ContributorProfile{
			Activities:     []schema.ProfileActivity{},
			ActivityByDate: map[string]int{},
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, empty)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "No contributor found with username '%s'\n", username)
		return err
	}, "Wrote profile")
}

// WriteProfile outputs one contributor's profile, dispatching based on the
// output format configured. The profile's contributor must be non-nil.
func WriteProfile(profile schema.ContributorProfile, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, profile)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeProfileCSV(profile, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileText(profile, cfg, w)
		}, "Wrote profile")
	}
	return nil
}

// writeProfileText writes the header block, activity table and graph.
func writeProfileText(profile schema.ContributorProfile, cfg *contract.Config, writer io.Writer) error {
	c := profile.Contributor
	if _, err := fmt.Fprintf(writer, "%s (@%s)\n", c.DisplayName(), c.Username); err != nil {
		return err
	}
	if c.Role != nil && *c.Role != "" {
		if _, err := fmt.Fprintf(writer, "Role: %s\n", *c.Role); err != nil {
			return err
		}
	}
	if c.Bio != nil && *c.Bio != "" {
		if _, err := fmt.Fprintf(writer, "%s\n", *c.Bio); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Total points: %d across %d activities\n\n", profile.TotalPoints, len(profile.Activities)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Date", "Activity", "Title", "Points"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, a := range profile.Activities {
		data = append(data, []string{
			a.OccuredAt.UTC().Format(schema.DateFormat),
			a.DefinitionName,
			contract.Truncate(derefString(a.Title), nameWidth),
			formatPoints(a.Points),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	graph := renderContributionGraph(profile.ActivityByDate, time.Now().UTC(), graphDays)
	_, err := fmt.Fprintf(writer, "Last %d days: %s\n", graphDays, graph)
	return err
}

// renderContributionGraph renders one glyph per day, oldest first.
func renderContributionGraph(byDate map[string]int, now time.Time, days int) string {
	var sb strings.Builder
	for i := days - 1; i >= 0; i-- {
		day := schema.DayKey(now.AddDate(0, 0, -i))
		level := schema.ContributionLevel(byDate[day])
		sb.WriteString(contributionGlyphs[level])
	}
	return sb.String()
}

// writeProfileCSV writes the activity timeline as CSV rows.
func writeProfileCSV(profile schema.ContributorProfile, cfg *contract.Config) error {
	header := []string{"username", "occured_at", "activity", "title", "points", "link"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, a := range profile.Activities {
				rec := []string{
					a.Username,
					schema.FormatTime(a.OccuredAt),
					a.DefinitionName,
					derefString(a.Title),
					formatPoints(a.Points),
					derefString(a.Link),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// formatPoints renders an optional points column, empty when unscored.
func formatPoints(points *int64) string {
	if points == nil {
		return ""
	}
	return strconv.FormatInt(*points, 10)
}

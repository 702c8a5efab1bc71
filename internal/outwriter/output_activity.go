package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteActivityFeed outputs the recent activity feed grouped by activity
// type, dispatching based on the output format configured.
func WriteActivityFeed(groups []schema.ActivityGroup, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, groups)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeActivityFeedCSV(groups, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeActivityFeedTables(groups, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeActivityFeedTables writes one table per activity group.
func writeActivityFeedTables(groups []schema.ActivityGroup, cfg *contract.Config, writer io.Writer) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintf(writer, "No activity in the last %d days\n", cfg.LookbackDays)
		return err
	}

	nameWidth := getMaxTableNameWidth(cfg)
	for _, group := range groups {
		if _, err := fmt.Fprintf(writer, "%s (%d)\n", group.Definition.Name, len(group.Activities)); err != nil {
			return err
		}

		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Date", "Contributor", "Title", "Points"})
		table.Configure(func(tc *tablewriter.Config) {
			tc.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, a := range group.Activities {
			data = append(data, []string{
				a.OccuredAt.UTC().Format(schema.DateFormat),
				contract.Truncate(displayName(a.Username, a.ContributorName), nameWidth),
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
	}
	return nil
}

// writeActivityFeedCSV flattens the groups into one CSV stream.
func writeActivityFeedCSV(groups []schema.ActivityGroup, cfg *contract.Config) error {
	header := []string{"activity", "occured_at", "username", "title", "points", "link"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, group := range groups {
				for _, a := range group.Activities {
					rec := []string{
						group.Definition.Slug,
						schema.FormatTime(a.OccuredAt),
						a.Username,
						derefString(a.Title),
						formatPoints(a.Points),
						derefString(a.Link),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

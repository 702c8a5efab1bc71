package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTopContributors outputs the per-activity top contributors,
// dispatching based on the output format configured.
func WriteTopContributors(top schema.TopContributorsByActivity, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, top)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTopCSV(top, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTopTables(top, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// sortedActivityNames returns the map keys in a stable display order.
func sortedActivityNames(top schema.TopContributorsByActivity) []string {
	names := make([]string, 0, len(top))
	for name := range top {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeTopTables writes one table per activity type.
func writeTopTables(top schema.TopContributorsByActivity, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if len(top) == 0 {
		_, err := fmt.Fprintln(writer, "No qualifying activity in the selected period")
		return err
	}

	nameWidth := getMaxTableNameWidth(cfg)
	for _, activityName := range sortedActivityNames(top) {
		if _, err := fmt.Fprintf(writer, "%s\n", activityName); err != nil {
			return err
		}

		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Rank", "Contributor", "Points", "Count", "Label"})
		table.Configure(func(tc *tablewriter.Config) {
			tc.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for i, e := range top[activityName] {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.Truncate(displayName(e.Username, e.Name), nameWidth),
				strconv.FormatInt(e.Points, 10),
				strconv.Itoa(e.Count),
				rankLabel(cfg, i + 1),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "Query completed in %v\n", duration)
	return err
}

// writeTopCSV flattens the per-activity rankings into one CSV stream.
func writeTopCSV(top schema.TopContributorsByActivity, cfg *contract.Config) error {
	header := []string{"activity", "rank", "username", "name", "points", "count"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, activityName := range sortedActivityNames(top) {
				for i, e := range top[activityName] {
					rec := []string{
						activityName,
						strconv.Itoa(i + 1),
						e.Username,
						derefString(e.Name),
						strconv.FormatInt(e.Points, 10),
						strconv.Itoa(e.Count),
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

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePeople outputs the contributor roster, dispatching based on the
// output format configured.
func WritePeople(people []schema.ContributorWithAvatar, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, people)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writePeopleCSV(people, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePeopleTable(people, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writePeopleTable writes the roster as a single table.
func writePeopleTable(people []schema.ContributorWithAvatar, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Username", "Name", "Role", "Points"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, p := range people {
		data = append(data, []string{
			p.Username,
			contract.Truncate(derefString(p.Name), nameWidth),
			derefString(p.Role),
			strconv.FormatInt(p.TotalPoints, 10),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d contributors\n", len(people))
	return err
}

// writePeopleCSV writes the roster as CSV rows.
func writePeopleCSV(people []schema.ContributorWithAvatar, cfg *contract.Config) error {
	header := []string{"username", "name", "role", "avatar_url", "total_points"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range people {
				rec := []string{
					p.Username,
					derefString(p.Name),
					derefString(p.Role),
					derefString(p.AvatarURL),
					strconv.FormatInt(p.TotalPoints, 10),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

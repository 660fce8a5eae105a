package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tablediff/core/dataset"
	"tablediff/core/diff"
	"tablediff/core/utils"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	addedColor   = color.New(color.FgHiGreen).SprintFunc()
	removedColor = color.New(color.FgHiRed).SprintFunc()
	changedColor = color.New(color.FgHiYellow).SprintFunc()
	mutedColor   = color.New(color.FgHiBlack).SprintFunc()
)

// renderSummaries writes one line per table and a totals footer.
func renderSummaries(w io.Writer, summaries []diff.Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Table", "Only in source", "Only in target", "Different", "Path")

	var totals diff.Summary
	for _, s := range summaries {
		name := s.Table
		if s.HasDifferences() {
			name = changedColor(name)
		}
		if err := table.Append([]string{
			name,
			count(s.OnlyInSource, addedColor),
			count(s.OnlyInTarget, removedColor),
			count(s.Different, changedColor),
			mutedColor(string(s.Path)),
		}); err != nil {
			return err
		}
		totals.OnlyInSource += s.OnlyInSource
		totals.OnlyInTarget += s.OnlyInTarget
		totals.Different += s.Different
	}
	if err := table.Append([]string{
		fmt.Sprintf("%d tables", len(summaries)),
		strconv.Itoa(totals.OnlyInSource),
		strconv.Itoa(totals.OnlyInTarget),
		strconv.Itoa(totals.Different),
		"",
	}); err != nil {
		return err
	}
	return table.Render()
}

func count(n int, paint func(a ...interface{}) string) string {
	if n == 0 {
		return mutedColor("0")
	}
	return paint(strconv.Itoa(n))
}

// renderEntries writes up to limit entries of result with the columns that changed.
func renderEntries(w io.Writer, result *diff.TableResult, limit int) error {
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Change", "Columns")

	for i, e := range result.Entries {
		if limit > 0 && i >= limit {
			break
		}
		var change, columns string
		switch e.Change {
		case diff.OnlyInSource:
			change = addedColor("only in source")
		case diff.OnlyInTarget:
			change = removedColor("only in target")
		case diff.Different:
			change = changedColor("different")
			columns = strings.Join(changedColumns(result, e), ", ")
		}
		if err := table.Append([]string{displayKey(e.Key), change, columns}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if limit > 0 && len(result.Entries) > limit {
		_, err := fmt.Fprintf(w, "%s\n", mutedColor(fmt.Sprintf("... %d more entries", len(result.Entries)-limit)))
		return err
	}
	return nil
}

// changedColumns names the columns shared by both schemas whose values differ.
func changedColumns(result *diff.TableResult, e diff.Entry) []string {
	var names []string
	for i, col := range result.SourceColumns {
		j := dataset.IndexOf(result.TargetColumns, col.Name)
		if j < 0 || i >= len(e.SourceRow) || j >= len(e.TargetRow) {
			continue
		}
		if !diff.Equal(col.Kind, e.SourceRow[i], e.TargetRow[j]) {
			names = append(names, col.Name)
		}
	}
	return names
}

// displayKey makes a rendered key readable.
func displayKey(key string) string {
	parts := strings.Split(key, dataset.KeySeparator)
	for i, p := range parts {
		if p == dataset.NullSentinel {
			parts[i] = "NULL"
		}
	}
	return strings.Join(parts, " | ")
}

// renderRows writes a sheet preview.
func renderRows(w io.Writer, width int, rows [][]any) error {
	table := tablewriter.NewWriter(w)
	header := make([]any, width)
	for i := range header {
		header[i] = columnLetter(i)
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]string, width)
		for i, v := range row {
			if v != nil {
				cells[i] = utils.ToString(v)
			}
		}
		if err := table.Append(cells); err != nil {
			return err
		}
	}
	return table.Render()
}

// columnLetter returns the spreadsheet name of a zero-based column.
func columnLetter(i int) string {
	name := ""
	for i++; i > 0; i = (i - 1) / 26 {
		name = string(rune('A'+(i-1)%26)) + name
	}
	return name
}

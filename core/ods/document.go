package ods

import "strings"

const (
	// MaxRows is the largest row count the format allows per sheet.
	MaxRows = 1 << 20
	// MaxColumns is the largest column count the format allows per sheet.
	MaxColumns = 1 << 14
)

// RowRun is Repeat consecutive rows with identical content. Cells is nil for a run of
// physically empty rows; a nil element is an empty cell.
type RowRun struct {
	Repeat int
	Cells  []any
}

// Sheet is one table of the document.
type Sheet struct {
	Name       string
	MaxColumns int
	Runs       []RowRun
}

// RowCount returns the number of expanded rows.
func (s *Sheet) RowCount() int {
	n := 0
	for _, run := range s.Runs {
		n += run.Repeat
	}
	return n
}

// Document is a parsed spreadsheet. It is immutable.
type Document struct {
	Sheets []Sheet
}

// SheetIndex finds a sheet by name, ignoring case.
func (d *Document) SheetIndex(name string) (int, bool) {
	for i := range d.Sheets {
		if strings.EqualFold(d.Sheets[i].Name, name) {
			return i, true
		}
	}
	return -1, false
}

// SheetNames returns the sheet names in document order.
func (d *Document) SheetNames() []string {
	names := make([]string, len(d.Sheets))
	for i := range d.Sheets {
		names[i] = d.Sheets[i].Name
	}
	return names
}

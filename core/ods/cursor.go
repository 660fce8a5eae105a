package ods

import "fmt"

// Cursor reads the rows of a Document forward only. Each cursor keeps its own position,
// so several cursors may read one Document concurrently. A Cursor itself is not safe
// for concurrent use.
type Cursor struct {
	doc   *Document
	sheet int
	run   int
	left  int
	cells []any
	row   int
}

// NewCursor returns a cursor positioned before the first row of sheetIndex.
func NewCursor(doc *Document, sheetIndex int) (*Cursor, error) {
	if doc == nil || sheetIndex < 0 || sheetIndex >= len(doc.Sheets) {
		return nil, fmt.Errorf("ods: sheet index %d out of range", sheetIndex)
	}
	c := &Cursor{doc: doc, sheet: sheetIndex}
	c.reset()
	return c, nil
}

func (c *Cursor) reset() {
	c.run = -1
	c.left = 0
	c.cells = nil
	c.row = 0
}

// Read advances to the next row and reports whether one exists.
func (c *Cursor) Read() bool {
	runs := c.doc.Sheets[c.sheet].Runs
	for c.left == 0 {
		if c.run+1 >= len(runs) {
			c.cells = nil
			return false
		}
		c.run++
		c.left = runs[c.run].Repeat
	}
	c.left--
	c.cells = runs[c.run].Cells
	c.row++
	return true
}

// Value returns the value of column col in the current row. ok is false for empty
// cells and columns past the end of the row.
func (c *Cursor) Value(col int) (any, bool) {
	if col < 0 || col >= len(c.cells) || c.cells[col] == nil {
		return nil, false
	}
	return c.cells[col], true
}

// NextSheet moves to the start of the next sheet and reports whether one exists.
func (c *Cursor) NextSheet() bool {
	if c.sheet+1 >= len(c.doc.Sheets) {
		return false
	}
	c.sheet++
	c.reset()
	return true
}

// SheetName returns the name of the current sheet.
func (c *Cursor) SheetName() string {
	return c.doc.Sheets[c.sheet].Name
}

// FieldCount returns the widest row of the current sheet.
func (c *Cursor) FieldCount() int {
	return c.doc.Sheets[c.sheet].MaxColumns
}

// RowIndex returns the 1-based index of the current row, 0 before the first Read.
func (c *Cursor) RowIndex() int {
	return c.row
}

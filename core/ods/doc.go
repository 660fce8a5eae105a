// Package ods decodes OpenDocument spreadsheet containers (zip archives holding a
// content.xml part) into an immutable Document and exposes forward-only cursors over
// its sheets, rows and cells.
//
// # Run-length rows
//
// Producers encode repeated rows and cells with repeat counts, and commonly encode the
// unused tail of a sheet as a single row repeated up to the format maximum. The decoder
// keeps rows as runs (RowRun) and never expands them in memory: cursors expand runs
// lazily while reading. Trailing runs without any non-empty cell are trimmed when a
// sheet is closed, splitting the last kept run if it straddles the boundary.
//
// # Sharing
//
// A Document is never modified after Parse returns. Any number of cursors, on any
// number of goroutines, may read the same Document.
//
// # Usage
//
//	doc, err := ods.ParseFile("export.ods")
//	cur, err := ods.NewCursor(doc, 0)
//	for cur.Read() {
//	    v, ok := cur.Value(0)
//	}
package ods

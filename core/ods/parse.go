package ods

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrFormat is returned when the container lacks the content part.
var ErrFormat = errors.New("ods: content.xml part not found")

const contentPart = "content.xml"

const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
)

// ParseFile reads and parses a container from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Parse(f, info.Size())
}

// ParseBytes parses an in-memory container.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data), int64(len(data)))
}

// Parse parses a zip container and decodes its content part.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("ods: open container: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != contentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("ods: open %s: %w", contentPart, err)
		}
		defer rc.Close()
		return Decode(rc)
	}
	return nil, ErrFormat
}

// Decode parses a content.xml stream.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{Sheets: []Sheet{}}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return doc, nil
		}
		if err != nil {
			return nil, fmt.Errorf("ods: parse %s: %w", contentPart, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || !is(start.Name, nsTable, "table", "table") {
			continue
		}
		sheet, err := readSheet(dec, start)
		if err != nil {
			return nil, fmt.Errorf("ods: parse %s: %w", contentPart, err)
		}
		doc.Sheets = append(doc.Sheets, sheet)
	}
}

// sheetBuilder accumulates row runs and remembers the last non-empty row.
type sheetBuilder struct {
	sheet   Sheet
	rows    int
	lastRow int
}

func (b *sheetBuilder) add(repeat int, cells []any) {
	if b.rows+repeat > MaxRows {
		repeat = MaxRows - b.rows
	}
	if repeat <= 0 {
		return
	}
	b.sheet.Runs = append(b.sheet.Runs, RowRun{Repeat: repeat, Cells: cells})
	b.rows += repeat
	if cells != nil {
		b.lastRow = b.rows
	}
}

// finish trims trailing empty runs back to the last non-empty row.
func (b *sheetBuilder) finish() Sheet {
	if b.lastRow == 0 {
		b.sheet.Runs = nil
		return b.sheet
	}

	seen := 0
	for i, run := range b.sheet.Runs {
		if seen+run.Repeat >= b.lastRow {
			b.sheet.Runs[i].Repeat = b.lastRow - seen
			b.sheet.Runs = b.sheet.Runs[:i+1]
			break
		}
		seen += run.Repeat
	}

	for _, run := range b.sheet.Runs {
		if len(run.Cells) > b.sheet.MaxColumns {
			b.sheet.MaxColumns = len(run.Cells)
		}
	}
	return b.sheet
}

func readSheet(dec *xml.Decoder, start xml.StartElement) (Sheet, error) {
	b := &sheetBuilder{sheet: Sheet{Name: attr(start, nsTable, "table", "name")}}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return Sheet{}, unexpected(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if is(t.Name, nsTable, "table", "table-row") {
				repeat := repeatAttr(t, "number-rows-repeated", MaxRows)
				cells, err := readRow(dec)
				if err != nil {
					return Sheet{}, err
				}
				b.add(repeat, cells)
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.finish(), nil
}

// readRow reads the cells of a row. Trailing empty cells are dropped; a row without
// any non-empty cell yields nil.
func readRow(dec *xml.Decoder) ([]any, error) {
	var cells []any
	pending := 0

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, unexpected(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			covered := is(t.Name, nsTable, "table", "covered-table-cell")
			if !covered && !is(t.Name, nsTable, "table", "table-cell") {
				depth++
				continue
			}
			repeat := repeatAttr(t, "number-columns-repeated", MaxColumns)
			value, err := readCell(dec, t)
			if err != nil {
				return nil, err
			}
			if covered || value == nil {
				pending += repeat
				continue
			}
			width := len(cells) + pending
			if width >= MaxColumns {
				pending = 0
				continue
			}
			for ; pending > 0; pending-- {
				cells = append(cells, nil)
			}
			if width+repeat > MaxColumns {
				repeat = MaxColumns - width
			}
			for i := 0; i < repeat; i++ {
				cells = append(cells, value)
			}
		case xml.EndElement:
			depth--
		}
	}
	return cells, nil
}

// readCell consumes a cell element and resolves its value. Empty cells yield nil.
func readCell(dec *xml.Decoder, start xml.StartElement) (any, error) {
	var paragraphs []string

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, unexpected(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case is(t.Name, nsText, "text", "p"):
				p, err := readParagraph(dec)
				if err != nil {
					return nil, err
				}
				paragraphs = append(paragraphs, p)
			case t.Name.Local == "annotation":
				if err := dec.Skip(); err != nil {
					return nil, unexpected(err)
				}
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	if is(start.Name, nsTable, "table", "covered-table-cell") {
		return nil, nil
	}

	text := strings.Join(paragraphs, "\n")
	value := cellValue(start, text)
	if isEmpty(value) {
		if formula := attr(start, nsTable, "table", "formula"); formula != "" {
			return formula, nil
		}
		return nil, nil
	}
	return value, nil
}

// readParagraph concatenates the literal text of a paragraph, expanding the inline
// space, tab and line-break controls.
func readParagraph(dec *xml.Decoder) (string, error) {
	var b strings.Builder

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", unexpected(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			switch {
			case is(t.Name, nsText, "text", "s"):
				n := 1
				if c := attr(t, nsText, "text", "c"); c != "" {
					if v, err := strconv.Atoi(c); err == nil && v > 0 {
						n = v
					}
				}
				b.WriteString(strings.Repeat(" ", n))
				depth++
			case is(t.Name, nsText, "text", "tab"):
				b.WriteByte('\t')
				depth++
			case is(t.Name, nsText, "text", "line-break"):
				b.WriteByte('\n')
				depth++
			case t.Name.Local == "annotation", t.Name.Local == "note":
				if err := dec.Skip(); err != nil {
					return "", unexpected(err)
				}
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// is matches an element or attribute name in the given namespace. Documents without
// namespace declarations report the prefix as the space, so both are accepted.
func is(name xml.Name, ns, prefix, local string) bool {
	return name.Local == local && (name.Space == ns || name.Space == prefix)
}

func attr(el xml.StartElement, ns, prefix, local string) string {
	v, _ := lookupAttr(el, ns, prefix, local)
	return v
}

func lookupAttr(el xml.StartElement, ns, prefix, local string) (string, bool) {
	for _, a := range el.Attr {
		if is(a.Name, ns, prefix, local) {
			return a.Value, true
		}
	}
	return "", false
}

func repeatAttr(el xml.StartElement, local string, max int) int {
	s := attr(el, nsTable, "table", local)
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

package dataset

import (
	"fmt"
	"strings"
)

// Column is a named, typed column of a Dataset.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Dataset is an in-memory table. It is safe for concurrent reads.
type Dataset struct {
	name    string
	columns []Column
	rows    [][]any
	hidden  []hiddenColumn
	index   map[string]int
}

type hiddenColumn struct {
	Column
	values []any
}

// New builds a dataset. Column names must be unique ignoring case and every row must
// have exactly one value per column.
func New(name string, columns []Column, rows [][]any) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.ToLower(col.Name)
		if _, dup := index[key]; dup {
			return nil, fmt.Errorf("dataset %s: duplicate column %q", name, col.Name)
		}
		index[key] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("dataset %s: row %d has %d values, want %d", name, i, len(row), len(columns))
		}
	}
	return &Dataset{name: name, columns: columns, rows: rows, index: index}, nil
}

// MustNew is New that panics on error. Intended for tests and literals.
func MustNew(name string, columns []Column, rows [][]any) *Dataset {
	ds, err := New(name, columns, rows)
	if err != nil {
		panic(err)
	}
	return ds
}

// Name returns the table name the dataset was loaded from.
func (d *Dataset) Name() string { return d.name }

// Columns returns the declared columns. Hidden columns are not included.
// The returned slice must not be modified.
func (d *Dataset) Columns() []Column { return d.columns }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns the declared values of row i. The slice must not be modified.
func (d *Dataset) Row(i int) []any { return d.rows[i] }

// Width returns the number of addressable columns, hidden ones included.
func (d *Dataset) Width() int { return len(d.columns) + len(d.hidden) }

// Lookup returns the position of a column, declared or hidden, ignoring case.
func (d *Dataset) Lookup(name string) (int, bool) {
	pos, ok := d.index[strings.ToLower(name)]
	return pos, ok
}

// Has reports whether the column exists, ignoring case.
func (d *Dataset) Has(name string) bool {
	_, ok := d.Lookup(name)
	return ok
}

// Column returns the column at pos, declared or hidden.
func (d *Dataset) Column(pos int) Column {
	if pos < len(d.columns) {
		return d.columns[pos]
	}
	return d.hidden[pos-len(d.columns)].Column
}

// Value returns the value at (row, pos); pos may address a hidden column.
func (d *Dataset) Value(row, pos int) any {
	if pos < len(d.columns) {
		return d.rows[row][pos]
	}
	return d.hidden[pos-len(d.columns)].values[row]
}

// IsHidden reports whether pos addresses a hidden column.
func (d *Dataset) IsHidden(pos int) bool {
	return pos >= len(d.columns)
}

// WithHidden returns a view of d with an extra hidden column. The receiver is left
// untouched; rows are shared between both datasets.
func (d *Dataset) WithHidden(col Column, values []any) (*Dataset, error) {
	if len(values) != len(d.rows) {
		return nil, fmt.Errorf("dataset %s: hidden column %q has %d values, want %d", d.name, col.Name, len(values), len(d.rows))
	}
	key := strings.ToLower(col.Name)
	if _, dup := d.index[key]; dup {
		return nil, fmt.Errorf("dataset %s: duplicate column %q", d.name, col.Name)
	}

	index := make(map[string]int, len(d.index)+1)
	for k, v := range d.index {
		index[k] = v
	}
	index[key] = d.Width()

	hidden := make([]hiddenColumn, len(d.hidden), len(d.hidden)+1)
	copy(hidden, d.hidden)
	hidden = append(hidden, hiddenColumn{Column: col, values: values})

	return &Dataset{name: d.name, columns: d.columns, rows: d.rows, hidden: hidden, index: index}, nil
}

// IndexOf returns the position of name in columns ignoring case, or -1.
func IndexOf(columns []Column, name string) int {
	for i, col := range columns {
		if strings.EqualFold(col.Name, name) {
			return i
		}
	}
	return -1
}

// Names returns the column names in order.
func Names(columns []Column) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return names
}

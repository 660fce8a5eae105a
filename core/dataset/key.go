package dataset

import (
	"fmt"
	"strings"

	"tablediff/core/utils"
)

const (
	// KeySeparator joins the projected values of a composite key.
	KeySeparator = "\x1f"
	// NullSentinel stands for a NULL component in a rendered key.
	NullSentinel = "\x00NULL\x00"
	// PseudoKey is the reserved single-column key emitted by keyless sources. It holds
	// the physical row number.
	PseudoKey = "__row"
)

// IsPseudoKey reports whether key is exactly the reserved pseudo-key.
func IsPseudoKey(key []string) bool {
	return len(key) == 1 && strings.EqualFold(key[0], PseudoKey)
}

// RenderKey renders projected key values into the string used to correlate rows.
func RenderKey(values []any) string {
	if len(values) == 1 {
		return renderKeyPart(values[0])
	}
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(KeySeparator)
		}
		b.WriteString(renderKeyPart(v))
	}
	return b.String()
}

func renderKeyPart(v any) string {
	if v == nil {
		return NullSentinel
	}
	return utils.ToString(v)
}

// Positions resolves column names to positions, hidden columns included.
func (d *Dataset) Positions(names []string) ([]int, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		pos, ok := d.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("dataset %s: unknown column %q", d.name, name)
		}
		positions[i] = pos
	}
	return positions, nil
}

// Key renders the key of row using the given column positions.
func (d *Dataset) Key(row int, positions []int) string {
	values := make([]any, len(positions))
	for i, pos := range positions {
		values[i] = d.Value(row, pos)
	}
	return RenderKey(values)
}

// HasAll reports whether every name exists in the dataset, ignoring case.
func (d *Dataset) HasAll(names []string) bool {
	for _, name := range names {
		if !d.Has(name) {
			return false
		}
	}
	return true
}

// UniqueNonEmpty reports whether the projection on names is non-null and non-empty for
// every row and no two rows share the same projected value.
func (d *Dataset) UniqueNonEmpty(names []string) bool {
	if len(names) == 0 {
		return false
	}
	positions, err := d.Positions(names)
	if err != nil {
		return false
	}
	seen := make(map[string]struct{}, d.Len())
	for row := 0; row < d.Len(); row++ {
		for _, pos := range positions {
			v := d.Value(row, pos)
			if v == nil || utils.ToString(v) == "" {
				return false
			}
		}
		key := d.Key(row, positions)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

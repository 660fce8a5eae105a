package diff

import "tablediff/core/dataset"

// Change classifies a key present in at least one side of a comparison.
type Change string

const (
	// OnlyInSource marks a key missing from the target.
	OnlyInSource Change = "only_in_source"
	// OnlyInTarget marks a key missing from the source.
	OnlyInTarget Change = "only_in_target"
	// Different marks a key present on both sides with unequal rows.
	Different Change = "different"
)

// Entry is one reported key. Unchanged keys never produce an entry.
type Entry struct {
	// Key is the rendered row identity.
	Key string `json:"key"`

	// Change is the classification of the key.
	Change Change `json:"change"`

	// SourceRow holds the declared source values, nil when absent.
	SourceRow []any `json:"source_row,omitempty"`

	// TargetRow holds the declared target values, nil when absent.
	TargetRow []any `json:"target_row,omitempty"`
}

// Stats carries side information gathered while matching.
type Stats struct {
	// SourceDuplicates counts source rows dropped because their key repeated.
	SourceDuplicates int `json:"source_duplicates"`

	// TargetDuplicates counts target rows dropped because their key repeated.
	TargetDuplicates int `json:"target_duplicates"`
}

// TableResult is the detailed outcome of comparing one table.
type TableResult struct {
	// Table is the compared table name.
	Table string `json:"table"`

	// KeyColumns are the resolved key columns, possibly synthetic.
	KeyColumns []string `json:"key_columns"`

	// KeyTier names the resolution tier that produced KeyColumns.
	KeyTier string `json:"key_tier"`

	// Entries are the reported keys ordered by key.
	Entries []Entry `json:"entries"`

	// SourceOnlyColumns lists columns present only in the source schema.
	SourceOnlyColumns []string `json:"source_only_columns"`

	// TargetOnlyColumns lists columns present only in the target schema.
	TargetOnlyColumns []string `json:"target_only_columns"`

	// SourceColumns is the source schema, describing SourceRow values.
	SourceColumns []dataset.Column `json:"source_columns"`

	// TargetColumns is the target schema, describing TargetRow values.
	TargetColumns []dataset.Column `json:"target_columns"`

	// Stats carries duplicate key counters.
	Stats Stats `json:"stats"`
}

// Path tells how a summary was produced.
type Path string

const (
	PathIdentical   Path = "identical"
	PathFingerprint Path = "fingerprint"
	PathFull        Path = "full"
)

// Summary holds counts only, bounding memory when many tables are compared.
type Summary struct {
	Table        string `json:"table"`
	OnlyInSource int    `json:"only_in_source"`
	OnlyInTarget int    `json:"only_in_target"`
	Different    int    `json:"different"`
	Total        int    `json:"total"`
	Path         Path   `json:"path"`
}

// HasDifferences reports whether any key was reported.
func (s Summary) HasDifferences() bool {
	return s.Total > 0
}

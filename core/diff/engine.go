package diff

import (
	"errors"
	"fmt"
	"sort"

	"tablediff/core/dataset"
)

// ErrInvalidArgument is returned for an empty key or a missing dataset.
var ErrInvalidArgument = errors.New("invalid argument")

// Build matches source and target rows by keyColumns and returns one entry per key that
// is missing on a side or whose rows differ, ordered by key.
func Build(source, target *dataset.Dataset, keyColumns []string) ([]Entry, error) {
	entries, _, err := build(source, target, keyColumns)
	return entries, err
}

// BuildResult runs Build and wraps the entries with the schema drift of both sides.
func BuildResult(table string, source, target *dataset.Dataset, keyColumns []string, tier string) (*TableResult, error) {
	entries, stats, err := build(source, target, keyColumns)
	if err != nil {
		return nil, err
	}

	sourceOnly, targetOnly := Drift(source.Columns(), target.Columns())
	return &TableResult{
		Table:             table,
		KeyColumns:        keyColumns,
		KeyTier:           tier,
		Entries:           entries,
		SourceOnlyColumns: sourceOnly,
		TargetOnlyColumns: targetOnly,
		SourceColumns:     source.Columns(),
		TargetColumns:     target.Columns(),
		Stats:             stats,
	}, nil
}

func build(source, target *dataset.Dataset, keyColumns []string) ([]Entry, Stats, error) {
	var stats Stats
	if source == nil || target == nil {
		return nil, stats, fmt.Errorf("%w: dataset is nil", ErrInvalidArgument)
	}
	if len(keyColumns) == 0 {
		return nil, stats, fmt.Errorf("%w: key columns are empty", ErrInvalidArgument)
	}

	sourceIndex, dups, err := index(source, keyColumns)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	stats.SourceDuplicates = dups

	targetIndex, dups, err := index(target, keyColumns)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	stats.TargetDuplicates = dups

	// Build union of all keys
	union := make(map[string]struct{}, len(sourceIndex)+len(targetIndex))
	for key := range sourceIndex {
		union[key] = struct{}{}
	}
	for key := range targetIndex {
		union[key] = struct{}{}
	}

	entries := make([]Entry, 0)
	for key := range union {
		i, inSource := sourceIndex[key]
		j, inTarget := targetIndex[key]

		switch {
		case inSource && !inTarget:
			entries = append(entries, Entry{Key: key, Change: OnlyInSource, SourceRow: source.Row(i)})
		case !inSource && inTarget:
			entries = append(entries, Entry{Key: key, Change: OnlyInTarget, TargetRow: target.Row(j)})
		case !RowsEqual(source, i, target, j):
			entries = append(entries, Entry{Key: key, Change: Different, SourceRow: source.Row(i), TargetRow: target.Row(j)})
		}
	}

	// Sort by key for deterministic output
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Key < entries[b].Key
	})

	return entries, stats, nil
}

// index maps each rendered key to its first row.
func index(ds *dataset.Dataset, keyColumns []string) (map[string]int, int, error) {
	positions, err := ds.Positions(keyColumns)
	if err != nil {
		return nil, 0, err
	}
	idx := make(map[string]int, ds.Len())
	dups := 0
	for row := 0; row < ds.Len(); row++ {
		key := ds.Key(row, positions)
		if _, exists := idx[key]; exists {
			dups++
			continue
		}
		idx[key] = row
	}
	return idx, dups, nil
}

// Drift returns the column names present only in source and only in target.
func Drift(source, target []dataset.Column) (sourceOnly, targetOnly []string) {
	sourceOnly = []string{}
	targetOnly = []string{}
	for _, col := range source {
		if dataset.IndexOf(target, col.Name) < 0 {
			sourceOnly = append(sourceOnly, col.Name)
		}
	}
	for _, col := range target {
		if dataset.IndexOf(source, col.Name) < 0 {
			targetOnly = append(targetOnly, col.Name)
		}
	}
	return sourceOnly, targetOnly
}

// Summarize tallies the entries of a result into counts.
func Summarize(result *TableResult) Summary {
	s := Summary{Table: result.Table, Path: PathFull}
	for _, e := range result.Entries {
		switch e.Change {
		case OnlyInSource:
			s.OnlyInSource++
		case OnlyInTarget:
			s.OnlyInTarget++
		case Different:
			s.Different++
		}
	}
	s.Total = s.OnlyInSource + s.OnlyInTarget + s.Different
	return s
}

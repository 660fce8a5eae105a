package keys

import (
	"errors"
	"strings"

	"tablediff/core/dataset"
	"tablediff/core/utils"
)

// Tier names the heuristic that produced a key.
type Tier string

const (
	TierDeclared       Tier = "declared"
	TierCustom         Tier = "custom"
	TierPseudo         Tier = "pseudo"
	TierAllColumns     Tier = "all_columns"
	TierSourceDeclared Tier = "source_declared"
	TierTargetDeclared Tier = "target_declared"
	TierAlias          Tier = "alias_bridge"
	TierPriority       Tier = "priority_name"
	TierShared         Tier = "shared_column"
	TierRowNumber      Tier = "row_number"
)

const (
	// AliasPrefix is the prefix a source may put in front of a priority name.
	AliasPrefix = "_"
	// RowNumberColumn is the hidden positional key of the last tier.
	RowNumberColumn = "__row_number"

	bridgePrefix = "__bridge_"
)

// PriorityNames are the column names tried, in order, by the auto-detection tiers.
var PriorityNames = []string{"pk", "id", "key", "name", "offset", "n", "index", "uid", "guid"}

// ErrNilDataset is returned by ResolvePair when a side is missing.
var ErrNilDataset = errors.New("keys: dataset is nil")

// Resolution is the outcome of key resolution.
type Resolution struct {
	// Columns are the key column names.
	Columns []string

	// Tier is the heuristic that produced Columns.
	Tier Tier

	// Source and Target are the datasets to match with Columns. They are the inputs
	// themselves or views with hidden key columns. Nil for ResolveSingle.
	Source *dataset.Dataset
	Target *dataset.Dataset
}

// ResolveSingle resolves a key from a single schema. The first matching tier wins:
// the declared key unless it is the pseudo-key, the custom key restricted to existing
// columns, the pseudo-key, and finally every column.
func ResolveSingle(columns []dataset.Column, declared, custom []string) Resolution {
	if len(declared) > 0 && !dataset.IsPseudoKey(declared) {
		return Resolution{Columns: declared, Tier: TierDeclared}
	}

	if filtered := filterColumns(custom, func(name string) bool {
		return dataset.IndexOf(columns, name) >= 0
	}); len(filtered) > 0 {
		return Resolution{Columns: filtered, Tier: TierCustom}
	}

	if dataset.IsPseudoKey(declared) {
		return Resolution{Columns: declared, Tier: TierPseudo}
	}

	return Resolution{Columns: dataset.Names(columns), Tier: TierAllColumns}
}

// ResolvePair resolves a key valid on both datasets.
//
// Tiers, first match wins: source declared key, custom key restricted to shared
// columns, target declared key, aliased bridging of priority names, a priority name
// shared by both sides, any shared column, and a synthetic row number. Every tier but
// the last only accepts columns that are unique and non-empty on both sides.
//
// A declared pseudo-key does not count as a declared key: it is tried after the
// target declared key, so a custom key takes precedence over row positions.
func ResolvePair(source, target *dataset.Dataset, sourceDeclared, targetDeclared, custom []string) (Resolution, error) {
	if source == nil || target == nil {
		return Resolution{}, ErrNilDataset
	}

	if !dataset.IsPseudoKey(sourceDeclared) && valid(source, target, sourceDeclared) {
		return Resolution{Columns: sourceDeclared, Tier: TierSourceDeclared, Source: source, Target: target}, nil
	}

	shared := filterColumns(custom, func(name string) bool {
		return source.Has(name) && target.Has(name)
	})
	if valid(source, target, shared) {
		return Resolution{Columns: shared, Tier: TierCustom, Source: source, Target: target}, nil
	}

	if !dataset.IsPseudoKey(targetDeclared) && valid(source, target, targetDeclared) {
		return Resolution{Columns: targetDeclared, Tier: TierTargetDeclared, Source: source, Target: target}, nil
	}

	for _, declared := range [][]string{sourceDeclared, targetDeclared} {
		if dataset.IsPseudoKey(declared) && valid(source, target, declared) {
			return Resolution{Columns: declared, Tier: TierPseudo, Source: source, Target: target}, nil
		}
	}

	for _, base := range PriorityNames {
		res, ok, err := bridge(source, target, base)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			return res, nil
		}
	}

	for _, base := range PriorityNames {
		if valid(source, target, []string{base}) {
			return Resolution{Columns: []string{canonical(source, base)}, Tier: TierPriority, Source: source, Target: target}, nil
		}
	}

	for _, col := range source.Columns() {
		if valid(source, target, []string{col.Name}) {
			return Resolution{Columns: []string{col.Name}, Tier: TierShared, Source: source, Target: target}, nil
		}
	}

	src, err := withRowNumber(source)
	if err != nil {
		return Resolution{}, err
	}
	tgt, err := withRowNumber(target)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Columns: []string{RowNumberColumn}, Tier: TierRowNumber, Source: src, Target: tgt}, nil
}

// valid reports whether names exist on both sides and are unique and non-empty there.
func valid(source, target *dataset.Dataset, names []string) bool {
	if len(names) == 0 || !source.HasAll(names) || !target.HasAll(names) {
		return false
	}
	return source.UniqueNonEmpty(names) && target.UniqueNonEmpty(names)
}

// bridge tries to unify base and its prefixed alias across both sides. Each side may
// use either spelling independently; a hidden column holds the bare value when present
// and non-empty, otherwise the prefixed one. Sides without any prefixed column are left
// to the priority name tier.
func bridge(source, target *dataset.Dataset, base string) (Resolution, bool, error) {
	alias := AliasPrefix + base
	if !source.Has(alias) && !target.Has(alias) {
		return Resolution{}, false, nil
	}
	if !(source.Has(base) || source.Has(alias)) || !(target.Has(base) || target.Has(alias)) {
		return Resolution{}, false, nil
	}

	name := bridgePrefix + base
	src, err := source.WithHidden(dataset.Column{Name: name, Kind: dataset.KindString}, bridgeValues(source, base, alias))
	if err != nil {
		return Resolution{}, false, err
	}
	tgt, err := target.WithHidden(dataset.Column{Name: name, Kind: dataset.KindString}, bridgeValues(target, base, alias))
	if err != nil {
		return Resolution{}, false, err
	}

	key := []string{name}
	if !src.UniqueNonEmpty(key) || !tgt.UniqueNonEmpty(key) {
		return Resolution{}, false, nil
	}
	return Resolution{Columns: key, Tier: TierAlias, Source: src, Target: tgt}, true, nil
}

func bridgeValues(ds *dataset.Dataset, base, alias string) []any {
	barePos, hasBare := ds.Lookup(base)
	aliasPos, hasAlias := ds.Lookup(alias)

	values := make([]any, ds.Len())
	for row := range values {
		if hasBare {
			if v := ds.Value(row, barePos); v != nil && utils.ToString(v) != "" {
				values[row] = utils.ToString(v)
				continue
			}
		}
		if hasAlias {
			if v := ds.Value(row, aliasPos); v != nil {
				values[row] = utils.ToString(v)
			}
		}
	}
	return values
}

func withRowNumber(ds *dataset.Dataset) (*dataset.Dataset, error) {
	values := make([]any, ds.Len())
	for i := range values {
		values[i] = int64(i + 1)
	}
	return ds.WithHidden(dataset.Column{Name: RowNumberColumn, Kind: dataset.KindInt64}, values)
}

// canonical returns the spelling of name used by ds.
func canonical(ds *dataset.Dataset, name string) string {
	if pos, ok := ds.Lookup(name); ok {
		return ds.Column(pos).Name
	}
	return name
}

func filterColumns(names []string, keep func(string) bool) []string {
	var out []string
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		lower := strings.ToLower(name)
		if _, dup := seen[lower]; dup || !keep(name) {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, name)
	}
	return out
}

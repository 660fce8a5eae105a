// Package dataset defines the in-memory tabular data contract shared by providers,
// the key resolver, the diff engine and the fingerprinting code.
//
// A Dataset is an ordered list of typed columns plus an ordered list of rows. Column
// names are unique ignoring case and every lookup by name is case-insensitive. Values
// are plain Go values, nil meaning NULL.
//
// # Kinds
//
// Each column carries a Kind drawn from a closed enumeration. The kind is resolved once
// when a schema is read (see KindFromDatabaseType) and drives equality and
// fingerprinting for every cell of the column.
//
// # Hidden columns
//
// Key resolution sometimes needs synthetic columns (bridged aliases, row numbers).
// WithHidden returns a new view that shares the row storage and carries the extra
// column; the original dataset is never modified. Hidden columns are addressable by
// name and position but are not part of Columns and never take part in row equality.
package dataset

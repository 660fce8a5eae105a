// Package sqlsource exposes the tables of a gorm database as a comparison provider.
//
// Schemas are read with the dialect's native inspection statement so that column kinds
// are resolved once per table from the declared type names. Rows are streamed and
// coerced to their column kind while reading.
//
// Besides the base provider contract the provider fingerprints rows where they are
// streamed (compare.Fingerprinter) and widens its idle connection pool for the
// duration of a comparison batch (compare.BatchLifecycle).
//
// # Writes
//
// ApplyRowChanges makes a table match the source side of a comparison result inside
// one transaction. Results keyed on a synthetic column (row numbers, bridged aliases,
// the spreadsheet pseudo-key) cannot address target rows and are refused with
// ErrSyntheticKey.
package sqlsource

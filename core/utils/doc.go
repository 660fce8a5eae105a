// Package utils provides value conversion helpers shared by the dataset, diff and
// fingerprint packages. All conversions are locale independent: numbers are parsed and
// rendered with strconv, times with fixed RFC 3339 layouts.
package utils

// Package diff matches the rows of two datasets by key and classifies every key as
// unchanged, only in the source, only in the target, or different.
//
// # Algorithm
//
// Build indexes both sides by rendered key (the first row wins when a key repeats),
// walks the union of keys and compares rows present on both sides column by column over
// the source schema. A column missing on one side reads as NULL there, so schema drift
// never aborts a comparison; BuildResult reports the drifted columns separately.
//
// # Equality
//
// String columns treat NULL and "" as equal and otherwise compare bytes. Other kinds
// treat NULL as equal only to NULL and compare values after conversion to the declared
// kind. The fingerprint package follows the same rule.
package diff

// Package keys picks the columns that identify a row when comparing two datasets.
//
// ResolveSingle works from one schema only and backs the fingerprint fast path.
// ResolvePair sees both datasets and walks a tiered list of heuristics, from declared
// keys down to a positional row-number fallback, so that a usable key always exists.
//
// Resolution never modifies its inputs. Tiers that need synthetic columns return views
// of the input datasets carrying hidden columns (see dataset.WithHidden).
package keys

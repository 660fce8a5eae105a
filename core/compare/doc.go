// Package compare schedules table comparisons between two providers.
//
// A Provider exposes tables as datasets. Providers may additionally implement
// BatchLifecycle, to prepare a connection for a burst of operations, and
// Fingerprinter, which lets the scheduler compare tables through key to fingerprint maps
// without materializing rows. Capabilities are probed with interface assertions.
//
// # Paths
//
// CompareManySummary produces one diff.Summary per table along one of three paths:
//
//   - identical: both providers report the same ID, nothing is loaded;
//   - fingerprint: both providers are Fingerprinters and the key resolved from the source
//     schema exists on both sides;
//   - full: both tables are loaded, a key is resolved pairwise and the diff engine runs.
//
// # Cancellation
//
// Cancellation is checked before each table starts. Tables already running complete
// with a context that is never cancelled, and their summaries are returned together
// with ErrCancelled.
package compare

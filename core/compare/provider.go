package compare

import (
	"context"

	"tablediff/core/dataset"
	"tablediff/core/diff"
)

// Provider is a source of tables.
type Provider interface {
	// ID identifies the endpoint. Two providers with the same ID read the same data.
	ID() string

	ListTables(ctx context.Context) ([]string, error)
	LoadTable(ctx context.Context, table string) (*dataset.Dataset, error)

	// DeclaredKey returns the key declared by the schema. It may be empty or the
	// pseudo-key of a keyless source.
	DeclaredKey(ctx context.Context, table string) ([]string, error)

	// ApplyRowChanges makes the table match the source side of result.
	ApplyRowChanges(ctx context.Context, table string, result *diff.TableResult) error
	ReplaceTable(ctx context.Context, table string, ds *dataset.Dataset) error
	DropTable(ctx context.Context, table string) error
}

// BatchLifecycle is implemented by providers that benefit from preparing for a burst of
// operations.
type BatchLifecycle interface {
	BeginBatch(ctx context.Context) error
	EndBatch(ctx context.Context) error
}

// Fingerprinter is implemented by providers able to fingerprint rows where they live.
type Fingerprinter interface {
	Columns(ctx context.Context, table string) ([]dataset.Column, error)

	// KeyFingerprints maps the rendered key of every row to the fingerprint of the row
	// over columns. The first row wins when keys repeat.
	KeyFingerprints(ctx context.Context, table string, keyColumns []string, columns []dataset.Column) (map[string]uint64, error)
}

package sqlsource

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tablediff/core/compare"
	"tablediff/core/database"
	"tablediff/core/dataset"
	"tablediff/core/fingerprint"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTableNotFound is returned for tables without columns.
var ErrTableNotFound = errors.New("table not found")

// checkEvery is how many streamed rows pass between context checks.
const checkEvery = 1024

// Options tunes the connection pool around batches.
type Options struct {
	// IdleConns is the idle pool size outside of batches.
	IdleConns int
	// BatchIdleConns is the idle pool size during a batch.
	BatchIdleConns int
}

// Provider reads and writes tables through gorm.
type Provider struct {
	db     *gorm.DB
	id     string
	opts   Options
	logger *zap.Logger
}

var (
	_ compare.Provider       = (*Provider)(nil)
	_ compare.Fingerprinter  = (*Provider)(nil)
	_ compare.BatchLifecycle = (*Provider)(nil)
)

// New creates a provider. id should identify the database, not the connection.
func New(db *gorm.DB, id string, logger *zap.Logger, opts Options) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.IdleConns <= 0 {
		opts.IdleConns = 2
	}
	if opts.BatchIdleConns < opts.IdleConns {
		opts.BatchIdleConns = max(opts.IdleConns, 16)
	}
	return &Provider{db: db, id: id, opts: opts, logger: logger.With(zap.String("provider", id))}
}

// ID identifies the database.
func (p *Provider) ID() string {
	return p.id
}

// ListTables returns the table names sorted.
func (p *Provider) ListTables(ctx context.Context) ([]string, error) {
	tables, err := p.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	sort.Strings(tables)
	return tables, nil
}

// schema reads the columns of table with their kinds.
func (p *Provider) schema(ctx context.Context, table string) ([]dataset.Column, []database.ColumnInfo, error) {
	infos, err := database.GetTableColumns(ctx, p.db, table)
	if err != nil {
		return nil, nil, err
	}
	if len(infos) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	columns := make([]dataset.Column, len(infos))
	for i, info := range infos {
		columns[i] = dataset.Column{Name: info.Name, Kind: dataset.KindFromDatabaseType(info.Type)}
	}
	return columns, infos, nil
}

// Columns returns the typed columns of table.
func (p *Provider) Columns(ctx context.Context, table string) ([]dataset.Column, error) {
	columns, _, err := p.schema(ctx, table)
	return columns, err
}

// DeclaredKey returns the primary key columns, empty when the table has none.
func (p *Provider) DeclaredKey(ctx context.Context, table string) ([]string, error) {
	_, infos, err := p.schema(ctx, table)
	if err != nil {
		return nil, err
	}
	return database.PrimaryKey(infos), nil
}

// LoadTable materializes table, ordered by primary key when one exists.
func (p *Provider) LoadTable(ctx context.Context, table string) (*dataset.Dataset, error) {
	columns, infos, err := p.schema(ctx, table)
	if err != nil {
		return nil, err
	}

	var rows [][]any
	err = p.stream(ctx, table, columns, database.PrimaryKey(infos), func(values []any) error {
		rows = append(rows, values)
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Loaded table", zap.String("table", table), zap.Int("rows", len(rows)))
	return dataset.New(table, columns, rows)
}

// KeyFingerprints streams table and fingerprints every row over columns. Columns the
// table lacks hash as NULL.
func (p *Provider) KeyFingerprints(ctx context.Context, table string, keyColumns []string, columns []dataset.Column) (map[string]uint64, error) {
	own, _, err := p.schema(ctx, table)
	if err != nil {
		return nil, err
	}

	keyPositions := make([]int, len(keyColumns))
	for i, name := range keyColumns {
		if keyPositions[i] = dataset.IndexOf(own, name); keyPositions[i] < 0 {
			return nil, fmt.Errorf("table %s has no key column %q", table, name)
		}
	}
	positions := make([]int, len(columns))
	kinds := make([]dataset.Kind, len(columns))
	for i, col := range columns {
		positions[i] = dataset.IndexOf(own, col.Name)
		kinds[i] = col.Kind
	}

	out := make(map[string]uint64)
	keyValues := make([]any, len(keyPositions))
	err = p.stream(ctx, table, own, nil, func(values []any) error {
		for i, pos := range keyPositions {
			keyValues[i] = values[pos]
		}
		key := dataset.RenderKey(keyValues)
		if _, dup := out[key]; !dup {
			out[key] = fingerprint.Row(values, positions, kinds)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// stream reads every row of table, coerced to the column kinds, in schema order.
func (p *Provider) stream(ctx context.Context, table string, columns []dataset.Column, orderBy []string, fn func([]any) error) error {
	query := p.db.WithContext(ctx).Table(table)
	for _, name := range orderBy {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: name}})
	}

	rows, err := query.Rows()
	if err != nil {
		return fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	// Result columns are mapped by name; the schema fixes the order.
	targets := make([]int, len(names))
	for i, name := range names {
		targets[i] = dataset.IndexOf(columns, name)
	}

	raw := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	n := 0
	for rows.Next() {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		n++

		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		values := make([]any, len(columns))
		for i, pos := range targets {
			if pos >= 0 {
				values[pos] = normalize(columns[pos].Kind, raw[i])
			}
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	return rows.Err()
}

// normalize coerces a scanned value to its kind. Values that do not convert are kept,
// with driver byte slices turned into strings for non-binary kinds.
func normalize(kind dataset.Kind, v any) any {
	if v == nil {
		return nil
	}
	if c, ok := kind.Coerce(v); ok {
		return c
	}
	if b, ok := v.([]byte); ok && kind != dataset.KindBytes {
		return string(b)
	}
	return v
}

// BeginBatch widens the idle pool so concurrent table loads reuse connections.
func (p *Provider) BeginBatch(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(p.opts.BatchIdleConns)
	return sqlDB.PingContext(ctx)
}

// EndBatch restores the idle pool size.
func (p *Provider) EndBatch(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(p.opts.IdleConns)
	return nil
}

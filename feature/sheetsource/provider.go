package sheetsource

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tablediff/core/compare"
	"tablediff/core/dataset"
	"tablediff/core/diff"
	"tablediff/core/ods"
	"tablediff/core/storage"
	"tablediff/core/utils"

	"go.uber.org/zap"
)

var (
	// ErrReadOnly is returned by every write operation.
	ErrReadOnly = errors.New("spreadsheet sources are read-only")
	// ErrNoSheet is returned for table names that match no sheet.
	ErrNoSheet = errors.New("sheet not found")
)

// Extension is the file suffix of OpenDocument spreadsheets.
const Extension = ".ods"

// Provider serves the sheets of one workbook as tables.
type Provider struct {
	location string
	client   storage.Client
	cache    *Cache
	logger   *zap.Logger
	maxBytes int64
}

var _ compare.Provider = (*Provider)(nil)

// New creates a provider for a local path or an s3://bucket/key location. client may be
// nil for local paths; a nil cache parses the workbook on every load.
func New(location string, client storage.Client, cache *Cache, logger *zap.Logger) *Provider {
	if cache == nil {
		cache = NewCache(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		location: location,
		client:   client,
		cache:    cache,
		logger:   logger.With(zap.String("provider", location)),
	}
}

// WithObjectLimit refuses object storage downloads larger than n bytes.
func (p *Provider) WithObjectLimit(n int64) *Provider {
	p.maxBytes = n
	return p
}

// ID returns the workbook location.
func (p *Provider) ID() string {
	return p.location
}

// Document returns the parsed workbook.
func (p *Provider) Document(ctx context.Context) (*ods.Document, error) {
	return p.cache.GetOrLoad(ctx, p.location, p.load)
}

func (p *Provider) load(ctx context.Context) (*ods.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var (
		doc *ods.Document
		err error
	)
	if storage.IsLocation(p.location) {
		if p.client == nil {
			return nil, fmt.Errorf("cannot read %s: object storage is not configured", p.location)
		}
		bucket, key, perr := storage.ParseLocation(p.location)
		if perr != nil {
			return nil, perr
		}
		data, rerr := storage.ReadObject(ctx, p.client, bucket, key, p.maxBytes)
		if rerr != nil {
			return nil, rerr
		}
		doc, err = ods.ParseBytes(data)
	} else {
		doc, err = ods.ParseFile(p.location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", p.location, err)
	}

	p.logger.Debug("Parsed workbook",
		zap.Int("sheets", len(doc.Sheets)),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

// ListTables returns the sheet names in document order.
func (p *Provider) ListTables(ctx context.Context) ([]string, error) {
	doc, err := p.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.SheetNames(), nil
}

func (p *Provider) sheet(ctx context.Context, name string) (*ods.Document, int, error) {
	doc, err := p.Document(ctx)
	if err != nil {
		return nil, 0, err
	}
	idx, ok := doc.SheetIndex(name)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s in %s", ErrNoSheet, name, p.location)
	}
	return doc, idx, nil
}

// DeclaredKey returns the pseudo-key, since sheets carry no declared identity.
func (p *Provider) DeclaredKey(ctx context.Context, table string) ([]string, error) {
	if _, _, err := p.sheet(ctx, table); err != nil {
		return nil, err
	}
	return []string{dataset.PseudoKey}, nil
}

// LoadTable reads a sheet. The first non-empty row names the columns, empty rows are
// skipped and the physical row number is kept in the leading pseudo-key column.
func (p *Provider) LoadTable(ctx context.Context, table string) (*dataset.Dataset, error) {
	doc, idx, err := p.sheet(ctx, table)
	if err != nil {
		return nil, err
	}
	cur, err := ods.NewCursor(doc, idx)
	if err != nil {
		return nil, err
	}
	return readSheet(ctx, cur)
}

func readSheet(ctx context.Context, cur *ods.Cursor) (*dataset.Dataset, error) {
	width := cur.FieldCount()
	var (
		header  []any
		rows    [][]any
		numbers []int64
		used    int
	)
	for cur.Read() {
		if cur.RowIndex()%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		last := -1
		for i := width - 1; i >= 0 && last < 0; i-- {
			if _, ok := cur.Value(i); ok {
				last = i
			}
		}
		if last < 0 {
			continue
		}
		cells := make([]any, width)
		for i := 0; i <= last; i++ {
			cells[i], _ = cur.Value(i)
		}
		used = max(used, last+1)
		if header == nil {
			header = cells
			continue
		}
		rows = append(rows, cells)
		numbers = append(numbers, int64(cur.RowIndex()))
	}

	names := columnNames(header, used)
	columns := make([]dataset.Column, len(names))
	for i, name := range names {
		columns[i] = dataset.Column{Name: name, Kind: inferKind(rows, i)}
	}

	out := make([][]any, len(rows))
	positions := make([]any, len(rows))
	for r, cells := range rows {
		row := make([]any, len(columns))
		for i := range names {
			row[i] = convert(columns[i].Kind, cells[i])
		}
		out[r] = row
		positions[r] = numbers[r]
	}
	ds, err := dataset.New(cur.SheetName(), columns, out)
	if err != nil {
		return nil, err
	}
	// The row number is a key, not data: hidden columns are never compared.
	return ds.WithHidden(dataset.Column{Name: dataset.PseudoKey, Kind: dataset.KindInt64}, positions)
}

// columnNames renders the header cells. Blank cells become column_N and repeated names
// get a numeric suffix.
func columnNames(header []any, width int) []string {
	names := make([]string, width)
	seen := map[string]int{strings.ToLower(dataset.PseudoKey): 1}
	for i := range names {
		var name string
		if i < len(header) && header[i] != nil {
			name = strings.TrimSpace(utils.ToString(header[i]))
		}
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		if n := seen[strings.ToLower(name)]; n > 0 {
			base := name
			for seen[strings.ToLower(name)] > 0 {
				n++
				name = base + "_" + strconv.Itoa(n)
			}
			seen[strings.ToLower(base)] = n
		}
		seen[strings.ToLower(name)] = 1
		names[i] = name
	}
	return names
}

// inferKind types a column by its non-empty values: all numbers, all booleans or all
// dates keep their type, anything else is text.
func inferKind(rows [][]any, col int) dataset.Kind {
	kind := dataset.KindUnknown
	for _, row := range rows {
		var k dataset.Kind
		switch row[col].(type) {
		case nil:
			continue
		case float64:
			k = dataset.KindDouble
		case bool:
			k = dataset.KindBool
		case time.Time:
			k = dataset.KindDateTime
		default:
			return dataset.KindString
		}
		if kind != dataset.KindUnknown && kind != k {
			return dataset.KindString
		}
		kind = k
	}
	if kind == dataset.KindUnknown {
		return dataset.KindString
	}
	return kind
}

func convert(kind dataset.Kind, v any) any {
	if v == nil {
		return nil
	}
	if kind == dataset.KindString {
		return utils.ToString(v)
	}
	return v
}

// ApplyRowChanges always fails with ErrReadOnly.
func (p *Provider) ApplyRowChanges(ctx context.Context, table string, result *diff.TableResult) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, p.location)
}

// ReplaceTable always fails with ErrReadOnly.
func (p *Provider) ReplaceTable(ctx context.Context, table string, ds *dataset.Dataset) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, p.location)
}

// DropTable always fails with ErrReadOnly.
func (p *Provider) DropTable(ctx context.Context, table string) error {
	return fmt.Errorf("%w: %s", ErrReadOnly, p.location)
}

// ListWorkbooks returns the s3 locations of the spreadsheets under prefix.
func ListWorkbooks(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	keys, err := storage.ListKeys(ctx, client, bucket, prefix, Extension)
	if err != nil {
		return nil, err
	}
	locations := make([]string, len(keys))
	for i, key := range keys {
		locations[i] = "s3://" + bucket + "/" + key
	}
	return locations, nil
}

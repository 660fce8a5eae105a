package sheetsource

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tablediff/core/compare"
	"tablediff/core/database"
	"tablediff/core/dataset"
	"tablediff/core/diff"
	"tablediff/core/ods"
	"tablediff/core/storage/mocks"
	"tablediff/feature/sqlsource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const contentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content
 xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
 xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:spreadsheet>`

const contentFooter = `</office:spreadsheet></office:body></office:document-content>`

func str(s string) string {
	return `<table:table-cell office:value-type="string"><text:p>` + s + `</text:p></table:table-cell>`
}

func num(s string) string {
	return `<table:table-cell office:value-type="float" office:value="` + s + `"><text:p>` + s + `</text:p></table:table-cell>`
}

func row(cells ...string) string {
	return `<table:table-row>` + strings.Join(cells, "") + `</table:table-row>`
}

func sheet(name string, rows ...string) string {
	return `<table:table table:name="` + name + `">` + strings.Join(rows, "") + `</table:table>`
}

func workbook(t *testing.T, sheets ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("content.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(contentHeader + strings.Join(sheets, "") + contentFooter))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeWorkbook(t *testing.T, name string, sheets ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, workbook(t, sheets...), 0o644))
	return path
}

func itemsSheet(secondPrice string) string {
	return sheet("Items",
		row(str("id"), str("name"), str("price")),
		row(num("1"), str("chair"), num("10.5")),
		row(`<table:table-cell/>`),
		row(num("2"), str("table"), num(secondPrice)),
	)
}

func TestProvider_LoadTable(t *testing.T) {
	path := writeWorkbook(t, "shop.ods", itemsSheet("99"), sheet("Empty"))
	p := New(path, nil, nil, nil)
	ctx := context.Background()

	tables, err := p.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Items", "Empty"}, tables)

	key, err := p.DeclaredKey(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, []string{dataset.PseudoKey}, key)

	ds, err := p.LoadTable(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, []dataset.Column{
		{Name: "id", Kind: dataset.KindDouble},
		{Name: "name", Kind: dataset.KindString},
		{Name: "price", Kind: dataset.KindDouble},
	}, ds.Columns())
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, []any{1.0, "chair", 10.5}, ds.Row(0))
	assert.Equal(t, []any{2.0, "table", 99.0}, ds.Row(1))

	pos, ok := ds.Lookup(dataset.PseudoKey)
	require.True(t, ok)
	assert.True(t, ds.IsHidden(pos))
	assert.Equal(t, int64(2), ds.Value(0, pos))
	assert.Equal(t, int64(4), ds.Value(1, pos))

	empty, err := p.LoadTable(ctx, "Empty")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Columns())
	assert.True(t, empty.Has(dataset.PseudoKey))

	_, err = p.LoadTable(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoSheet)
	_, err = p.DeclaredKey(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoSheet)
}

func TestProvider_ComparesWorkbooks(t *testing.T) {
	a := New(writeWorkbook(t, "a.ods", itemsSheet("99")), nil, nil, nil)
	b := New(writeWorkbook(t, "b.ods", itemsSheet("120")), nil, nil, nil)

	result, err := compare.New(a, b, nil, nil).CompareOne(context.Background(), "Items")
	require.NoError(t, err)
	assert.Equal(t, []string{dataset.PseudoKey}, result.KeyColumns)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "4", result.Entries[0].Key)
	assert.Equal(t, diff.Different, result.Entries[0].Change)
}

func TestProvider_CustomKeyOverridesRowNumbers(t *testing.T) {
	a := New(writeWorkbook(t, "a.ods", itemsSheet("99")), nil, nil, nil)
	b := New(writeWorkbook(t, "b.ods", sheet("Items",
		row(str("id"), str("name"), str("price")),
		row(num("0"), str("stool"), num("5")),
		row(num("1"), str("chair"), num("10.5")),
		row(`<table:table-cell/>`),
		row(num("2"), str("table"), num("99")),
	)), nil, nil, nil)

	scheduler := compare.New(a, b, map[string][]string{"Items": {"id"}}, nil)
	result, err := scheduler.CompareOne(context.Background(), "Items")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, result.KeyColumns)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "0", result.Entries[0].Key)
	assert.Equal(t, diff.OnlyInTarget, result.Entries[0].Change)
}

func TestProvider_MatchesDatabaseTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, price REAL)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO items (id, name, price) VALUES (1, 'chair', 10.5), (2, 'table', 99)`).Error)

	book := New(writeWorkbook(t, "shop.ods", sheet("items",
		row(str("id"), str("name"), str("price")),
		row(num("1"), str("chair"), num("10.5")),
		row(num("2"), str("table"), num("99")),
	)), nil, nil, nil)
	table := sqlsource.New(db, "sqlite://memory", nil, sqlsource.Options{})

	result, err := compare.New(book, table, nil, nil).CompareOne(context.Background(), "items")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, result.KeyColumns)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.SourceOnlyColumns)
}

func TestProvider_WritesAreRefused(t *testing.T) {
	p := New("book.ods", nil, nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, p.ApplyRowChanges(ctx, "Items", &diff.TableResult{}), ErrReadOnly)
	assert.ErrorIs(t, p.ReplaceTable(ctx, "Items", nil), ErrReadOnly)
	assert.ErrorIs(t, p.DropTable(ctx, "Items"), ErrReadOnly)
}

func TestProvider_MissingFile(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "nope.ods"), nil, nil, nil)
	_, err := p.ListTables(context.Background())
	assert.Error(t, err)
}

func TestProvider_ObjectStorage(t *testing.T) {
	data := workbook(t, itemsSheet("99"))
	client := new(mocks.Client)
	client.ServeObject("books", "2024/shop.ods", data)

	p := New("s3://books/2024/shop.ods", client, NewCache(time.Minute), nil)
	ctx := context.Background()

	_, err := p.LoadTable(ctx, "Items")
	require.NoError(t, err)
	tables, err := p.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Items"}, tables)

	client.AssertNumberOfCalls(t, "GetObject", 1)
}

func TestProvider_ObjectLimit(t *testing.T) {
	data := workbook(t, itemsSheet("99"))
	client := new(mocks.Client)
	client.ServeObject("books", "shop.ods", data)

	p := New("s3://books/shop.ods", client, nil, nil).WithObjectLimit(int64(len(data) - 1))
	_, err := p.ListTables(context.Background())
	assert.ErrorContains(t, err, "exceeds")
}

func TestProvider_ObjectStorageErrors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "books").Return(false, nil)

	_, err := New("s3://books/shop.ods", client, nil, nil).ListTables(context.Background())
	assert.ErrorContains(t, err, "does not exist")

	_, err = New("s3://books/shop.ods", nil, nil, nil).ListTables(context.Background())
	assert.ErrorContains(t, err, "not configured")
}

func TestListWorkbooks(t *testing.T) {
	client := new(mocks.Client)
	client.ServeListing("books", "exports/a.ods", "exports/readme.txt", "exports/B.ODS")

	locations, err := ListWorkbooks(context.Background(), client, "books", "exports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"s3://books/exports/a.ods", "s3://books/exports/B.ODS"}, locations)
}

func TestColumnNames(t *testing.T) {
	names := columnNames([]any{"id", nil, "ID", "__row", 2.0, "id"}, 7)
	assert.Equal(t, []string{"id", "column_2", "ID_2", "__row_2", "2", "id_3", "column_7"}, names)
}

func TestInferKind(t *testing.T) {
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rows := [][]any{
		{1.0, true, at, "x", nil, 1.0},
		{nil, false, at, 2.0, nil, true},
	}
	tests := []struct {
		col  int
		want dataset.Kind
	}{
		{0, dataset.KindDouble},
		{1, dataset.KindBool},
		{2, dataset.KindDateTime},
		{3, dataset.KindString},
		{4, dataset.KindString},
		{5, dataset.KindString},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferKind(rows, tt.col), "column %d", tt.col)
	}
}

func TestConvertRendersText(t *testing.T) {
	assert.Equal(t, "1h30m0s", convert(dataset.KindString, 90*time.Minute))
	assert.Equal(t, "2.5", convert(dataset.KindString, 2.5))
	assert.Nil(t, convert(dataset.KindString, nil))
	assert.Equal(t, 2.5, convert(dataset.KindDouble, 2.5))
}

func TestCache_SharesLoads(t *testing.T) {
	cache := NewCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	loads := 0
	load := func(context.Context) (*ods.Document, error) {
		loads++
		return &ods.Document{}, nil
	}

	first, err := cache.GetOrLoad(context.Background(), "a", load)
	require.NoError(t, err)
	second, err := cache.GetOrLoad(context.Background(), "a", load)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, loads)

	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrLoad(context.Background(), "a", load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)

	cache.Invalidate("a")
	_, err = cache.GetOrLoad(context.Background(), "a", load)
	require.NoError(t, err)
	assert.Equal(t, 3, loads)
}

func TestCache_ZeroTTLNeverStores(t *testing.T) {
	cache := NewCache(0)
	loads := 0
	load := func(context.Context) (*ods.Document, error) {
		loads++
		return &ods.Document{}, nil
	}
	for range 3 {
		_, err := cache.GetOrLoad(context.Background(), "a", load)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, loads)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	cache := NewCache(time.Minute)
	boom := errors.New("boom")
	_, err := cache.GetOrLoad(context.Background(), "a", func(context.Context) (*ods.Document, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	doc, err := cache.GetOrLoad(context.Background(), "a", func(context.Context) (*ods.Document, error) {
		return &ods.Document{}, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

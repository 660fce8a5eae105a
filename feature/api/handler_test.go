package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"tablediff/core/compare"
	"tablediff/core/database"
	"tablediff/core/diff"
	"tablediff/core/server"
	"tablediff/feature/sqlsource"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T, statements ...string) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	source := openSQLite(t,
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE audit (id INTEGER PRIMARY KEY, note TEXT)`,
		`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)`,
		`INSERT INTO items VALUES (1, 'chair'), (2, 'table'), (3, 'lamp')`,
		`INSERT INTO users VALUES (1, 'a@example.com')`,
	)
	target := openSQLite(t,
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)`,
		`INSERT INTO items VALUES (1, 'chair'), (2, 'desk')`,
		`INSERT INTO users VALUES (1, 'a@example.com')`,
	)

	logger := zap.NewNop()
	scheduler := compare.New(
		sqlsource.New(source, "sqlite://source", logger, sqlsource.Options{}),
		sqlsource.New(target, "sqlite://target", logger, sqlsource.Options{}),
		nil, logger)

	feature := NewFeature(scheduler, compare.Config{ExcludedTables: []string{"AUDIT"}, MaxParallelism: 2},
		server.Config{EntryLimit: 1}, logger)
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleTables(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/tables", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var tables []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tables))
	assert.Equal(t, []string{"items", "users"}, tables)
}

func TestHandleCompareTable(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/compare/items?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body TableResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.TotalEntries)
	assert.False(t, body.Truncated)
	require.Len(t, body.Result.Entries, 2)
	assert.Equal(t, diff.Different, body.Result.Entries[0].Change)
	assert.Equal(t, diff.OnlyInSource, body.Result.Entries[1].Change)
	assert.Equal(t, []string{"id"}, body.Result.KeyColumns)
}

func TestHandleCompareTable_DefaultLimitTruncates(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/compare/items", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body TableResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.TotalEntries)
	assert.True(t, body.Truncated)
	assert.Len(t, body.Result.Entries, 1)
}

func TestHandleCompareTable_NotFound(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/compare/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleCompareTables(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/compare", strings.NewReader(`{"tables":["users","items","audit"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body CompareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Summaries, 2)
	assert.Equal(t, "items", body.Summaries[0].Table)
	assert.Equal(t, 2, body.Summaries[0].Total)
	assert.Equal(t, "users", body.Summaries[1].Table)
	assert.False(t, body.Summaries[1].HasDifferences())

	require.Len(t, body.Errors, 1)
	assert.Equal(t, "audit", body.Errors[0].Table)
	assert.False(t, body.Cancelled)
}

func TestHandleCompareTables_AllTables(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/compare", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body CompareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Summaries, 2)
	assert.Empty(t, body.Errors)
}

func TestHandleCompareTables_BadBody(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/compare", strings.NewReader(`{"tables":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestFeature_DisabledWithoutEndpoints(t *testing.T) {
	feature := NewFeature(compare.New(nil, nil, nil, nil), compare.Config{}, server.Config{}, nil)
	assert.Equal(t, "compare", feature.Name())
	assert.False(t, feature.IsEnabled())
}

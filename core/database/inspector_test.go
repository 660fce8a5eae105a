package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (name TEXT, id INTEGER NOT NULL, region TEXT NOT NULL, description VARCHAR(64), PRIMARY KEY (region, id))").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(context.Background(), db, "test_items")
	require.NoError(t, err)
	require.Len(t, columns, 4)

	assert.Equal(t, ColumnInfo{Name: "name", Type: "text", Nullable: true}, columns[0])
	assert.Equal(t, "varchar(64)", columns[3].Type)
	assert.False(t, columns[1].Nullable)
	assert.Equal(t, []string{"region", "id"}, PrimaryKey(columns))

	// pragma_table_info yields nothing for an unknown table
	cols, err := GetTableColumns(context.Background(), db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "INT(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("sku", "VARCHAR(32)", "NO", "PRI", nil, "").
		AddRow("price", "DECIMAL(10,2)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `items`").WillReturnRows(rows)

	columns, err := GetTableColumns(context.Background(), db, "items")
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, "int(11)", columns[0].Type)
	assert.True(t, columns[2].Nullable)
	assert.Equal(t, []string{"id", "sku"}, PrimaryKey(columns))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrimaryKey_None(t *testing.T) {
	assert.Empty(t, PrimaryKey([]ColumnInfo{{Name: "a"}, {Name: "b"}}))
}

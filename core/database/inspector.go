package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name string
	// Type is the lower-cased declared type, e.g. "varchar(64)".
	Type     string
	Nullable bool
	// KeyPosition is the 1-based position in the primary key, 0 outside of it.
	KeyPosition int
}

// GetTableColumns retrieves the column definitions of a table in declaration order.
func GetTableColumns(ctx context.Context, db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if db.Dialector.Name() == DriverSQLite {
		// SQLite exposes PRAGMA table_info as a table-valued function
		type sqliteColumn struct {
			Name    string
			Type    string
			Notnull int
			Pk      int
		}
		var rows []sqliteColumn
		err := db.WithContext(ctx).
			Raw(`SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`, tableName).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}

		columns := make([]ColumnInfo, 0, len(rows))
		for _, col := range rows {
			columns = append(columns, ColumnInfo{
				Name:        col.Name,
				Type:        strings.ToLower(col.Type),
				Nullable:    col.Notnull == 0,
				KeyPosition: col.Pk,
			})
		}
		return columns, nil
	}

	// MySQL: SHOW COLUMNS keeps the exact declared type string
	type mysqlColumn struct {
		Field string
		Type  string
		Null  string
		Key   string
	}
	var rows []mysqlColumn
	quoted := "`" + strings.ReplaceAll(tableName, "`", "``") + "`"
	if err := db.WithContext(ctx).Raw("SHOW COLUMNS FROM " + quoted).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(rows))
	position := 0
	for _, col := range rows {
		info := ColumnInfo{
			Name:     col.Field,
			Type:     strings.ToLower(col.Type),
			Nullable: strings.EqualFold(col.Null, "YES"),
		}
		if strings.EqualFold(col.Key, "PRI") {
			position++
			info.KeyPosition = position
		}
		columns = append(columns, info)
	}
	return columns, nil
}

// PrimaryKey returns the primary key column names in key order.
func PrimaryKey(columns []ColumnInfo) []string {
	var key []ColumnInfo
	for _, col := range columns {
		if col.KeyPosition > 0 {
			key = append(key, col)
		}
	}
	sort.SliceStable(key, func(i, j int) bool {
		return key[i].KeyPosition < key[j].KeyPosition
	})

	names := make([]string, len(key))
	for i, col := range key {
		names[i] = col.Name
	}
	return names
}

package sqlsource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tablediff/core/dataset"
	"tablediff/core/diff"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSyntheticKey is returned when changes are keyed on a column the table lacks.
var ErrSyntheticKey = errors.New("changes are keyed on a synthetic column")

// ApplyRowChanges makes table match the source side of result: source-only rows are
// inserted, target-only rows deleted and differing rows updated. Only columns present in
// both the result's source schema and the table are written.
func (p *Provider) ApplyRowChanges(ctx context.Context, table string, result *diff.TableResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", diff.ErrInvalidArgument)
	}
	own, _, err := p.schema(ctx, table)
	if err != nil {
		return err
	}
	for _, key := range result.KeyColumns {
		if dataset.IndexOf(own, key) < 0 || dataset.IndexOf(result.SourceColumns, key) < 0 {
			return fmt.Errorf("%w: %s", ErrSyntheticKey, key)
		}
	}

	shared := sharedColumns(result.SourceColumns, own)
	var inserted, deleted, updated int

	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range result.Entries {
			switch e.Change {
			case diff.OnlyInSource:
				if err := insertRow(tx, table, shared, e.SourceRow); err != nil {
					return err
				}
				inserted++
			case diff.OnlyInTarget:
				where := keyWhere(result.KeyColumns, result.TargetColumns, e.TargetRow)
				if err := tx.Exec("DELETE FROM ? WHERE ?", clause.Table{Name: table}, where).Error; err != nil {
					return fmt.Errorf("failed to delete %s: %w", e.Key, err)
				}
				deleted++
			case diff.Different:
				sql, vars := updateStatement(table, shared, e.SourceRow, keyWhere(result.KeyColumns, result.TargetColumns, e.TargetRow))
				if err := tx.Exec(sql, vars...).Error; err != nil {
					return fmt.Errorf("failed to update %s: %w", e.Key, err)
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply changes to %s: %w", table, err)
	}

	p.logger.Info("Applied row changes",
		zap.String("table", table),
		zap.Int("inserted", inserted),
		zap.Int("deleted", deleted),
		zap.Int("updated", updated))
	return nil
}

// ReplaceTable deletes every row of table and inserts the rows of ds.
func (p *Provider) ReplaceTable(ctx context.Context, table string, ds *dataset.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: dataset is nil", diff.ErrInvalidArgument)
	}
	own, _, err := p.schema(ctx, table)
	if err != nil {
		return err
	}
	shared := sharedColumns(ds.Columns(), own)

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM ?", clause.Table{Name: table}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		for i := 0; i < ds.Len(); i++ {
			if err := insertRow(tx, table, shared, ds.Row(i)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DropTable drops table when it exists.
func (p *Provider) DropTable(ctx context.Context, table string) error {
	if err := p.db.WithContext(ctx).Exec("DROP TABLE IF EXISTS ?", clause.Table{Name: table}).Error; err != nil {
		return fmt.Errorf("failed to drop %s: %w", table, err)
	}
	return nil
}

type sharedColumn struct {
	name   string
	source int
}

// sharedColumns pairs the columns of the incoming schema that the table also has.
func sharedColumns(incoming, own []dataset.Column) []sharedColumn {
	var out []sharedColumn
	for i, col := range incoming {
		if pos := dataset.IndexOf(own, col.Name); pos >= 0 {
			out = append(out, sharedColumn{name: own[pos].Name, source: i})
		}
	}
	return out
}

func insertRow(tx *gorm.DB, table string, columns []sharedColumn, row []any) error {
	names := make([]clause.Column, len(columns))
	values := make([]any, len(columns))
	for i, col := range columns {
		names[i] = clause.Column{Name: col.name}
		values[i] = row[col.source]
	}
	if err := tx.Exec("INSERT INTO ? ? VALUES ?", clause.Table{Name: table}, names, values).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

// updateStatement builds UPDATE table SET col = ?, ... WHERE where.
func updateStatement(table string, columns []sharedColumn, row []any, where clause.Expression) (string, []any) {
	vars := make([]any, 0, len(columns)+2)
	vars = append(vars, clause.Table{Name: table})
	for _, col := range columns {
		vars = append(vars, clause.Expr{SQL: "? = ?", Vars: []any{clause.Column{Name: col.name}, row[col.source]}})
	}
	vars = append(vars, where)

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	return "UPDATE ? SET " + placeholders + " WHERE ?", vars
}

// keyWhere matches the key values of row. NULL components match with IS NULL.
func keyWhere(keyColumns []string, columns []dataset.Column, row []any) clause.Expression {
	exprs := make([]clause.Expression, len(keyColumns))
	for i, name := range keyColumns {
		var v any
		if pos := dataset.IndexOf(columns, name); pos >= 0 && pos < len(row) {
			v = row[pos]
		}
		exprs[i] = clause.Eq{Column: clause.Column{Name: name}, Value: v}
	}
	return clause.And(exprs...)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

// insertRow inserts a db-tagged write model.
func insertRow(ctx context.Context, db sqlx.ExecerContext, table string, model any) error {
	insert, err := qb.InsertModel(table, model)
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return writeError("insert "+table, err)
	}
	return nil
}

// updateRow sets every column of model except the key column.
func updateRow(ctx context.Context, db sqlx.ExecerContext, table, keyColumn string, model any) (bool, error) {
	cols, vals, err := qb.ColumnsAndValues(model)
	if err != nil {
		return false, fmt.Errorf("build update %s query: %w", table, err)
	}

	var keyValue any
	update := qb.Update(table)
	for i, col := range cols {
		if col == keyColumn {
			keyValue = vals[i]
			continue
		}
		update = update.Set(col, vals[i])
	}
	if keyValue == nil {
		return false, fmt.Errorf("build update %s query: key column %s missing", table, keyColumn)
	}

	query, args, err := update.Where(qb.Eq(keyColumn, keyValue)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update %s query: %w", table, err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, writeError("update "+table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update %s rows affected: %w", table, err)
	}
	return affected > 0, nil
}

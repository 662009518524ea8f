package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

// MatchDataStore writes normalized match rows, one transaction per payload.
type MatchDataStore struct {
	db *sqlx.DB
}

func NewMatchDataStore(db *sqlx.DB) *MatchDataStore {
	return &MatchDataStore{db: db}
}

func (s *MatchDataStore) WithinTx(ctx context.Context, fn func(ctx context.Context, w matchdata.Writer) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx write match data: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, txWriter{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write match data tx: %w", err)
	}
	return nil
}

type txWriter struct {
	tx *sqlx.Tx
}

func (w txWriter) Upsert(ctx context.Context, row matchdata.Row) error {
	query, args, err := upsertSQL(row)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", row.Table, err)
	}
	if _, err := w.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s key=%s: %w", row.Table, row.Key(), err)
	}
	return nil
}

func upsertSQL(row matchdata.Row) (string, []any, error) {
	insert := qb.InsertInto(row.Table).Columns(row.Columns...).Values(row.Values...)
	if row.InsertOnly {
		insert = insert.OnConflictDoNothing(row.Conflict...)
	} else {
		insert = insert.OnConflictDoUpdate(row.Conflict...)
		if row.TouchUpdatedAt {
			insert = insert.SetOnConflict("updated_at = NOW()")
		}
	}
	return insert.ToSQL()
}

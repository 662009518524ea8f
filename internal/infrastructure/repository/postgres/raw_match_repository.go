package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/rawmatch"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type RawMatchRepository struct {
	db *sqlx.DB
}

func NewRawMatchRepository(db *sqlx.DB) *RawMatchRepository {
	return &RawMatchRepository{db: db}
}

type rawMatchTableModel struct {
	MatchID   string    `db:"match_id"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type rawMatchInsertModel struct {
	MatchID string `db:"match_id"`
	Payload string `db:"payload"`
}

func (r *RawMatchRepository) UpsertMany(ctx context.Context, items []rawmatch.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insert, err := qb.InsertModel("matches", rawMatchInsertModel{MatchID: item.ID, Payload: string(item.Payload)})
		if err != nil {
			return fmt.Errorf("build upsert raw match query: %w", err)
		}
		query, args, err := insert.
			OnConflictDoUpdate("match_id").
			SetOnConflict("updated_at = NOW()").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert raw match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert raw match id=%s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw matches tx: %w", err)
	}

	return nil
}

func (r *RawMatchRepository) GetByIDs(ctx context.Context, ids []string) ([]rawmatch.Match, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("match_id", "payload", "created_at", "updated_at").
		From("matches").
		Where(qb.InStrings("match_id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select raw matches query: %w", err)
	}

	var rows []rawMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select raw matches: %w", err)
	}

	out := make([]rawmatch.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, rawmatch.Match{
			ID:        row.MatchID,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *RawMatchRepository) ListIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	builder := qb.Select("match_id").From("matches")
	if afterID != "" {
		builder = builder.Where(qb.Expr("match_id > ?", afterID))
	}
	query, args, err := builder.OrderBy("match_id").Limit(limitOrDefault(limit, 50)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list raw match ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list raw match ids: %w", err)
	}
	return ids, nil
}

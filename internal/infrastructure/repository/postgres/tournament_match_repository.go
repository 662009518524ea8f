package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type TournamentMatchRepository struct {
	db *sqlx.DB
}

func NewTournamentMatchRepository(db *sqlx.DB) *TournamentMatchRepository {
	return &TournamentMatchRepository{db: db}
}

func (r *TournamentMatchRepository) LinkMatches(ctx context.Context, tournamentID string, matchIDs []string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx link tournament matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	linked, err := linkMatches(ctx, tx, tournamentID, matchIDs)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit link tournament matches tx: %w", err)
	}
	return linked, nil
}

func (r *TournamentMatchRepository) ReplaceMatches(ctx context.Context, tournamentID string, matchIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace tournament matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := deleteByKey(ctx, tx, "tournament_matches", qb.Eq("tournament_id", tournamentID)); err != nil {
		return err
	}
	if _, err := linkMatches(ctx, tx, tournamentID, matchIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tournament matches tx: %w", err)
	}
	return nil
}

// linkMatches inserts one statement per id so link_seq follows the caller's order.
func linkMatches(ctx context.Context, tx *sqlx.Tx, tournamentID string, matchIDs []string) (int, error) {
	linked := 0
	for _, matchID := range matchIDs {
		if matchID == "" {
			continue
		}
		query, args, err := qb.InsertInto("tournament_matches").
			Columns("tournament_id", "match_id").
			Values(tournamentID, matchID).
			OnConflictDoNothing("tournament_id", "match_id").
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build link tournament match query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("link tournament=%s match=%s: %w", tournamentID, matchID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			linked += int(n)
		}
	}
	return linked, nil
}

func (r *TournamentMatchRepository) ListMatchIDs(ctx context.Context, tournamentID string) ([]string, error) {
	query, args, err := qb.Select("match_id").
		From("tournament_matches").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("created_at ASC", "link_seq ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament matches query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list tournament matches: %w", err)
	}
	return ids, nil
}

func (r *TournamentMatchRepository) TournamentIDForMatch(ctx context.Context, matchID string) (string, bool, error) {
	query, args, err := qb.Select("tournament_id").
		From("tournament_matches").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("created_at ASC", "link_seq ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build tournament for match query: %w", err)
	}

	var id string
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get tournament for match: %w", err)
	}
	return id, true, nil
}

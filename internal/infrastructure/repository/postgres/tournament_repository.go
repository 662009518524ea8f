package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	conditions := make([]qb.Condition, 0, 6)
	if filter.EventType != "" {
		conditions = append(conditions, qb.Eq("event_type", string(filter.EventType)))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}
	if filter.Registration != "" {
		conditions = append(conditions, qb.Eq("registration_status", string(filter.Registration)))
	}
	if filter.Mode != "" {
		conditions = append(conditions, qb.Eq("mode", string(filter.Mode)))
	}
	if filter.Featured != nil {
		conditions = append(conditions, qb.Eq("featured", *filter.Featured))
	}
	if filter.Search != "" {
		conditions = append(conditions, qb.ILikeAny(filter.Search, "name", "COALESCE(description, '')", "COALESCE(region, '')"))
	}

	query, args, err := qb.Select(tournamentColumns...).
		From("tournaments").
		Where(conditions...).
		OrderBy(filter.Sort.OrderBy(), "tournament_id").
		Limit(limitOrDefault(filter.Limit, 100)).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns...).
		From("tournaments").
		Where(qb.Eq("tournament_id", id)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	insert, err := qb.InsertModel("tournaments", newTournamentWriteModel(item))
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError("insert tournament", err)
	}
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) (bool, error) {
	cols, vals, err := qb.ColumnsAndValues(newTournamentWriteModel(item))
	if err != nil {
		return false, fmt.Errorf("build update tournament query: %w", err)
	}

	update := qb.Update("tournaments")
	for i, col := range cols {
		if col == "tournament_id" {
			continue
		}
		update = update.Set(col, vals[i])
	}
	query, args, err := update.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("tournament_id", item.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update tournament query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, writeError("update tournament", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update tournament rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByKey(ctx, r.db, "tournaments", qb.Eq("tournament_id", id))
}

func deleteByKey(ctx context.Context, db sqlx.ExecerContext, table string, conditions ...qb.Condition) (bool, error) {
	query, args, err := qb.DeleteFrom(table).Where(conditions...).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete %s query: %w", table, err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete from %s rows affected: %w", table, err)
	}
	return affected > 0, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/winner"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type WinnerRepository struct {
	db *sqlx.DB
}

func NewWinnerRepository(db *sqlx.DB) *WinnerRepository {
	return &WinnerRepository{db: db}
}

func (r *WinnerRepository) List(ctx context.Context, tournamentID string) ([]winner.Winner, error) {
	builder := qb.Select("*").From("winners")
	if tournamentID != "" {
		builder = builder.Where(qb.Eq("tournament_id", tournamentID))
	}
	query, args, err := builder.OrderBy("tournament_id", "place").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select winners query: %w", err)
	}

	var rows []winnerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select winners: %w", err)
	}

	out := make([]winner.Winner, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *WinnerRepository) GetByID(ctx context.Context, id string) (winner.Winner, bool, error) {
	query, args, err := qb.Select("*").From("winners").Where(qb.Eq("winner_id", id)).ToSQL()
	if err != nil {
		return winner.Winner{}, false, fmt.Errorf("build get winner query: %w", err)
	}

	var row winnerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return winner.Winner{}, false, nil
		}
		return winner.Winner{}, false, fmt.Errorf("get winner: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *WinnerRepository) Create(ctx context.Context, item winner.Winner) error {
	return insertRow(ctx, r.db, "winners", newWinnerWriteModel(item))
}

func (r *WinnerRepository) Update(ctx context.Context, item winner.Winner) (bool, error) {
	return updateRow(ctx, r.db, "winners", "winner_id", newWinnerWriteModel(item))
}

func (r *WinnerRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByKey(ctx, r.db, "winners", qb.Eq("winner_id", id))
}

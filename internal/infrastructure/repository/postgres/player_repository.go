package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/player"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	conditions := make([]qb.Condition, 0, 3)
	if filter.GameID != "" {
		conditions = append(conditions, qb.Eq("game_id", filter.GameID))
	}
	if filter.TeamID != "" {
		conditions = append(conditions, qb.Eq("team_id", filter.TeamID))
	}
	if filter.Search != "" {
		conditions = append(conditions, qb.ILikeAny(filter.Search, "player_name", "player_id"))
	}

	query, args, err := qb.Select("*").From("players").
		Where(conditions...).
		OrderBy("player_name", "player_id").
		Limit(limitOrDefault(filter.Limit, 200)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, gameID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("game_id", gameID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	insert, err := qb.InsertModel("players", playerWriteModel{
		GameID:     item.GameID,
		PlayerID:   item.ID,
		PlayerName: item.Name,
		TeamID:     nullableString(item.TeamID),
		Country:    nullableString(item.Country),
		AvatarURL:  nullableString(item.AvatarURL),
	})
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	query, args, err := insert.
		OnConflictDoUpdate("game_id", "player_id").
		SetOnConflict("updated_at = NOW()").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError("upsert player", err)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, gameID, playerID string) (bool, error) {
	return deleteByKey(ctx, r.db, "players", qb.Eq("game_id", gameID), qb.Eq("player_id", playerID))
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/playerstats"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

const playerStatsFrom = `match_player_stats mps
	JOIN match_information mi ON mi.match_id = mps.match_id
	LEFT JOIN match_rosters mr ON mr.match_id = mps.match_id AND mr.roster_id = mps.roster_id
	LEFT JOIN players p ON p.game_id = mps.game_id AND p.player_id = mps.player_id`

type playerStatsRow struct {
	GameID          string          `db:"game_id"`
	PlayerID        string          `db:"player_id"`
	PlayerName      sql.NullString  `db:"player_name"`
	Matches         int             `db:"matches"`
	Kills           int             `db:"kills"`
	Assists         int             `db:"assists"`
	DamageDealt     float64         `db:"damage_dealt"`
	HeadshotKills   int             `db:"headshot_kills"`
	Wins            int             `db:"wins"`
	AvgTimeSurvived sql.NullFloat64 `db:"avg_time_survived"`
	BestRank        sql.NullInt64   `db:"best_rank"`
}

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) List(ctx context.Context, filter playerstats.Filter) ([]playerstats.PlayerStats, error) {
	conditions := make([]qb.Condition, 0, 3)
	if filter.GameID != "" {
		conditions = append(conditions, qb.Eq("mps.game_id", filter.GameID))
	}
	if filter.TournamentID != "" {
		conditions = append(conditions, qb.Expr(
			"mps.match_id IN (SELECT match_id FROM tournament_matches WHERE tournament_id = ?)",
			filter.TournamentID,
		))
	}
	if filter.Search != "" {
		conditions = append(conditions, qb.ILikeAny(filter.Search, "mps.player_id", "COALESCE(p.player_name, '')"))
	}

	query, args, err := qb.Select(
		"mps.game_id",
		"mps.player_id",
		"MAX(p.player_name) AS player_name",
		"COUNT(DISTINCT mps.match_id) AS matches",
		"COALESCE(SUM(mps.kills), 0) AS kills",
		"COALESCE(SUM(mps.assists), 0) AS assists",
		"COALESCE(SUM(mps.damage_dealt), 0) AS damage_dealt",
		"COALESCE(SUM(mps.headshot_kills), 0) AS headshot_kills",
		"COUNT(DISTINCT mps.match_id) FILTER (WHERE mr.won IS TRUE) AS wins",
		"AVG(mps.time_survived) AS avg_time_survived",
		"MIN(COALESCE(mr.rank, mps.win_place)) AS best_rank",
	).
		From(playerStatsFrom).
		Where(conditions...).
		GroupBy("mps.game_id", "mps.player_id").
		OrderBy("kills DESC", "damage_dealt DESC", "mps.player_id").
		Limit(limitOrDefault(filter.Limit, 100)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player stats query: %w", err)
	}

	var rows []playerStatsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player stats: %w", err)
	}

	out := make([]playerstats.PlayerStats, 0, len(rows))
	for _, row := range rows {
		name := nullStringValue(row.PlayerName)
		if name == "" {
			name = row.PlayerID
		}
		out = append(out, playerstats.PlayerStats{
			GameID:          row.GameID,
			PlayerID:        row.PlayerID,
			PlayerName:      name,
			Matches:         row.Matches,
			Kills:           row.Kills,
			Assists:         row.Assists,
			DamageDealt:     row.DamageDealt,
			HeadshotKills:   row.HeadshotKills,
			Wins:            row.Wins,
			AvgTimeSurvived: row.AvgTimeSurvived.Float64,
			BestRank:        nullIntPtr(row.BestRank),
		})
	}
	return out, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/teamstats"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

// Roster kills are summed per (match, roster) before joining so team totals are not multiplied.
const teamStatsFrom = `match_rosters mr
	JOIN match_information mi ON mi.match_id = mr.match_id
	LEFT JOIN teams t ON t.game_id = mi.game_id AND t.team_id = mr.team_id
	LEFT JOIN (
		SELECT match_id, roster_id, COALESCE(SUM(kills), 0) AS kills
		FROM match_player_stats
		GROUP BY match_id, roster_id
	) rk ON rk.match_id = mr.match_id AND rk.roster_id = mr.roster_id`

type teamStatsRow struct {
	GameID   string          `db:"game_id"`
	TeamID   string          `db:"team_id"`
	TeamName sql.NullString  `db:"team_name"`
	Matches  int             `db:"matches"`
	Wins     int             `db:"wins"`
	Kills    int             `db:"kills"`
	AvgRank  sql.NullFloat64 `db:"avg_rank"`
}

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) List(ctx context.Context, filter teamstats.Filter) ([]teamstats.TeamStats, error) {
	conditions := []qb.Condition{qb.Expr("mr.team_id IS NOT NULL")}
	if filter.GameID != "" {
		conditions = append(conditions, qb.Eq("mi.game_id", filter.GameID))
	}
	if filter.TournamentID != "" {
		conditions = append(conditions, qb.Expr(
			"mr.roster_id IN (SELECT roster_id FROM tournament_rosters WHERE tournament_id = ?)",
			filter.TournamentID,
		))
	}

	query, args, err := qb.Select(
		"mi.game_id",
		"mr.team_id",
		"MAX(t.team_name) AS team_name",
		"COUNT(DISTINCT mr.match_id) AS matches",
		"COUNT(*) FILTER (WHERE mr.won IS TRUE) AS wins",
		"COALESCE(SUM(rk.kills), 0) AS kills",
		"AVG(mr.rank) AS avg_rank",
	).
		From(teamStatsFrom).
		Where(conditions...).
		GroupBy("mi.game_id", "mr.team_id").
		OrderBy("wins DESC", "kills DESC", "mr.team_id").
		Limit(limitOrDefault(filter.Limit, 100)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team stats query: %w", err)
	}

	var rows []teamStatsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team stats: %w", err)
	}

	out := make([]teamstats.TeamStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamstats.TeamStats{
			GameID:   row.GameID,
			TeamID:   row.TeamID,
			TeamName: nullStringValue(row.TeamName),
			Matches:  row.Matches,
			Wins:     row.Wins,
			Kills:    row.Kills,
			AvgRank:  row.AvgRank.Float64,
		})
	}
	return out, nil
}

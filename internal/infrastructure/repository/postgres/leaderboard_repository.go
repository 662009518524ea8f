package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/leaderboard"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

const rosterResultsFrom = `tournament_matches tm
	JOIN match_rosters mr ON mr.match_id = tm.match_id
	JOIN match_information mi ON mi.match_id = mr.match_id
	LEFT JOIN teams t ON t.game_id = mi.game_id AND t.team_id = mr.team_id
	LEFT JOIN (
		SELECT match_id, roster_id, COALESCE(SUM(kills), 0) AS kills
		FROM match_player_stats
		GROUP BY match_id, roster_id
	) rk ON rk.match_id = mr.match_id AND rk.roster_id = mr.roster_id`

type rosterResultRow struct {
	MatchID  string         `db:"match_id"`
	RosterID string         `db:"roster_id"`
	TeamID   sql.NullString `db:"team_id"`
	TeamName sql.NullString `db:"team_name"`
	Rank     sql.NullInt64  `db:"rank"`
	Won      sql.NullBool   `db:"won"`
	Kills    int            `db:"kills"`
}

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) RosterResults(ctx context.Context, tournamentID string) ([]leaderboard.RosterResult, error) {
	query, args, err := qb.Select(
		"mr.match_id",
		"mr.roster_id",
		"mr.team_id",
		"t.team_name",
		"mr.rank",
		"mr.won",
		"COALESCE(rk.kills, 0) AS kills",
	).
		From(rosterResultsFrom).
		Where(qb.Eq("tm.tournament_id", tournamentID)).
		OrderBy("tm.created_at", "tm.link_seq", "mr.rank ASC NULLS LAST", "mr.roster_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster results query: %w", err)
	}

	var rows []rosterResultRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster results: %w", err)
	}

	out := make([]leaderboard.RosterResult, 0, len(rows))
	for _, row := range rows {
		result := leaderboard.RosterResult{
			MatchID:  row.MatchID,
			RosterID: row.RosterID,
			TeamID:   nullStringValue(row.TeamID),
			TeamName: nullStringValue(row.TeamName),
			Rank:     nullIntPtr(row.Rank),
			Kills:    row.Kills,
		}
		if row.Won.Valid {
			won := row.Won.Bool
			result.Won = &won
		}
		out = append(out, result)
	}
	return out, nil
}

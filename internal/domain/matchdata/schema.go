package matchdata

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"
)

// SchemaVersion is the migration version whose tables StaticSchema describes.
// Bump it together with db/migrations.
const SchemaVersion uint = 3

// ColumnSource supplies the column set of a destination table.
type ColumnSource interface {
	Columns(ctx context.Context, table string) (map[string]struct{}, error)
}

// StaticSchema is the compiled column contract for SchemaVersion.
type StaticSchema struct{}

var staticColumns = map[string][]string{
	TableGames: {"game_id", "name", "created_at"},
	TableMatchInformation: {
		"match_id", "game_id", "tournament_id", "created_at_api", "duration", "game_mode", "map_name",
		"match_type", "shard_id", "title_id", "season_state", "is_custom_match", "tags", "stats",
		"created_at", "updated_at",
	},
	TableMatchAssets: {"asset_id", "match_id", "game_id", "url", "name", "description", "created_at_api", "created_at"},
	TableTeams: {
		"game_id", "team_id", "team_name", "short_name", "logo_url", "region", "created_at", "updated_at",
	},
	TableTournamentRoster: {"roster_id", "tournament_id", "game_id", "team_id", "created_at"},
	TableMatchRosters:     {"match_id", "roster_id", "team_id", "rank", "won", "created_at"},
	TablePlayers: {
		"game_id", "player_id", "player_name", "team_id", "country", "avatar_url", "created_at", "updated_at",
	},
	TableMatchPlayerStats: {
		"match_id", "player_id", "participant_id", "game_id", "roster_id", "dbnos", "assists", "boosts",
		"damage_dealt", "death_type", "headshot_kills", "heals", "kill_place", "kill_streaks", "kills",
		"longest_kill", "revives", "ride_distance", "road_kills", "swim_distance", "team_kills",
		"time_survived", "walk_distance", "weapons_acquired", "win_place", "raw_stats", "created_at",
	},
	TableRosterPlayers: {"roster_id", "player_id", "game_id", "created_at"},
}

func (StaticSchema) Version() uint {
	return SchemaVersion
}

func (StaticSchema) Columns(_ context.Context, table string) (map[string]struct{}, error) {
	cols, ok := staticColumns[table]
	if !ok {
		return nil, crerr.Wrapf(ErrSchemaMismatch, "unknown table %s", table)
	}
	out := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		out[c] = struct{}{}
	}
	return out, nil
}

// Tables lists every table the contract knows about, sorted.
func (StaticSchema) Tables() []string {
	out := make([]string, 0, len(staticColumns))
	for t := range staticColumns {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterRow drops the columns the table lacks and returns their names.
// A missing key column cannot be tolerated and yields an error marked ErrSchemaMismatch.
func FilterRow(row Row, columns map[string]struct{}) (Row, []string, error) {
	for _, key := range row.Conflict {
		if _, ok := columns[key]; !ok {
			return Row{}, nil, crerr.Wrapf(ErrSchemaMismatch, "table %s has no key column %s", row.Table, key)
		}
	}

	_, hasUpdatedAt := columns["updated_at"]
	out := Row{
		Table:          row.Table,
		Conflict:       row.Conflict,
		InsertOnly:     row.InsertOnly,
		TouchUpdatedAt: row.TouchUpdatedAt && hasUpdatedAt,
	}
	var dropped []string
	for i, col := range row.Columns {
		if _, ok := columns[col]; !ok {
			dropped = append(dropped, col)
			continue
		}
		out.Columns = append(out.Columns, col)
		out.Values = append(out.Values, row.Values[i])
	}
	return out, dropped, nil
}

package matchdata

import (
	"fmt"
	"strings"
)

// Destination tables of the normalized match model.
const (
	TableGames            = "games"
	TableMatchInformation = "match_information"
	TableMatchAssets      = "match_assets"
	TableTeams            = "teams"
	TableTournamentRoster = "tournament_rosters"
	TableMatchRosters     = "match_rosters"
	TablePlayers          = "players"
	TableMatchPlayerStats = "match_player_stats"
	TableRosterPlayers    = "roster_players"
)

// ConflictKeys lists the primary or composite key of every destination table.
var ConflictKeys = map[string][]string{
	TableGames:            {"game_id"},
	TableMatchInformation: {"match_id"},
	TableMatchAssets:      {"asset_id"},
	TableTeams:            {"game_id", "team_id"},
	TableTournamentRoster: {"roster_id"},
	TableMatchRosters:     {"match_id", "roster_id"},
	TablePlayers:          {"game_id", "player_id"},
	TableMatchPlayerStats: {"match_id", "player_id"},
	TableRosterPlayers:    {"roster_id", "player_id"},
}

// timestampedTables carry an updated_at column that is bumped when an upsert updates a row.
var timestampedTables = map[string]bool{
	TableMatchInformation: true,
	TableTeams:            true,
	TablePlayers:          true,
}

// Row is one insert-or-update against a destination table.
// A nil value is written as SQL NULL.
type Row struct {
	Table    string
	Conflict []string
	Columns  []string
	Values   []any
	// InsertOnly keeps an existing row untouched (ON CONFLICT DO NOTHING).
	InsertOnly bool
	// TouchUpdatedAt sets updated_at = NOW() when the row already exists.
	TouchUpdatedAt bool
}

func NewRow(table string) Row {
	return Row{Table: table, Conflict: ConflictKeys[table], TouchUpdatedAt: timestampedTables[table]}
}

// Set appends a column or overwrites it when already present.
func (r *Row) Set(column string, value any) {
	for i, c := range r.Columns {
		if c == column {
			r.Values[i] = value
			return
		}
	}
	r.Columns = append(r.Columns, column)
	r.Values = append(r.Values, value)
}

func (r Row) Value(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Key identifies the destination record, e.g. "teams|pubg|7".
func (r Row) Key() string {
	parts := make([]string, 0, len(r.Conflict)+1)
	parts = append(parts, r.Table)
	for _, k := range r.Conflict {
		v, _ := r.Value(k)
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, "|")
}

// Map returns the row as column -> value.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		out[c] = r.Values[i]
	}
	return out
}

// Rows is the ordered output of one flattened payload. Parents come before children.
type Rows []Row

func (rs Rows) ByTable(table string) []Row {
	out := make([]Row, 0)
	for _, r := range rs {
		if r.Table == table {
			out = append(out, r)
		}
	}
	return out
}

func (rs Rows) Count(table string) int {
	n := 0
	for _, r := range rs {
		if r.Table == table {
			n++
		}
	}
	return n
}

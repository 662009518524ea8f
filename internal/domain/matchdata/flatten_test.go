package matchdata

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_TwoRostersFourParticipants(t *testing.T) {
	t.Parallel()

	rows, err := Flatten(mustParse(t, buildPayload(t, "m-1", 2, 4)), "pubg", "")
	require.NoError(t, err)

	assert.Equal(t, 2, rows.Count(TableMatchRosters))
	assert.Equal(t, 8, rows.Count(TableMatchPlayerStats))
	assert.Equal(t, 8, rows.Count(TableRosterPlayers))
	assert.Equal(t, 8, rows.Count(TablePlayers))
	assert.Equal(t, 2, rows.Count(TableTeams))
	assert.Equal(t, 1, rows.Count(TableMatchInformation))
	assert.Equal(t, 1, rows.Count(TableMatchAssets))
	assert.Equal(t, 0, rows.Count(TableTournamentRoster))

	rosterIDs := map[any]struct{}{}
	for _, r := range rows.ByTable(TableMatchRosters) {
		id, _ := r.Value("roster_id")
		rosterIDs[id] = struct{}{}
	}
	for _, r := range rows.ByTable(TableMatchPlayerStats) {
		rosterID, _ := r.Value("roster_id")
		require.Contains(t, rosterIDs, rosterID)

		participantID, _ := r.Value("participant_id")
		// participants "p-1-n" belong to roster "r-1"
		assert.Equal(t, "r-"+participantID.(string)[2:3], rosterID)
	}
}

func TestFlatten_ParentRowsComeFirst(t *testing.T) {
	t.Parallel()

	rows, err := Flatten(mustParse(t, buildPayload(t, "m-1", 1, 1)), "pubg", "t-1")
	require.NoError(t, err)

	require.NotEmpty(t, rows)
	assert.Equal(t, TableGames, rows[0].Table)
	assert.True(t, rows[0].InsertOnly)
	assert.Equal(t, TableMatchInformation, rows[1].Table)

	seen := map[string]bool{}
	for _, r := range rows {
		switch r.Table {
		case TableMatchRosters:
			assert.True(t, seen[TableTeams], "team before match roster")
		case TableMatchPlayerStats:
			assert.True(t, seen[TablePlayers], "player before stats")
			assert.True(t, seen[TableMatchRosters], "roster before stats")
		}
		seen[r.Table] = true
	}
}

func TestFlatten_MissingMatchID(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		`{"data":{"type":"match","attributes":{}},"included":[]}`,
		`{"data":{"id":"   "}}`,
		`{}`,
	} {
		rows, err := Flatten(mustParse(t, []byte(raw)), "pubg", "")
		require.Error(t, err)
		assert.True(t, IsMalformed(err))
		assert.Empty(t, rows)
	}
}

func TestFlatten_MatchInformationFields(t *testing.T) {
	t.Parallel()

	rows, err := Flatten(mustParse(t, buildPayload(t, "m-9", 1, 1)), "", "t-7")
	require.NoError(t, err)

	info := rows.ByTable(TableMatchInformation)[0].Map()
	assert.Equal(t, "m-9", info["match_id"])
	assert.Equal(t, DefaultGameID, info["game_id"])
	assert.Equal(t, "t-7", info["tournament_id"])
	assert.Equal(t, int64(1834), info["duration"])
	assert.Equal(t, "Baltic_Main", info["map_name"])
	assert.Equal(t, false, info["is_custom_match"])
	assert.Nil(t, info["season_state"])
	assert.Nil(t, info["stats"])
	assert.JSONEq(t, `{"region":"sea"}`, info["tags"].(string))

	asset := rows.ByTable(TableMatchAssets)[0].Map()
	assert.Equal(t, "https://telemetry-cdn.pubg.com/m-9.json", asset["url"])
	assert.Nil(t, asset["description"])

	tr := rows.ByTable(TableTournamentRoster)
	require.Len(t, tr, 1)
	assert.Equal(t, "t-7", tr[0].Map()["tournament_id"])
	assert.Equal(t, "1", tr[0].Map()["team_id"])
}

func TestFlatten_RosterAndParticipantDetails(t *testing.T) {
	t.Parallel()

	raw := `{
	  "data": {"type": "match", "id": "m-2", "attributes": {"duration": 0}},
	  "included": [
	    {"type": "roster", "id": "r-a",
	     "attributes": {"won": "true", "stats": {"rank": 1, "teamId": "12"}},
	     "relationships": {"participants": {"data": [{"type": "participant", "id": "p-a"}]}}},
	    {"type": "roster", "id": "r-b",
	     "attributes": {"won": true, "stats": {"rank": 2}},
	     "relationships": {"participants": {"data": {"type": "participant", "id": "p-b"}}}},
	    {"type": "participant", "id": "p-a", "attributes": {"stats": {"kills": 0, "name": "alpha"}}},
	    {"type": "participant", "id": "p-b", "attributes": {"stats": {"playerId": "account.b"}}},
	    {"type": "participant", "id": "p-orphan", "attributes": {}},
	    {"type": "telemetry", "id": "ignored"}
	  ]
	}`

	rows, err := Flatten(mustParse(t, []byte(raw)), "PUBG", "")
	require.NoError(t, err)

	info := rows.ByTable(TableMatchInformation)[0].Map()
	assert.Equal(t, int64(0), info["duration"])
	assert.Nil(t, info["is_custom_match"])

	rosters := rows.ByTable(TableMatchRosters)
	require.Len(t, rosters, 2)
	assert.Equal(t, true, rosters[0].Map()["won"])
	assert.Equal(t, "12", rosters[0].Map()["team_id"])
	assert.Nil(t, rosters[1].Map()["won"], "boolean won is not a recognised value")
	assert.Nil(t, rosters[1].Map()["team_id"])

	teams := rows.ByTable(TableTeams)
	require.Len(t, teams, 1)
	assert.Equal(t, "Team 12", teams[0].Map()["team_name"])

	players := rows.ByTable(TablePlayers)
	require.Len(t, players, 3)
	assert.Equal(t, "p-a", players[0].Map()["player_id"])
	assert.Equal(t, "alpha", players[0].Map()["player_name"])
	assert.Equal(t, "account.b", players[1].Map()["player_id"])
	assert.Equal(t, "account.b", players[1].Map()["player_name"])
	assert.Equal(t, "p-orphan", players[2].Map()["player_name"])

	stats := rows.ByTable(TableMatchPlayerStats)
	require.Len(t, stats, 3)
	assert.Equal(t, int64(0), stats[0].Map()["kills"], "zero stays zero")
	assert.Nil(t, stats[0].Map()["assists"], "missing stays null")
	assert.Equal(t, "r-b", stats[1].Map()["roster_id"])
	assert.Nil(t, stats[2].Map()["roster_id"])
	assert.Nil(t, stats[2].Map()["raw_stats"])

	assert.Equal(t, 2, rows.Count(TableRosterPlayers), "orphan participant has no roster link")
	assert.Equal(t, "pubg", rows[0].Map()["game_id"])
	assert.Equal(t, "PUBG", rows[0].Map()["name"])
}

func TestFlatten_Idempotent(t *testing.T) {
	t.Parallel()

	raw := buildPayload(t, "m-3", 3, 2)
	first, err := Flatten(mustParse(t, raw), "pubg", "t-1")
	require.NoError(t, err)
	second, err := Flatten(mustParse(t, raw), "pubg", "t-1")
	require.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	assert.Equal(t, first, second)
}

func TestGameName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PUBG", GameName(""))
	assert.Equal(t, "PUBG", GameName(" PUBG "))
	assert.Equal(t, "Valorant", GameName("valorant"))
	assert.Equal(t, "École", GameName("école"))
	assert.True(t, utf8.ValidString(GameName("ñ-league")))
}

func TestSplitPayloads(t *testing.T) {
	t.Parallel()

	one, err := SplitPayloads([]byte(` {"data":{"id":"a"}} `))
	require.NoError(t, err)
	require.Len(t, one, 1)

	many, err := SplitPayloads([]byte(`[{"data":{"id":"a"}},{"data":{"id":"b"}}]`))
	require.NoError(t, err)
	require.Len(t, many, 2)
	id, err := MatchID(many[1])
	require.NoError(t, err)
	assert.Equal(t, "b", id)

	_, err = SplitPayloads([]byte("  "))
	assert.True(t, IsMalformed(err))
	_, err = SplitPayloads([]byte(`[{"data":`))
	assert.True(t, IsMalformed(err))
}

func TestMatchID_Missing(t *testing.T) {
	t.Parallel()

	_, err := MatchID([]byte(`{"data":{}}`))
	assert.True(t, IsMalformed(err))
	_, err = MatchID([]byte(`not json`))
	assert.True(t, IsMalformed(err))
}

func TestFilterRow(t *testing.T) {
	t.Parallel()

	cols, err := StaticSchema{}.Columns(context.Background(), TableTeams)
	require.NoError(t, err)

	row := NewRow(TableTeams)
	row.Set("game_id", "pubg")
	row.Set("team_id", "7")
	row.Set("team_name", "Team 7")
	row.Set("team_color", "red")

	filtered, dropped, err := FilterRow(row, cols)
	require.NoError(t, err)
	assert.Equal(t, []string{"team_color"}, dropped)
	assert.Equal(t, []string{"game_id", "team_id", "team_name"}, filtered.Columns)
	assert.Equal(t, []string{"game_id", "team_id"}, filtered.Conflict)
	assert.True(t, filtered.TouchUpdatedAt)

	delete(cols, "updated_at")
	filtered, _, err = FilterRow(row, cols)
	require.NoError(t, err)
	assert.False(t, filtered.TouchUpdatedAt)

	delete(cols, "team_id")
	_, _, err = FilterRow(row, cols)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestStaticSchema_CoversFlattenedColumns(t *testing.T) {
	t.Parallel()

	rows, err := Flatten(mustParse(t, buildPayload(t, "m-4", 2, 2)), "pubg", "t-1")
	require.NoError(t, err)

	schema := StaticSchema{}
	for _, row := range rows {
		cols, err := schema.Columns(context.Background(), row.Table)
		require.NoError(t, err)
		_, dropped, err := FilterRow(row, cols)
		require.NoError(t, err)
		assert.Empty(t, dropped, "table %s", row.Table)
	}

	_, err = schema.Columns(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Len(t, schema.Tables(), 9)
}

func TestRow_SetOverwritesAndKey(t *testing.T) {
	t.Parallel()

	row := NewRow(TablePlayers)
	row.Set("game_id", "pubg")
	row.Set("player_id", "p1")
	row.Set("player_name", "old")
	row.Set("player_name", "new")

	assert.Len(t, row.Columns, 3)
	v, ok := row.Value("player_name")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, "players|pubg|p1", row.Key())
}

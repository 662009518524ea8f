package matchdata

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
)

const DefaultGameID = "pubg"

// Flatten walks one match document and produces the rows of every destination table.
// tournamentID is empty when the match is not linked to a tournament.
func Flatten(doc Document, gameID, tournamentID string) (Rows, error) {
	matchID := strings.TrimSpace(doc.Data.ID)
	if matchID == "" {
		return nil, crerr.Wrap(ErrMalformedPayload, "match id is missing")
	}
	gameID = NormalizeGameID(gameID)
	tournamentID = strings.TrimSpace(tournamentID)

	var attrs MatchAttributes
	if err := decodeAttributes(doc.Data.Attributes, &attrs); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode attributes of match %s", matchID), ErrMalformedPayload)
	}

	var rosters, participants, assets []Resource
	for _, item := range doc.Included {
		switch item.Type {
		case TypeRoster:
			rosters = append(rosters, item)
		case TypeParticipant:
			participants = append(participants, item)
		case TypeAsset:
			assets = append(assets, item)
		}
	}

	// roster membership has to be known before participant rows are emitted
	participantRoster := make(map[string]string)
	for _, roster := range rosters {
		for _, pid := range roster.Relationships["participants"].IDs() {
			participantRoster[pid] = roster.ID
		}
	}

	out := make(Rows, 0, 2+len(assets)+3*len(rosters)+3*len(participants))
	out = append(out, gameRow(gameID), matchInformationRow(matchID, gameID, tournamentID, attrs))

	for _, asset := range assets {
		var a AssetAttributes
		if err := decodeAttributes(asset.Attributes, &a); err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "decode asset %s", asset.ID), ErrMalformedPayload)
		}
		row := NewRow(TableMatchAssets)
		row.Set("asset_id", asset.ID)
		row.Set("match_id", matchID)
		row.Set("game_id", gameID)
		row.Set("url", stringOrNil(a.URL))
		row.Set("name", stringOrNil(a.Name))
		row.Set("description", stringOrNil(a.Description))
		row.Set("created_at_api", stringOrNil(a.CreatedAt))
		out = append(out, row)
	}

	for _, roster := range rosters {
		var a RosterAttributes
		if err := decodeAttributes(roster.Attributes, &a); err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "decode roster %s", roster.ID), ErrMalformedPayload)
		}

		var teamID any
		if a.Stats.TeamID.Valid && a.Stats.TeamID.Value != "" {
			teamID = a.Stats.TeamID.Value
			team := NewRow(TableTeams)
			team.Set("game_id", gameID)
			team.Set("team_id", a.Stats.TeamID.Value)
			team.Set("team_name", "Team "+a.Stats.TeamID.Value)
			out = append(out, team)
		}

		if tournamentID != "" {
			tr := NewRow(TableTournamentRoster)
			tr.Set("roster_id", roster.ID)
			tr.Set("tournament_id", tournamentID)
			tr.Set("game_id", gameID)
			tr.Set("team_id", teamID)
			out = append(out, tr)
		}

		mr := NewRow(TableMatchRosters)
		mr.Set("match_id", matchID)
		mr.Set("roster_id", roster.ID)
		mr.Set("team_id", teamID)
		mr.Set("rank", intOrNil(a.Stats.Rank))
		mr.Set("won", parseWon(a.Won))
		out = append(out, mr)
	}

	for _, participant := range participants {
		var a struct {
			Stats ParticipantStats `json:"stats"`
		}
		if err := decodeAttributes(participant.Attributes, &a); err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "decode participant %s", participant.ID), ErrMalformedPayload)
		}
		stats := a.Stats

		playerID := firstNonEmpty(deref(stats.PlayerID), participant.ID)
		playerName := firstNonEmpty(deref(stats.Name), deref(stats.PlayerID), participant.ID)
		rosterID, hasRoster := participantRoster[participant.ID]

		player := NewRow(TablePlayers)
		player.Set("game_id", gameID)
		player.Set("player_id", playerID)
		player.Set("player_name", playerName)
		out = append(out, player)

		out = append(out, playerStatsRow(matchID, gameID, playerID, rosterID, participant, stats))

		if hasRoster {
			rp := NewRow(TableRosterPlayers)
			rp.Set("roster_id", rosterID)
			rp.Set("player_id", playerID)
			rp.Set("game_id", gameID)
			out = append(out, rp)
		}
	}

	return out, nil
}

// NormalizeGameID lowercases the id and falls back to DefaultGameID.
func NormalizeGameID(gameID string) string {
	gameID = strings.ToLower(strings.TrimSpace(gameID))
	if gameID == "" {
		return DefaultGameID
	}
	return gameID
}

// GameName is the display name stored on first sight of a game id.
func GameName(gameID string) string {
	gameID = NormalizeGameID(gameID)
	if gameID == DefaultGameID {
		return "PUBG"
	}
	first, size := utf8.DecodeRuneInString(gameID)
	return string(unicode.ToUpper(first)) + gameID[size:]
}

func gameRow(gameID string) Row {
	row := NewRow(TableGames)
	row.InsertOnly = true
	row.Set("game_id", gameID)
	row.Set("name", GameName(gameID))
	return row
}

func matchInformationRow(matchID, gameID, tournamentID string, attrs MatchAttributes) Row {
	row := NewRow(TableMatchInformation)
	row.Set("match_id", matchID)
	row.Set("game_id", gameID)
	row.Set("tournament_id", stringOrNil(&tournamentID))
	row.Set("created_at_api", stringOrNil(attrs.CreatedAt))
	row.Set("duration", intOrNil(attrs.Duration))
	row.Set("game_mode", stringOrNil(attrs.GameMode))
	row.Set("map_name", stringOrNil(attrs.MapName))
	row.Set("match_type", stringOrNil(attrs.MatchType))
	row.Set("shard_id", stringOrNil(attrs.ShardID))
	row.Set("title_id", stringOrNil(attrs.TitleID))
	row.Set("season_state", stringOrNil(attrs.SeasonState))
	row.Set("is_custom_match", boolOrNil(attrs.IsCustomMatch))
	row.Set("tags", jsonOrNil(attrs.Tags))
	row.Set("stats", jsonOrNil(attrs.Stats))
	return row
}

func playerStatsRow(matchID, gameID, playerID, rosterID string, participant Resource, s ParticipantStats) Row {
	row := NewRow(TableMatchPlayerStats)
	row.Set("match_id", matchID)
	row.Set("player_id", playerID)
	row.Set("participant_id", participant.ID)
	row.Set("game_id", gameID)
	row.Set("roster_id", stringOrNil(&rosterID))
	row.Set("dbnos", intOrNil(s.DBNOs))
	row.Set("assists", intOrNil(s.Assists))
	row.Set("boosts", intOrNil(s.Boosts))
	row.Set("damage_dealt", floatOrNil(s.DamageDealt))
	row.Set("death_type", stringOrNil(s.DeathType))
	row.Set("headshot_kills", intOrNil(s.HeadshotKills))
	row.Set("heals", intOrNil(s.Heals))
	row.Set("kill_place", intOrNil(s.KillPlace))
	row.Set("kill_streaks", intOrNil(s.KillStreaks))
	row.Set("kills", intOrNil(s.Kills))
	row.Set("longest_kill", floatOrNil(s.LongestKill))
	row.Set("revives", intOrNil(s.Revives))
	row.Set("ride_distance", floatOrNil(s.RideDistance))
	row.Set("road_kills", intOrNil(s.RoadKills))
	row.Set("swim_distance", floatOrNil(s.SwimDistance))
	row.Set("team_kills", intOrNil(s.TeamKills))
	row.Set("time_survived", floatOrNil(s.TimeSurvived))
	row.Set("walk_distance", floatOrNil(s.WalkDistance))
	row.Set("weapons_acquired", intOrNil(s.WeaponsAcquired))
	row.Set("win_place", intOrNil(s.WinPlace))
	row.Set("raw_stats", jsonOrNil(rawStats(participant)))
	return row
}

func rawStats(participant Resource) []byte {
	var a struct {
		Stats rawJSON `json:"stats"`
	}
	if err := decodeAttributes(participant.Attributes, &a); err != nil {
		return nil
	}
	return a.Stats
}

type rawJSON []byte

func (r *rawJSON) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

func parseWon(raw []byte) any {
	switch string(bytes.TrimSpace(raw)) {
	case `"true"`:
		return true
	case `"false"`:
		return false
	default:
		return nil
	}
}

func stringOrNil(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func intOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolOrNil(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

// jsonOrNil keeps JSON text as a string so it binds to jsonb columns.
func jsonOrNil(raw []byte) any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return string(raw)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package leaderboard

// RosterResult is one team's outcome in one match of a tournament.
type RosterResult struct {
	MatchID  string
	RosterID string
	TeamID   string
	TeamName string
	Rank     *int
	Won      *bool
	Kills    int
}

// Standing is one row of a tournament leaderboard.
type Standing struct {
	Position        int
	TeamID          string
	TeamName        string
	Matches         int
	Wins            int
	Kills           int
	PlacementPoints int
	KillPoints      int
	TotalPoints     int
}

type Board struct {
	TournamentID string
	MatchCount   int
	Standings    []Standing
}

package playerstats

// PlayerStats aggregates a player's normalized match rows.
type PlayerStats struct {
	GameID          string
	PlayerID        string
	PlayerName      string
	Matches         int
	Kills           int
	Assists         int
	DamageDealt     float64
	HeadshotKills   int
	Wins            int
	AvgTimeSurvived float64
	BestRank        *int
}

type Filter struct {
	GameID       string
	TournamentID string
	Search       string
	Limit        int
}

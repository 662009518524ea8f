package teamstats

// TeamStats aggregates a team's roster results across matches.
type TeamStats struct {
	GameID   string
	TeamID   string
	TeamName string
	Matches  int
	Wins     int
	Kills    int
	AvgRank  float64
}

type Filter struct {
	GameID       string
	TournamentID string
	Limit        int
}

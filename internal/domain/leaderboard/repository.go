package leaderboard

import "context"

type Repository interface {
	// RosterResults returns every roster result of the tournament's linked, normalized matches.
	RosterResults(ctx context.Context, tournamentID string) ([]RosterResult, error)
}

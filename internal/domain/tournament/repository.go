package tournament

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Tournament, error)
	GetByID(ctx context.Context, id string) (Tournament, bool, error)
	Create(ctx context.Context, item Tournament) error
	Update(ctx context.Context, item Tournament) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MatchLinkRepository records which matches belong to a tournament.
type MatchLinkRepository interface {
	// LinkMatches is idempotent and returns the number of new links.
	LinkMatches(ctx context.Context, tournamentID string, matchIDs []string) (int, error)
	// ListMatchIDs returns match ids in link order.
	ListMatchIDs(ctx context.Context, tournamentID string) ([]string, error)
	ReplaceMatches(ctx context.Context, tournamentID string, matchIDs []string) error
	TournamentIDForMatch(ctx context.Context, matchID string) (string, bool, error)
}

package teamstats

import "context"

type Repository interface {
	// List is ordered by wins, then kills.
	List(ctx context.Context, filter Filter) ([]TeamStats, error)
}

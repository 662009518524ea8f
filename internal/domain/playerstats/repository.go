package playerstats

import "context"

type Repository interface {
	// List is ordered by kills, then damage.
	List(ctx context.Context, filter Filter) ([]PlayerStats, error)
}

package winner

import "context"

type Repository interface {
	// List returns winners ordered by tournament then place; tournamentID may be empty.
	List(ctx context.Context, tournamentID string) ([]Winner, error)
	GetByID(ctx context.Context, id string) (Winner, bool, error)
	Create(ctx context.Context, item Winner) error
	Update(ctx context.Context, item Winner) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

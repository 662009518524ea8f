package participant

import "context"

type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Participant, error)
	GetByID(ctx context.Context, id string) (Participant, bool, error)
	Create(ctx context.Context, item Participant) error
	Update(ctx context.Context, item Participant) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

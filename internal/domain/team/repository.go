package team

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Team, error)
	GetByID(ctx context.Context, gameID, teamID string) (Team, bool, error)
	Upsert(ctx context.Context, item Team) error
	Delete(ctx context.Context, gameID, teamID string) (bool, error)
}

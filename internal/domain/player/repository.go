package player

import "context"

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, gameID, playerID string) (Player, bool, error)
	Upsert(ctx context.Context, item Player) error
	Delete(ctx context.Context, gameID, playerID string) (bool, error)
}

package rawmatch

import "context"

type Repository interface {
	// UpsertMany inserts new payloads and refreshes payload and updated_at of existing ones.
	UpsertMany(ctx context.Context, items []Match) error
	GetByIDs(ctx context.Context, ids []string) ([]Match, error)
	// ListIDs pages through stored match ids in ascending order, starting after afterID.
	ListIDs(ctx context.Context, afterID string, limit int) ([]string, error)
}

// Archive keeps a copy of raw payloads outside the database.
type Archive interface {
	Put(ctx context.Context, gameID, matchID string, payload []byte) error
}

package matchdata

import "context"

// Writer upserts one normalized row.
type Writer interface {
	Upsert(ctx context.Context, row Row) error
}

// Store runs fn inside one transaction; any error rolls every write back.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, w Writer) error) error
}

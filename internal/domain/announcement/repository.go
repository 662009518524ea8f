package announcement

import "context"

type Repository interface {
	// List returns announcements newest first.
	List(ctx context.Context, filter Filter) ([]Announcement, error)
	GetByID(ctx context.Context, id string) (Announcement, bool, error)
	Create(ctx context.Context, item Announcement) error
	Update(ctx context.Context, item Announcement) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

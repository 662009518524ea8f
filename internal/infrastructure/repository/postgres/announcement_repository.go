package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/announcement"
	qb "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/querybuilder"
)

type AnnouncementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) List(ctx context.Context, filter announcement.Filter) ([]announcement.Announcement, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.Type != "" {
		conditions = append(conditions, qb.Eq("type", string(filter.Type)))
	}
	if filter.TournamentID != "" {
		conditions = append(conditions, qb.Eq("tournament_id", filter.TournamentID))
	}

	query, args, err := qb.Select("*").From("announcements").
		Where(conditions...).
		OrderBy("created_at DESC", "announcement_id").
		Limit(limitOrDefault(filter.Limit, 50)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select announcements query: %w", err)
	}

	var rows []announcementTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select announcements: %w", err)
	}

	out := make([]announcement.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (announcement.Announcement, bool, error) {
	query, args, err := qb.Select("*").From("announcements").Where(qb.Eq("announcement_id", id)).ToSQL()
	if err != nil {
		return announcement.Announcement{}, false, fmt.Errorf("build get announcement query: %w", err)
	}

	var row announcementTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return announcement.Announcement{}, false, nil
		}
		return announcement.Announcement{}, false, fmt.Errorf("get announcement: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, item announcement.Announcement) error {
	return insertRow(ctx, r.db, "announcements", newAnnouncementWriteModel(item))
}

func (r *AnnouncementRepository) Update(ctx context.Context, item announcement.Announcement) (bool, error) {
	return updateRow(ctx, r.db, "announcements", "announcement_id", newAnnouncementWriteModel(item))
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByKey(ctx, r.db, "announcements", qb.Eq("announcement_id", id))
}

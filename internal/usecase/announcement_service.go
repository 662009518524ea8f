package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/announcement"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
)

type AnnouncementService struct {
	repo  announcement.Repository
	idGen idgen.Generator
}

func NewAnnouncementService(repo announcement.Repository, idGen idgen.Generator) *AnnouncementService {
	return &AnnouncementService{repo: repo, idGen: idGen}
}

func (s *AnnouncementService) List(ctx context.Context, filter announcement.Filter) ([]announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.List")
	defer span.End()

	filter.Limit = clampLimit(filter.Limit)
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

func (s *AnnouncementService) Create(ctx context.Context, item announcement.Announcement) (announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Create")
	defer span.End()

	if strings.TrimSpace(item.ID) == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return announcement.Announcement{}, fmt.Errorf("generate announcement id: %w", err)
		}
		item.ID = id
	}
	item.ApplyDefaults()
	if err := item.Validate(); err != nil {
		return announcement.Announcement{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return announcement.Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return s.get(ctx, item.ID)
}

func (s *AnnouncementService) Update(ctx context.Context, item announcement.Announcement) (announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Update")
	defer span.End()

	current, err := s.get(ctx, item.ID)
	if err != nil {
		return announcement.Announcement{}, err
	}
	item.CreatedAt = current.CreatedAt
	item.ApplyDefaults()
	if err := item.Validate(); err != nil {
		return announcement.Announcement{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("update announcement: %w", err)
	}
	if !updated {
		return announcement.Announcement{}, fmt.Errorf("%w: announcement=%s", ErrNotFound, item.ID)
	}
	return s.get(ctx, item.ID)
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Delete")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: announcement=%s", ErrNotFound, id)
	}
	return nil
}

func (s *AnnouncementService) get(ctx context.Context, id string) (announcement.Announcement, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return announcement.Announcement{}, fmt.Errorf("%w: announcement id is required", ErrInvalidInput)
	}
	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("get announcement: %w", err)
	}
	if !exists {
		return announcement.Announcement{}, fmt.Errorf("%w: announcement=%s", ErrNotFound, id)
	}
	return item, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/winner"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
)

type WinnerService struct {
	tournamentRepo tournament.Repository
	repo           winner.Repository
	idGen          idgen.Generator
}

func NewWinnerService(tournamentRepo tournament.Repository, repo winner.Repository, idGen idgen.Generator) *WinnerService {
	return &WinnerService{tournamentRepo: tournamentRepo, repo: repo, idGen: idGen}
}

func (s *WinnerService) List(ctx context.Context, tournamentID string) ([]winner.Winner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WinnerService.List")
	defer span.End()

	items, err := s.repo.List(ctx, strings.TrimSpace(tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	return items, nil
}

func (s *WinnerService) Create(ctx context.Context, item winner.Winner) (winner.Winner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WinnerService.Create")
	defer span.End()

	if strings.TrimSpace(item.ID) == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return winner.Winner{}, fmt.Errorf("generate winner id: %w", err)
		}
		item.ID = id
	}
	if err := s.validate(ctx, item); err != nil {
		return winner.Winner{}, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return winner.Winner{}, fmt.Errorf("create winner: %w", err)
	}
	return s.get(ctx, item.ID)
}

func (s *WinnerService) Update(ctx context.Context, item winner.Winner) (winner.Winner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WinnerService.Update")
	defer span.End()

	current, err := s.get(ctx, item.ID)
	if err != nil {
		return winner.Winner{}, err
	}
	item.CreatedAt = current.CreatedAt
	if err := s.validate(ctx, item); err != nil {
		return winner.Winner{}, err
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return winner.Winner{}, fmt.Errorf("update winner: %w", err)
	}
	if !updated {
		return winner.Winner{}, fmt.Errorf("%w: winner=%s", ErrNotFound, item.ID)
	}
	return s.get(ctx, item.ID)
}

func (s *WinnerService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.WinnerService.Delete")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete winner: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: winner=%s", ErrNotFound, id)
	}
	return nil
}

func (s *WinnerService) validate(ctx context.Context, item winner.Winner) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	_, exists, err := s.tournamentRepo.GetByID(ctx, item.TournamentID)
	if err != nil {
		return fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: tournament=%s", ErrNotFound, item.TournamentID)
	}
	return nil
}

func (s *WinnerService) get(ctx context.Context, id string) (winner.Winner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return winner.Winner{}, fmt.Errorf("%w: winner id is required", ErrInvalidInput)
	}
	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return winner.Winner{}, fmt.Errorf("get winner: %w", err)
	}
	if !exists {
		return winner.Winner{}, fmt.Errorf("%w: winner=%s", ErrNotFound, id)
	}
	return item, nil
}

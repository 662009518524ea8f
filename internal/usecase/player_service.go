package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/player"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
)

type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
	}
}

func (s *PlayerService) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	if filter.GameID != "" {
		filter.GameID = matchdata.NormalizeGameID(filter.GameID)
	}
	filter.Limit = clampLimit(filter.Limit)
	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, gameID, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	gameID, playerID = matchdata.NormalizeGameID(gameID), strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, gameID, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s/%s", ErrNotFound, gameID, playerID)
	}
	return item, nil
}

func (s *PlayerService) Save(ctx context.Context, item player.Player, create bool) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Save")
	defer span.End()

	item.GameID = matchdata.NormalizeGameID(item.GameID)
	item.ID = strings.TrimSpace(item.ID)
	if create && item.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		item.ID = id
	}
	if !create {
		if _, err := s.Get(ctx, item.GameID, item.ID); err != nil {
			return player.Player{}, err
		}
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("save player: %w", err)
	}
	return s.Get(ctx, item.GameID, item.ID)
}

func (s *PlayerService) Delete(ctx context.Context, gameID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	gameID = matchdata.NormalizeGameID(gameID)
	deleted, err := s.playerRepo.Delete(ctx, gameID, strings.TrimSpace(playerID))
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%s/%s", ErrNotFound, gameID, playerID)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/team"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
)

const defaultCatalogListLimit = 100

type TeamService struct {
	teamRepo team.Repository
	idGen    idgen.Generator
}

func NewTeamService(teamRepo team.Repository, idGen idgen.Generator) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		idGen:    idGen,
	}
}

func (s *TeamService) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	if filter.GameID != "" {
		filter.GameID = matchdata.NormalizeGameID(filter.GameID)
	}
	filter.Limit = clampLimit(filter.Limit)
	items, err := s.teamRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, gameID, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	gameID, teamID = matchdata.NormalizeGameID(gameID), strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, gameID, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s/%s", ErrNotFound, gameID, teamID)
	}
	return item, nil
}

// Save creates or replaces a team. Create generates the id when it is empty.
func (s *TeamService) Save(ctx context.Context, item team.Team, create bool) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Save")
	defer span.End()

	item.GameID = matchdata.NormalizeGameID(item.GameID)
	item.ID = strings.TrimSpace(item.ID)
	if create && item.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate team id: %w", err)
		}
		item.ID = id
	}
	if !create {
		if _, err := s.Get(ctx, item.GameID, item.ID); err != nil {
			return team.Team{}, err
		}
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Upsert(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("save team: %w", err)
	}
	return s.Get(ctx, item.GameID, item.ID)
}

func (s *TeamService) Delete(ctx context.Context, gameID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	gameID = matchdata.NormalizeGameID(gameID)
	deleted, err := s.teamRepo.Delete(ctx, gameID, strings.TrimSpace(teamID))
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s/%s", ErrNotFound, gameID, teamID)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > defaultCatalogListLimit {
		return defaultCatalogListLimit
	}
	return limit
}

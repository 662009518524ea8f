package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/participant"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
)

const (
	defaultTournamentListLimit = 50
	maxTournamentListLimit     = 200
	defaultFeaturedLimit       = 6
)

// TournamentService manages tournaments and scrims; both live in one table told apart by event type.
type TournamentService struct {
	repo            tournament.Repository
	links           tournament.MatchLinkRepository
	participantRepo participant.Repository
	idGen           idgen.Generator
}

func NewTournamentService(
	repo tournament.Repository,
	links tournament.MatchLinkRepository,
	participantRepo participant.Repository,
	idGen idgen.Generator,
) *TournamentService {
	return &TournamentService{
		repo:            repo,
		links:           links,
		participantRepo: participantRepo,
		idGen:           idGen,
	}
}

func (s *TournamentService) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	if filter.Limit <= 0 {
		filter.Limit = defaultTournamentListLimit
	}
	if filter.Limit > maxTournamentListLimit {
		filter.Limit = maxTournamentListLimit
	}
	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

// ListFeatured returns featured tournaments that have not finished yet.
func (s *TournamentService) ListFeatured(ctx context.Context, limit int) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListFeatured")
	defer span.End()

	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	featured := true
	items, err := s.repo.List(ctx, tournament.ListFilter{
		EventType: tournament.EventTournament,
		Featured:  &featured,
		Sort:      tournament.Sort{Field: tournament.SortStartDate},
		Limit:     maxTournamentListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list featured tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, limit)
	for _, item := range items {
		if item.Status == tournament.StatusCompleted {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Get returns the event with id. An empty eventType accepts both tournaments and scrims.
func (s *TournamentService) Get(ctx context.Context, eventType tournament.EventType, id string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists || (eventType != "" && item.EventType != eventType) {
		return tournament.Tournament{}, fmt.Errorf("%w: %s=%s", ErrNotFound, eventLabel(eventType), id)
	}
	return item, nil
}

func (s *TournamentService) Create(ctx context.Context, eventType tournament.EventType, item tournament.Tournament) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	if strings.TrimSpace(item.ID) == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
		}
		item.ID = id
	}
	if eventType != "" {
		item.EventType = eventType
	}
	item.ApplyDefaults()
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}
	if err := s.replaceLinks(ctx, item); err != nil {
		return tournament.Tournament{}, err
	}

	return s.reload(ctx, item)
}

func (s *TournamentService) Update(ctx context.Context, eventType tournament.EventType, item tournament.Tournament) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Update")
	defer span.End()

	current, err := s.Get(ctx, eventType, item.ID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	item.ID = current.ID
	item.EventType = current.EventType
	item.CreatedAt = current.CreatedAt
	item.ApplyDefaults()
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament: %w", err)
	}
	if !updated {
		return tournament.Tournament{}, fmt.Errorf("%w: %s=%s", ErrNotFound, eventLabel(eventType), item.ID)
	}
	if err := s.replaceLinks(ctx, item); err != nil {
		return tournament.Tournament{}, err
	}

	return s.reload(ctx, item)
}

func (s *TournamentService) Delete(ctx context.Context, eventType tournament.EventType, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Delete")
	defer span.End()

	item, err := s.Get(ctx, eventType, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s=%s", ErrNotFound, eventLabel(eventType), item.ID)
	}
	return nil
}

// LinkMatches attaches match ids to the tournament and returns how many links were new.
func (s *TournamentService) LinkMatches(ctx context.Context, id string, matchIDs []string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.LinkMatches")
	defer span.End()

	item, err := s.Get(ctx, "", id)
	if err != nil {
		return 0, err
	}
	matchIDs = tournament.CleanMatchIDs(matchIDs)
	if len(matchIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one match id is required", ErrInvalidInput)
	}

	added, err := s.links.LinkMatches(ctx, item.ID, matchIDs)
	if err != nil {
		return 0, fmt.Errorf("link tournament matches: %w", err)
	}
	return added, nil
}

func (s *TournamentService) ListMatchIDs(ctx context.Context, id string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListMatchIDs")
	defer span.End()

	item, err := s.Get(ctx, "", id)
	if err != nil {
		return nil, err
	}
	ids, err := s.links.ListMatchIDs(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list tournament matches: %w", err)
	}
	return ids, nil
}

func (s *TournamentService) ListParticipants(ctx context.Context, id string) ([]participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListParticipants")
	defer span.End()

	item, err := s.Get(ctx, "", id)
	if err != nil {
		return nil, err
	}
	items, err := s.participantRepo.ListByTournament(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list tournament participants: %w", err)
	}
	return items, nil
}

// replaceLinks makes the saved custom match ids the tournament's match links.
func (s *TournamentService) replaceLinks(ctx context.Context, item tournament.Tournament) error {
	if len(item.CustomMatchIDs) == 0 {
		return nil
	}
	if err := s.links.ReplaceMatches(ctx, item.ID, item.CustomMatchIDs); err != nil {
		return fmt.Errorf("replace tournament matches: %w", err)
	}
	return nil
}

func (s *TournamentService) reload(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	saved, exists, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return item, nil
	}
	return saved, nil
}

func eventLabel(eventType tournament.EventType) string {
	if eventType == "" {
		return "tournament"
	}
	return string(eventType)
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/participant"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
)

type ParticipantService struct {
	tournamentRepo  tournament.Repository
	participantRepo participant.Repository
	idGen           idgen.Generator
}

func NewParticipantService(
	tournamentRepo tournament.Repository,
	participantRepo participant.Repository,
	idGen idgen.Generator,
) *ParticipantService {
	return &ParticipantService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		idGen:           idGen,
	}
}

func (s *ParticipantService) ListByTournament(ctx context.Context, tournamentID string) ([]participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.ListByTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	items, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return items, nil
}

func (s *ParticipantService) Create(ctx context.Context, item participant.Participant) (participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.Create")
	defer span.End()

	if strings.TrimSpace(item.ID) == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return participant.Participant{}, fmt.Errorf("generate participant id: %w", err)
		}
		item.ID = id
	}
	if err := s.validate(ctx, &item); err != nil {
		return participant.Participant{}, err
	}

	if err := s.participantRepo.Create(ctx, item); err != nil {
		return participant.Participant{}, fmt.Errorf("create participant: %w", err)
	}
	return s.get(ctx, item.ID)
}

func (s *ParticipantService) Update(ctx context.Context, item participant.Participant) (participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.Update")
	defer span.End()

	current, err := s.get(ctx, item.ID)
	if err != nil {
		return participant.Participant{}, err
	}
	item.ID = current.ID
	item.CreatedAt = current.CreatedAt
	if item.TournamentID == "" {
		item.TournamentID = current.TournamentID
	}
	if err := s.validate(ctx, &item); err != nil {
		return participant.Participant{}, err
	}

	updated, err := s.participantRepo.Update(ctx, item)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("update participant: %w", err)
	}
	if !updated {
		return participant.Participant{}, fmt.Errorf("%w: participant=%s", ErrNotFound, item.ID)
	}
	return s.get(ctx, item.ID)
}

func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.Delete")
	defer span.End()

	deleted, err := s.participantRepo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: participant=%s", ErrNotFound, id)
	}
	return nil
}

func (s *ParticipantService) validate(ctx context.Context, item *participant.Participant) error {
	item.ApplyDefaults()
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

func (s *ParticipantService) get(ctx context.Context, id string) (participant.Participant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return participant.Participant{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}
	item, exists, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return participant.Participant{}, fmt.Errorf("%w: participant=%s", ErrNotFound, id)
	}
	return item, nil
}

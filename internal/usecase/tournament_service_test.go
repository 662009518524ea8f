package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/participant"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	participantmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/participant"
	tournamentmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/tournament"
)

type fixedIDGen struct {
	id  string
	err error
}

func (g fixedIDGen) NewID() (string, error) {
	return g.id, g.err
}

func TestTournamentService_CreateAppliesDefaultsAndReplacesLinks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	links := tournamentmock.NewMatchLinkRepository(t)
	service := NewTournamentService(repo, links, participantmock.NewRepository(t), fixedIDGen{id: "tour-1"})

	repo.
		On("Create", ctx, mock.MatchedBy(func(item tournament.Tournament) bool {
			return item.ID == "tour-1" &&
				item.EventType == tournament.EventScrim &&
				item.Status == tournament.StatusUpcoming &&
				item.Mode == tournament.ModeSquad &&
				item.GameID == "pubg"
		})).
		Return(nil).
		Once()
	links.
		On("ReplaceMatches", ctx, "tour-1", []string{"m-1", "m-2"}).
		Return(nil).
		Once()
	repo.
		On("GetByID", ctx, "tour-1").
		Return(tournament.Tournament{ID: "tour-1", Name: "Friday Scrim", EventType: tournament.EventScrim}, true, nil).
		Once()

	got, err := service.Create(ctx, tournament.EventScrim, tournament.Tournament{
		Name:           "Friday Scrim",
		CustomMatchIDs: []string{" m-1", "m-2", "m-1", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "tour-1", got.ID)
}

func TestTournamentService_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	service := NewTournamentService(
		tournamentmock.NewRepository(t),
		tournamentmock.NewMatchLinkRepository(t),
		participantmock.NewRepository(t),
		fixedIDGen{id: "tour-1"},
	)

	_, err := service.Create(context.Background(), tournament.EventTournament, tournament.Tournament{
		Name: "Bad",
		Mode: "quad",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTournamentService_GetChecksEventType(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	service := NewTournamentService(repo, tournamentmock.NewMatchLinkRepository(t), participantmock.NewRepository(t), fixedIDGen{})

	repo.
		On("GetByID", ctx, "tour-1").
		Return(tournament.Tournament{ID: "tour-1", EventType: tournament.EventTournament}, true, nil).
		Twice()

	_, err := service.Get(ctx, tournament.EventScrim, "tour-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a tournament read as scrim, got %v", err)
	}
	got, err := service.Get(ctx, "", "tour-1")
	require.NoError(t, err)
	assert.Equal(t, tournament.EventTournament, got.EventType)
}

func TestTournamentService_UpdateKeepsIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	links := tournamentmock.NewMatchLinkRepository(t)
	service := NewTournamentService(repo, links, participantmock.NewRepository(t), fixedIDGen{})

	current := tournament.Tournament{ID: "tour-1", Name: "Old", EventType: tournament.EventTournament}
	repo.On("GetByID", ctx, "tour-1").Return(current, true, nil)
	repo.
		On("Update", ctx, mock.MatchedBy(func(item tournament.Tournament) bool {
			return item.EventType == tournament.EventTournament && item.Name == "New"
		})).
		Return(true, nil).
		Once()

	_, err := service.Update(ctx, tournament.EventTournament, tournament.Tournament{
		ID:        "tour-1",
		Name:      "New",
		EventType: tournament.EventScrim,
	})
	require.NoError(t, err)
	links.AssertNotCalled(t, "ReplaceMatches", mock.Anything, mock.Anything, mock.Anything)
}

func TestTournamentService_DeleteMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	service := NewTournamentService(repo, tournamentmock.NewMatchLinkRepository(t), participantmock.NewRepository(t), fixedIDGen{})

	repo.On("GetByID", ctx, "missing").Return(tournament.Tournament{}, false, nil).Once()

	err := service.Delete(ctx, tournament.EventTournament, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTournamentService_ListFeaturedSkipsCompleted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	service := NewTournamentService(repo, tournamentmock.NewMatchLinkRepository(t), participantmock.NewRepository(t), fixedIDGen{})

	repo.
		On("List", ctx, mock.MatchedBy(func(f tournament.ListFilter) bool {
			return f.Featured != nil && *f.Featured && f.EventType == tournament.EventTournament
		})).
		Return([]tournament.Tournament{
			{ID: "a", Status: tournament.StatusOngoing},
			{ID: "b", Status: tournament.StatusCompleted},
			{ID: "c", Status: tournament.StatusUpcoming},
			{ID: "d", Status: tournament.StatusUpcoming},
		}, nil).
		Once()

	got, err := service.ListFeatured(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestTournamentService_LinkMatchesAndParticipants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	links := tournamentmock.NewMatchLinkRepository(t)
	participants := participantmock.NewRepository(t)
	service := NewTournamentService(repo, links, participants, fixedIDGen{})

	repo.On("GetByID", ctx, "tour-1").Return(tournament.Tournament{ID: "tour-1"}, true, nil)
	links.On("LinkMatches", ctx, "tour-1", []string{"m-1", "m-2"}).Return(1, nil).Once()
	participants.
		On("ListByTournament", ctx, "tour-1").
		Return([]participant.Participant{{ID: "pt-1", TournamentID: "tour-1"}}, nil).
		Once()

	added, err := service.LinkMatches(ctx, "tour-1", []string{"m-1", " m-2 "})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	_, err = service.LinkMatches(ctx, "tour-1", []string{" "})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	items, err := service.ListParticipants(ctx, "tour-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

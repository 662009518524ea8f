package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	tournamentmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
)

type stubImporter struct {
	reports map[string]ImportReport
	errs    map[string]error
	calls   []string
}

func (s *stubImporter) Backfill(_ context.Context, _ string) (ImportReport, error) {
	s.calls = append(s.calls, "backfill")
	return ImportReport{Imported: 3, Skipped: 1}, nil
}

func (s *stubImporter) ImportTournament(_ context.Context, _, _, tournamentID string) (ImportReport, error) {
	s.calls = append(s.calls, tournamentID)
	return s.reports[tournamentID], s.errs[tournamentID]
}

func TestJobService_RunTournamentImportOngoing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	importer := &stubImporter{
		reports: map[string]ImportReport{"a": {Imported: 2}, "c": {Imported: 1, Skipped: 1}},
		errs:    map[string]error{"b": fmt.Errorf("%w: pubg api down", ErrDependencyUnavailable)},
	}
	service := NewJobService(repo, importer, logging.NewNop())

	repo.
		On("List", ctx, mock.MatchedBy(func(f tournament.ListFilter) bool { return f.Status == tournament.StatusOngoing })).
		Return([]tournament.Tournament{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil).
		Once()

	got, err := service.RunTournamentImport(ctx, JobSyncInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, got.TournamentCount)
	assert.Equal(t, 3, got.Imported)
	assert.Equal(t, 1, got.Skipped)
	assert.Equal(t, []string{"b"}, got.FailedTargets)
	assert.Equal(t, []string{"a", "b", "c"}, importer.calls)
}

func TestJobService_RunTournamentImportStopsOnPersistenceFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	importer := &stubImporter{errs: map[string]error{"a": fmt.Errorf("%w: write match m-1", ErrPersistenceFailure)}}
	service := NewJobService(repo, importer, logging.NewNop())

	repo.On("GetByID", ctx, "a").Return(tournament.Tournament{ID: "a"}, true, nil).Once()

	_, err := service.RunTournamentImport(ctx, JobSyncInput{TournamentID: "a"})
	if !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure, got %v", err)
	}
}

func TestJobService_RunBackfill(t *testing.T) {
	t.Parallel()

	importer := &stubImporter{}
	service := NewJobService(tournamentmock.NewRepository(t), importer, logging.NewNop())

	got, err := service.RunBackfill(context.Background(), JobSyncInput{GameID: "pubg"})
	require.NoError(t, err)
	assert.Equal(t, JobSyncResult{Mode: "backfill", Imported: 3, Skipped: 1}, got)
}

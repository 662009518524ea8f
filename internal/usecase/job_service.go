package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
)

// MatchImporter is the part of MatchImportService the scheduled jobs drive.
type MatchImporter interface {
	Backfill(ctx context.Context, gameID string) (ImportReport, error)
	ImportTournament(ctx context.Context, gameID, shard, tournamentID string) (ImportReport, error)
}

type JobSyncInput struct {
	GameID       string
	Shard        string
	TournamentID string
}

type JobSyncResult struct {
	Mode            string   `json:"mode"`
	TournamentCount int      `json:"tournament_count"`
	Imported        int      `json:"imported"`
	Skipped         int      `json:"skipped"`
	FailedTargets   []string `json:"failed_targets,omitempty"`
}

// JobService runs the cron-triggered import jobs.
type JobService struct {
	tournamentRepo tournament.Repository
	importer       MatchImporter
	logger         *logging.Logger
}

func NewJobService(tournamentRepo tournament.Repository, importer MatchImporter, logger *logging.Logger) *JobService {
	if logger == nil {
		logger = logging.Default()
	}
	return &JobService{
		tournamentRepo: tournamentRepo,
		importer:       importer,
		logger:         logger.Named("jobs"),
	}
}

func (s *JobService) RunBackfill(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.RunBackfill")
	defer span.End()

	report, err := s.importer.Backfill(ctx, input.GameID)
	result := JobSyncResult{Mode: "backfill", Imported: report.Imported, Skipped: report.Skipped}
	if err != nil {
		return result, fmt.Errorf("run backfill: %w", err)
	}
	return result, nil
}

// RunTournamentImport imports one tournament when TournamentID is set, otherwise every ongoing tournament.
// A failing tournament is recorded and the rest still run; persistence failures stop the job.
func (s *JobService) RunTournamentImport(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.RunTournamentImport")
	defer span.End()

	result := JobSyncResult{Mode: "tournament-import"}
	targets, err := s.targets(ctx, input.TournamentID)
	if err != nil {
		return result, err
	}
	result.TournamentCount = len(targets)

	for _, id := range targets {
		report, err := s.importer.ImportTournament(ctx, input.GameID, input.Shard, id)
		result.Imported += report.Imported
		result.Skipped += report.Skipped
		if err == nil {
			continue
		}
		if IsPersistenceFailure(err) || ctx.Err() != nil {
			return result, fmt.Errorf("import tournament %s: %w", id, err)
		}
		result.FailedTargets = append(result.FailedTargets, id)
		s.logger.WarnContext(ctx, "tournament import failed", "tournament_id", id, "error", err)
	}

	s.logger.InfoContext(ctx, "tournament import job finished",
		"tournaments", result.TournamentCount,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"failed", len(result.FailedTargets),
	)
	return result, nil
}

func (s *JobService) targets(ctx context.Context, tournamentID string) ([]string, error) {
	if tournamentID = strings.TrimSpace(tournamentID); tournamentID != "" {
		_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, fmt.Errorf("get tournament: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
		}
		return []string{tournamentID}, nil
	}

	items, err := s.tournamentRepo.List(ctx, tournament.ListFilter{
		Status: tournament.StatusOngoing,
		Limit:  maxTournamentListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list ongoing tournaments: %w", err)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out, nil
}

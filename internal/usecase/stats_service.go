package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/leaderboard"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/playerstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/teamstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
)

// StatsService serves read models built from normalized match rows.
type StatsService struct {
	tournamentRepo  tournament.Repository
	playerStatsRepo playerstats.Repository
	teamStatsRepo   teamstats.Repository
	leaderboardRepo leaderboard.Repository
	points          leaderboard.PointsTable
}

func NewStatsService(
	tournamentRepo tournament.Repository,
	playerStatsRepo playerstats.Repository,
	teamStatsRepo teamstats.Repository,
	leaderboardRepo leaderboard.Repository,
) *StatsService {
	return &StatsService{
		tournamentRepo:  tournamentRepo,
		playerStatsRepo: playerStatsRepo,
		teamStatsRepo:   teamStatsRepo,
		leaderboardRepo: leaderboardRepo,
		points:          leaderboard.DefaultPointsTable(),
	}
}

func (s *StatsService) PlayerStats(ctx context.Context, filter playerstats.Filter) ([]playerstats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerStats")
	defer span.End()

	if filter.GameID != "" {
		filter.GameID = matchdata.NormalizeGameID(filter.GameID)
	}
	filter.TournamentID = strings.TrimSpace(filter.TournamentID)
	filter.Limit = clampLimit(filter.Limit)

	items, err := s.playerStatsRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}
	return items, nil
}

func (s *StatsService) TeamStats(ctx context.Context, filter teamstats.Filter) ([]teamstats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamStats")
	defer span.End()

	if filter.GameID != "" {
		filter.GameID = matchdata.NormalizeGameID(filter.GameID)
	}
	filter.TournamentID = strings.TrimSpace(filter.TournamentID)
	filter.Limit = clampLimit(filter.Limit)

	items, err := s.teamStatsRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list team stats: %w", err)
	}
	return items, nil
}

// Leaderboard scores every normalized match linked to the tournament.
func (s *StatsService) Leaderboard(ctx context.Context, tournamentID string) (leaderboard.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return leaderboard.Board{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return leaderboard.Board{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return leaderboard.Board{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	results, err := s.leaderboardRepo.RosterResults(ctx, tournamentID)
	if err != nil {
		return leaderboard.Board{}, fmt.Errorf("list roster results: %w", err)
	}

	matches := make(map[string]struct{})
	for _, r := range results {
		matches[r.MatchID] = struct{}{}
	}
	return leaderboard.Board{
		TournamentID: tournamentID,
		MatchCount:   len(matches),
		Standings:    leaderboard.Build(results, s.points),
	}, nil
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/leaderboard"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/playerstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	leaderboardmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/leaderboard"
	playerstatsmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/playerstats"
	teamstatsmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/teamstats"
	tournamentmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/tournament"
)

func TestStatsService_Leaderboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournaments := tournamentmock.NewRepository(t)
	board := leaderboardmock.NewRepository(t)
	service := NewStatsService(tournaments, playerstatsmock.NewRepository(t), teamstatsmock.NewRepository(t), board)

	first, second := 1, 2
	won := true
	tournaments.On("GetByID", ctx, "tour-1").Return(tournament.Tournament{ID: "tour-1"}, true, nil).Once()
	board.
		On("RosterResults", ctx, "tour-1").
		Return([]leaderboard.RosterResult{
			{MatchID: "m-1", RosterID: "r-1", TeamID: "1", TeamName: "Alpha", Rank: &first, Won: &won, Kills: 4},
			{MatchID: "m-1", RosterID: "r-2", TeamID: "2", TeamName: "Bravo", Rank: &second, Kills: 9},
			{MatchID: "m-2", RosterID: "r-3", TeamID: "2", TeamName: "Bravo", Rank: &first, Kills: 2},
		}, nil).
		Once()

	got, err := service.Leaderboard(ctx, " tour-1 ")
	require.NoError(t, err)
	assert.Equal(t, "tour-1", got.TournamentID)
	assert.Equal(t, 2, got.MatchCount)
	require.Len(t, got.Standings, 2)
	assert.Equal(t, "Bravo", got.Standings[0].TeamName)
	assert.Equal(t, 27, got.Standings[0].TotalPoints)
}

func TestStatsService_LeaderboardUnknownTournament(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournaments := tournamentmock.NewRepository(t)
	service := NewStatsService(tournaments, playerstatsmock.NewRepository(t), teamstatsmock.NewRepository(t), leaderboardmock.NewRepository(t))

	tournaments.On("GetByID", ctx, "missing").Return(tournament.Tournament{}, false, nil).Once()

	_, err := service.Leaderboard(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = service.Leaderboard(ctx, "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_PlayerStatsNormalizesFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := playerstatsmock.NewRepository(t)
	service := NewStatsService(tournamentmock.NewRepository(t), players, teamstatsmock.NewRepository(t), leaderboardmock.NewRepository(t))

	players.
		On("List", ctx, mock.MatchedBy(func(f playerstats.Filter) bool {
			return f.GameID == "pubg" && f.TournamentID == "tour-1" && f.Limit == defaultCatalogListLimit
		})).
		Return([]playerstats.PlayerStats{{PlayerID: "account.1", Kills: 7}}, nil).
		Once()

	got, err := service.PlayerStats(ctx, playerstats.Filter{GameID: " PUBG ", TournamentID: " tour-1", Limit: 5000})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/leaderboard"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/player"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/playerstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/team"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/teamstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	basecache "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/cache"
)

const (
	tournamentPrefix  = "tournament:"
	teamPrefix        = "team:"
	playerPrefix      = "player:"
	playerStatsPrefix = "player-stats:"
	teamStatsPrefix   = "team-stats:"
	leaderboardPrefix = "leaderboard:"
)

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	items, err := basecache.Load(ctx, r.cache, tournamentListKey(filter), func(ctx context.Context) ([]tournament.Tournament, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	out := make([]tournament.Tournament, 0, len(items))
	for _, item := range items {
		out = append(out, cloneTournament(item))
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id string) (tournament.Tournament, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, tournamentPrefix+"id:"+id, func(ctx context.Context) (cachedTournamentByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedTournamentByID{}, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cloneTournament(cached.value), cached.exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, tournamentPrefix)
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) (bool, error) {
	updated, err := r.next.Update(ctx, item)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, tournamentPrefix)
	return updated, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, tournamentPrefix)
	r.cache.Delete(ctx, leaderboardKey(id))
	return deleted, nil
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

func cloneTournament(item tournament.Tournament) tournament.Tournament {
	out := item
	out.CustomMatchIDs = append([]string(nil), item.CustomMatchIDs...)
	return out
}

func tournamentListKey(f tournament.ListFilter) string {
	featured := "any"
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	return tournamentPrefix + "list:" + strings.Join([]string{
		string(f.EventType),
		string(f.Status),
		string(f.Registration),
		string(f.Mode),
		strings.ToLower(strings.TrimSpace(f.Search)),
		featured,
		f.Sort.OrderBy(),
		strconv.Itoa(f.Limit),
		strconv.Itoa(f.Offset),
	}, "|")
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	key := teamPrefix + "list:" + filter.GameID + "|" + strings.ToLower(filter.Search) + "|" + strconv.Itoa(filter.Limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, gameID, teamID string) (team.Team, bool, error) {
	return r.next.GetByID(ctx, gameID, teamID)
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	r.cache.DeletePrefix(ctx, teamStatsPrefix)
	r.cache.DeletePrefix(ctx, leaderboardPrefix)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, gameID, teamID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, gameID, teamID)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return deleted, nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	key := playerPrefix + "list:" + filter.GameID + "|" + filter.TeamID + "|" + strings.ToLower(filter.Search) + "|" + strconv.Itoa(filter.Limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, gameID, playerID string) (player.Player, bool, error) {
	return r.next.GetByID(ctx, gameID, playerID)
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	if err := r.next.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	r.cache.DeletePrefix(ctx, playerStatsPrefix)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, gameID, playerID string) (bool, error) {
	deleted, err := r.next.Delete(ctx, gameID, playerID)
	if err != nil {
		return false, err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return deleted, nil
}

type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) List(ctx context.Context, filter playerstats.Filter) ([]playerstats.PlayerStats, error) {
	key := playerStatsPrefix + filter.GameID + "|" + filter.TournamentID + "|" + strings.ToLower(filter.Search) + "|" + strconv.Itoa(filter.Limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]playerstats.PlayerStats, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]playerstats.PlayerStats(nil), items...), nil
}

type TeamStatsRepository struct {
	next  teamstats.Repository
	cache *basecache.Store
}

func NewTeamStatsRepository(next teamstats.Repository, cache *basecache.Store) *TeamStatsRepository {
	return &TeamStatsRepository{next: next, cache: cache}
}

func (r *TeamStatsRepository) List(ctx context.Context, filter teamstats.Filter) ([]teamstats.TeamStats, error) {
	key := teamStatsPrefix + filter.GameID + "|" + filter.TournamentID + "|" + strconv.Itoa(filter.Limit)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]teamstats.TeamStats, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]teamstats.TeamStats(nil), items...), nil
}

type LeaderboardRepository struct {
	next  leaderboard.Repository
	cache *basecache.Store
}

func NewLeaderboardRepository(next leaderboard.Repository, cache *basecache.Store) *LeaderboardRepository {
	return &LeaderboardRepository{next: next, cache: cache}
}

func (r *LeaderboardRepository) RosterResults(ctx context.Context, tournamentID string) ([]leaderboard.RosterResult, error) {
	items, err := basecache.Load(ctx, r.cache, leaderboardKey(tournamentID), func(ctx context.Context) ([]leaderboard.RosterResult, error) {
		return r.next.RosterResults(ctx, tournamentID)
	})
	if err != nil {
		return nil, err
	}
	return append([]leaderboard.RosterResult(nil), items...), nil
}

func leaderboardKey(tournamentID string) string {
	return leaderboardPrefix + tournamentID
}

// MatchDataInvalidator drops every read model derived from normalized match rows.
type MatchDataInvalidator struct {
	cache *basecache.Store
}

func NewMatchDataInvalidator(cache *basecache.Store) *MatchDataInvalidator {
	return &MatchDataInvalidator{cache: cache}
}

// MatchImported is called after a payload commits. An empty tournamentID clears every leaderboard.
func (i *MatchDataInvalidator) MatchImported(ctx context.Context, tournamentID string) {
	if tournamentID == "" {
		i.cache.DeletePrefix(ctx, leaderboardPrefix)
	} else {
		i.cache.Delete(ctx, leaderboardKey(tournamentID))
	}
	i.cache.DeletePrefix(ctx, playerStatsPrefix)
	i.cache.DeletePrefix(ctx, teamStatsPrefix)
	i.cache.DeletePrefix(ctx, teamPrefix)
	i.cache.DeletePrefix(ctx, playerPrefix)
}

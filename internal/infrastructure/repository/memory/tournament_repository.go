package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	items map[string]tournament.Tournament
	now   func() time.Time
}

func NewTournamentRepository(items []tournament.Tournament) *TournamentRepository {
	byID := make(map[string]tournament.Tournament, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &TournamentRepository{items: byID, now: time.Now}
}

func (r *TournamentRepository) List(_ context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.items))
	for _, item := range r.items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	sortTournaments(out, filter.Sort)

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []tournament.Tournament{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, id string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return nil
}

func (r *TournamentRepository) Update(_ context.Context, item tournament.Tournament) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return false, nil
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = r.now().UTC()
	r.items[item.ID] = item
	return true, nil
}

func (r *TournamentRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// sortTournaments orders like the SQL repository: nulls last in both directions, id as tiebreak.
func sortTournaments(items []tournament.Tournament, s tournament.Sort) {
	field := s.Field
	desc := s.Desc
	if field == "" {
		field = tournament.SortStartDate
		desc = true
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var cmp int
		switch field {
		case tournament.SortPrizePool:
			cmp = compareFloat(a.PrizePool, b.PrizePool)
		case tournament.SortName:
			cmp = strings.Compare(a.Name, b.Name)
		case tournament.SortCreatedAt:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		default:
			switch {
			case a.StartDate == nil && b.StartDate == nil:
				cmp = 0
			case a.StartDate == nil:
				return false
			case b.StartDate == nil:
				return true
			default:
				cmp = a.StartDate.Compare(*b.StartDate)
			}
		}
		if cmp == 0 {
			return a.ID < b.ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TournamentMatchRepository keeps links in insertion order. A match linked to several
// tournaments belongs to the earliest remaining link.
type TournamentMatchRepository struct {
	mu      sync.RWMutex
	links   map[string][]string
	byMatch map[string][]string
}

func NewTournamentMatchRepository() *TournamentMatchRepository {
	return &TournamentMatchRepository{
		links:   make(map[string][]string),
		byMatch: make(map[string][]string),
	}
}

func (r *TournamentMatchRepository) LinkMatches(_ context.Context, tournamentID string, matchIDs []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.link(tournamentID, matchIDs), nil
}

func (r *TournamentMatchRepository) ListMatchIDs(_ context.Context, tournamentID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.links[tournamentID]...), nil
}

func (r *TournamentMatchRepository) ReplaceMatches(_ context.Context, tournamentID string, matchIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.links[tournamentID] {
		r.byMatch[id] = slices.DeleteFunc(r.byMatch[id], func(t string) bool { return t == tournamentID })
		if len(r.byMatch[id]) == 0 {
			delete(r.byMatch, id)
		}
	}
	delete(r.links, tournamentID)
	r.link(tournamentID, matchIDs)
	return nil
}

func (r *TournamentMatchRepository) TournamentIDForMatch(_ context.Context, matchID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owners := r.byMatch[matchID]
	if len(owners) == 0 {
		return "", false, nil
	}
	return owners[0], true, nil
}

func (r *TournamentMatchRepository) link(tournamentID string, matchIDs []string) int {
	added := 0
	for _, id := range matchIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		exists := false
		for _, linked := range r.links[tournamentID] {
			if linked == id {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		r.links[tournamentID] = append(r.links[tournamentID], id)
		r.byMatch[id] = append(r.byMatch[id], tournamentID)
		added++
	}
	return added
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/rawmatch"
)

type RawMatchRepository struct {
	mu      sync.RWMutex
	matches map[string]rawmatch.Match
	now     func() time.Time
}

func NewRawMatchRepository() *RawMatchRepository {
	return &RawMatchRepository{
		matches: make(map[string]rawmatch.Match),
		now:     time.Now,
	}
}

func (r *RawMatchRepository) UpsertMany(_ context.Context, items []rawmatch.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		stored := rawmatch.Match{
			ID:        id,
			Payload:   append([]byte(nil), item.Payload...),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if existing, ok := r.matches[id]; ok {
			stored.CreatedAt = existing.CreatedAt
		}
		r.matches[id] = stored
	}
	return nil
}

func (r *RawMatchRepository) GetByIDs(_ context.Context, ids []string) ([]rawmatch.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rawmatch.Match, 0, len(ids))
	for _, id := range ids {
		item, ok := r.matches[id]
		if !ok {
			continue
		}
		item.Payload = append([]byte(nil), item.Payload...)
		out = append(out, item)
	}
	return out, nil
}

func (r *RawMatchRepository) ListIDs(_ context.Context, afterID string, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.matches))
	for id := range r.matches {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

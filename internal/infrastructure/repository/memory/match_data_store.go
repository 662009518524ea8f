package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
)

// MatchDataStore keeps normalized rows per table. Each transaction works on a
// staged copy that replaces the committed state only when fn succeeds.
type MatchDataStore struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]any

	// FailOn, when set, is consulted before every upsert.
	FailOn func(row matchdata.Row) error
}

func NewMatchDataStore() *MatchDataStore {
	return &MatchDataStore{tables: make(map[string]map[string]map[string]any)}
}

func (s *MatchDataStore) WithinTx(ctx context.Context, fn func(ctx context.Context, w matchdata.Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{tables: cloneTables(s.tables), failOn: s.FailOn}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit match data tx: %w", err)
	}
	s.tables = tx.tables
	return nil
}

// Rows returns the committed rows of table ordered by key.
func (s *MatchDataStore) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.tables[table]
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, cloneRecord(records[k]))
	}
	return out
}

func (s *MatchDataStore) Count(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}

type memoryTx struct {
	tables map[string]map[string]map[string]any
	failOn func(row matchdata.Row) error
}

func (t *memoryTx) Upsert(ctx context.Context, row matchdata.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.failOn != nil {
		if err := t.failOn(row); err != nil {
			return err
		}
	}

	records, ok := t.tables[row.Table]
	if !ok {
		records = make(map[string]map[string]any)
		t.tables[row.Table] = records
	}

	key := row.Key()
	existing, ok := records[key]
	if !ok {
		records[key] = row.Map()
		return nil
	}
	if row.InsertOnly {
		return nil
	}
	for col, v := range row.Map() {
		existing[col] = v
	}
	return nil
}

func cloneTables(in map[string]map[string]map[string]any) map[string]map[string]map[string]any {
	out := make(map[string]map[string]map[string]any, len(in))
	for table, records := range in {
		copied := make(map[string]map[string]any, len(records))
		for k, rec := range records {
			copied[k] = cloneRecord(rec)
		}
		out[table] = copied
	}
	return out
}

func cloneRecord(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

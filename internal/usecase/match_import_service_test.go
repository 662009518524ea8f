package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/rawmatch"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/repository/memory"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
)

type importFixture struct {
	raw         *memory.RawMatchRepository
	links       *memory.TournamentMatchRepository
	store       *memory.MatchDataStore
	fetcher     *fakeFetcher
	archive     *fakeArchive
	publisher   *fakePublisher
	invalidator *fakeInvalidator
	service     *MatchImportService
}

func newImportFixture(t *testing.T, columns matchdata.ColumnSource) *importFixture {
	t.Helper()

	f := &importFixture{
		raw:         memory.NewRawMatchRepository(),
		links:       memory.NewTournamentMatchRepository(),
		store:       memory.NewMatchDataStore(),
		fetcher:     &fakeFetcher{payloads: map[string][]byte{}, errs: map[string]error{}},
		archive:     &fakeArchive{},
		publisher:   &fakePublisher{},
		invalidator: &fakeInvalidator{},
	}
	f.service = NewMatchImportService(MatchImportDeps{
		RawMatches:  f.raw,
		Links:       f.links,
		Store:       f.store,
		Columns:     columns,
		Fetcher:     f.fetcher,
		Archive:     f.archive,
		Publisher:   f.publisher,
		Invalidator: f.invalidator,
	}, MatchImportConfig{
		DefaultGameID: "pubg",
		DefaultShard:  "steam",
		FetchWorkers:  2,
		DecodeWorkers: 2,
	}, logging.NewNop())
	return f
}

// matchPayload renders a match with rosters*perRoster participants; roster 1 wins.
func matchPayload(t *testing.T, matchID string, rosters, perRoster int) []byte {
	t.Helper()

	included := make([]map[string]any, 0)
	for r := 1; r <= rosters; r++ {
		refs := make([]map[string]any, 0, perRoster)
		for n := 1; n <= perRoster; n++ {
			pid := fmt.Sprintf("%s-p-%d-%d", matchID, r, n)
			refs = append(refs, map[string]any{"type": "participant", "id": pid})
			included = append(included, map[string]any{
				"type": "participant",
				"id":   pid,
				"attributes": map[string]any{
					"stats": map[string]any{
						"playerId": fmt.Sprintf("account.%d-%d", r, n),
						"name":     fmt.Sprintf("player-%d-%d", r, n),
						"kills":    n,
						"winPlace": r,
					},
				},
			})
		}
		won := "false"
		if r == 1 {
			won = "true"
		}
		included = append(included, map[string]any{
			"type": "roster",
			"id":   fmt.Sprintf("%s-r-%d", matchID, r),
			"attributes": map[string]any{
				"won":   won,
				"stats": map[string]any{"rank": r, "teamId": r},
			},
			"relationships": map[string]any{
				"participants": map[string]any{"data": refs},
			},
		})
	}

	raw, err := sonic.Marshal(map[string]any{
		"data": map[string]any{
			"type": "match",
			"id":   matchID,
			"attributes": map[string]any{
				"createdAt": "2026-03-01T12:00:00Z",
				"duration":  1800,
				"gameMode":  "squad-fpp",
				"mapName":   "Desert_Main",
				"shardId":   "steam",
			},
		},
		"included": included,
	})
	require.NoError(t, err)
	return raw
}

func TestMatchImportService_NormalizeTwoRostersFourParticipants(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	ctx := context.Background()

	result, err := f.service.Normalize(ctx, "", matchPayload(t, "m-1", 2, 4))
	require.NoError(t, err)
	assert.Equal(t, "m-1", result.MatchID)
	assert.Empty(t, result.TournamentID)
	assert.Empty(t, result.DroppedColumns)

	assert.Equal(t, 2, f.store.Count(matchdata.TableMatchRosters))
	assert.Equal(t, 8, f.store.Count(matchdata.TableMatchPlayerStats))
	assert.Equal(t, 8, f.store.Count(matchdata.TableRosterPlayers))
	assert.Equal(t, 1, f.store.Count(matchdata.TableMatchInformation))
	assert.Equal(t, 0, f.store.Count(matchdata.TableTournamentRoster))

	rosters := map[any]bool{}
	for _, row := range f.store.Rows(matchdata.TableMatchRosters) {
		rosters[row["roster_id"]] = true
	}
	for _, row := range f.store.Rows(matchdata.TableMatchPlayerStats) {
		assert.True(t, rosters[row["roster_id"]], "participant %v must reference a roster of the match", row["participant_id"])
		assert.Equal(t, "pubg", row["game_id"])
	}

	total := 0
	for _, table := range matchdata.StaticSchema{}.Tables() {
		total += f.store.Count(table)
	}
	assert.Equal(t, total, result.RowsWritten)
}

func TestMatchImportService_NormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	ctx := context.Background()
	payload := matchPayload(t, "m-1", 3, 2)

	first, err := f.service.Normalize(ctx, "pubg", payload)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, table := range matchdata.StaticSchema{}.Tables() {
		counts[table] = f.store.Count(table)
	}

	second, err := f.service.Normalize(ctx, "pubg", payload)
	require.NoError(t, err)
	assert.Equal(t, first.RowsWritten, second.RowsWritten)
	for table, want := range counts {
		assert.Equal(t, want, f.store.Count(table), table)
	}
}

func TestMatchImportService_MissingMatchIDIsSkipped(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	ctx := context.Background()
	missing := []byte(`{"data":{"type":"match","attributes":{}},"included":[]}`)

	_, err := f.service.Normalize(ctx, "pubg", missing)
	require.Error(t, err)
	assert.True(t, matchdata.IsMalformed(err))
	assert.False(t, IsPersistenceFailure(err))

	report, err := f.service.ImportPayloads(ctx, ImportPayloadsInput{
		Payloads: [][]byte{missing, matchPayload(t, "m-2", 1, 1)},
		StoreRaw: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Received)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []string{"m-2"}, report.MatchIDs)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "payload[0]", report.Failures[0].Source)
	assert.Equal(t, 1, f.store.Count(matchdata.TableMatchInformation))

	stored, err := f.raw.ListIDs(ctx, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"m-2"}, stored)
}

func TestMatchImportService_OnlyMalformedBatchWritesNothing(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	report, err := f.service.ImportPayloads(context.Background(), ImportPayloadsInput{
		Payloads: [][]byte{[]byte(`{"data":{"id":"  "}}`)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	for _, table := range matchdata.StaticSchema{}.Tables() {
		assert.Zero(t, f.store.Count(table), table)
	}
}

func TestMatchImportService_FailureRollsBackPayload(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	f.store.FailOn = func(row matchdata.Row) error {
		if row.Table == matchdata.TableRosterPlayers {
			return errors.New("connection reset")
		}
		return nil
	}
	ctx := context.Background()

	_, err := f.service.Normalize(ctx, "pubg", matchPayload(t, "m-1", 2, 2))
	require.Error(t, err)
	assert.True(t, IsPersistenceFailure(err))
	for _, table := range matchdata.StaticSchema{}.Tables() {
		assert.Zero(t, f.store.Count(table), table)
	}

	report, err := f.service.ImportPayloads(ctx, ImportPayloadsInput{
		Payloads: [][]byte{matchPayload(t, "m-1", 1, 1), matchPayload(t, "m-2", 1, 1)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistenceFailure))
	assert.Zero(t, report.Imported)
	assert.Zero(t, f.invalidator.calls())
}

func TestMatchImportService_LinkedMatchPublishesUpdate(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	ctx := context.Background()
	_, err := f.links.LinkMatches(ctx, "tour-1", []string{"m-1"})
	require.NoError(t, err)

	result, err := f.service.Normalize(ctx, "pubg", matchPayload(t, "m-1", 2, 1))
	require.NoError(t, err)
	assert.Equal(t, "tour-1", result.TournamentID)
	assert.Equal(t, 2, f.store.Count(matchdata.TableTournamentRoster))

	rows := f.store.Rows(matchdata.TableMatchInformation)
	require.Len(t, rows, 1)
	assert.Equal(t, "tour-1", rows[0]["tournament_id"])

	events := f.publisher.all()
	require.Len(t, events, 1)
	assert.Equal(t, "tour-1", events[0].room)
	assert.Equal(t, EventTournamentUpdated, events[0].eventType)
	assert.Equal(t, []string{"tour-1"}, f.invalidator.tournaments())

	_, err = f.service.Normalize(ctx, "pubg", matchPayload(t, "m-2", 1, 1))
	require.NoError(t, err)
	assert.Len(t, f.publisher.all(), 1, "unlinked match must not publish")
	assert.Equal(t, []string{"tour-1", ""}, f.invalidator.tournaments())
}

func TestMatchImportService_DroppedColumnsAreReported(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, withoutColumn{table: matchdata.TableMatchPlayerStats, column: "raw_stats"})
	report, err := f.service.ImportPayloads(context.Background(), ImportPayloadsInput{
		Payloads: [][]byte{matchPayload(t, "m-1", 1, 2)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"match_player_stats.raw_stats"}, report.DroppedColumns)
	for _, row := range f.store.Rows(matchdata.TableMatchPlayerStats) {
		_, ok := row["raw_stats"]
		assert.False(t, ok)
	}
}

func TestMatchImportService_ImportDirKeepsFileOrder(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	dir := t.TempDir()

	batch := fmt.Sprintf("[%s,%s]", matchPayload(t, "m-b1", 1, 1), matchPayload(t, "m-b2", 1, 1))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(batch), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), matchPayload(t, "m-a", 1, 1), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.json"), []byte(`{"data":{}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	report, err := f.service.ImportDir(context.Background(), "pubg", dir)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Received)
	assert.Equal(t, []string{"m-a", "m-b1", "m-b2"}, report.MatchIDs)
	assert.Equal(t, 1, report.Skipped)

	stored, err := f.raw.ListIDs(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"m-a", "m-b1", "m-b2"}, stored)
	assert.Equal(t, []string{"pubg/m-a", "pubg/m-b1", "pubg/m-b2"}, f.archive.keys())
}

func TestMatchImportService_ImportDirMissing(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	_, err := f.service.ImportDir(context.Background(), "pubg", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMatchImportService_ImportMatchIDsFetchesMissing(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.raw.UpsertMany(ctx, []rawmatch.Match{{ID: "m-1", Payload: matchPayload(t, "m-1", 1, 1)}}))
	f.fetcher.payloads["m-2"] = matchPayload(t, "m-2", 1, 1)
	f.fetcher.errs["m-3"] = fmt.Errorf("%w: status 404", ErrNotFound)

	report, err := f.service.ImportMatchIDs(ctx, ImportMatchIDsInput{
		MatchIDs:     []string{" m-1 ", "m-2", "m-3", "m-1", ""},
		TournamentID: "tour-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Received)
	assert.Equal(t, []string{"m-1", "m-2"}, report.MatchIDs)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "m-3", report.Failures[0].Source)

	assert.Equal(t, []string{"m-2", "m-3"}, f.fetcher.requested())
	assert.Equal(t, "steam", f.fetcher.lastShard())

	linked, err := f.links.ListMatchIDs(ctx, "tour-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m-1", "m-2", "m-3"}, linked)

	stored, err := f.raw.GetByIDs(ctx, []string{"m-2"})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"pubg/m-2"}, f.archive.keys())
	assert.Equal(t, 2, f.store.Count(matchdata.TableTournamentRoster))
}

func TestMatchImportService_ImportMatchIDsRequiresIDs(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	_, err := f.service.ImportMatchIDs(context.Background(), ImportMatchIDsInput{MatchIDs: []string{" ", ""}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMatchImportService_BackfillRenormalizesStoredPayloads(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	ctx := context.Background()
	items := make([]rawmatch.Match, 0, backfillChunkSize+2)
	for i := 0; i < backfillChunkSize+2; i++ {
		id := fmt.Sprintf("m-%03d", i)
		items = append(items, rawmatch.Match{ID: id, Payload: matchPayload(t, id, 1, 1)})
	}
	require.NoError(t, f.raw.UpsertMany(ctx, items))

	report, err := f.service.Backfill(ctx, "pubg")
	require.NoError(t, err)
	assert.Equal(t, backfillChunkSize+2, report.Imported)
	assert.Equal(t, backfillChunkSize+2, f.store.Count(matchdata.TableMatchInformation))
	assert.Empty(t, f.fetcher.requested())
}

func TestMatchImportService_ImportTournament(t *testing.T) {
	t.Parallel()

	f := newImportFixture(t, nil)
	ctx := context.Background()
	_, err := f.links.LinkMatches(ctx, "tour-1", []string{"m-1"})
	require.NoError(t, err)
	f.fetcher.payloads["m-1"] = matchPayload(t, "m-1", 2, 1)

	report, err := f.service.ImportTournament(ctx, "pubg", "", "tour-1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)

	report, err = f.service.ImportTournament(ctx, "pubg", "", "tour-empty")
	require.NoError(t, err)
	assert.Zero(t, report.Received)
}

type fakeFetcher struct {
	mu       sync.Mutex
	payloads map[string][]byte
	errs     map[string]error
	calls    []string
	shard    string
}

func (f *fakeFetcher) FetchMatch(_ context.Context, shard, matchID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, matchID)
	f.shard = shard
	if err, ok := f.errs[matchID]; ok {
		return nil, err
	}
	raw, ok := f.payloads[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return raw, nil
}

func (f *fakeFetcher) FetchPlayerMatchIDs(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeFetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.calls...)
	sort.Strings(out)
	return out
}

func (f *fakeFetcher) lastShard() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shard
}

type fakeArchive struct {
	mu   sync.Mutex
	puts []string
}

func (a *fakeArchive) Put(_ context.Context, gameID, matchID string, _ []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.puts = append(a.puts, gameID+"/"+matchID)
	return nil
}

func (a *fakeArchive) keys() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.puts...)
}

type publishedEvent struct {
	room      string
	eventType string
	payload   any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, room, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{room: room, eventType: eventType, payload: payload})
	return nil
}

func (p *fakePublisher) all() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

type fakeInvalidator struct {
	mu  sync.Mutex
	ids []string
}

func (i *fakeInvalidator) MatchImported(_ context.Context, tournamentID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ids = append(i.ids, tournamentID)
}

func (i *fakeInvalidator) calls() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ids)
}

func (i *fakeInvalidator) tournaments() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.ids...)
}

// withoutColumn is the static contract minus one column.
type withoutColumn struct {
	table  string
	column string
}

func (w withoutColumn) Columns(ctx context.Context, table string) (map[string]struct{}, error) {
	cols, err := matchdata.StaticSchema{}.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if table == w.table {
		delete(cols, w.column)
	}
	return cols, nil
}

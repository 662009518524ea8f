package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/rawmatch"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
)

const backfillChunkSize = 50

// EventTournamentUpdated is published to a tournament's live room after one of its matches is normalized.
const EventTournamentUpdated = "tournament.updated"

// MatchFetcher reads match payloads from the external stats API.
type MatchFetcher interface {
	FetchMatch(ctx context.Context, shard, matchID string) ([]byte, error)
	FetchPlayerMatchIDs(ctx context.Context, shard, playerName string) ([]string, error)
}

// LivePublisher pushes an event to subscribers of one room.
type LivePublisher interface {
	Publish(ctx context.Context, room, eventType string, payload any) error
}

// MatchDataInvalidator drops read models derived from normalized rows.
type MatchDataInvalidator interface {
	MatchImported(ctx context.Context, tournamentID string)
}

type MatchImportDeps struct {
	RawMatches  rawmatch.Repository
	Links       tournament.MatchLinkRepository
	Store       matchdata.Store
	Columns     matchdata.ColumnSource
	Fetcher     MatchFetcher
	Archive     rawmatch.Archive
	Publisher   LivePublisher
	Invalidator MatchDataInvalidator
}

type MatchImportConfig struct {
	DefaultGameID string
	DefaultShard  string
	FetchWorkers  int
	DecodeWorkers int
}

type NormalizeResult struct {
	MatchID        string
	TournamentID   string
	RowsWritten    int
	DroppedColumns []string
}

type ImportFailure struct {
	Source  string
	MatchID string
	Reason  string
}

type ImportReport struct {
	Received       int
	Imported       int
	Skipped        int
	MatchIDs       []string
	Failures       []ImportFailure
	DroppedColumns []string
}

type ImportPayloadsInput struct {
	GameID   string
	Payloads [][]byte
	StoreRaw bool
}

type ImportMatchIDsInput struct {
	GameID       string
	Shard        string
	MatchIDs     []string
	TournamentID string
}

// payloadItem is one match payload waiting for normalization. A non-nil err skips it.
type payloadItem struct {
	source string
	raw    []byte
	err    error
}

type MatchImportService struct {
	deps   MatchImportDeps
	cfg    MatchImportConfig
	logger *logging.Logger

	warnMu sync.Mutex
	warned map[string]struct{}
}

func NewMatchImportService(deps MatchImportDeps, cfg MatchImportConfig, logger *logging.Logger) *MatchImportService {
	if logger == nil {
		logger = logging.Default()
	}
	if deps.Columns == nil {
		deps.Columns = matchdata.StaticSchema{}
	}
	cfg.DefaultGameID = matchdata.NormalizeGameID(cfg.DefaultGameID)
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 4
	}
	if cfg.DecodeWorkers <= 0 {
		cfg.DecodeWorkers = 4
	}

	return &MatchImportService{
		deps:   deps,
		cfg:    cfg,
		logger: logger.Named("import"),
		warned: make(map[string]struct{}),
	}
}

// Normalize flattens one payload and writes every row in a single transaction.
// A payload without a match id returns an error marked matchdata.ErrMalformedPayload
// and writes nothing; storage failures are wrapped in ErrPersistenceFailure.
func (s *MatchImportService) Normalize(ctx context.Context, gameID string, payload []byte) (NormalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.Normalize")
	defer span.End()

	gameID = s.gameID(gameID)
	doc, err := matchdata.Parse(payload)
	if err != nil {
		return NormalizeResult{}, err
	}
	matchID := strings.TrimSpace(doc.Data.ID)
	if matchID == "" {
		return NormalizeResult{}, fmt.Errorf("normalize payload: %w", matchdata.ErrMalformedPayload)
	}

	tournamentID, _, err := s.deps.Links.TournamentIDForMatch(ctx, matchID)
	if err != nil {
		return NormalizeResult{}, fmt.Errorf("%w: lookup tournament for match %s: %w", ErrPersistenceFailure, matchID, err)
	}

	rows, err := matchdata.Flatten(doc, gameID, tournamentID)
	if err != nil {
		return NormalizeResult{}, err
	}

	columns, err := s.resolveColumns(ctx, rows)
	if err != nil {
		return NormalizeResult{}, fmt.Errorf("%w: resolve columns for match %s: %w", ErrPersistenceFailure, matchID, err)
	}

	result := NormalizeResult{MatchID: matchID, TournamentID: tournamentID}
	dropped := make(map[string]struct{})
	err = s.deps.Store.WithinTx(ctx, func(ctx context.Context, w matchdata.Writer) error {
		written := 0
		for _, row := range rows {
			filtered, droppedCols, err := matchdata.FilterRow(row, columns[row.Table])
			if err != nil {
				return err
			}
			for _, col := range droppedCols {
				dropped[row.Table+"."+col] = struct{}{}
			}
			if err := w.Upsert(ctx, filtered); err != nil {
				return fmt.Errorf("upsert %s: %w", row.Table, err)
			}
			written++
		}
		result.RowsWritten = written
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return NormalizeResult{}, ctxErr
		}
		return NormalizeResult{}, fmt.Errorf("%w: write match %s: %w", ErrPersistenceFailure, matchID, err)
	}

	result.DroppedColumns = sortedKeys(dropped)
	s.warnDropped(ctx, matchID, result.DroppedColumns)
	s.afterCommit(ctx, matchID, tournamentID)
	return result, nil
}

// ImportPayloads splits array payloads, optionally stores them raw, then normalizes them in order.
func (s *MatchImportService) ImportPayloads(ctx context.Context, input ImportPayloadsInput) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.ImportPayloads")
	defer span.End()

	if len(input.Payloads) == 0 {
		return ImportReport{}, fmt.Errorf("%w: at least one payload is required", ErrInvalidInput)
	}

	items := make([]payloadItem, 0, len(input.Payloads))
	for i, raw := range input.Payloads {
		items = append(items, splitItems(fmt.Sprintf("payload[%d]", i), raw)...)
	}
	return s.importItems(ctx, s.gameID(input.GameID), items, input.StoreRaw)
}

// ImportDir imports every *.json file of dir in file name order. Files are read and split concurrently.
func (s *MatchImportService) ImportDir(ctx context.Context, gameID, dir string) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.ImportDir")
	defer span.End()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: read import dir: %v", ErrInvalidInput, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	type fileItems struct {
		index int
		items []payloadItem
	}
	p := pool.NewWithResults[fileItems]().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(s.cfg.DecodeWorkers)
	for i, name := range names {
		p.Go(func(ctx context.Context) (fileItems, error) {
			if err := ctx.Err(); err != nil {
				return fileItems{}, err
			}
			raw, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fileItems{}, fmt.Errorf("read %s: %w", name, err)
			}
			return fileItems{index: i, items: splitItems(name, raw)}, nil
		})
	}
	files, err := p.Wait()
	if err != nil {
		return ImportReport{}, fmt.Errorf("read import files: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].index < files[j].index })

	items := make([]payloadItem, 0, len(files))
	for _, f := range files {
		items = append(items, f.items...)
	}
	s.logger.InfoContext(ctx, "import dir loaded", "dir", dir, "files", len(names), "payloads", len(items))
	return s.importItems(ctx, s.gameID(gameID), items, true)
}

// ImportMatchIDs links the ids to a tournament (when given), fetches payloads that are not stored yet and
// normalizes every id in input order.
func (s *MatchImportService) ImportMatchIDs(ctx context.Context, input ImportMatchIDsInput) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.ImportMatchIDs")
	defer span.End()

	ids := tournament.CleanMatchIDs(input.MatchIDs)
	if len(ids) == 0 {
		return ImportReport{}, fmt.Errorf("%w: at least one match id is required", ErrInvalidInput)
	}
	gameID := s.gameID(input.GameID)

	if tournamentID := strings.TrimSpace(input.TournamentID); tournamentID != "" {
		if _, err := s.deps.Links.LinkMatches(ctx, tournamentID, ids); err != nil {
			return ImportReport{}, fmt.Errorf("%w: link matches to tournament %s: %w", ErrPersistenceFailure, tournamentID, err)
		}
	}

	stored, err := s.deps.RawMatches.GetByIDs(ctx, ids)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: load raw matches: %w", ErrPersistenceFailure, err)
	}
	payloads := make(map[string][]byte, len(ids))
	for _, m := range stored {
		payloads[m.ID] = m.Payload
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := payloads[id]; !ok {
			missing = append(missing, id)
		}
	}
	fetched, fetchErrs, err := s.fetchMissing(ctx, input.Shard, missing)
	if err != nil {
		return ImportReport{}, err
	}
	if len(fetched) > 0 {
		items := make([]rawmatch.Match, 0, len(fetched))
		for _, id := range missing {
			if raw, ok := fetched[id]; ok {
				items = append(items, rawmatch.Match{ID: id, Payload: raw})
				payloads[id] = raw
			}
		}
		if err := s.storeRaw(ctx, gameID, items); err != nil {
			return ImportReport{}, err
		}
	}

	work := make([]payloadItem, 0, len(ids))
	for _, id := range ids {
		if fetchErr, ok := fetchErrs[id]; ok {
			work = append(work, payloadItem{source: id, err: fetchErr})
			continue
		}
		work = append(work, payloadItem{source: id, raw: payloads[id]})
	}
	return s.importItems(ctx, gameID, work, false)
}

// ImportTournament re-imports every match linked to tournamentID.
func (s *MatchImportService) ImportTournament(ctx context.Context, gameID, shard, tournamentID string) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.ImportTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return ImportReport{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	ids, err := s.deps.Links.ListMatchIDs(ctx, tournamentID)
	if err != nil {
		return ImportReport{}, fmt.Errorf("list tournament matches: %w", err)
	}
	if len(ids) == 0 {
		return ImportReport{}, nil
	}
	return s.ImportMatchIDs(ctx, ImportMatchIDsInput{GameID: gameID, Shard: shard, MatchIDs: ids})
}

// Backfill re-normalizes every stored raw payload.
func (s *MatchImportService) Backfill(ctx context.Context, gameID string) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.Backfill")
	defer span.End()

	gameID = s.gameID(gameID)
	var report ImportReport
	after := ""
	for {
		ids, err := s.deps.RawMatches.ListIDs(ctx, after, backfillChunkSize)
		if err != nil {
			return report, fmt.Errorf("%w: list raw match ids: %w", ErrPersistenceFailure, err)
		}
		if len(ids) == 0 {
			break
		}
		after = ids[len(ids)-1]

		stored, err := s.deps.RawMatches.GetByIDs(ctx, ids)
		if err != nil {
			return report, fmt.Errorf("%w: load raw matches: %w", ErrPersistenceFailure, err)
		}
		items := make([]payloadItem, 0, len(stored))
		for _, m := range stored {
			items = append(items, payloadItem{source: m.ID, raw: m.Payload})
		}

		chunk, err := s.importItems(ctx, gameID, items, false)
		report.merge(chunk)
		if err != nil {
			return report, err
		}
		if len(ids) < backfillChunkSize {
			break
		}
	}

	s.logger.InfoContext(ctx, "backfill finished",
		"game_id", gameID,
		"imported", report.Imported,
		"skipped", report.Skipped,
	)
	return report, nil
}

// PlayerMatchIDs lists a player's recent match ids from the stats API.
func (s *MatchImportService) PlayerMatchIDs(ctx context.Context, shard, playerName string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchImportService.PlayerMatchIDs")
	defer span.End()

	if s.deps.Fetcher == nil {
		return nil, fmt.Errorf("%w: stats api is disabled", ErrDependencyUnavailable)
	}
	return s.deps.Fetcher.FetchPlayerMatchIDs(ctx, s.shard(shard), playerName)
}

func (s *MatchImportService) importItems(ctx context.Context, gameID string, items []payloadItem, storeRaw bool) (ImportReport, error) {
	report := ImportReport{Received: len(items)}

	if storeRaw {
		raws := make([]rawmatch.Match, 0, len(items))
		for _, item := range items {
			if item.err != nil {
				continue
			}
			id, err := matchdata.MatchID(item.raw)
			if err != nil {
				continue
			}
			raws = append(raws, rawmatch.Match{ID: id, Payload: item.raw})
		}
		if err := s.storeRaw(ctx, gameID, raws); err != nil {
			return report, err
		}
	}

	dropped := make(map[string]struct{})
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if item.err != nil {
			report.skip(item.source, "", item.err)
			s.logger.WarnContext(ctx, "payload skipped", "source", item.source, "error", item.err)
			continue
		}

		result, err := s.Normalize(ctx, gameID, item.raw)
		if err != nil {
			if matchdata.IsMalformed(err) {
				report.skip(item.source, result.MatchID, err)
				s.logger.WarnContext(ctx, "malformed payload skipped", "source", item.source, "error", err)
				continue
			}
			s.logger.ErrorContext(ctx, "import aborted", "source", item.source, "error", err)
			return report, err
		}

		report.Imported++
		report.MatchIDs = append(report.MatchIDs, result.MatchID)
		for _, col := range result.DroppedColumns {
			dropped[col] = struct{}{}
		}
	}
	report.DroppedColumns = sortedKeys(dropped)
	return report, nil
}

// fetchMissing downloads ids concurrently. Per-id failures are returned in the map and do not stop the run.
func (s *MatchImportService) fetchMissing(ctx context.Context, shard string, ids []string) (map[string][]byte, map[string]error, error) {
	fetched := make(map[string][]byte, len(ids))
	failures := make(map[string]error)
	if len(ids) == 0 {
		return fetched, failures, nil
	}
	if s.deps.Fetcher == nil {
		for _, id := range ids {
			failures[id] = fmt.Errorf("%w: match %s is not stored and the stats api is disabled", ErrNotFound, id)
		}
		return fetched, failures, nil
	}

	workers, err := ants.NewPool(min(s.cfg.FetchWorkers, len(ids)))
	if err != nil {
		return nil, nil, fmt.Errorf("create fetch worker pool: %w", err)
	}
	defer workers.Release()

	shard = s.shard(shard)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, id := range ids {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			raw, err := s.deps.Fetcher.FetchMatch(ctx, shard, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[id] = err
				return
			}
			fetched[id] = raw
		}); err != nil {
			wg.Done()
			return nil, nil, fmt.Errorf("submit fetch task: %w", err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	for id, err := range failures {
		s.logger.WarnContext(ctx, "fetch match failed", "match_id", id, "error", err)
	}
	return fetched, failures, nil
}

func (s *MatchImportService) storeRaw(ctx context.Context, gameID string, items []rawmatch.Match) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.deps.RawMatches.UpsertMany(ctx, items); err != nil {
		return fmt.Errorf("%w: store raw matches: %w", ErrPersistenceFailure, err)
	}
	if s.deps.Archive == nil {
		return nil
	}
	for _, item := range items {
		if err := s.deps.Archive.Put(ctx, gameID, item.ID, item.Payload); err != nil {
			s.logger.WarnContext(ctx, "archive raw match failed", "match_id", item.ID, "error", err)
		}
	}
	return nil
}

func (s *MatchImportService) resolveColumns(ctx context.Context, rows matchdata.Rows) (map[string]map[string]struct{}, error) {
	out := make(map[string]map[string]struct{})
	for _, row := range rows {
		if _, ok := out[row.Table]; ok {
			continue
		}
		cols, err := s.deps.Columns.Columns(ctx, row.Table)
		if err != nil {
			return nil, err
		}
		out[row.Table] = cols
	}
	return out, nil
}

// warnDropped logs each table.column once per service lifetime.
func (s *MatchImportService) warnDropped(ctx context.Context, matchID string, dropped []string) {
	if len(dropped) == 0 {
		return
	}
	s.warnMu.Lock()
	fresh := make([]string, 0, len(dropped))
	for _, col := range dropped {
		if _, ok := s.warned[col]; ok {
			continue
		}
		s.warned[col] = struct{}{}
		fresh = append(fresh, col)
	}
	s.warnMu.Unlock()

	if len(fresh) > 0 {
		s.logger.WarnContext(ctx, "columns missing from destination tables were dropped",
			"match_id", matchID,
			"columns", fresh,
			"error", matchdata.ErrSchemaMismatch,
		)
	}
}

func (s *MatchImportService) afterCommit(ctx context.Context, matchID, tournamentID string) {
	if s.deps.Invalidator != nil {
		s.deps.Invalidator.MatchImported(ctx, tournamentID)
	}
	if s.deps.Publisher == nil || tournamentID == "" {
		return
	}
	if err := s.deps.Publisher.Publish(ctx, tournamentID, EventTournamentUpdated, map[string]string{"match_id": matchID}); err != nil {
		s.logger.WarnContext(ctx, "publish tournament update failed", "tournament_id", tournamentID, "error", err)
	}
}

func (s *MatchImportService) gameID(gameID string) string {
	if strings.TrimSpace(gameID) == "" {
		return s.cfg.DefaultGameID
	}
	return matchdata.NormalizeGameID(gameID)
}

func (s *MatchImportService) shard(shard string) string {
	if shard = strings.TrimSpace(shard); shard != "" {
		return shard
	}
	return s.cfg.DefaultShard
}

func splitItems(source string, raw []byte) []payloadItem {
	parts, err := matchdata.SplitPayloads(raw)
	if err != nil {
		return []payloadItem{{source: source, err: err}}
	}
	if len(parts) == 1 {
		return []payloadItem{{source: source, raw: parts[0]}}
	}
	out := make([]payloadItem, 0, len(parts))
	for i, part := range parts {
		out = append(out, payloadItem{source: fmt.Sprintf("%s[%d]", source, i), raw: part})
	}
	return out
}

func (r *ImportReport) skip(source, matchID string, err error) {
	r.Skipped++
	r.Failures = append(r.Failures, ImportFailure{Source: source, MatchID: matchID, Reason: err.Error()})
}

func (r *ImportReport) merge(other ImportReport) {
	r.Received += other.Received
	r.Imported += other.Imported
	r.Skipped += other.Skipped
	r.MatchIDs = append(r.MatchIDs, other.MatchIDs...)
	r.Failures = append(r.Failures, other.Failures...)

	set := make(map[string]struct{}, len(r.DroppedColumns)+len(other.DroppedColumns))
	for _, col := range r.DroppedColumns {
		set[col] = struct{}{}
	}
	for _, col := range other.DroppedColumns {
		set[col] = struct{}{}
	}
	r.DroppedColumns = sortedKeys(set)
}

// IsPersistenceFailure reports whether an import run was aborted by storage.
func IsPersistenceFailure(err error) bool {
	return errors.Is(err, ErrPersistenceFailure)
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

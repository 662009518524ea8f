package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/account/jwtauth"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/repository/memory"
	participantmock "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/mocks/domain/participant"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

const testJobToken = "job-token"

type routerFixture struct {
	router http.Handler
	store  *memory.MatchDataStore
	raw    *memory.RawMatchRepository
	links  *memory.TournamentMatchRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	tournaments := memory.NewTournamentRepository([]tournament.Tournament{
		{ID: "t-1", GameID: "pubg", EventType: tournament.EventTournament, Name: "Spring Cup", Status: tournament.StatusOngoing},
		{ID: "s-1", GameID: "pubg", EventType: tournament.EventScrim, Name: "Weekly Scrim", Status: tournament.StatusUpcoming},
	})
	links := memory.NewTournamentMatchRepository()
	store := memory.NewMatchDataStore()
	raw := memory.NewRawMatchRepository()

	jwt, err := jwtauth.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	logger := logging.NewNop()
	imports := usecase.NewMatchImportService(usecase.MatchImportDeps{
		RawMatches: raw,
		Links:      links,
		Store:      store,
	}, usecase.MatchImportConfig{DefaultGameID: "pubg", DefaultShard: "steam"}, logger)

	handler := NewHandler(Services{
		Tournaments: usecase.NewTournamentService(tournaments, links, participantmock.NewRepository(t), idgen.NewUUIDGenerator("trn_")),
		Imports:     imports,
		Jobs:        usecase.NewJobService(tournaments, imports, logger),
		AdminAuth:   usecase.NewAdminAuthService(usecase.AdminCredentials{Username: "admin", Password: "secret"}, jwt),
	}, nil, logger)

	return &routerFixture{
		router: NewRouter(handler, jwt, logger, true, []string{"*"}, testJobToken),
		store:  store,
		raw:    raw,
		links:  links,
	}
}

func (f *routerFixture) do(t *testing.T, method, path string, body []byte, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func (f *routerFixture) login(t *testing.T) map[string]string {
	t.Helper()

	rec, body := f.do(t, http.MethodPost, "/api/admin/login", []byte(`{"username":"admin","password":"secret"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	return map[string]string{"Authorization": "Bearer " + data["access_token"].(string)}
}

func minimalMatch(t *testing.T, matchID string) []byte {
	t.Helper()

	raw, err := sonic.Marshal(map[string]any{
		"data": map[string]any{
			"type":       "match",
			"id":         matchID,
			"attributes": map[string]any{"mapName": "Baltic_Main", "gameMode": "squad", "duration": 1700},
		},
		"included": []any{
			map[string]any{
				"type":       "participant",
				"id":         matchID + "-p1",
				"attributes": map[string]any{"stats": map[string]any{"playerId": "account.1", "name": "alpha", "kills": 3}},
			},
			map[string]any{
				"type":       "roster",
				"id":         matchID + "-r1",
				"attributes": map[string]any{"won": "true", "stats": map[string]any{"rank": 1, "teamId": 7}},
				"relationships": map[string]any{
					"participants": map[string]any{"data": []any{map[string]any{"type": "participant", "id": matchID + "-p1"}}},
				},
			},
		},
	})
	require.NoError(t, err)
	return raw
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec, body := f.do(t, http.MethodGet, "/healthz", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", body["apiVersion"])
}

func TestRouter_PublicTournamentsExcludeScrims(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rec, body := f.do(t, http.MethodGet, "/api/tournaments", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := body["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "t-1", items[0].(map[string]any)["tournament_id"])

	rec, _ = f.do(t, http.MethodGet, "/api/scrims/t-1", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/tournaments?sort=-unknown", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AdminRoutesRequireBearerToken(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rec, body := f.do(t, http.MethodPost, "/api/admin/tournaments", []byte(`{"name":"x"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "UNAUTHENTICATED", errBody["status"])

	rec, _ = f.do(t, http.MethodPost, "/api/admin/login", []byte(`{"username":"admin","password":"nope"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminCreateTournamentLinksCustomMatches(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	auth := f.login(t)

	payload := []byte(`{"name":"Autumn Cup","mode":"squad","custom_match_ids":["m-2"," m-1 ","m-2"]}`)
	rec, body := f.do(t, http.MethodPost, "/api/admin/tournaments", payload, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := body["data"].(map[string]any)
	id := created["tournament_id"].(string)
	assert.Equal(t, "tournament", created["event_type"])
	assert.Equal(t, "pubg", created["game_id"])

	rec, body = f.do(t, http.MethodGet, "/api/tournaments/"+id+"/matches", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"m-2", "m-1"}, body["data"].(map[string]any)["match_ids"])

	rec, _ = f.do(t, http.MethodPost, "/api/admin/tournaments", []byte(`{"name":"x","unexpected":true}`), auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AdminImportSkipsMalformedPayloads(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	auth := f.login(t)

	good := minimalMatch(t, "m-1")
	body := []byte("[" + string(good) + `,{"data":{"type":"match"}}]`)
	rec, resp := f.do(t, http.MethodPost, "/api/admin/matches/import", body, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	report := resp["data"].(map[string]any)
	assert.EqualValues(t, 2, report["received"])
	assert.EqualValues(t, 1, report["imported"])
	assert.EqualValues(t, 1, report["skipped"])
	assert.Equal(t, []any{"m-1"}, report["match_ids"])
	assert.Equal(t, 1, f.store.Count(matchdata.TableMatchInformation))
	assert.Equal(t, 1, f.store.Count(matchdata.TableMatchRosters))

	rec, _ = f.do(t, http.MethodPost, "/api/admin/matches/import", nil, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_InternalJobsRequireToken(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/api/internal/jobs/backfill", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := f.do(t, http.MethodPost, "/api/internal/jobs/backfill", nil, map[string]string{"X-Internal-Job-Token": testJobToken})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "backfill", body["data"].(map[string]any)["mode"])
}

func TestRouter_PlayerMatchesValidation(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/api/pubg/player-matches", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/pubg/player-matches?name=alpha", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_LiveSocketWithoutHub(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/api/tournaments/t-1/live/ws", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/playerstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/teamstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerStats")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	q := r.URL.Query()
	items, err := h.stats.PlayerStats(ctx, playerstats.Filter{
		GameID:       strings.TrimSpace(q.Get("game_id")),
		TournamentID: strings.TrimSpace(q.Get("tournament_id")),
		Search:       strings.TrimSpace(q.Get("search")),
		Limit:        limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list player stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerStatsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerStatsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStats")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	q := r.URL.Query()
	items, err := h.stats.TeamStats(ctx, teamstats.Filter{
		GameID:       strings.TrimSpace(q.Get("game_id")),
		TournamentID: strings.TrimSpace(q.Get("tournament_id")),
		Limit:        limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list team stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamStatsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamStatsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPlayerMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerMatches")
	defer span.End()

	q := r.URL.Query()
	name := strings.TrimSpace(q.Get("name"))
	if name == "" {
		writeError(ctx, w, fmt.Errorf("%w: name is required", usecase.ErrInvalidInput))
		return
	}

	ids, err := h.imports.PlayerMatchIDs(ctx, strings.TrimSpace(q.Get("shard")), name)
	if err != nil {
		h.logger.WarnContext(ctx, "list player matches failed", "player_name", name, "error", err)
		writeError(ctx, w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"player_name": name,
		"match_ids":   ids,
	})
}

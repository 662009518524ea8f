package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	h.listEvents(ctx, w, r, tournament.EventTournament)
}

func (h *Handler) ListScrims(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScrims")
	defer span.End()

	h.listEvents(ctx, w, r, tournament.EventScrim)
}

func (h *Handler) ListFeaturedTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeaturedTournaments")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.tournaments.ListFeatured(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list featured tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentsToDTO(items))
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	h.getEvent(ctx, w, r, tournament.EventTournament)
}

func (h *Handler) GetScrim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScrim")
	defer span.End()

	h.getEvent(ctx, w, r, tournament.EventScrim)
}

func (h *Handler) GetTournamentLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentLive")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("id"))
	board, err := h.stats.Leaderboard(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get live leaderboard failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) ListTournamentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentMatches")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("id"))
	ids, err := h.tournaments.ListMatchIDs(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournament matches failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournament_id": tournamentID,
		"match_ids":     ids,
	})
}

func (h *Handler) ListTournamentParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentParticipants")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("id"))
	items, err := h.tournaments.ListParticipants(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournament participants failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantsToDTO(items))
}

func (h *Handler) AdminListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListTournaments")
	defer span.End()

	h.listEvents(ctx, w, r, tournament.EventTournament)
}

func (h *Handler) AdminCreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateTournament")
	defer span.End()

	h.createEvent(ctx, w, r, tournament.EventTournament)
}

func (h *Handler) AdminUpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateTournament")
	defer span.End()

	h.updateEvent(ctx, w, r, tournament.EventTournament)
}

func (h *Handler) AdminDeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteTournament")
	defer span.End()

	h.deleteEvent(ctx, w, r, tournament.EventTournament)
}

func (h *Handler) AdminListScrims(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListScrims")
	defer span.End()

	h.listEvents(ctx, w, r, tournament.EventScrim)
}

func (h *Handler) AdminCreateScrim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateScrim")
	defer span.End()

	h.createEvent(ctx, w, r, tournament.EventScrim)
}

func (h *Handler) AdminUpdateScrim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateScrim")
	defer span.End()

	h.updateEvent(ctx, w, r, tournament.EventScrim)
}

func (h *Handler) AdminDeleteScrim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteScrim")
	defer span.End()

	h.deleteEvent(ctx, w, r, tournament.EventScrim)
}

func (h *Handler) AdminLinkTournamentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminLinkTournamentMatches")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("id"))
	var req linkMatchesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	linked, err := h.tournaments.LinkMatches(ctx, tournamentID, req.MatchIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "link tournament matches failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournament_id": tournamentID,
		"linked":        linked,
	})
}

func (h *Handler) listEvents(ctx context.Context, w http.ResponseWriter, r *http.Request, eventType tournament.EventType) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	filter.EventType = eventType

	items, err := h.tournaments.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list events failed", "event_type", eventType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentsToDTO(items))
}

func (h *Handler) getEvent(ctx context.Context, w http.ResponseWriter, r *http.Request, eventType tournament.EventType) {
	id := strings.TrimSpace(r.PathValue("id"))
	item, err := h.tournaments.Get(ctx, eventType, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get event failed", "event_type", eventType, "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) createEvent(ctx context.Context, w http.ResponseWriter, r *http.Request, eventType tournament.EventType) {
	var req tournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournaments.Create(ctx, eventType, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "create event failed", "event_type", eventType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(item))
}

func (h *Handler) updateEvent(ctx context.Context, w http.ResponseWriter, r *http.Request, eventType tournament.EventType) {
	var req tournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.toDomain()
	input.ID = strings.TrimSpace(r.PathValue("id"))
	item, err := h.tournaments.Update(ctx, eventType, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update event failed", "event_type", eventType, "id", input.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) deleteEvent(ctx context.Context, w http.ResponseWriter, r *http.Request, eventType tournament.EventType) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := h.tournaments.Delete(ctx, eventType, id); err != nil {
		h.logger.WarnContext(ctx, "delete event failed", "event_type", eventType, "id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": id})
}

func parseListFilter(r *http.Request) (tournament.ListFilter, error) {
	q := r.URL.Query()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return tournament.ListFilter{}, err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return tournament.ListFilter{}, err
	}
	featured, err := queryBool(r, "featured")
	if err != nil {
		return tournament.ListFilter{}, err
	}
	sort, err := tournament.ParseSort(q.Get("sort"))
	if err != nil {
		return tournament.ListFilter{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return tournament.ListFilter{
		Status:       tournament.Status(strings.TrimSpace(q.Get("status"))),
		Registration: tournament.RegistrationStatus(strings.TrimSpace(q.Get("registration"))),
		Mode:         tournament.Mode(strings.TrimSpace(q.Get("mode"))),
		Search:       strings.TrimSpace(q.Get("search")),
		Featured:     featured,
		Sort:         sort,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

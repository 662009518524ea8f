package httpapi

import (
	"net/http"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/announcement"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/player"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/team"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	q := r.URL.Query()
	items, err := h.teams.List(ctx, team.Filter{
		GameID: strings.TrimSpace(q.Get("game_id")),
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AdminCreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teams.Save(ctx, team.Team{
		GameID:    req.GameID,
		ID:        req.TeamID,
		Name:      req.TeamName,
		ShortName: req.ShortName,
		LogoURL:   req.LogoURL,
		Region:    req.Region,
	}, true)
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) AdminUpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID, teamID := r.PathValue("gameID"), r.PathValue("id")
	item, err := h.teams.Save(ctx, team.Team{
		GameID:    gameID,
		ID:        teamID,
		Name:      req.TeamName,
		ShortName: req.ShortName,
		LogoURL:   req.LogoURL,
		Region:    req.Region,
	}, false)
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "game_id", gameID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) AdminDeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteTeam")
	defer span.End()

	gameID, teamID := r.PathValue("gameID"), r.PathValue("id")
	if err := h.teams.Delete(ctx, gameID, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "game_id", gameID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": teamID})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	q := r.URL.Query()
	items, err := h.players.List(ctx, player.Filter{
		GameID: strings.TrimSpace(q.Get("game_id")),
		TeamID: strings.TrimSpace(q.Get("team_id")),
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AdminCreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.players.Save(ctx, player.Player{
		GameID:    req.GameID,
		ID:        req.PlayerID,
		Name:      req.PlayerName,
		TeamID:    req.TeamID,
		Country:   req.Country,
		AvatarURL: req.AvatarURL,
	}, true)
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) AdminUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID, playerID := r.PathValue("gameID"), r.PathValue("id")
	item, err := h.players.Save(ctx, player.Player{
		GameID:    gameID,
		ID:        playerID,
		Name:      req.PlayerName,
		TeamID:    req.TeamID,
		Country:   req.Country,
		AvatarURL: req.AvatarURL,
	}, false)
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "game_id", gameID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) AdminDeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeletePlayer")
	defer span.End()

	gameID, playerID := r.PathValue("gameID"), r.PathValue("id")
	if err := h.players.Delete(ctx, gameID, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "game_id", gameID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": playerID})
}

func (h *Handler) AdminListParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminListParticipants")
	defer span.End()

	tournamentID := strings.TrimSpace(r.URL.Query().Get("tournament_id"))
	items, err := h.participants.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list participants failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantsToDTO(items))
}

func (h *Handler) AdminCreateParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateParticipant")
	defer span.End()

	var req participantRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.participants.Create(ctx, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "create participant failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, participantToDTO(item))
}

func (h *Handler) AdminUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateParticipant")
	defer span.End()

	var req participantRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.toDomain()
	input.ID = strings.TrimSpace(r.PathValue("id"))
	item, err := h.participants.Update(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update participant failed", "participant_id", input.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(item))
}

func (h *Handler) AdminDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteParticipant")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("id"))
	if err := h.participants.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete participant failed", "participant_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAnnouncements")
	defer span.End()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	q := r.URL.Query()
	items, err := h.announcements.List(ctx, announcement.Filter{
		Type:         announcement.Type(strings.TrimSpace(q.Get("type"))),
		TournamentID: strings.TrimSpace(q.Get("tournament_id")),
		Limit:        limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list announcements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]announcementDTO, 0, len(items))
	for _, item := range items {
		out = append(out, announcementToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AdminCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateAnnouncement")
	defer span.End()

	var req announcementRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.announcements.Create(ctx, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "create announcement failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, announcementToDTO(item))
}

func (h *Handler) AdminUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateAnnouncement")
	defer span.End()

	var req announcementRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.toDomain()
	input.ID = strings.TrimSpace(r.PathValue("id"))
	item, err := h.announcements.Update(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update announcement failed", "announcement_id", input.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, announcementToDTO(item))
}

func (h *Handler) AdminDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteAnnouncement")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("id"))
	if err := h.announcements.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete announcement failed", "announcement_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *Handler) ListWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWinners")
	defer span.End()

	items, err := h.winners.List(ctx, r.URL.Query().Get("tournament_id"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list winners failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]winnerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, winnerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AdminCreateWinner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreateWinner")
	defer span.End()

	var req winnerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.winners.Create(ctx, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "create winner failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, winnerToDTO(item))
}

func (h *Handler) AdminUpdateWinner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdateWinner")
	defer span.End()

	var req winnerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.toDomain()
	input.ID = strings.TrimSpace(r.PathValue("id"))
	item, err := h.winners.Update(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update winner failed", "winner_id", input.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, winnerToDTO(item))
}

func (h *Handler) AdminDeleteWinner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDeleteWinner")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("id"))
	if err := h.winners.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete winner failed", "winner_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": id})
}

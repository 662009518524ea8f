package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /api/tournaments/{id}", handler.GetTournament)
	mux.HandleFunc("GET /api/tournaments/{id}/live", handler.GetTournamentLive)
	mux.HandleFunc("GET /api/tournaments/{id}/live/ws", handler.TournamentLiveSocket)
	mux.HandleFunc("GET /api/tournaments/{id}/matches", handler.ListTournamentMatches)
	mux.HandleFunc("GET /api/tournaments/{id}/participants", handler.ListTournamentParticipants)
	mux.HandleFunc("GET /api/featured-tournaments", handler.ListFeaturedTournaments)
	mux.HandleFunc("GET /api/scrims", handler.ListScrims)
	mux.HandleFunc("GET /api/scrims/{id}", handler.GetScrim)
	mux.HandleFunc("GET /api/announcements", handler.ListAnnouncements)
	mux.HandleFunc("GET /api/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/winners", handler.ListWinners)
	mux.HandleFunc("GET /api/player-stats", handler.ListPlayerStats)
	mux.HandleFunc("GET /api/team-stats", handler.ListTeamStats)
	mux.HandleFunc("GET /api/pubg/player-matches", handler.ListPlayerMatches)
	mux.HandleFunc("POST /api/admin/login", handler.AdminLogin)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAdminEventRoutes(mux, handler, verifier)
	registerAdminCatalogRoutes(mux, handler, verifier)
	registerAdminImportRoutes(mux, handler, verifier)
}

func registerAdminEventRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /api/admin/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.AdminListTournaments)))
	mux.Handle("POST /api/admin/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreateTournament)))
	mux.Handle("PUT /api/admin/tournaments/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminUpdateTournament)))
	mux.Handle("DELETE /api/admin/tournaments/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminDeleteTournament)))
	mux.Handle("POST /api/admin/tournaments/{id}/matches", RequireAuth(verifier, http.HandlerFunc(handler.AdminLinkTournamentMatches)))

	mux.Handle("GET /api/admin/scrims", RequireAuth(verifier, http.HandlerFunc(handler.AdminListScrims)))
	mux.Handle("POST /api/admin/scrims", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreateScrim)))
	mux.Handle("PUT /api/admin/scrims/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminUpdateScrim)))
	mux.Handle("DELETE /api/admin/scrims/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminDeleteScrim)))
}

func registerAdminCatalogRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /api/admin/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListTeams)))
	mux.Handle("POST /api/admin/teams", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreateTeam)))
	mux.Handle("PUT /api/admin/teams/{gameID}/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminUpdateTeam)))
	mux.Handle("DELETE /api/admin/teams/{gameID}/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminDeleteTeam)))

	mux.Handle("GET /api/admin/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /api/admin/players", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreatePlayer)))
	mux.Handle("PUT /api/admin/players/{gameID}/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminUpdatePlayer)))
	mux.Handle("DELETE /api/admin/players/{gameID}/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminDeletePlayer)))

	mux.Handle("GET /api/admin/participants", RequireAuth(verifier, http.HandlerFunc(handler.AdminListParticipants)))
	mux.Handle("POST /api/admin/participants", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreateParticipant)))
	mux.Handle("PUT /api/admin/participants/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminUpdateParticipant)))
	mux.Handle("DELETE /api/admin/participants/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminDeleteParticipant)))

	mux.Handle("GET /api/admin/announcements", RequireAuth(verifier, http.HandlerFunc(handler.ListAnnouncements)))
	mux.Handle("POST /api/admin/announcements", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreateAnnouncement)))
	mux.Handle("PUT /api/admin/announcements/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminUpdateAnnouncement)))
	mux.Handle("DELETE /api/admin/announcements/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminDeleteAnnouncement)))

	mux.Handle("GET /api/admin/winners", RequireAuth(verifier, http.HandlerFunc(handler.ListWinners)))
	mux.Handle("POST /api/admin/winners", RequireAuth(verifier, http.HandlerFunc(handler.AdminCreateWinner)))
	mux.Handle("PUT /api/admin/winners/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminUpdateWinner)))
	mux.Handle("DELETE /api/admin/winners/{id}", RequireAuth(verifier, http.HandlerFunc(handler.AdminDeleteWinner)))
}

func registerAdminImportRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /api/admin/matches/import", RequireAuth(verifier, http.HandlerFunc(handler.AdminImportMatches)))
	mux.Handle("POST /api/admin/matches/import-ids", RequireAuth(verifier, http.HandlerFunc(handler.AdminImportMatchIDs)))
	mux.Handle("POST /api/admin/matches/backfill", RequireAuth(verifier, http.HandlerFunc(handler.AdminBackfillMatches)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /api/internal/jobs/backfill", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBackfillJob)))
	mux.Handle("POST /api/internal/jobs/import-tournament", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunTournamentImportJob)))
}

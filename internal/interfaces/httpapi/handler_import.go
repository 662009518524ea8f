package httpapi

import (
	"net/http"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

// AdminImportMatches accepts one match payload or a JSON array of them as the raw body.
func (h *Handler) AdminImportMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminImportMatches")
	defer span.End()

	body, err := readBody(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	storeRaw := true
	if v, err := queryBool(r, "store_raw"); err != nil {
		writeError(ctx, w, err)
		return
	} else if v != nil {
		storeRaw = *v
	}

	report, err := h.imports.ImportPayloads(ctx, usecase.ImportPayloadsInput{
		GameID:   strings.TrimSpace(r.URL.Query().Get("game_id")),
		Payloads: [][]byte{body},
		StoreRaw: storeRaw,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "import match payloads failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importReportToDTO(report))
}

func (h *Handler) AdminImportMatchIDs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminImportMatchIDs")
	defer span.End()

	var req importMatchIDsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.imports.ImportMatchIDs(ctx, usecase.ImportMatchIDsInput{
		GameID:       req.GameID,
		Shard:        req.Shard,
		MatchIDs:     req.MatchIDs,
		TournamentID: req.TournamentID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "import match ids failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importReportToDTO(report))
}

func (h *Handler) AdminBackfillMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminBackfillMatches")
	defer span.End()

	var req backfillRequest
	if r.ContentLength > 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	report, err := h.imports.Backfill(ctx, req.GameID)
	if err != nil {
		h.logger.ErrorContext(ctx, "backfill matches failed", "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importReportToDTO(report))
}

func (h *Handler) RunBackfillJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfillJob")
	defer span.End()

	var req internalJobRequest
	if r.ContentLength > 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.jobs.RunBackfill(ctx, usecase.JobSyncInput{GameID: req.GameID})
	if err != nil {
		h.logger.ErrorContext(ctx, "backfill job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunTournamentImportJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunTournamentImportJob")
	defer span.End()

	var req internalJobRequest
	if r.ContentLength > 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.jobs.RunTournamentImport(ctx, usecase.JobSyncInput{
		GameID:       req.GameID,
		Shard:        req.Shard,
		TournamentID: req.TournamentID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "tournament import job failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

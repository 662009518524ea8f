package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

// TournamentLiveSocket subscribes the caller to the tournament's update room.
// The tournament must exist; after the upgrade the hub owns the connection.
func (h *Handler) TournamentLiveSocket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TournamentLiveSocket")
	defer span.End()

	if h.live == nil {
		writeError(ctx, w, fmt.Errorf("%w: live updates are disabled", usecase.ErrDependencyUnavailable))
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("id"))
	if _, err := h.tournaments.Get(ctx, "", tournamentID); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.live.Serve(w, r, tournamentID); err != nil {
		// the upgrader already replied to the client
		h.logger.WarnContext(ctx, "live socket upgrade failed", "tournament_id", tournamentID, "error", err)
	}
}

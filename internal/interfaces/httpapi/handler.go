package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

const maxImportBodyBytes = 32 << 20

// LiveRooms upgrades a request into a subscription on one tournament room.
type LiveRooms interface {
	Serve(w http.ResponseWriter, r *http.Request, room string) error
}

type Services struct {
	Tournaments   *usecase.TournamentService
	Teams         *usecase.TeamService
	Players       *usecase.PlayerService
	Participants  *usecase.ParticipantService
	Announcements *usecase.AnnouncementService
	Winners       *usecase.WinnerService
	Stats         *usecase.StatsService
	Imports       *usecase.MatchImportService
	Jobs          *usecase.JobService
	AdminAuth     *usecase.AdminAuthService
}

type Handler struct {
	tournaments   *usecase.TournamentService
	teams         *usecase.TeamService
	players       *usecase.PlayerService
	participants  *usecase.ParticipantService
	announcements *usecase.AnnouncementService
	winners       *usecase.WinnerService
	stats         *usecase.StatsService
	imports       *usecase.MatchImportService
	jobs          *usecase.JobService
	adminAuth     *usecase.AdminAuthService
	live          LiveRooms
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(services Services, live LiveRooms, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournaments:   services.Tournaments,
		teams:         services.Teams,
		players:       services.Players,
		participants:  services.Participants,
		announcements: services.Announcements,
		winners:       services.Winners,
		stats:         services.Stats,
		imports:       services.Imports,
		jobs:          services.Jobs,
		adminAuth:     services.AdminAuth,
		live:          live,
		logger:        logger.Named("http"),
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// readBody reads a raw request body, used by the import endpoint that accepts opaque payloads.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
	}
	return body, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}

package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/external/pubg"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/config"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/leaderboard"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/matchdata"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/player"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/playerstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/rawmatch"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/team"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/teamstats"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/domain/tournament"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/account/jwtauth"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/archive"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/realtime"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/repository/cache"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/infrastructure/repository/postgres"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/interfaces/httpapi"
	basecache "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/cache"
	idgen "github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/id"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

// ImportOptions carries the live hooks the HTTP server attaches to imports.
// The command line importer leaves both empty.
type ImportOptions struct {
	Publisher   usecase.LivePublisher
	Invalidator usecase.MatchDataInvalidator
}

// NewMatchImportService wires the normalization pipeline against Postgres.
func NewMatchImportService(
	ctx context.Context,
	cfg config.Config,
	db *sqlx.DB,
	logger *logging.Logger,
	opts ImportOptions,
) (*usecase.MatchImportService, error) {
	var columns matchdata.ColumnSource = matchdata.StaticSchema{}
	if cfg.SchemaIntrospectionEnabled {
		columns = postgres.NewColumnIntrospector(db, basecache.NewStore(cfg.CacheTTL))
		logger.Warn("schema introspection enabled, columns are read from information_schema")
	}

	var fetcher usecase.MatchFetcher
	if cfg.PUBGEnabled {
		fetcher = pubg.NewClient(pubg.ClientConfig{
			BaseURL:        cfg.PUBGBaseURL,
			APIKey:         cfg.PUBGAPIKey,
			DefaultShard:   cfg.PUBGDefaultShard,
			Timeout:        cfg.PUBGTimeout,
			MaxRetries:     cfg.PUBGMaxRetries,
			Logger:         logger,
			CircuitBreaker: cfg.PUBGCircuit,
		})
	}

	var rawArchive rawmatch.Archive
	if cfg.ArchiveEnabled {
		s3Archive, err := archive.NewS3Archive(ctx, archive.Config{
			Bucket:          cfg.ArchiveBucket,
			Prefix:          cfg.ArchivePrefix,
			Endpoint:        cfg.ArchiveEndpoint,
			Region:          cfg.ArchiveRegion,
			AccessKeyID:     cfg.ArchiveAccessKeyID,
			SecretAccessKey: cfg.ArchiveSecretAccessKey,
			UsePathStyle:    cfg.ArchiveUsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("build raw archive: %w", err)
		}
		rawArchive = s3Archive
	}

	deps := usecase.MatchImportDeps{
		RawMatches:  postgres.NewRawMatchRepository(db),
		Links:       postgres.NewTournamentMatchRepository(db),
		Store:       postgres.NewMatchDataStore(db),
		Columns:     columns,
		Fetcher:     fetcher,
		Archive:     rawArchive,
		Publisher:   opts.Publisher,
		Invalidator: opts.Invalidator,
	}

	return usecase.NewMatchImportService(deps, usecase.MatchImportConfig{
		DefaultGameID: cfg.ImportDefaultGameID,
		DefaultShard:  cfg.PUBGDefaultShard,
		FetchWorkers:  cfg.ImportFetchWorkers,
		DecodeWorkers: cfg.ImportDecodeWorkers,
	}, logger), nil
}

// NewHTTPServer builds the API server. The returned hub must be run by the caller.
func NewHTTPServer(ctx context.Context, cfg config.Config, db *sqlx.DB, logger *logging.Logger) (*http.Server, *realtime.Hub, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		tournamentRepo  tournament.Repository  = postgres.NewTournamentRepository(db)
		teamRepo        team.Repository        = postgres.NewTeamRepository(db)
		playerRepo      player.Repository      = postgres.NewPlayerRepository(db)
		playerStatsRepo playerstats.Repository = postgres.NewPlayerStatsRepository(db)
		teamStatsRepo   teamstats.Repository   = postgres.NewTeamStatsRepository(db)
		leaderboardRepo leaderboard.Repository = postgres.NewLeaderboardRepository(db)
		invalidator     usecase.MatchDataInvalidator
	)
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		tournamentRepo = cache.NewTournamentRepository(tournamentRepo, store)
		teamRepo = cache.NewTeamRepository(teamRepo, store)
		playerRepo = cache.NewPlayerRepository(playerRepo, store)
		playerStatsRepo = cache.NewPlayerStatsRepository(playerStatsRepo, store)
		teamStatsRepo = cache.NewTeamStatsRepository(teamStatsRepo, store)
		leaderboardRepo = cache.NewLeaderboardRepository(leaderboardRepo, store)
		invalidator = cache.NewMatchDataInvalidator(store)
	}
	participantRepo := postgres.NewParticipantRepository(db)
	links := postgres.NewTournamentMatchRepository(db)

	hub := realtime.NewHub(cfg.CORSAllowedOrigins, logger)
	imports, err := NewMatchImportService(ctx, cfg, db, logger, ImportOptions{
		Publisher:   hub,
		Invalidator: invalidator,
	})
	if err != nil {
		return nil, nil, err
	}

	jwt, err := jwtauth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("build jwt manager: %w", err)
	}
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is empty, admin login is disabled")
	}

	services := httpapi.Services{
		Tournaments:   usecase.NewTournamentService(tournamentRepo, links, participantRepo, idgen.NewUUIDGenerator("trn_")),
		Teams:         usecase.NewTeamService(teamRepo, idgen.NewUUIDGenerator("team_")),
		Players:       usecase.NewPlayerService(playerRepo, idgen.NewUUIDGenerator("plr_")),
		Participants:  usecase.NewParticipantService(tournamentRepo, participantRepo, idgen.NewUUIDGenerator("ptc_")),
		Announcements: usecase.NewAnnouncementService(postgres.NewAnnouncementRepository(db), idgen.NewUUIDGenerator("ann_")),
		Winners:       usecase.NewWinnerService(tournamentRepo, postgres.NewWinnerRepository(db), idgen.NewUUIDGenerator("win_")),
		Stats:         usecase.NewStatsService(tournamentRepo, playerStatsRepo, teamStatsRepo, leaderboardRepo),
		Imports:       imports,
		Jobs:          usecase.NewJobService(tournamentRepo, imports, logger),
		AdminAuth: usecase.NewAdminAuthService(usecase.AdminCredentials{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		}, jwt),
	}

	handler := httpapi.NewHandler(services, hub, logger)
	router := httpapi.NewRouter(handler, jwt, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, hub, nil
}

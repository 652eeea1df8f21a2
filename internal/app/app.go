package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/jmlarios/fantasy-football-tracker/internal/config"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/scoring"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/infrastructure/notify"
	"github.com/jmlarios/fantasy-football-tracker/internal/infrastructure/repository/memory"
	"github.com/jmlarios/fantasy-football-tracker/internal/infrastructure/repository/postgres"
	"github.com/jmlarios/fantasy-football-tracker/internal/interfaces/httpapi"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/cache"
	idgen "github.com/jmlarios/fantasy-football-tracker/internal/platform/id"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/logging"
	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

type repositories struct {
	players   player.Repository
	squads    squad.Repository
	matchdays matchday.Repository
	transfers transfer.Repository
	ledger    transfer.Ledger
	stats     stats.Repository
}

// NewHTTPServer wires repositories, services and the router into a ready
// http.Server. The returned closer releases storage resources and must be
// called after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closer, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	matchdaySvc := usecase.NewMatchdayService(repos.matchdays)
	freeAgentSvc := usecase.NewFreeAgentService(repos.players, repos.squads, repos.ledger, matchdaySvc)
	offerSvc := usecase.NewOfferService(repos.squads, repos.transfers, repos.ledger, matchdaySvc, idgen.NewRandomGenerator())
	squadSvc := usecase.NewSquadService(repos.squads, repos.transfers)
	if cfg.CacheEnabled {
		squadSvc.SetCache(cache.NewStore(cfg.CacheTTL))
	}

	var publisher usecase.SummaryPublisher
	if cfg.WebhookEnabled {
		publisher = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			URL:            cfg.WebhookURL,
			AuthToken:      cfg.WebhookAuthToken,
			Timeout:        cfg.WebhookTimeout,
			CircuitBreaker: cfg.WebhookCircuitBreaker,
		}, logger)
	}

	pointsSvc := usecase.NewPointsService(
		repos.matchdays,
		repos.players,
		repos.squads,
		repos.stats,
		scoring.DefaultRuleTable(),
		publisher,
		logger,
	)
	pointsSvc.SetWorkerCount(cfg.PointsWorkerCount)

	handler := httpapi.NewHandler(matchdaySvc, freeAgentSvc, offerSvc, pointsSvc, squadSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		closeQuietly(closer, logger)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closer, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		store := memory.SeedStore()
		transferRepo := memory.NewTransferRepository(store)
		logger.Info("storage backend ready", "backend", config.StorageMemory)
		return repositories{
			players:   memory.NewPlayerRepository(store),
			squads:    memory.NewSquadRepository(store),
			matchdays: memory.NewMatchdayRepository(store),
			transfers: transferRepo,
			ledger:    transferRepo,
			stats:     memory.NewStatsRepository(store),
		}, func() error { return nil }, nil

	case config.StoragePostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open database: %w", err)
		}
		transferRepo := postgres.NewTransferRepository(db, idgen.NewRandomGenerator())
		logger.Info("storage backend ready", "backend", config.StoragePostgres, "db", dbNameFromURL(cfg.DBURL))
		return repositories{
			players:   postgres.NewPlayerRepository(db),
			squads:    postgres.NewSquadRepository(db),
			matchdays: postgres.NewMatchdayRepository(db),
			transfers: transferRepo,
			ledger:    transferRepo,
			stats:     postgres.NewStatsRepository(db),
		}, db.Close, nil

	default:
		return repositories{}, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func closeQuietly(closer func() error, logger *logging.Logger) {
	if closer == nil {
		return
	}
	if err := closer(); err != nil {
		logger.Warn("close storage failed", "error", err)
	}
}

package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gridironhq/gridiron/internal/config"
	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/lineup"
	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/stats"
	"github.com/gridironhq/gridiron/internal/domain/token"
	"github.com/gridironhq/gridiron/internal/domain/week"
	"github.com/gridironhq/gridiron/internal/infrastructure/provider/gridstats"
	cacherepo "github.com/gridironhq/gridiron/internal/infrastructure/repository/cache"
	"github.com/gridironhq/gridiron/internal/infrastructure/repository/memory"
	"github.com/gridironhq/gridiron/internal/infrastructure/repository/postgres"
	"github.com/gridironhq/gridiron/internal/interfaces/httpapi"
	basecache "github.com/gridironhq/gridiron/internal/platform/cache"
	idgen "github.com/gridironhq/gridiron/internal/platform/id"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/resilience"
	"github.com/gridironhq/gridiron/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the router. The returned
// cleanup closes whatever the chosen storage and stat source opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		weekRepo   week.Repository
		lineupRepo lineup.Repository
		playerRepo player.Repository
		gameRepo   game.Repository
		statsRepo  stats.Repository
		tokenRepo  token.Repository
	)

	cleanup := func() {}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		weekRepo = postgres.NewWeekRepository(db)
		lineupRepo = postgres.NewLineupRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		gameRepo = postgres.NewGameRepository(db)
		statsRepo = postgres.NewStatsRepository(db)
		tokenRepo = postgres.NewTokenRepository(db)
		cleanup = func() { _ = db.Close() }
		logger.Info("storage configured", "driver", cfg.StorageDriver, "db", dbNameFromURL(cfg.DBURL))
	default:
		fixtures := memory.Seed()
		weekRepo = fixtures.Weeks
		lineupRepo = fixtures.Lineups
		playerRepo = fixtures.Players
		gameRepo = fixtures.Games
		statsRepo = fixtures.Stats
		tokenRepo = fixtures.Tokens
		logger.Info("storage configured", "driver", config.StorageMemory, "seeded", true)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		weekRepo = cacherepo.NewWeekRepository(weekRepo, store)
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, store)
	}

	if cfg.StatsSource == config.StatsSourceGridStats {
		client, err := gridstats.NewClient(gridstats.ClientConfig{
			BaseURL:     cfg.GridStatsBaseURL,
			Token:       cfg.GridStatsToken,
			Timeout:     cfg.GridStatsTimeout,
			MaxRetries:  cfg.GridStatsMaxRetries,
			Concurrency: cfg.GridStatsConcurrency,
			Logger:      logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GridStatsCircuitEnabled,
				FailureThreshold: cfg.GridStatsCircuitFailureCount,
				OpenTimeout:      cfg.GridStatsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GridStatsCircuitHalfOpenMax,
			},
		}, playerRepo)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("build gridstats client: %w", err)
		}
		statsRepo = client
		closeStorage := cleanup
		cleanup = func() {
			client.Close()
			closeStorage()
		}
		logger.Info("stat source configured", "source", cfg.StatsSource, "base_url", cfg.GridStatsBaseURL)
	}

	resolver := usecase.NewWeekResolver(weekRepo)
	scoringService := usecase.NewScoringService(
		resolver,
		lineupRepo,
		playerRepo,
		gameRepo,
		statsRepo,
		tokenRepo,
		idgen.NewRandomGenerator(),
		logger,
	)

	handler := httpapi.NewHandler(resolver, scoringService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.ScoringJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(compactQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

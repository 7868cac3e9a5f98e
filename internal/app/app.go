package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/league-manager/internal/config"
	"github.com/riskibarqy/league-manager/internal/domain/fixture"
	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	"github.com/riskibarqy/league-manager/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/league-manager/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-manager/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-manager/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-manager/internal/observability"
	basecache "github.com/riskibarqy/league-manager/internal/platform/cache"
	idgen "github.com/riskibarqy/league-manager/internal/platform/id"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/riskibarqy/league-manager/internal/platform/resilience"
	"github.com/riskibarqy/league-manager/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	leagues  league.Repository
	teams    team.Repository
	fixtures fixture.Repository
	close    func() error
}

// NewHTTPServer wires storage, auth and services into the REST API. The
// returned closer releases the database handle, if one was opened.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	leagueSvc := usecase.NewLeagueService(
		repos.leagues,
		repos.teams,
		idgen.NewUUIDGenerator("lg-"),
		idgen.NewUUIDGenerator("tm-"),
		logger.Named("league"),
	)
	teamSvc := usecase.NewTeamService(repos.leagues, repos.teams, idgen.NewUUIDGenerator("tm-"))
	fixtureSvc := usecase.NewFixtureService(repos.leagues, repos.teams, repos.fixtures, idgen.NewUUIDGenerator("fx-"))

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		Timeout:        cfg.AnubisTimeout,
		CacheTTL:       cfg.CacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuit.Enabled,
			FailureThreshold: cfg.AnubisCircuit.FailureCount,
			OpenTimeout:      cfg.AnubisCircuit.OpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuit.HalfOpenMaxReq,
		},
		Logger: logger.Named("anubis"),
	})

	var (
		metricsHandler http.Handler
		instrumenter   httpapi.RouteInstrumenter
	)
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics("league_manager")
		metrics.RegisterRuntimeCollectors()
		metricsHandler = metrics.Handler()
		instrumenter = metrics
	}

	handler := httpapi.NewHandler(leagueSvc, teamSvc, fixtureSvc, metricsHandler, logger.Named("http"))
	router := httpapi.NewRouter(handler, anubisClient, logger.Named("http"), cfg.CORSAllowedOrigins, instrumenter)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = repositories{
			leagues:  postgres.NewLeagueRepository(db),
			teams:    postgres.NewTeamRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
			close:    db.Close,
		}
	default:
		repos = repositories{
			leagues:  memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:    memory.NewTeamRepository(memory.SeedTeams()),
			fixtures: memory.NewFixtureRepository(memory.SeedFixtures()),
			close:    func() error { return nil },
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore[any](cfg.CacheTTL)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
	}

	logger.Info("repositories ready",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL.String(),
	)

	return repos, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

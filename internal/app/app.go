package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fleague/fleague-api/internal/config"
	"github.com/fleague/fleague-api/internal/domain/league"
	"github.com/fleague/fleague-api/internal/domain/match"
	"github.com/fleague/fleague-api/internal/domain/team"
	"github.com/fleague/fleague-api/internal/infrastructure/account/accounts"
	"github.com/fleague/fleague-api/internal/infrastructure/repository/memory"
	"github.com/fleague/fleague-api/internal/infrastructure/repository/postgres"
	"github.com/fleague/fleague-api/internal/interfaces/httpapi"
	idgen "github.com/fleague/fleague-api/internal/platform/id"
	"github.com/fleague/fleague-api/internal/platform/logging"
	"github.com/fleague/fleague-api/internal/platform/resilience"
	"github.com/fleague/fleague-api/internal/usecase"
)

type repositories struct {
	leagues league.Repository
	teams   team.Repository
	matches match.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. With DB_URL set the service runs on Postgres;
// without it an in-memory store with demo seed data is used, which is
// handy for local development.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeDB, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	idGen := idgen.NewRandomGenerator()

	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams, repos.matches, idGen, logger)
	teamSvc := usecase.NewTeamService(repos.leagues, repos.teams, idGen, logger)
	scheduleSvc := usecase.NewScheduleService(repos.leagues, repos.teams, repos.matches, idGen, logger)
	matchSvc := usecase.NewMatchService(repos.leagues, repos.matches, idGen, logger)
	resultSvc := usecase.NewResultService(repos.leagues, repos.teams, repos.matches, logger)
	standingsSvc := usecase.NewStandingsService(repos.leagues, repos.teams, repos.matches, logger)
	sweepSvc := usecase.NewStatusSweepService(repos.leagues, cfg.SweepWorkers, logger)

	accountsClient := accounts.NewClient(accounts.ClientConfig{
		BaseURL:        cfg.AccountsBaseURL,
		IntrospectPath: cfg.AccountsIntrospectPath,
		Timeout:        cfg.AccountsTimeout,
		CacheTTL:       cfg.AccountsCacheTTL,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountsCircuitEnabled,
			FailureThreshold: cfg.AccountsCircuitFailures,
			OpenTimeout:      cfg.AccountsCircuitOpenWait,
			HalfOpenMaxReq:   cfg.AccountsCircuitHalfOpenReq,
		},
	})

	handler := httpapi.NewHandler(leagueSvc, teamSvc, scheduleSvc, matchSvc, resultSvc, standingsSvc, sweepSvc, logger)
	router := httpapi.NewRouter(handler, accountsClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeDB, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("storage backend", "kind", "memory")
		return repositories{
			leagues: memory.NewLeagueRepository(memory.SeedLeagues()),
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			matches: memory.NewMatchRepository(nil),
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	logger.Info("storage backend", "kind", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		leagues: postgres.NewLeagueRepository(db),
		teams:   postgres.NewTeamRepository(db),
		matches: postgres.NewMatchRepository(db),
	}, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

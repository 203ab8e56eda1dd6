package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/Echelon133/sports-live-app-sub002/internal/config"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/playerstats"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/teamstats"
	"github.com/Echelon133/sports-live-app-sub002/internal/infrastructure/lookup"
	"github.com/Echelon133/sports-live-app-sub002/internal/infrastructure/repository/memory"
	"github.com/Echelon133/sports-live-app-sub002/internal/infrastructure/repository/postgres"
	"github.com/Echelon133/sports-live-app-sub002/internal/interfaces/httpapi"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/cache"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/logging"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/resilience"
	"github.com/Echelon133/sports-live-app-sub002/internal/usecase"
)

// Application bundles the wired service with the components whose shutdown
// must be ordered: the HTTP server stops accepting first, then the
// dispatcher drains its lanes, then the websocket hub disconnects clients.
type Application struct {
	Server     *http.Server
	Dispatcher *usecase.EventDispatcher
	Hub        *httpapi.Hub

	db *sqlx.DB
}

type repositories struct {
	matches      match.Repository
	events       matchevent.Repository
	competitions competition.Repository
	playerStats  playerstats.Repository
	teamStats    teamstats.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &Application{}

	repos, err := app.buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	statsSvc := usecase.NewStatsService(repos.playerStats, repos.teamStats)
	matchSvc := usecase.NewMatchService(repos.matches, repos.events)
	competitionSvc := usecase.NewCompetitionService(repos.competitions, repos.matches, logger)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}
	standingsSvc := usecase.NewStandingsService(repos.competitions, repos.matches, store, logger)

	app.Hub = httpapi.NewHub(logger)

	dispatcher, err := usecase.NewEventDispatcher(
		usecase.DispatcherConfig{
			Lanes:     cfg.DispatcherLanes,
			QueueSize: cfg.DispatcherQueueSize,
		},
		repos.matches,
		repos.events,
		statsSvc,
		buildRosterLookup(cfg, logger),
		app.Hub,
		standingsSvc,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("build event dispatcher: %w", err)
	}
	app.Dispatcher = dispatcher

	handler := httpapi.NewHandler(matchSvc, competitionSvc, standingsSvc, statsSvc, dispatcher, logger)
	router := httpapi.NewRouter(handler, app.Hub, logger, cfg.CORSAllowedOrigins)

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return app, nil
}

// buildRepositories picks the backing store. Without DB_URL the service runs
// fully in memory, seeded with a demo league and cup.
func (a *Application) buildRepositories(cfg config.Config) (repositories, error) {
	if cfg.DBURL == "" {
		return repositories{
			matches:      memory.NewMatchRepository(memory.SeedMatches()),
			events:       memory.NewEventRepository(),
			competitions: memory.NewCompetitionRepository(memory.SeedCompetitions()),
			playerStats:  memory.NewPlayerStatsRepository(),
			teamStats:    memory.NewTeamStatsRepository(),
		}, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	a.db = db

	return repositories{
		matches:      postgres.NewMatchRepository(db),
		events:       postgres.NewEventRepository(db),
		competitions: postgres.NewCompetitionRepository(db),
		playerStats:  postgres.NewPlayerStatsRepository(db),
		teamStats:    postgres.NewTeamStatsRepository(db),
	}, nil
}

func buildRosterLookup(cfg config.Config, logger *logging.Logger) usecase.RosterLookup {
	if !cfg.RosterEnabled {
		return memory.NewRosterRepository()
	}

	var breaker *resilience.CircuitBreaker
	if cfg.RosterCircuitEnabled {
		breaker = resilience.NewCircuitBreaker(
			cfg.RosterCircuitFailureCount,
			cfg.RosterCircuitOpenTimeout,
			cfg.RosterCircuitHalfOpenMaxReq,
		)
	}

	return lookup.NewRosterClient(lookup.RosterClientConfig{
		BaseURL:  cfg.RosterBaseURL,
		Timeout:  cfg.RosterTimeout,
		CacheTTL: cfg.RosterCacheTTL,
	}, breaker, logger)
}

// Close releases resources that outlive the HTTP server. Call it after the
// dispatcher has drained so in-flight events can still reach the database.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

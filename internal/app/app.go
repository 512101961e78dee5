package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/api"
	"github.com/guttosm/smartinvest/internal/fundamentals"
	"github.com/guttosm/smartinvest/internal/news"
	"github.com/guttosm/smartinvest/internal/quote"
	"github.com/guttosm/smartinvest/internal/sentiment"
	"github.com/guttosm/smartinvest/internal/service"
	"github.com/guttosm/smartinvest/internal/storage"
	"github.com/guttosm/smartinvest/internal/upstream"
)

// requestHeadroom is added to the section deadline to bound a whole request.
const requestHeadroom = 5 * time.Second

// SectionTimeout is the deadline of one complete-analysis section. Unless
// ANALYSIS_SECTION_TIMEOUT is set it covers two full provider call budgets,
// since the sentiment section fetches news and then scores it.
func SectionTimeout(cfg config.Config) time.Duration {
	if cfg.Analysis.SectionTimeout > 0 {
		return cfg.Analysis.SectionTimeout
	}
	return 2 * upstream.DefaultCallerConfig("", cfg.Upstream.Timeout, cfg.Upstream.MaxRetries).Budget()
}

// RequestTimeout bounds a whole HTTP request.
func RequestTimeout(cfg config.Config) time.Duration {
	return SectionTimeout(cfg) + requestHeadroom
}

// migrate is an indirection used by tests that back the store with sqlmock.
var migrate = storage.Migrate

// newAnalysisService is an indirection so tests can inspect the service options.
var newAnalysisService = service.NewAnalysisService

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the provider clients and the analysis service (see BuildService).
//   - Creates the HTTP handler layer and the router with all API routes.
//   - Registers health and readiness probes; readiness pings Postgres when enabled.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Parameters:
//   - cfg (config.Config): the validated configuration.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := newService(cfg, db)

	handler := api.NewHandler(svc, cfg.App.Name)
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		RequestTimeout:     RequestTimeout(cfg),
	})

	var ping func(ctx context.Context) error
	if db != nil {
		ping = db.PingContext
	}
	api.NewHealthHandler(ping).Register(router)

	return router, closer(db), nil
}

// BuildService wires the analysis service without the HTTP layer.
//
// Returns:
//   - service.AnalysisService: ready to use.
//   - func(): releases the snapshot store, if any.
//   - error: when Postgres is enabled and cannot be reached or migrated.
func BuildService(cfg config.Config) (service.AnalysisService, func(), error) {
	db, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return newService(cfg, db), closer(db), nil
}

// openStore connects and migrates Postgres when it is enabled; nil otherwise.
func openStore(cfg config.Config) (*sql.DB, error) {
	if !cfg.Postgres.Enabled {
		return nil, nil
	}
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}
	return db, nil
}

func newService(cfg config.Config, db *sql.DB) service.AnalysisService {
	httpClient := &http.Client{}
	caller := func(provider string) *upstream.Caller {
		return upstream.NewCaller(upstream.DefaultCallerConfig(provider, cfg.Upstream.Timeout, cfg.Upstream.MaxRetries))
	}

	quotes := quote.NewClient(cfg.Quote, caller("yahoo"), httpClient)
	newsClient := news.New(cfg.News, caller(cfg.News.Provider), httpClient)
	scorer := sentiment.NewScorer(cfg.Sentiment, caller(cfg.Sentiment.Provider), httpClient)

	deps := service.Dependencies{
		Quotes:       quotes,
		News:         newsClient,
		Sentiment:    sentiment.NewAnalyzer(scorer, cfg.Sentiment.RatePerSecond, cfg.Sentiment.Concurrency),
		Fundamentals: fundamentals.NewProcessor(quotes),
	}
	if db != nil {
		deps.Snapshots = storage.NewSnapshotRepository(db)
	}

	return newAnalysisService(deps, service.Options{
		SectionTimeout: SectionTimeout(cfg),
		NewsDays:       cfg.Analysis.NewsDays,
		MaxArticles:    cfg.Analysis.MaxArticles,
	})
}

func closer(db *sql.DB) func() {
	return func() {
		if db != nil {
			_ = db.Close()
		}
	}
}

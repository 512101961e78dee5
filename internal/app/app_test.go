package app

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/service"
)

func testConfig() config.Config {
	return config.Config{
		App:    config.AppConfig{Name: "SmartInvest.ai"},
		Server: config.ServerConfig{Port: "8000", AllowedOrigins: []string{"http://localhost:3000"}},
		Upstream: config.UpstreamConfig{
			Timeout: time.Second,
		},
		Quote:     config.QuoteConfig{BaseURL: "http://127.0.0.1:1"},
		News:      config.NewsConfig{Provider: config.NewsProviderNewsAPI, BaseURL: "http://127.0.0.1:1"},
		Sentiment: config.SentimentConfig{Provider: config.SentimentProviderKeyword, RatePerSecond: 10, Concurrency: 2},
		Analysis:  config.AnalysisConfig{NewsDays: 2, MaxArticles: 3},
		Postgres: config.PostgresConfig{
			Host:     "127.0.0.1",
			Port:     54329, // unlikely mapped
			User:     "x",
			Password: "y",
			DBName:   "z",
			SSLMode:  "disable",
		},
	}
}

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	db, err := InitPostgres(testConfig())
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when the enabled store cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Postgres.Enabled = true

	r, cleanup, err := InitializeApp(cfg)
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_MigrationFailure(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	oldOpen, oldMigrate := postgresOpener, migrate
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	migrate = func(*sql.DB) error { return errors.New("bad migration") }
	t.Cleanup(func() { postgresOpener, migrate = oldOpen, oldMigrate })

	cfg := testConfig()
	cfg.Postgres.Enabled = true
	if _, _, err := InitializeApp(cfg); err == nil {
		t.Fatalf("expected migration error")
	}
}

func TestInitializeApp_WithoutStore(t *testing.T) {
	called := false
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) {
		called = true
		return nil, errors.New("must not connect")
	}
	t.Cleanup(func() { postgresOpener = old })

	router, cleanup, err := InitializeApp(testConfig())
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()
	if called {
		t.Fatalf("postgres must not be opened when disabled")
	}

	cases := []struct {
		path string
		want int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/api/v1/health", http.StatusOK},
		{"/api/v1/analysis/history/AAPL", http.StatusServiceUnavailable},
		{"/api/v1/stock/bad%20symbol", http.StatusBadRequest},
		{"/metrics", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("%s status=%d want %d body=%s", tc.path, w.Code, tc.want, w.Body.String())
		}
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	// Override opener to return a sqlmock DB that pings successfully
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	// Expect the ping issued by /readyz
	mock.ExpectPing()
	mock.ExpectClose()

	oldOpen, oldMigrate := postgresOpener, migrate
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	migrate = func(*sql.DB) error { return nil }
	t.Cleanup(func() { postgresOpener, migrate = oldOpen, oldMigrate })

	cfg := testConfig()
	cfg.Postgres.Enabled = true
	router, cleanup, err := InitializeApp(cfg)
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err set or nil components")
	}

	// Hit health endpoints
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	// Call cleanup and ensure it doesn't panic
	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuildService(t *testing.T) {
	svc, cleanup, err := BuildService(testConfig())
	if err != nil || svc == nil || cleanup == nil {
		t.Fatalf("BuildService failed: %v", err)
	}
	defer cleanup()

	got := svc.PoweredBy()
	want := []string{"Yahoo Finance", "NewsAPI", "Keyword sentiment"}
	if len(got) != len(want) {
		t.Fatalf("powered_by=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("powered_by=%v want %v", got, want)
		}
	}
}

func TestSectionTimeout(t *testing.T) {
	cases := []struct {
		name        string
		timeout     time.Duration
		retries     int
		override    time.Duration
		wantSection time.Duration
	}{
		// 2 × (3 attempts × 10s + 200ms + 400ms backoff)
		{name: "defaults", timeout: 10 * time.Second, retries: 2, wantSection: 61200 * time.Millisecond},
		// 2 × (3 attempts × 30s + 200ms + 400ms backoff)
		{name: "long upstream timeout", timeout: 30 * time.Second, retries: 2, wantSection: 181200 * time.Millisecond},
		{name: "no retries", timeout: 5 * time.Second, retries: 0, wantSection: 10 * time.Second},
		{name: "explicit override", timeout: 30 * time.Second, retries: 2, override: 15 * time.Second, wantSection: 15 * time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Upstream = config.UpstreamConfig{Timeout: tc.timeout, MaxRetries: tc.retries}
			cfg.Analysis.SectionTimeout = tc.override

			if got := SectionTimeout(cfg); got != tc.wantSection {
				t.Fatalf("SectionTimeout=%v, want %v", got, tc.wantSection)
			}
			if got := RequestTimeout(cfg); got != tc.wantSection+requestHeadroom {
				t.Fatalf("RequestTimeout=%v, want %v", got, tc.wantSection+requestHeadroom)
			}
		})
	}
}

func TestNewService_PassesConfiguredOptions(t *testing.T) {
	var got service.Options
	old := newAnalysisService
	newAnalysisService = func(deps service.Dependencies, opts service.Options) service.AnalysisService {
		got = opts
		return old(deps, opts)
	}
	t.Cleanup(func() { newAnalysisService = old })

	cfg := testConfig()
	cfg.Upstream = config.UpstreamConfig{Timeout: 30 * time.Second, MaxRetries: 2}
	_ = newService(cfg, nil)

	if got.SectionTimeout != SectionTimeout(cfg) || got.SectionTimeout <= cfg.Upstream.Timeout {
		t.Fatalf("section timeout %v must cover a %v upstream call with retries", got.SectionTimeout, cfg.Upstream.Timeout)
	}
	if got.NewsDays != 2 || got.MaxArticles != 3 {
		t.Fatalf("unexpected options: %+v", got)
	}
}

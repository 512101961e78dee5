package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, logging, upstream providers, the analysis pipeline and the optional
// Postgres snapshot store. A Config value is built once by Load() and passed explicitly
// into every constructor that needs it.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8000
//	NEWS_API_KEY=xxxx
//	FRIENDLI_API_KEY=xxxx
//	UPSTREAM_TIMEOUT=10s
//	POSTGRES_ENABLED=false
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Log       LogConfig
	Upstream  UpstreamConfig
	Quote     QuoteConfig
	News      NewsConfig
	Sentiment SentimentConfig
	Vector    VectorConfig
	Analysis  AnalysisConfig
	Postgres  PostgresConfig
}

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name  string
	Debug bool
	// CacheDuration is accepted for compatibility with existing deployments.
	// Responses are never cached across requests.
	CacheDuration time.Duration
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Port: TCP port the HTTP server listens on (e.g., "8000").
//   - AllowedOrigins: CORS origins allowed to call the API (dashboard dev servers).
//   - RateLimitPerMinute: per client IP request budget.
type ServerConfig struct {
	Port               string
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string
	Pretty bool
}

// UpstreamConfig bounds every outbound provider call.
type UpstreamConfig struct {
	Timeout    time.Duration
	MaxRetries int
}

// QuoteConfig points the quote client at a Yahoo Finance compatible API.
type QuoteConfig struct {
	BaseURL string
}

// NewsConfig selects and configures the news provider.
//
// Fields:
//   - Provider: "newsapi" (default) or "rss".
//   - APIKey: NewsAPI key. Required when Provider is "newsapi".
//   - BaseURL: NewsAPI base URL.
//   - RSSURLTemplate: feed URL with a single %s placeholder for the symbol.
type NewsConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	RSSURLTemplate string
}

// SentimentConfig selects and configures the sentiment model.
//
// Fields:
//   - Provider: "friendli" (default), "anthropic" or "keyword".
//   - RatePerSecond / Concurrency: pacing of model calls within one request.
type SentimentConfig struct {
	Provider        string
	FriendliAPIKey  string
	FriendliBaseURL string
	FriendliModel   string
	AnthropicAPIKey string
	AnthropicModel  string
	RatePerSecond   float64
	Concurrency     int
}

// VectorConfig is pass-through configuration for the vector database.
// No component in this service queries it.
type VectorConfig struct {
	URL    string
	APIKey string
}

// AnalysisConfig bounds the complete-analysis pipeline.
//
// Fields:
//   - NewsDays / MaxArticles: sentiment window and article count.
//   - SectionTimeout: deadline per section; 0 derives it from the upstream
//     timeout and retry budget.
type AnalysisConfig struct {
	NewsDays       int
	MaxArticles    int
	SectionTimeout time.Duration
}

// PostgresConfig defines connection details for the optional snapshot store.
//
// Fields:
//   - Enabled: when false, no connection is attempted and history is disabled.
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// Supported provider names.
const (
	NewsProviderNewsAPI = "newsapi"
	NewsProviderRSS     = "rss"

	SentimentProviderFriendli  = "friendli"
	SentimentProviderAnthropic = "anthropic"
	SentimentProviderKeyword   = "keyword"
)

// Load builds a Config by reading from .env file or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in setDefaults().
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Returns:
//   - Config: the populated configuration (with the Postgres DSN computed).
//   - error: a descriptive error listing invalid or missing variables.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore error if no .env

	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "SmartInvest.ai")
	v.SetDefault("DEBUG", false)
	v.SetDefault("CACHE_DURATION", 300)

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("UPSTREAM_MAX_RETRIES", 2)

	v.SetDefault("QUOTE_BASE_URL", "https://query1.finance.yahoo.com")

	v.SetDefault("NEWS_PROVIDER", NewsProviderNewsAPI)
	v.SetDefault("NEWS_API_BASE_URL", "https://newsapi.org/v2")
	v.SetDefault("NEWS_RSS_URL_TEMPLATE", "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US")

	v.SetDefault("SENTIMENT_PROVIDER", SentimentProviderFriendli)
	v.SetDefault("FRIENDLI_BASE_URL", "https://inference.friendli.ai/v1")
	v.SetDefault("FRIENDLI_MODEL", "meta-llama-3.1-8b-instruct")
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("SENTIMENT_RATE_PER_SECOND", 10.0)
	v.SetDefault("SENTIMENT_CONCURRENCY", 4)

	v.SetDefault("WEAVIATE_URL", "http://localhost:8080")

	v.SetDefault("ANALYSIS_NEWS_DAYS", 2)
	v.SetDefault("ANALYSIS_MAX_ARTICLES", 3)
	v.SetDefault("ANALYSIS_SECTION_TIMEOUT", "0s")

	v.SetDefault("POSTGRES_ENABLED", false)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "smartinvest")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
}

func fromViper(v *viper.Viper) Config {
	cfg := Config{
		App: AppConfig{
			Name:          v.GetString("APP_NAME"),
			Debug:         v.GetBool("DEBUG"),
			CacheDuration: time.Duration(v.GetInt("CACHE_DURATION")) * time.Second,
		},
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			AllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Upstream: UpstreamConfig{
			Timeout:    v.GetDuration("UPSTREAM_TIMEOUT"),
			MaxRetries: v.GetInt("UPSTREAM_MAX_RETRIES"),
		},
		Quote: QuoteConfig{
			BaseURL: strings.TrimRight(v.GetString("QUOTE_BASE_URL"), "/"),
		},
		News: NewsConfig{
			Provider:       strings.ToLower(v.GetString("NEWS_PROVIDER")),
			APIKey:         v.GetString("NEWS_API_KEY"),
			BaseURL:        strings.TrimRight(v.GetString("NEWS_API_BASE_URL"), "/"),
			RSSURLTemplate: v.GetString("NEWS_RSS_URL_TEMPLATE"),
		},
		Sentiment: SentimentConfig{
			Provider:        strings.ToLower(v.GetString("SENTIMENT_PROVIDER")),
			FriendliAPIKey:  v.GetString("FRIENDLI_API_KEY"),
			FriendliBaseURL: strings.TrimRight(v.GetString("FRIENDLI_BASE_URL"), "/"),
			FriendliModel:   v.GetString("FRIENDLI_MODEL"),
			AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
			AnthropicModel:  v.GetString("ANTHROPIC_MODEL"),
			RatePerSecond:   v.GetFloat64("SENTIMENT_RATE_PER_SECOND"),
			Concurrency:     v.GetInt("SENTIMENT_CONCURRENCY"),
		},
		Vector: VectorConfig{
			URL:    v.GetString("WEAVIATE_URL"),
			APIKey: v.GetString("WEAVIATE_API_KEY"),
		},
		Analysis: AnalysisConfig{
			NewsDays:       v.GetInt("ANALYSIS_NEWS_DAYS"),
			MaxArticles:    v.GetInt("ANALYSIS_MAX_ARTICLES"),
			SectionTimeout: v.GetDuration("ANALYSIS_SECTION_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Enabled:  v.GetBool("POSTGRES_ENABLED"),
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
	}
	cfg.Postgres.URL = cfg.Postgres.DSN()
	return cfg
}

// DSN builds the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Validate ensures required variables are present and coherent.
//
// Behavior:
//   - Checks each critical field of the configuration.
//   - Collects every problem instead of stopping at the first one.
//   - Postgres fields are only checked when POSTGRES_ENABLED is true.
//
// Provider API keys are not required: a missing key makes the matching
// section report "not configured" at request time instead of failing startup.
func (c Config) Validate() error {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT is required")
	}
	if c.Upstream.Timeout <= 0 {
		problems = append(problems, "UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.MaxRetries < 0 {
		problems = append(problems, "UPSTREAM_MAX_RETRIES must not be negative")
	}
	if c.Quote.BaseURL == "" {
		problems = append(problems, "QUOTE_BASE_URL is required")
	}
	switch c.News.Provider {
	case NewsProviderNewsAPI:
		if c.News.BaseURL == "" {
			problems = append(problems, "NEWS_API_BASE_URL is required")
		}
	case NewsProviderRSS:
		if strings.Count(c.News.RSSURLTemplate, "%s") != 1 {
			problems = append(problems, "NEWS_RSS_URL_TEMPLATE must contain exactly one %s")
		}
	default:
		problems = append(problems, fmt.Sprintf("NEWS_PROVIDER %q is not supported", c.News.Provider))
	}
	switch c.Sentiment.Provider {
	case SentimentProviderFriendli, SentimentProviderAnthropic, SentimentProviderKeyword:
	default:
		problems = append(problems, fmt.Sprintf("SENTIMENT_PROVIDER %q is not supported", c.Sentiment.Provider))
	}
	if c.Sentiment.RatePerSecond <= 0 {
		problems = append(problems, "SENTIMENT_RATE_PER_SECOND must be positive")
	}
	if c.Sentiment.Concurrency < 1 {
		problems = append(problems, "SENTIMENT_CONCURRENCY must be at least 1")
	}
	if c.Analysis.NewsDays < 1 || c.Analysis.NewsDays > 7 {
		problems = append(problems, "ANALYSIS_NEWS_DAYS must be between 1 and 7")
	}
	if c.Analysis.MaxArticles < 1 || c.Analysis.MaxArticles > 20 {
		problems = append(problems, "ANALYSIS_MAX_ARTICLES must be between 1 and 20")
	}
	if c.Analysis.SectionTimeout < 0 {
		problems = append(problems, "ANALYSIS_SECTION_TIMEOUT must not be negative")
	}

	if c.Postgres.Enabled {
		if c.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST is required")
		}
		if c.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT is required")
		}
		if c.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER is required")
		}
		if c.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB is required")
		}
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

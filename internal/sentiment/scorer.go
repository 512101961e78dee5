// Package sentiment scores news articles with a hosted language model, falling
// back to a keyword heuristic, and aggregates the scores per symbol.
package sentiment

import (
	"context"
	"net/http"

	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/logger"
	"github.com/guttosm/smartinvest/internal/upstream"
)

// Scorer rates one article on [-1, 1].
type Scorer interface {
	Score(ctx context.Context, article models.NewsArticle) (float64, error)
	// Name identifies the model or heuristic, e.g. "friendli".
	Name() string
}

// NewScorer returns the model scorer selected by cfg, or nil when the keyword
// heuristic was requested or the selected provider has no API key.
func NewScorer(cfg config.SentimentConfig, caller *upstream.Caller, httpClient *http.Client) Scorer {
	switch cfg.Provider {
	case config.SentimentProviderKeyword:
		return nil
	case config.SentimentProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			logger.L().Warn().Msg("ANTHROPIC_API_KEY not set, sentiment falls back to keyword scoring")
			return nil
		}
		return NewAnthropicScorer(cfg.AnthropicAPIKey, cfg.AnthropicModel, caller)
	default:
		if cfg.FriendliAPIKey == "" {
			logger.L().Warn().Msg("FRIENDLI_API_KEY not set, sentiment falls back to keyword scoring")
			return nil
		}
		return NewChatScorer(cfg.FriendliAPIKey, cfg.FriendliBaseURL, cfg.FriendliModel, caller, httpClient)
	}
}

// kindForStatus maps an SDK HTTP status onto the upstream taxonomy.
func kindForStatus(status int) error {
	switch {
	case status == http.StatusTooManyRequests:
		return upstream.ErrRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return upstream.ErrNotConfigured
	case status >= 400 && status < 500:
		return upstream.ErrMalformed
	default:
		return upstream.ErrUnavailable
	}
}

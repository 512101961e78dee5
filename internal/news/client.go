// Package news fetches recent headlines for a symbol or for the market as a whole.
package news

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/upstream"
)

// Client is the news contract used by the analysis service.
type Client interface {
	// StockNews returns articles about symbol published in the last days days,
	// newest first.
	StockNews(ctx context.Context, symbol string, days int) ([]models.NewsArticle, error)
	// MarketNews returns general market headlines for a category (e.g. "business").
	MarketNews(ctx context.Context, category string) ([]models.NewsArticle, error)
	// Provider names the backing news provider.
	Provider() string
}

// New returns the Client selected by cfg.Provider.
func New(cfg config.NewsConfig, caller *upstream.Caller, httpClient *http.Client) Client {
	if cfg.Provider == config.NewsProviderRSS {
		return NewRSSClient(cfg, caller, httpClient)
	}
	return NewNewsAPIClient(cfg, caller, httpClient)
}

// companyNames expands well-known tickers so searches also match the company name.
var companyNames = map[string]string{
	"AAPL":  "Apple Inc",
	"GOOGL": "Google Alphabet",
	"MSFT":  "Microsoft",
	"AMZN":  "Amazon",
	"TSLA":  "Tesla",
	"META":  "Meta Facebook",
	"NVDA":  "NVIDIA",
	"NFLX":  "Netflix",
}

// CompanyName returns the search name of symbol, or the symbol itself when unknown.
func CompanyName(symbol string) string {
	if name, ok := companyNames[strings.ToUpper(symbol)]; ok {
		return name
	}
	return symbol
}

// SearchQuery builds the "SYMBOL OR Company" query sent to search providers.
func SearchQuery(symbol string) string {
	return symbol + " OR " + CompanyName(symbol)
}

func window(now time.Time, days int) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}
	return now.Add(-time.Duration(days) * 24 * time.Hour), now
}

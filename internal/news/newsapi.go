package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/logger"
	"github.com/guttosm/smartinvest/internal/upstream"
)

const (
	newsAPIProvider     = "newsapi"
	stockNewsPageSize   = 20
	marketNewsPageSize  = 10
	removedArticleTitle = "[Removed]"
)

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type newsAPIClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	caller  *upstream.Caller
	now     func() time.Time
}

// NewNewsAPIClient builds a Client backed by newsapi.org.
// Without an API key every call fails with upstream.ErrNotConfigured.
func NewNewsAPIClient(cfg config.NewsConfig, caller *upstream.Caller, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &newsAPIClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		caller:  caller,
		now:     time.Now,
	}
}

func (c *newsAPIClient) Provider() string { return newsAPIProvider }

func (c *newsAPIClient) StockNews(ctx context.Context, symbol string, days int) ([]models.NewsArticle, error) {
	from, to := window(c.now().UTC(), days)

	q := url.Values{}
	q.Set("q", SearchQuery(symbol))
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))
	q.Set("sortBy", "publishedAt")
	q.Set("language", "en")
	q.Set("pageSize", fmt.Sprint(stockNewsPageSize))

	articles, err := c.fetch(ctx, "everything", c.baseURL+"/everything?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	return articles, nil
}

func (c *newsAPIClient) MarketNews(ctx context.Context, category string) ([]models.NewsArticle, error) {
	if category == "" {
		category = "business"
	}
	q := url.Values{}
	q.Set("category", category)
	q.Set("country", "us")
	q.Set("pageSize", fmt.Sprint(marketNewsPageSize))

	articles, err := c.fetch(ctx, "top-headlines", c.baseURL+"/top-headlines?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch market news: %w", err)
	}
	return articles, nil
}

func (c *newsAPIClient) fetch(ctx context.Context, op, endpoint string) ([]models.NewsArticle, error) {
	if c.apiKey == "" {
		return nil, upstream.NewError(newsAPIProvider, op, upstream.ErrNotConfigured, 0, errors.New("NEWS_API_KEY is not set"))
	}

	resp, err := upstream.Call(ctx, c.caller, op, func(ctx context.Context) (*newsAPIResponse, error) {
		var out newsAPIResponse
		err := upstream.GetJSON(ctx, c.http, upstream.Request{
			Provider: newsAPIProvider,
			Op:       op,
			URL:      endpoint,
			Header:   http.Header{"X-Api-Key": []string{c.apiKey}},
			MapError: func(status int, body []byte) error {
				var e newsAPIResponse
				if json.Unmarshal(body, &e) != nil || e.Code == "" {
					return nil
				}
				return newsAPIError(op, status, e)
			},
		}, &out)
		if err != nil {
			return nil, err
		}
		if out.Status == "error" {
			return nil, newsAPIError(op, 0, out)
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return parseNewsAPIArticles(resp.Articles), nil
}

// newsAPIError maps a NewsAPI error code onto the upstream taxonomy.
func newsAPIError(op string, status int, e newsAPIResponse) error {
	kind := upstream.ErrUnavailable
	switch e.Code {
	case "rateLimited":
		kind = upstream.ErrRateLimited
	case "apiKeyMissing", "apiKeyInvalid", "apiKeyDisabled", "apiKeyExhausted":
		kind = upstream.ErrNotConfigured
	}
	return upstream.NewError(newsAPIProvider, op, kind, status, fmt.Errorf("%s: %s", e.Code, e.Message))
}

func parseNewsAPIArticles(raw []newsAPIArticle) []models.NewsArticle {
	articles := make([]models.NewsArticle, 0, len(raw))
	for _, a := range raw {
		if a.Title == "" || a.Title == removedArticleTitle {
			continue
		}
		published, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			logger.L().Debug().Str("title", a.Title).Str("published_at", a.PublishedAt).Msg("skipping article with unparseable timestamp")
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, models.NewsArticle{
			Title:       strings.TrimSpace(a.Title),
			Description: cleanText(a.Description),
			Content:     cleanText(a.Content),
			URL:         a.URL,
			Source:      source,
			PublishedAt: published.UTC(),
		})
	}
	return articles
}

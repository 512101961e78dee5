package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/guttosm/smartinvest/config"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/upstream"
	"github.com/mmcdole/gofeed"
)

const (
	rssProvider = "rss"
	// marketFeedSymbol is the feed used for market-wide headlines.
	marketFeedSymbol = "^GSPC"
)

// RSSClient reads per-symbol headline feeds (RSS or Atom) with gofeed.
type RSSClient struct {
	urlTemplate string
	http        *http.Client
	caller      *upstream.Caller
	now         func() time.Time
}

// NewRSSClient builds a feed-backed Client. cfg.RSSURLTemplate must contain one %s
// placeholder, replaced by the query-escaped symbol.
func NewRSSClient(cfg config.NewsConfig, caller *upstream.Caller, httpClient *http.Client) *RSSClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RSSClient{
		urlTemplate: cfg.RSSURLTemplate,
		http:        httpClient,
		caller:      caller,
		now:         time.Now,
	}
}

func (c *RSSClient) Provider() string { return rssProvider }

// StockNews returns feed items published inside the window, newest first.
func (c *RSSClient) StockNews(ctx context.Context, symbol string, days int) ([]models.NewsArticle, error) {
	from, to := window(c.now().UTC(), days)
	articles, err := c.fetch(ctx, "feed", symbol, from, to, stockNewsPageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	return articles, nil
}

// MarketNews reads the S&P 500 feed. Feeds have no categories, so category is ignored.
func (c *RSSClient) MarketNews(ctx context.Context, _ string) ([]models.NewsArticle, error) {
	from, to := window(c.now().UTC(), 1)
	articles, err := c.fetch(ctx, "market-feed", marketFeedSymbol, from, to, marketNewsPageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch market news: %w", err)
	}
	return articles, nil
}

func (c *RSSClient) fetch(ctx context.Context, op, symbol string, from, to time.Time, limit int) ([]models.NewsArticle, error) {
	feedURL := fmt.Sprintf(c.urlTemplate, url.QueryEscape(symbol))

	feed, err := upstream.Call(ctx, c.caller, op, func(ctx context.Context) (*gofeed.Feed, error) {
		fp := gofeed.NewParser()
		fp.UserAgent = "smartinvest/1.0"
		fp.Client = c.http

		feed, err := fp.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			var httpErr gofeed.HTTPError
			if errors.As(err, &httpErr) {
				kind := upstream.ErrUnavailable
				switch httpErr.StatusCode {
				case http.StatusNotFound:
					kind = upstream.ErrInvalidSymbol
				case http.StatusTooManyRequests:
					kind = upstream.ErrRateLimited
				}
				return nil, upstream.NewError(rssProvider, op, kind, httpErr.StatusCode, err)
			}
			if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
				return nil, upstream.NewError(rssProvider, op, upstream.ErrMalformed, 0, err)
			}
			return nil, upstream.NewError(rssProvider, op, upstream.ErrUnavailable, 0, err)
		}
		return feed, nil
	})
	if err != nil {
		return nil, err
	}
	return feedArticles(feed, from, to, limit), nil
}

// feedArticles keeps dated items inside [from, to], newest first, capped at limit.
func feedArticles(feed *gofeed.Feed, from, to time.Time, limit int) []models.NewsArticle {
	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = "RSS"
	}

	articles := make([]models.NewsArticle, 0, len(feed.Items))
	for _, it := range feed.Items {
		published := it.PublishedParsed
		if published == nil {
			published = it.UpdatedParsed
		}
		if published == nil {
			continue
		}
		p := published.UTC()
		if p.Before(from) || p.After(to) {
			continue
		}
		content := it.Content
		if content == "" {
			content = it.Description
		}
		articles = append(articles, models.NewsArticle{
			Title:       strings.TrimSpace(it.Title),
			Description: cleanText(it.Description),
			Content:     cleanText(content),
			URL:         it.Link,
			Source:      source,
			PublishedAt: p,
		})
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

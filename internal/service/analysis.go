// Package service composes the provider clients into the analyses served by the API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/fundamentals"
	"github.com/guttosm/smartinvest/internal/logger"
	"github.com/guttosm/smartinvest/internal/news"
	"github.com/guttosm/smartinvest/internal/quote"
	"github.com/guttosm/smartinvest/internal/sentiment"
	"github.com/guttosm/smartinvest/internal/upstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrAllSectionsUnavailable is returned with the partial analysis when no
	// section could be computed.
	ErrAllSectionsUnavailable = errors.New("all analysis sections unavailable")
	// ErrStorageDisabled is returned by History when no snapshot store is configured.
	ErrStorageDisabled = errors.New("snapshot storage disabled")
)

// SnapshotStore persists recommendation snapshots.
type SnapshotStore interface {
	Record(ctx context.Context, s models.Snapshot) error
	List(ctx context.Context, symbol string, limit int) ([]models.Snapshot, error)
}

type nopStore struct{}

func (nopStore) Record(context.Context, models.Snapshot) error { return nil }
func (nopStore) List(context.Context, string, int) ([]models.Snapshot, error) {
	return nil, ErrStorageDisabled
}

// AnalysisService is the Aggregator plus the thin operations behind the
// pass-through endpoints. Every method takes an already normalized symbol
// except CompleteAnalysis, which normalizes its own.
type AnalysisService interface {
	CompleteAnalysis(ctx context.Context, symbol string) (*models.CompleteAnalysis, error)
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Quotes(ctx context.Context, symbols []string) ([]models.Quote, []quote.SymbolError, error)
	News(ctx context.Context, symbol string, days int) ([]models.NewsArticle, error)
	MarketNews(ctx context.Context, category string) ([]models.NewsArticle, error)
	Sentiment(ctx context.Context, symbol string, days, limit int) (*models.SentimentSummary, error)
	Fundamentals(ctx context.Context, symbol string) (*models.FundamentalAnalysis, error)
	Technical(ctx context.Context, symbol string) (*models.TechnicalAnalysis, error)
	SectorComparison(ctx context.Context, symbol string, peers []string) (*models.SectorComparison, error)
	History(ctx context.Context, symbol string, limit int) ([]models.Snapshot, error)
	// PoweredBy names the providers behind the analysis.
	PoweredBy() []string
}

// Dependencies are the collaborators of the analysis service.
type Dependencies struct {
	Quotes       quote.Client
	News         news.Client
	Sentiment    *sentiment.Analyzer
	Fundamentals fundamentals.Processor
	// Snapshots is optional; nil disables recording and history.
	Snapshots SnapshotStore
}

// Options tune the complete analysis.
//
// Fields:
//   - SectionTimeout: deadline for each section of a complete analysis.
//   - NewsDays: look-back window for the sentiment section.
//   - MaxArticles: articles scored and shown in the sentiment section.
//   - RecordTimeout: deadline for storing the snapshot of an analysis.
type Options struct {
	SectionTimeout time.Duration
	NewsDays       int
	MaxArticles    int
	RecordTimeout  time.Duration
}

type analysisService struct {
	deps   Dependencies
	opts   Options
	now    func() time.Time
	newID  func() string
	tracer trace.Tracer
}

// NewAnalysisService builds the AnalysisService.
//
// Parameters:
//   - deps: provider clients and the optional snapshot store.
//   - opts: zero values fall back to a 10s section timeout, 2 news days, 3 articles
//     and a 2s record timeout.
//
// Returns:
//   - AnalysisService: safe for concurrent use; it keeps no per-request state.
func NewAnalysisService(deps Dependencies, opts Options) AnalysisService {
	if deps.Snapshots == nil {
		deps.Snapshots = nopStore{}
	}
	if opts.SectionTimeout <= 0 {
		opts.SectionTimeout = 10 * time.Second
	}
	if opts.NewsDays <= 0 {
		opts.NewsDays = 2
	}
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 3
	}
	if opts.RecordTimeout <= 0 {
		opts.RecordTimeout = 2 * time.Second
	}
	return &analysisService{
		deps:   deps,
		opts:   opts,
		now:    time.Now,
		newID:  uuid.NewString,
		tracer: otel.Tracer("github.com/guttosm/smartinvest/internal/service"),
	}
}

// CompleteAnalysis runs the quote, sentiment and fundamentals sections
// concurrently and derives the recommendation from whatever came back.
//
// Behavior:
//   - A malformed symbol fails with ErrMalformedSymbol before any upstream call.
//   - A failing section is marked unavailable with the error text; the others are kept.
//   - When every section fails the partial analysis is returned with
//     ErrAllSectionsUnavailable joined with the section errors.
//   - A successful analysis is recorded as a snapshot; recording errors are only logged.
func (s *analysisService) CompleteAnalysis(ctx context.Context, symbol string) (*models.CompleteAnalysis, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "analysis.complete", trace.WithAttributes(attribute.String("symbol", sym)))
	defer span.End()

	var (
		q                *models.Quote
		summary          *models.SentimentSummary
		fa               *models.FundamentalAnalysis
		qErr, sErr, fErr error
	)

	// Sections never fail the group; their errors become unavailable markers.
	var g errgroup.Group
	g.Go(func() error {
		qErr = s.section(ctx, "quote", sym, func(ctx context.Context) (err error) {
			q, err = s.deps.Quotes.Quote(ctx, sym)
			return err
		})
		return nil
	})
	g.Go(func() error {
		sErr = s.section(ctx, "sentiment", sym, func(ctx context.Context) (err error) {
			summary, err = s.sentimentFor(ctx, sym, s.opts.NewsDays, s.opts.MaxArticles)
			return err
		})
		return nil
	})
	g.Go(func() error {
		fErr = s.section(ctx, "fundamentals", sym, func(ctx context.Context) (err error) {
			fa, err = s.deps.Fundamentals.Analyze(ctx, sym)
			return err
		})
		return nil
	})
	_ = g.Wait()

	out := &models.CompleteAnalysis{
		Symbol:              sym,
		StockData:           quoteSection(sym, q, qErr),
		SentimentAnalysis:   sentimentSection(summary, sErr),
		FundamentalAnalysis: fundamentalSection(fa, fErr),
		Timestamp:           s.now().UTC(),
	}
	out.Signals = DeriveSignals(out.StockData, out.SentimentAnalysis, out.FundamentalAnalysis)
	out.Recommendation = Recommend(out.Signals, out.SentimentAnalysis, out.FundamentalAnalysis)

	span.SetAttributes(
		attribute.Int("sections.available", out.AvailableSections()),
		attribute.String("recommendation.action", string(out.Recommendation.Action)),
	)

	if out.AvailableSections() == 0 {
		err := errors.Join(ErrAllSectionsUnavailable, qErr, sErr, fErr)
		span.RecordError(err)
		span.SetStatus(codes.Error, ErrAllSectionsUnavailable.Error())
		return out, fmt.Errorf("complete analysis for %s: %w", sym, err)
	}

	s.record(ctx, out)
	return out, nil
}

// section runs one part of the complete analysis under its own timeout and span.
func (s *analysisService) section(ctx context.Context, name, symbol string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "analysis.section."+name)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.opts.SectionTimeout)
	defer cancel()

	err := fn(ctx)
	span.SetAttributes(attribute.String("outcome", upstream.Outcome(err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, upstream.Outcome(err))
		logger.L().Warn().
			Str("symbol", symbol).
			Str("section", name).
			Str("outcome", upstream.Outcome(err)).
			Err(err).
			Msg("analysis section unavailable")
	}
	return err
}

func (s *analysisService) record(ctx context.Context, a *models.CompleteAnalysis) {
	snap := models.Snapshot{
		ID:               s.newID(),
		Symbol:           a.Symbol,
		Action:           a.Recommendation.Action,
		Confidence:       a.Recommendation.ConfidenceScore,
		Score:            a.Recommendation.RecommendationScore,
		OverallSentiment: a.SentimentAnalysis.OverallSentiment,
		Price:            a.StockData.Price,
		CreatedAt:        a.Timestamp,
	}
	// Recording outlives a client disconnect but not a stuck database.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.RecordTimeout)
	defer cancel()
	if err := s.deps.Snapshots.Record(rctx, snap); err != nil {
		logger.L().Error().Str("symbol", a.Symbol).Err(err).Msg("failed to record snapshot")
	}
}

func (s *analysisService) sentimentFor(ctx context.Context, symbol string, days, limit int) (*models.SentimentSummary, error) {
	articles, err := s.deps.News.StockNews(ctx, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("news for %s: %w", symbol, err)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	return s.deps.Sentiment.Analyze(ctx, symbol, articles)
}

func (s *analysisService) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	return s.deps.Quotes.Quote(ctx, symbol)
}

func (s *analysisService) Quotes(ctx context.Context, symbols []string) ([]models.Quote, []quote.SymbolError, error) {
	return s.deps.Quotes.Quotes(ctx, symbols)
}

func (s *analysisService) News(ctx context.Context, symbol string, days int) ([]models.NewsArticle, error) {
	return s.deps.News.StockNews(ctx, symbol, days)
}

func (s *analysisService) MarketNews(ctx context.Context, category string) ([]models.NewsArticle, error) {
	return s.deps.News.MarketNews(ctx, category)
}

func (s *analysisService) Sentiment(ctx context.Context, symbol string, days, limit int) (*models.SentimentSummary, error) {
	return s.sentimentFor(ctx, symbol, days, limit)
}

func (s *analysisService) Fundamentals(ctx context.Context, symbol string) (*models.FundamentalAnalysis, error) {
	return s.deps.Fundamentals.Analyze(ctx, symbol)
}

func (s *analysisService) Technical(ctx context.Context, symbol string) (*models.TechnicalAnalysis, error) {
	return s.deps.Fundamentals.Technical(ctx, symbol)
}

func (s *analysisService) SectorComparison(ctx context.Context, symbol string, peers []string) (*models.SectorComparison, error) {
	return s.deps.Fundamentals.SectorComparison(ctx, symbol, peers)
}

func (s *analysisService) History(ctx context.Context, symbol string, limit int) ([]models.Snapshot, error) {
	return s.deps.Snapshots.List(ctx, symbol, limit)
}

func (s *analysisService) PoweredBy() []string {
	out := []string{"Yahoo Finance"}
	switch s.deps.News.Provider() {
	case "rss":
		out = append(out, "Yahoo Finance RSS")
	default:
		out = append(out, "NewsAPI")
	}
	switch s.deps.Sentiment.ModelName() {
	case "friendli":
		out = append(out, "FriendliAI")
	case "anthropic":
		out = append(out, "Anthropic")
	default:
		out = append(out, "Keyword sentiment")
	}
	return out
}

func quoteSection(symbol string, q *models.Quote, err error) models.QuoteSection {
	if err != nil || q == nil {
		return models.QuoteSection{Status: models.StatusUnavailable, Error: errText(err), Symbol: symbol}
	}
	ts := q.Timestamp
	return models.QuoteSection{
		Status:        models.StatusAvailable,
		Symbol:        q.Symbol,
		Name:          &q.Name,
		Price:         &q.Price,
		Change:        &q.Change,
		ChangePercent: &q.ChangePercent,
		Volume:        &q.Volume,
		MarketCap:     q.MarketCap,
		Timestamp:     &ts,
	}
}

func sentimentSection(sum *models.SentimentSummary, err error) models.SentimentSection {
	if err != nil || sum == nil {
		return models.SentimentSection{Status: models.StatusUnavailable, Error: errText(err)}
	}
	return models.SentimentSection{
		Status:           models.StatusAvailable,
		OverallSentiment: &sum.OverallSentiment,
		SentimentLabel:   &sum.SentimentLabel,
		PositiveCount:    &sum.PositiveCount,
		NegativeCount:    &sum.NegativeCount,
		NeutralCount:     &sum.NeutralCount,
		Confidence:       &sum.Confidence,
		NewsArticles:     sum.NewsArticles,
	}
}

func fundamentalSection(fa *models.FundamentalAnalysis, err error) models.FundamentalSection {
	if err != nil || fa == nil {
		return models.FundamentalSection{Status: models.StatusUnavailable, Error: errText(err)}
	}
	return models.FundamentalSection{
		Status:              models.StatusAvailable,
		FundamentalMetrics:  fa.FundamentalMetrics,
		TechnicalIndicators: fa.TechnicalIndicators,
		RatioAnalysis:       fa.RatioAnalysis,
		RiskMetrics:         fa.RiskMetrics,
		ValuationSummary:    fa.ValuationSummary,
	}
}

func errText(err error) string {
	if err == nil {
		return "no data"
	}
	return err.Error()
}

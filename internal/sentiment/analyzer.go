package sentiment

import (
	"context"
	"math"
	"time"

	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Analyzer scores a batch of articles and aggregates them into a SentimentSummary.
type Analyzer struct {
	model       Scorer
	fallback    KeywordScorer
	limiter     *rate.Limiter
	concurrency int
	now         func() time.Time
}

// NewAnalyzer builds an Analyzer.
//
// Parameters:
//   - model: the model scorer; nil scores every article with keywords.
//   - ratePerSecond: sustained model calls per second, shared across requests.
//   - concurrency: model calls in flight per Analyze call.
func NewAnalyzer(model Scorer, ratePerSecond float64, concurrency int) *Analyzer {
	if ratePerSecond <= 0 {
		ratePerSecond = 10
	}
	if concurrency < 1 {
		concurrency = 1
	}
	burst := int(math.Ceil(ratePerSecond))
	return &Analyzer{
		model:       model,
		limiter:     rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		concurrency: concurrency,
		now:         time.Now,
	}
}

// ModelName names the scorer used first, "keyword" when no model is configured.
func (a *Analyzer) ModelName() string {
	if a.model == nil {
		return a.fallback.Name()
	}
	return a.model.Name()
}

// Analyze scores articles concurrently and aggregates the result.
//
// Behavior:
//   - Articles keep their input order in the summary.
//   - An article whose model call fails is scored with keywords and tagged
//     sentiment_source "keyword".
//   - Zero articles yield zero counts, overall 0, confidence 0 and an empty list.
//
// Returns an error only when ctx is done before scoring finishes.
func (a *Analyzer) Analyze(ctx context.Context, symbol string, articles []models.NewsArticle) (*models.SentimentSummary, error) {
	scored := make([]models.NewsArticle, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, art := range articles {
		g.Go(func() error {
			res, err := a.scoreOne(gctx, art)
			if err != nil {
				return err
			}
			scored[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Summarize(symbol, scored, a.now().UTC()), nil
}

func (a *Analyzer) scoreOne(ctx context.Context, art models.NewsArticle) (models.NewsArticle, error) {
	if a.model == nil {
		return art.WithSentiment(KeywordScore(art), models.SentimentSourceKeyword), nil
	}

	if err := a.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return models.NewsArticle{}, ctx.Err()
		}
		// The deadline leaves no room for another model call.
		return art.WithSentiment(KeywordScore(art), models.SentimentSourceKeyword), nil
	}

	score, err := a.model.Score(ctx, art)
	if err != nil {
		if ctx.Err() != nil {
			return models.NewsArticle{}, ctx.Err()
		}
		logger.L().Warn().
			Str("scorer", a.model.Name()).
			Str("title", truncate(art.Title, 50)).
			Err(err).
			Msg("model scoring failed, using keyword fallback")
		return art.WithSentiment(KeywordScore(art), models.SentimentSourceKeyword), nil
	}
	return art.WithSentiment(score, models.SentimentSourceLLM), nil
}

// Summarize aggregates already-scored articles.
//
// Confidence is 0.5·(share of model-scored articles) + 0.5·(share of the most
// common label), rounded to two decimals.
func Summarize(symbol string, scored []models.NewsArticle, at time.Time) *models.SentimentSummary {
	out := &models.SentimentSummary{
		Symbol:          symbol,
		SentimentLabel:  models.SentimentNeutral,
		MarketSentiment: models.MarketLabelFor(0),
		NewsArticles:    make([]models.NewsArticle, 0, len(scored)),
		Timestamp:       at,
	}
	if len(scored) == 0 {
		return out
	}

	var sum float64
	var llm int
	for _, art := range scored {
		score := 0.0
		if art.SentimentScore != nil {
			score = *art.SentimentScore
		}
		sum += score
		if art.SentimentSource == models.SentimentSourceLLM {
			llm++
		}
		switch models.LabelFor(score) {
		case models.SentimentPositive:
			out.PositiveCount++
		case models.SentimentNegative:
			out.NegativeCount++
		default:
			out.NeutralCount++
		}
		out.NewsArticles = append(out.NewsArticles, art)
	}

	n := float64(len(scored))
	out.OverallSentiment = sum / n
	out.SentimentLabel = models.LabelFor(out.OverallSentiment)
	out.MarketSentiment = models.MarketLabelFor(out.OverallSentiment)

	dominant := max(out.PositiveCount, out.NegativeCount, out.NeutralCount)
	out.Confidence = round2(0.5*float64(llm)/n + 0.5*float64(dominant)/n)
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

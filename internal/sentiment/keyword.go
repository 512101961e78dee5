package sentiment

import (
	"context"
	"math"
	"strings"

	"github.com/guttosm/smartinvest/internal/domain/models"
)

var positiveKeywords = []string{
	"profit", "growth", "increase", "beat", "exceed", "strong", "record",
	"buy", "bullish", "upgrade", "outperform", "rally", "surge", "gains",
	"earnings beat", "revenue growth", "positive outlook", "expansion",
}

var negativeKeywords = []string{
	"loss", "decline", "fall", "drop", "miss", "weak", "concern",
	"sell", "bearish", "downgrade", "underperform", "crash", "plunge",
	"earnings miss", "revenue decline", "negative outlook", "layoffs",
}

const (
	keywordWeight = 0.2
	keywordCap    = 0.8
)

// KeywordScorer scores articles by counting financial keywords in the title and description.
// It never fails and makes no network calls.
type KeywordScorer struct{}

// Score returns 0.2 per keyword of the dominant polarity, capped at ±0.8. Ties score 0.
func (KeywordScorer) Score(_ context.Context, a models.NewsArticle) (float64, error) {
	return KeywordScore(a), nil
}

func (KeywordScorer) Name() string { return "keyword" }

// KeywordScore is the pure form of KeywordScorer.Score.
func KeywordScore(a models.NewsArticle) float64 {
	text := strings.ToLower(a.Title + " " + a.Description)

	pos, neg := 0, 0
	for _, k := range positiveKeywords {
		if strings.Contains(text, k) {
			pos++
		}
	}
	for _, k := range negativeKeywords {
		if strings.Contains(text, k) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return math.Min(keywordCap, round2(float64(pos)*keywordWeight))
	case neg > pos:
		return math.Max(-keywordCap, -round2(float64(neg)*keywordWeight))
	default:
		return 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

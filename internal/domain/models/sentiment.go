package models

import "time"

// SentimentLabel is the categorical reading of a sentiment score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// SentimentThreshold is the absolute score above which a reading stops being neutral.
const SentimentThreshold = 0.1

// LabelFor maps a score to its label. Scores exactly at ±0.1 are Neutral.
func LabelFor(score float64) SentimentLabel {
	switch {
	case score > SentimentThreshold:
		return SentimentPositive
	case score < -SentimentThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// MarketLabelFor maps a score to the market wording: Bullish, Bearish or Neutral.
func MarketLabelFor(score float64) string {
	switch LabelFor(score) {
	case SentimentPositive:
		return "Bullish"
	case SentimentNegative:
		return "Bearish"
	default:
		return "Neutral"
	}
}

// SentimentSummary aggregates the scored articles of one symbol.
//
// Fields:
//   - OverallSentiment: arithmetic mean of article scores, 0 when there are none.
//   - SentimentLabel / MarketSentiment: LabelFor and MarketLabelFor of the mean.
//   - Positive/Negative/NeutralCount: per-article LabelFor counts.
//   - Confidence: in [0,1]; 0 when there are no articles.
//   - NewsArticles: scored articles in provider order, never nil.
//
// swagger:model SentimentSummary
type SentimentSummary struct {
	Symbol           string         `json:"symbol" example:"AAPL"`
	OverallSentiment float64        `json:"overall_sentiment" example:"0.35"`
	SentimentLabel   SentimentLabel `json:"sentiment_label" example:"Positive"`
	MarketSentiment  string         `json:"market_sentiment" example:"Bullish"`
	PositiveCount    int            `json:"positive_count" example:"2"`
	NegativeCount    int            `json:"negative_count" example:"0"`
	NeutralCount     int            `json:"neutral_count" example:"1"`
	Confidence       float64        `json:"confidence" example:"0.83"`
	NewsArticles     []NewsArticle  `json:"news_articles"`
	Timestamp        time.Time      `json:"timestamp"`
}

package models

import "time"

// SentimentSource tells which scorer produced an article's sentiment.
type SentimentSource string

const (
	SentimentSourceLLM     SentimentSource = "llm"
	SentimentSourceKeyword SentimentSource = "keyword"
)

// NewsArticle is a headline returned by a news provider.
//
// Articles are never mutated after fetch. Scoring returns a copy with the
// sentiment fields filled (see WithSentiment).
//
// swagger:model NewsArticle
type NewsArticle struct {
	Title           string          `json:"title" example:"Apple beats earnings expectations"`
	Description     string          `json:"description"`
	Content         string          `json:"content"`
	URL             string          `json:"url" example:"https://example.com/apple-earnings"`
	Source          string          `json:"source" example:"Reuters"`
	PublishedAt     time.Time       `json:"published_at"`
	SentimentScore  *float64        `json:"sentiment_score"`
	SentimentLabel  SentimentLabel  `json:"sentiment_label,omitempty"`
	SentimentSource SentimentSource `json:"sentiment_source,omitempty"`
}

// WithSentiment returns a copy of a carrying the given score, its label and the source.
func (a NewsArticle) WithSentiment(score float64, source SentimentSource) NewsArticle {
	s := score
	a.SentimentScore = &s
	a.SentimentLabel = LabelFor(score)
	a.SentimentSource = source
	return a
}

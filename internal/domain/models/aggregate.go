package models

import "time"

// Action is the recommended stance on a symbol.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionHold Action = "Hold"
	ActionSell Action = "Sell"
)

// Recommendation is derived from the available signals of a CompleteAnalysis.
//
// Fields:
//   - Action: one of Buy, Hold or Sell.
//   - ConfidenceScore: fraction in [0,1], rounded to two decimals.
//   - RecommendationScore: signed sum of signal weights.
//   - SupportingFactors: one line per contributing signal, in evaluation order.
//
// swagger:model Recommendation
type Recommendation struct {
	Action              Action   `json:"action" example:"Buy"`
	ConfidenceScore     float64  `json:"confidence_score" example:"0.72"`
	RecommendationScore int      `json:"recommendation_score" example:"3"`
	SupportingFactors   []string `json:"supporting_factors"`
}

// SectionStatus marks whether a section of the composed analysis could be computed.
type SectionStatus string

const (
	StatusAvailable   SectionStatus = "available"
	StatusUnavailable SectionStatus = "unavailable"
)

// QuoteSection is the stock_data part of a CompleteAnalysis.
// When Status is unavailable every data field is null.
type QuoteSection struct {
	Status        SectionStatus `json:"status" example:"available"`
	Error         string        `json:"error,omitempty"`
	Symbol        string        `json:"symbol" example:"AAPL"`
	Name          *string       `json:"name"`
	Price         *float64      `json:"price"`
	Change        *float64      `json:"change"`
	ChangePercent *float64      `json:"change_percent"`
	Volume        *int64        `json:"volume"`
	MarketCap     *float64      `json:"market_cap"`
	Timestamp     *time.Time    `json:"timestamp"`
}

// SentimentSection is the sentiment_analysis part of a CompleteAnalysis.
type SentimentSection struct {
	Status           SectionStatus   `json:"status" example:"available"`
	Error            string          `json:"error,omitempty"`
	OverallSentiment *float64        `json:"overall_sentiment"`
	SentimentLabel   *SentimentLabel `json:"sentiment_label"`
	PositiveCount    *int            `json:"positive_count"`
	NegativeCount    *int            `json:"negative_count"`
	NeutralCount     *int            `json:"neutral_count"`
	Confidence       *float64        `json:"confidence"`
	NewsArticles     []NewsArticle   `json:"news_articles"`
}

// FundamentalSection is the fundamental_analysis part of a CompleteAnalysis.
type FundamentalSection struct {
	Status              SectionStatus        `json:"status" example:"available"`
	Error               string               `json:"error,omitempty"`
	FundamentalMetrics  *FundamentalMetrics  `json:"fundamental_metrics"`
	TechnicalIndicators *TechnicalIndicators `json:"technical_indicators"`
	RatioAnalysis       *RatioAnalysis       `json:"ratio_analysis"`
	RiskMetrics         *RiskMetrics         `json:"risk_metrics"`
	ValuationSummary    *ValuationSummary    `json:"valuation_summary"`
}

// Signals are the categorical readings the recommendation is built from.
// A reading whose input is missing is "unknown".
type Signals struct {
	PriceSignal         string        `json:"price_signal" example:"bullish"`
	SentimentSignal     string        `json:"sentiment_signal" example:"positive"`
	ValuationAssessment string        `json:"valuation_assessment" example:"fairly_valued"`
	TrendSignals        *TrendSignals `json:"trend_signals"`
}

// CompleteAnalysis is the Aggregator output for one symbol.
type CompleteAnalysis struct {
	Symbol              string
	StockData           QuoteSection
	SentimentAnalysis   SentimentSection
	FundamentalAnalysis FundamentalSection
	Signals             Signals
	Recommendation      Recommendation
	Timestamp           time.Time
}

// AvailableSections counts the sections whose status is available.
func (a CompleteAnalysis) AvailableSections() int {
	n := 0
	for _, s := range []SectionStatus{a.StockData.Status, a.SentimentAnalysis.Status, a.FundamentalAnalysis.Status} {
		if s == StatusAvailable {
			n++
		}
	}
	return n
}

// Snapshot is the persisted summary of one CompleteAnalysis.
//
// swagger:model Snapshot
type Snapshot struct {
	ID               string    `json:"id" example:"5f0c6f0e-3c39-4d7e-9f2f-3c2b9d1a7e11"`
	Symbol           string    `json:"symbol" example:"AAPL"`
	Action           Action    `json:"action" example:"Buy"`
	Confidence       float64   `json:"confidence" example:"0.72"`
	Score            int       `json:"score" example:"3"`
	OverallSentiment *float64  `json:"overall_sentiment"`
	Price            *float64  `json:"price"`
	CreatedAt        time.Time `json:"created_at"`
}

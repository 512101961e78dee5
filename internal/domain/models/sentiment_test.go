package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFor_Boundaries(t *testing.T) {
	cases := []struct {
		score  float64
		label  SentimentLabel
		market string
	}{
		{0.1, SentimentNeutral, "Neutral"},
		{-0.1, SentimentNeutral, "Neutral"},
		{0.10001, SentimentPositive, "Bullish"},
		{-0.10001, SentimentNegative, "Bearish"},
		{0.0, SentimentNeutral, "Neutral"},
		{1.0, SentimentPositive, "Bullish"},
		{-1.0, SentimentNegative, "Bearish"},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.label, LabelFor(tc.score), "LabelFor(%v)", tc.score)
		assert.Equalf(t, tc.market, MarketLabelFor(tc.score), "MarketLabelFor(%v)", tc.score)
	}
}

func TestNewsArticle_WithSentimentReturnsCopy(t *testing.T) {
	orig := NewsArticle{Title: "t", PublishedAt: time.Unix(0, 0)}
	scored := orig.WithSentiment(0.4, SentimentSourceLLM)

	assert.Nil(t, orig.SentimentScore, "original must stay unscored")
	require.NotNil(t, scored.SentimentScore)
	assert.Equal(t, 0.4, *scored.SentimentScore)
	assert.Equal(t, SentimentPositive, scored.SentimentLabel)
	assert.Equal(t, SentimentSourceLLM, scored.SentimentSource)
}

func TestCompleteAnalysis_AvailableSections(t *testing.T) {
	a := CompleteAnalysis{
		StockData:           QuoteSection{Status: StatusAvailable},
		SentimentAnalysis:   SentimentSection{Status: StatusUnavailable},
		FundamentalAnalysis: FundamentalSection{Status: StatusAvailable},
	}
	assert.Equal(t, 2, a.AvailableSections())
}

func TestClosesAndVolumes(t *testing.T) {
	bars := []PriceBar{{Close: 1, Volume: 10}, {Close: 2, Volume: 20}}
	assert.Equal(t, []float64{1, 2}, Closes(bars))
	assert.Equal(t, []float64{10, 20}, Volumes(bars))
}

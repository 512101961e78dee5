package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/smartinvest/internal/domain/models"
)

func TestCompleteAnalysisResponse_FieldNames(t *testing.T) {
	a := &models.CompleteAnalysis{
		Symbol:              "AAPL",
		StockData:           models.QuoteSection{Status: models.StatusUnavailable, Error: "yahoo quote: upstream unavailable", Symbol: "AAPL"},
		SentimentAnalysis:   models.SentimentSection{Status: models.StatusAvailable, NewsArticles: []models.NewsArticle{}},
		FundamentalAnalysis: models.FundamentalSection{Status: models.StatusAvailable},
		Signals:             models.Signals{PriceSignal: "unknown", SentimentSignal: "neutral", ValuationAssessment: "unknown"},
		Recommendation:      models.Recommendation{Action: models.ActionHold, SupportingFactors: []string{}},
		Timestamp:           time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(NewCompleteAnalysisResponse(a, []string{"Yahoo Finance"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	for _, want := range []string{
		`"symbol":"AAPL"`,
		`"complete_analysis":{"stock_data":{"status":"unavailable","error":"yahoo quote: upstream unavailable","symbol":"AAPL","name":null,"price":null`,
		`"sentiment_analysis":{"status":"available"`,
		`"fundamental_analysis":{"status":"available"`,
		`"signals":{"price_signal":"unknown"`,
		`"recommendation":{"action":"Hold","confidence_score":0,"recommendation_score":0,"supporting_factors":[]}`,
		`"powered_by":["Yahoo Finance"]`,
		`"timestamp":"2024-01-02T03:04:05Z"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}
	if strings.Contains(body, `"sentiment_analysis":{"status":"available","error"`) {
		t.Fatalf("available sections must omit error: %s", body)
	}
}

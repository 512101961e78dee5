package dto

import (
	"time"

	"github.com/guttosm/smartinvest/internal/domain/models"
)

// CompleteAnalysisResponse is the body of GET /api/v1/analysis/complete/{symbol}.
//
// swagger:model CompleteAnalysisResponse
type CompleteAnalysisResponse struct {
	Symbol           string               `json:"symbol" example:"AAPL"`
	CompleteAnalysis CompleteAnalysisBody `json:"complete_analysis"`
	PoweredBy        []string             `json:"powered_by"`
	Timestamp        time.Time            `json:"timestamp"`
}

// CompleteAnalysisBody holds the sections of a complete analysis. Sections
// that could not be computed carry status "unavailable" and null data.
type CompleteAnalysisBody struct {
	StockData           models.QuoteSection       `json:"stock_data"`
	SentimentAnalysis   models.SentimentSection   `json:"sentiment_analysis"`
	FundamentalAnalysis models.FundamentalSection `json:"fundamental_analysis"`
	Signals             models.Signals            `json:"signals"`
	Recommendation      models.Recommendation     `json:"recommendation"`
}

// NewCompleteAnalysisResponse maps the Aggregator output to the API contract.
func NewCompleteAnalysisResponse(a *models.CompleteAnalysis, poweredBy []string) CompleteAnalysisResponse {
	return CompleteAnalysisResponse{
		Symbol: a.Symbol,
		CompleteAnalysis: CompleteAnalysisBody{
			StockData:           a.StockData,
			SentimentAnalysis:   a.SentimentAnalysis,
			FundamentalAnalysis: a.FundamentalAnalysis,
			Signals:             a.Signals,
			Recommendation:      a.Recommendation,
		},
		PoweredBy: poweredBy,
		Timestamp: a.Timestamp,
	}
}

// SymbolError names a symbol of a batch request that could not be served.
type SymbolError struct {
	Symbol string `json:"symbol" example:"INVALIDXYZ"`
	Error  string `json:"error" example:"invalid symbol"`
}

// BatchQuotesResponse is the body of GET /api/v1/stocks/multiple.
//
// swagger:model BatchQuotesResponse
type BatchQuotesResponse struct {
	Data   []models.Quote `json:"data"`
	Errors []SymbolError  `json:"errors"`
	Count  int            `json:"count" example:"1"`
}

// HistoryResponse is the body of GET /api/v1/analysis/history/{symbol}.
//
// swagger:model HistoryResponse
type HistoryResponse struct {
	Symbol    string            `json:"symbol" example:"AAPL"`
	Snapshots []models.Snapshot `json:"snapshots"`
	Count     int               `json:"count" example:"2"`
}

// ServiceInfo is the body of GET /api/v1/.
type ServiceInfo struct {
	Message   string    `json:"message" example:"SmartInvest API"`
	Version   string    `json:"version" example:"1.0.0"`
	Timestamp time.Time `json:"timestamp"`
	Features  []string  `json:"features"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

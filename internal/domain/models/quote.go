package models

import "time"

// Quote is the current market snapshot of a single ticker.
//
// Fields:
//   - Symbol: upper-case ticker (e.g., "AAPL").
//   - Name: provider display name; falls back to the symbol.
//   - Price / Change / ChangePercent: last price and change against the previous close.
//   - Volume: shares traded in the current session.
//   - MarketCap: nil when the provider does not report it.
//   - Timestamp: when the quote was fetched.
//
// swagger:model Quote
type Quote struct {
	Symbol        string    `json:"symbol" example:"AAPL"`
	Name          string    `json:"name" example:"Apple Inc."`
	Price         float64   `json:"price" example:"189.84"`
	Change        float64   `json:"change" example:"1.27"`
	ChangePercent float64   `json:"change_percent" example:"0.67"`
	Volume        int64     `json:"volume" example:"48291003"`
	MarketCap     *float64  `json:"market_cap" example:"2950000000000"`
	Timestamp     time.Time `json:"timestamp"`
}

// PriceBar is one daily OHLCV bar of price history.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Closes returns the close prices of bars in order.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the traded volumes of bars in order.
func Volumes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = float64(b.Volume)
	}
	return out
}

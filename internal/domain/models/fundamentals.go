package models

import "time"

// FundamentalMetrics are the key statistics reported by the market-data provider.
// Any field the provider does not report is nil.
//
// swagger:model FundamentalMetrics
type FundamentalMetrics struct {
	MarketCap           *float64 `json:"market_cap"`
	EnterpriseValue     *float64 `json:"enterprise_value"`
	TrailingPE          *float64 `json:"trailing_pe"`
	ForwardPE           *float64 `json:"forward_pe"`
	PriceToBook         *float64 `json:"price_to_book"`
	PriceToSales        *float64 `json:"price_to_sales"`
	EnterpriseToRevenue *float64 `json:"enterprise_to_revenue"`
	EnterpriseToEbitda  *float64 `json:"enterprise_to_ebitda"`
	ProfitMargins       *float64 `json:"profit_margins"`
	OperatingMargins    *float64 `json:"operating_margins"`
	ReturnOnAssets      *float64 `json:"return_on_assets"`
	ReturnOnEquity      *float64 `json:"return_on_equity"`
	RevenueGrowth       *float64 `json:"revenue_growth"`
	EarningsGrowth      *float64 `json:"earnings_growth"`
	DebtToEquity        *float64 `json:"debt_to_equity"`
	CurrentRatio        *float64 `json:"current_ratio"`
	QuickRatio          *float64 `json:"quick_ratio"`
	DividendYield       *float64 `json:"dividend_yield"`
	PayoutRatio         *float64 `json:"payout_ratio"`
	Beta                *float64 `json:"beta"`
}

// MovingAverages holds the latest simple and exponential averages of close prices.
type MovingAverages struct {
	SMA20  *float64 `json:"SMA_20"`
	SMA50  *float64 `json:"SMA_50"`
	SMA200 *float64 `json:"SMA_200"`
	EMA12  *float64 `json:"EMA_12"`
	EMA26  *float64 `json:"EMA_26"`
}

// MACD is the moving average convergence/divergence triple.
type MACD struct {
	Line      *float64 `json:"line"`
	Signal    *float64 `json:"signal"`
	Histogram *float64 `json:"histogram"`
}

// MomentumIndicators groups RSI(14) and MACD(12,26,9).
type MomentumIndicators struct {
	RSI  *float64 `json:"RSI"`
	MACD MACD     `json:"MACD"`
}

// VolumeAnalysis compares the last session volume with its 20-day average.
type VolumeAnalysis struct {
	AvgVolume20d  *float64 `json:"avg_volume_20d"`
	CurrentVolume *float64 `json:"current_volume"`
	VolumeRatio   *float64 `json:"volume_ratio"`
}

// Trend is the direction of price relative to a moving average.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// TrendSignals compares the last close with SMA 20/50/200.
type TrendSignals struct {
	ShortTerm  Trend `json:"short_term"`
	MediumTerm Trend `json:"medium_term"`
	LongTerm   Trend `json:"long_term"`
}

// PriceRange is the highest and lowest close over the analyzed window.
type PriceRange struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// PriceStatistics summarizes the analyzed window.
type PriceStatistics struct {
	AvgClose   float64    `json:"avg_close"`
	AvgVolume  float64    `json:"avg_volume"`
	PriceRange PriceRange `json:"price_range"`
}

// TechnicalIndicators are computed from daily price history.
//
// swagger:model TechnicalIndicators
type TechnicalIndicators struct {
	MovingAverages     MovingAverages     `json:"moving_averages"`
	MomentumIndicators MomentumIndicators `json:"momentum_indicators"`
	VolumeAnalysis     VolumeAnalysis     `json:"volume_analysis"`
	TrendSignals       TrendSignals       `json:"trend_signals"`
	PriceStatistics    PriceStatistics    `json:"price_statistics"`
	DataPointsAnalyzed int                `json:"data_points_analyzed"`
}

type ValuationRatios struct {
	PERatio  *float64 `json:"PE_ratio"`
	PBRatio  *float64 `json:"PB_ratio"`
	PSRatio  *float64 `json:"PS_ratio"`
	PEGRatio *float64 `json:"PEG_ratio"`
}

type GrowthMetrics struct {
	RevenueGrowthRate  *float64 `json:"revenue_growth_rate"`
	EarningsGrowthRate *float64 `json:"earnings_growth_rate"`
}

type EfficiencyRatios struct {
	ReturnOnEquity *float64 `json:"return_on_equity"`
	ReturnOnAssets *float64 `json:"return_on_assets"`
	ProfitMargin   *float64 `json:"profit_margin"`
}

type LiquidityRatios struct {
	CurrentRatio *float64 `json:"current_ratio"`
	QuickRatio   *float64 `json:"quick_ratio"`
}

type LeverageRatios struct {
	DebtToEquity    *float64 `json:"debt_to_equity"`
	EnterpriseValue *float64 `json:"enterprise_value"`
}

// RatioAnalysis regroups the key statistics by concern and adds the PEG ratio.
type RatioAnalysis struct {
	ValuationRatios  ValuationRatios  `json:"valuation_ratios"`
	GrowthMetrics    GrowthMetrics    `json:"growth_metrics"`
	EfficiencyRatios EfficiencyRatios `json:"efficiency_ratios"`
	LiquidityRatios  LiquidityRatios  `json:"liquidity_ratios"`
	LeverageRatios   LeverageRatios   `json:"leverage_ratios"`
}

// RiskLevel buckets annualized volatility.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
	RiskUnknown  RiskLevel = "unknown"
)

// RiskMetrics are derived from daily returns plus the provider beta.
type RiskMetrics struct {
	Volatility  *float64  `json:"volatility"`
	MaxDrawdown *float64  `json:"max_drawdown"`
	Beta        *float64  `json:"beta"`
	RiskLevel   RiskLevel `json:"risk_level"`
}

// Valuation is the overall verdict of the valuation summary.
type Valuation string

const (
	ValuationUndervalued  Valuation = "undervalued"
	ValuationOvervalued   Valuation = "overvalued"
	ValuationFairlyValued Valuation = "fairly_valued"
	ValuationUnknown      Valuation = "unknown"
)

// ValuationSummary scores P/E, P/B and ROE against fixed thresholds.
type ValuationSummary struct {
	OverallAssessment Valuation `json:"overall_assessment"`
	ValuationScore    int       `json:"valuation_score"`
	KeySignals        []string  `json:"key_signals"`
}

// FundamentalAnalysis is the full output of the fundamentals processor.
// Parts that could not be computed are nil.
//
// swagger:model FundamentalAnalysis
type FundamentalAnalysis struct {
	Symbol              string               `json:"symbol" example:"AAPL"`
	FundamentalMetrics  *FundamentalMetrics  `json:"fundamental_metrics"`
	TechnicalIndicators *TechnicalIndicators `json:"technical_indicators"`
	RatioAnalysis       *RatioAnalysis       `json:"ratio_analysis"`
	RiskMetrics         *RiskMetrics         `json:"risk_metrics"`
	ValuationSummary    *ValuationSummary    `json:"valuation_summary"`
	Timestamp           time.Time            `json:"timestamp"`
}

// TechnicalAnalysis is the technical-only view of a FundamentalAnalysis.
//
// swagger:model TechnicalAnalysis
type TechnicalAnalysis struct {
	Symbol              string               `json:"symbol" example:"AAPL"`
	TechnicalIndicators *TechnicalIndicators `json:"technical_indicators"`
	RiskMetrics         *RiskMetrics         `json:"risk_metrics"`
	Timestamp           time.Time            `json:"timestamp"`
}

// SectorMetric places one metric of the target among its peers.
type SectorMetric struct {
	Value            float64 `json:"value"`
	SectorAverage    float64 `json:"sector_average"`
	SectorPercentile float64 `json:"sector_percentile"`
	PeersCompared    int     `json:"peers_compared"`
}

// SectorComparison ranks a symbol against peer symbols.
//
// Fields:
//   - RelativePerformance: keyed by metric name (trailing_pe, price_to_book,
//     return_on_equity, profit_margins); metrics with fewer than two values are absent.
//   - Skipped: peers whose statistics could not be fetched.
//
// swagger:model SectorComparison
type SectorComparison struct {
	TargetSymbol        string                  `json:"target_symbol" example:"AAPL"`
	Peers               []string                `json:"peers"`
	RelativePerformance map[string]SectorMetric `json:"relative_performance"`
	Skipped             []string                `json:"skipped"`
	Timestamp           time.Time               `json:"timestamp"`
}

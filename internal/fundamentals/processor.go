// Package fundamentals turns key statistics and daily price history into the
// fundamental, technical and risk views of a symbol.
package fundamentals

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/logger"
	"github.com/guttosm/smartinvest/internal/upstream"
	"golang.org/x/sync/errgroup"
)

// historyRange is the window technical indicators are computed over.
const historyRange = "1y"

// peerConcurrency bounds statistics calls in flight during a sector comparison.
const peerConcurrency = 4

// MarketData is the subset of the quote client the processor reads from.
type MarketData interface {
	History(ctx context.Context, symbol, rng string) ([]models.PriceBar, error)
	Statistics(ctx context.Context, symbol string) (*models.FundamentalMetrics, error)
}

// Processor computes fundamental and technical analyses.
type Processor interface {
	// Analyze returns every part that can be computed from the inputs that
	// could be fetched. It fails only when both statistics and history fail.
	Analyze(ctx context.Context, symbol string) (*models.FundamentalAnalysis, error)
	// Technical returns indicators and risk metrics computed from history alone.
	Technical(ctx context.Context, symbol string) (*models.TechnicalAnalysis, error)
	// SectorComparison ranks symbol against peers on a fixed set of metrics.
	SectorComparison(ctx context.Context, symbol string, peers []string) (*models.SectorComparison, error)
}

type processor struct {
	market MarketData
	now    func() time.Time
}

// NewProcessor builds a Processor over a market-data source.
//
// Parameters:
//   - market: source of key statistics and daily history (usually a quote.Client).
//
// Returns:
//   - Processor: safe for concurrent use.
func NewProcessor(market MarketData) Processor {
	return &processor{market: market, now: time.Now}
}

func (p *processor) Analyze(ctx context.Context, symbol string) (*models.FundamentalAnalysis, error) {
	var (
		stats             *models.FundamentalMetrics
		bars              []models.PriceBar
		statsErr, histErr error
	)

	// Both fetches always run to completion; a failure of one must not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		stats, statsErr = p.market.Statistics(ctx, symbol)
		return nil
	})
	g.Go(func() error {
		bars, histErr = p.fetchHistory(ctx, symbol)
		return nil
	})
	_ = g.Wait()

	if statsErr != nil && histErr != nil {
		return nil, fmt.Errorf("fundamentals for %s: %w", symbol, errors.Join(statsErr, histErr))
	}
	if statsErr != nil {
		logger.L().Warn().Str("symbol", symbol).Err(statsErr).Msg("statistics unavailable, computing technicals only")
	}
	if histErr != nil {
		logger.L().Warn().Str("symbol", symbol).Err(histErr).Msg("history unavailable, computing ratios only")
	}

	out := &models.FundamentalAnalysis{
		Symbol:             symbol,
		FundamentalMetrics: stats,
		Timestamp:          p.now().UTC(),
	}
	if histErr == nil {
		out.TechnicalIndicators = ComputeTechnicals(bars)
	}
	if statsErr == nil {
		ratios := AnalyzeRatios(stats)
		out.RatioAnalysis = &ratios
		summary := SummarizeValuation(stats)
		out.ValuationSummary = &summary
	}
	risk := ComputeRisk(bars, stats)
	out.RiskMetrics = &risk
	return out, nil
}

func (p *processor) Technical(ctx context.Context, symbol string) (*models.TechnicalAnalysis, error) {
	bars, err := p.fetchHistory(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("technical analysis for %s: %w", symbol, err)
	}
	risk := ComputeRisk(bars, nil)
	return &models.TechnicalAnalysis{
		Symbol:              symbol,
		TechnicalIndicators: ComputeTechnicals(bars),
		RiskMetrics:         &risk,
		Timestamp:           p.now().UTC(),
	}, nil
}

func (p *processor) fetchHistory(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	bars, err := p.market.History(ctx, symbol, historyRange)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, upstream.NewError("fundamentals", "history", upstream.ErrUnavailable, 0, fmt.Errorf("no price history for %s", symbol))
	}
	return bars, nil
}

// sectorMetrics are compared in this order.
var sectorMetrics = []struct {
	name  string
	value func(m *models.FundamentalMetrics) *float64
}{
	{"trailing_pe", func(m *models.FundamentalMetrics) *float64 { return m.TrailingPE }},
	{"price_to_book", func(m *models.FundamentalMetrics) *float64 { return m.PriceToBook }},
	{"return_on_equity", func(m *models.FundamentalMetrics) *float64 { return m.ReturnOnEquity }},
	{"profit_margins", func(m *models.FundamentalMetrics) *float64 { return m.ProfitMargins }},
}

func (p *processor) SectorComparison(ctx context.Context, symbol string, peers []string) (*models.SectorComparison, error) {
	peers = uniquePeers(symbol, peers)
	symbols := append([]string{symbol}, peers...)

	stats := make([]*models.FundamentalMetrics, len(symbols))
	errs := make([]error, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(peerConcurrency)
	for i, sym := range symbols {
		g.Go(func() error {
			stats[i], errs[i] = p.market.Statistics(gctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	if errs[0] != nil {
		return nil, upstream.NewError("fundamentals", "sector_comparison", upstream.ErrUnavailable, 0,
			fmt.Errorf("statistics for %s: %w", symbol, errs[0]))
	}

	out := &models.SectorComparison{
		TargetSymbol:        symbol,
		Peers:               peers,
		RelativePerformance: map[string]models.SectorMetric{},
		Skipped:             []string{},
		Timestamp:           p.now().UTC(),
	}
	fetched := []*models.FundamentalMetrics{stats[0]}
	for i, sym := range peers {
		if err := errs[i+1]; err != nil {
			logger.L().Warn().Str("symbol", symbol).Str("peer", sym).Err(err).Msg("skipping peer")
			out.Skipped = append(out.Skipped, sym)
			continue
		}
		fetched = append(fetched, stats[i+1])
	}

	for _, metric := range sectorMetrics {
		target := metric.value(stats[0])
		if target == nil {
			continue
		}
		values := make([]float64, 0, len(fetched))
		for _, m := range fetched {
			if v := metric.value(m); v != nil {
				values = append(values, *v)
			}
		}
		if len(values) < 2 {
			continue
		}
		out.RelativePerformance[metric.name] = models.SectorMetric{
			Value:            *target,
			SectorAverage:    mean(values),
			SectorPercentile: Percentile(*target, values),
			PeersCompared:    len(values) - 1,
		}
	}
	return out, nil
}

// uniquePeers drops blanks, duplicates and the target itself, keeping order.
func uniquePeers(symbol string, peers []string) []string {
	out := make([]string, 0, len(peers))
	for _, p := range peers {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" || p == symbol || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ComputeTechnicals derives every technical indicator from daily bars.
// It returns nil for an empty history.
func ComputeTechnicals(bars []models.PriceBar) *models.TechnicalIndicators {
	if len(bars) == 0 {
		return nil
	}
	closes := models.Closes(bars)
	volumes := models.Volumes(bars)
	last := closes[len(closes)-1]

	ma := models.MovingAverages{
		SMA20:  SMA(closes, 20),
		SMA50:  SMA(closes, 50),
		SMA200: SMA(closes, 200),
		EMA12:  EMA(closes, 12),
		EMA26:  EMA(closes, 26),
	}

	vol := models.VolumeAnalysis{
		AvgVolume20d:  SMA(volumes, 20),
		CurrentVolume: ptr(volumes[len(volumes)-1]),
	}
	if vol.AvgVolume20d != nil && *vol.AvgVolume20d > 0 {
		vol.VolumeRatio = ptr(*vol.CurrentVolume / *vol.AvgVolume20d)
	}

	high, low := closes[0], closes[0]
	for _, c := range closes {
		high = max(high, c)
		low = min(low, c)
	}

	return &models.TechnicalIndicators{
		MovingAverages: ma,
		MomentumIndicators: models.MomentumIndicators{
			RSI:  RSI(closes, 14),
			MACD: MACD(closes),
		},
		VolumeAnalysis: vol,
		TrendSignals: models.TrendSignals{
			ShortTerm:  TrendAgainst(last, ma.SMA20),
			MediumTerm: TrendAgainst(last, ma.SMA50),
			LongTerm:   TrendAgainst(last, ma.SMA200),
		},
		PriceStatistics: models.PriceStatistics{
			AvgClose:   mean(closes),
			AvgVolume:  mean(volumes),
			PriceRange: models.PriceRange{High: high, Low: low},
		},
		DataPointsAnalyzed: len(bars),
	}
}

// ComputeRisk derives volatility and drawdown from bars and beta from stats.
// Either input may be empty.
func ComputeRisk(bars []models.PriceBar, stats *models.FundamentalMetrics) models.RiskMetrics {
	closes := models.Closes(bars)
	vol := Volatility(closes)
	risk := models.RiskMetrics{
		Volatility:  vol,
		MaxDrawdown: MaxDrawdown(closes),
		RiskLevel:   ClassifyRisk(vol),
	}
	if stats != nil {
		risk.Beta = stats.Beta
	}
	return risk
}

// AnalyzeRatios regroups key statistics and derives the PEG ratio.
func AnalyzeRatios(m *models.FundamentalMetrics) models.RatioAnalysis {
	if m == nil {
		return models.RatioAnalysis{}
	}
	var peg *float64
	if m.TrailingPE != nil && m.EarningsGrowth != nil && *m.EarningsGrowth > 0 {
		peg = ptr(*m.TrailingPE / (*m.EarningsGrowth * 100))
	}
	return models.RatioAnalysis{
		ValuationRatios: models.ValuationRatios{
			PERatio:  m.TrailingPE,
			PBRatio:  m.PriceToBook,
			PSRatio:  m.PriceToSales,
			PEGRatio: peg,
		},
		GrowthMetrics: models.GrowthMetrics{
			RevenueGrowthRate:  m.RevenueGrowth,
			EarningsGrowthRate: m.EarningsGrowth,
		},
		EfficiencyRatios: models.EfficiencyRatios{
			ReturnOnEquity: m.ReturnOnEquity,
			ReturnOnAssets: m.ReturnOnAssets,
			ProfitMargin:   m.ProfitMargins,
		},
		LiquidityRatios: models.LiquidityRatios{
			CurrentRatio: m.CurrentRatio,
			QuickRatio:   m.QuickRatio,
		},
		LeverageRatios: models.LeverageRatios{
			DebtToEquity:    m.DebtToEquity,
			EnterpriseValue: m.EnterpriseValue,
		},
	}
}

// SummarizeValuation scores P/E, P/B and ROE against fixed thresholds.
//
// Rules:
//   - P/E < 15 scores +1, P/E > 25 scores -1.
//   - P/B < 1.5 scores +1, P/B > 3 scores -1.
//   - ROE > 0.15 scores +1, ROE < 0.10 scores -1.
//   - A total of 2 or more is undervalued, -2 or less overvalued.
//
// With none of the three ratios present the assessment is unknown.
func SummarizeValuation(m *models.FundamentalMetrics) models.ValuationSummary {
	out := models.ValuationSummary{OverallAssessment: models.ValuationUnknown, KeySignals: []string{}}
	if m == nil || (m.TrailingPE == nil && m.PriceToBook == nil && m.ReturnOnEquity == nil) {
		return out
	}

	score := 0
	signal := func(delta int, text string) {
		score += delta
		out.KeySignals = append(out.KeySignals, text)
	}

	if pe := m.TrailingPE; pe != nil {
		switch {
		case *pe < 15:
			signal(1, "Low P/E suggests undervaluation")
		case *pe > 25:
			signal(-1, "High P/E suggests overvaluation")
		}
	}
	if pb := m.PriceToBook; pb != nil {
		switch {
		case *pb < 1.5:
			signal(1, "Low P/B suggests good value")
		case *pb > 3:
			signal(-1, "High P/B suggests premium valuation")
		}
	}
	if roe := m.ReturnOnEquity; roe != nil {
		switch {
		case *roe > 0.15:
			signal(1, "Strong return on equity")
		case *roe < 0.10:
			signal(-1, "Weak return on equity")
		}
	}

	out.ValuationScore = score
	switch {
	case score >= 2:
		out.OverallAssessment = models.ValuationUndervalued
	case score <= -2:
		out.OverallAssessment = models.ValuationOvervalued
	default:
		out.OverallAssessment = models.ValuationFairlyValued
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

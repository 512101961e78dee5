package service

import (
	"math"

	"github.com/guttosm/smartinvest/internal/domain/models"
)

// maxSignalWeight is the combined weight of every signal when all inputs exist.
const maxSignalWeight = 6

const signalUnknown = "unknown"

const insufficientData = "Insufficient data for a recommendation"

// DeriveSignals reads the categorical signals out of the composed sections.
func DeriveSignals(q models.QuoteSection, s models.SentimentSection, f models.FundamentalSection) models.Signals {
	out := models.Signals{
		PriceSignal:         signalUnknown,
		SentimentSignal:     signalUnknown,
		ValuationAssessment: signalUnknown,
	}
	if q.ChangePercent != nil {
		switch {
		case *q.ChangePercent > 0:
			out.PriceSignal = string(models.TrendBullish)
		case *q.ChangePercent < 0:
			out.PriceSignal = string(models.TrendBearish)
		default:
			out.PriceSignal = string(models.TrendNeutral)
		}
	}
	if s.OverallSentiment != nil {
		switch models.LabelFor(*s.OverallSentiment) {
		case models.SentimentPositive:
			out.SentimentSignal = "positive"
		case models.SentimentNegative:
			out.SentimentSignal = "negative"
		default:
			out.SentimentSignal = "neutral"
		}
	}
	if f.ValuationSummary != nil {
		out.ValuationAssessment = string(f.ValuationSummary.OverallAssessment)
	}
	if f.TechnicalIndicators != nil {
		ts := f.TechnicalIndicators.TrendSignals
		out.TrendSignals = &ts
	}
	return out
}

// Recommend scores the signals of a composed analysis.
//
// Weights:
//   - price momentum ±1, sentiment ±1, valuation ±2, long-term trend ±1.
//   - RSI within [30,70] +1, outside -1.
//
// A score of 2 or more is Buy, -2 or less is Sell, anything else Hold.
// Confidence grows with the agreement between the signals (|score| over the
// weight of the signals that had inputs) and with their coverage (that
// weight over the maximum of 6). It is 0 when no signal had input. A sentiment
// section without articles carries no weight.
func Recommend(sig models.Signals, s models.SentimentSection, f models.FundamentalSection) models.Recommendation {
	var (
		score     int
		available int
		factors   = []string{}
	)
	add := func(weight int, text string) {
		score += weight
		factors = append(factors, text)
	}

	switch sig.PriceSignal {
	case string(models.TrendBullish):
		add(1, "Positive price momentum")
	case string(models.TrendBearish):
		add(-1, "Negative price momentum")
	}
	if sig.PriceSignal != signalUnknown {
		available++
	}

	switch sig.SentimentSignal {
	case "positive":
		add(1, "Positive market sentiment")
	case "negative":
		add(-1, "Negative market sentiment")
	}
	if s.OverallSentiment != nil && scoredArticles(s) > 0 {
		available++
	}

	switch models.Valuation(sig.ValuationAssessment) {
	case models.ValuationUndervalued:
		add(2, "Fundamentally undervalued")
	case models.ValuationOvervalued:
		add(-2, "Fundamentally overvalued")
	}
	if sig.ValuationAssessment != signalUnknown {
		available += 2
	}

	if ti := f.TechnicalIndicators; ti != nil {
		switch ti.TrendSignals.LongTerm {
		case models.TrendBullish:
			add(1, "Strong long-term trend")
		case models.TrendBearish:
			add(-1, "Weak long-term trend")
		}
		if ti.MovingAverages.SMA200 != nil {
			available++
		}

		if rsi := ti.MomentumIndicators.RSI; rsi != nil {
			available++
			switch {
			case *rsi > 70:
				add(-1, "RSI overbought")
			case *rsi < 30:
				add(-1, "RSI oversold")
			default:
				add(1, "RSI within normal range")
			}
		}
	}

	if available == 0 {
		return models.Recommendation{
			Action:            models.ActionHold,
			SupportingFactors: []string{insufficientData},
		}
	}

	agreement := math.Abs(float64(score)) / float64(available)
	coverage := float64(available) / maxSignalWeight
	scale := 0.5 + 0.5*coverage

	rec := models.Recommendation{RecommendationScore: score, SupportingFactors: factors}
	switch {
	case score >= 2:
		rec.Action = models.ActionBuy
		rec.ConfidenceScore = (0.5 + 0.45*agreement) * scale
	case score <= -2:
		rec.Action = models.ActionSell
		rec.ConfidenceScore = (0.5 + 0.45*agreement) * scale
	default:
		rec.Action = models.ActionHold
		rec.ConfidenceScore = (0.6 - 0.3*agreement) * scale
	}
	rec.ConfidenceScore = clamp01(math.Round(rec.ConfidenceScore*100) / 100)
	return rec
}

// scoredArticles is the number of articles behind a sentiment section.
func scoredArticles(s models.SentimentSection) int {
	n := 0
	for _, c := range []*int{s.PositiveCount, s.NegativeCount, s.NeutralCount} {
		if c != nil {
			n += *c
		}
	}
	return n
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

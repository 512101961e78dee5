package fundamentals

import (
	"math"

	"github.com/guttosm/smartinvest/internal/domain/models"
)

// tradingDays annualizes daily volatility.
const tradingDays = 252

// SMA returns the mean of the last window values, or nil when there are fewer.
func SMA(values []float64, window int) *float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return ptr(sum / float64(window))
}

// EMASeries computes the span-adjusted exponential moving average of values.
//
// Each point is the weighted mean of all earlier values with weights
// (1-α)^k, α = 2/(span+1), normalized by the sum of weights. Early points
// are therefore not biased towards the first value.
func EMASeries(values []float64, span int) []float64 {
	if span <= 0 || len(values) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1)
	decay := 1 - alpha

	out := make([]float64, len(values))
	var num, den float64
	for i, v := range values {
		num = v + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}
	return out
}

// EMA returns the latest EMASeries value, or nil with fewer than span values.
func EMA(values []float64, span int) *float64 {
	if len(values) < span {
		return nil
	}
	s := EMASeries(values, span)
	return ptr(s[len(s)-1])
}

// MACD returns the 12/26 MACD line, its 9-period signal and the histogram.
// All three are nil with fewer than 26 closes.
func MACD(closes []float64) models.MACD {
	const fast, slow, signal = 12, 26, 9
	if len(closes) < slow {
		return models.MACD{}
	}
	fastS := EMASeries(closes, fast)
	slowS := EMASeries(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastS[i] - slowS[i]
	}
	sig := EMASeries(line, signal)

	l := line[len(line)-1]
	s := sig[len(sig)-1]
	return models.MACD{Line: ptr(l), Signal: ptr(s), Histogram: ptr(l - s)}
}

// RSI returns the relative strength index over the last period changes, using
// plain averages of gains and losses. It is 100 when there were no losses and
// nil with fewer than period+1 closes.
func RSI(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}
	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return ptr(100)
	}
	rs := avgGain / avgLoss
	return ptr(100 - 100/(1+rs))
}

// DailyReturns returns close-to-close percentage changes. Pairs with a zero
// previous close are skipped.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out = append(out, closes[i]/closes[i-1]-1)
	}
	return out
}

// Volatility is the sample standard deviation of daily returns times √252.
// It is nil with fewer than two returns.
func Volatility(closes []float64) *float64 {
	r := DailyReturns(closes)
	if len(r) < 2 {
		return nil
	}
	var mean float64
	for _, v := range r {
		mean += v
	}
	mean /= float64(len(r))

	var ss float64
	for _, v := range r {
		ss += (v - mean) * (v - mean)
	}
	std := math.Sqrt(ss / float64(len(r)-1))
	return ptr(std * math.Sqrt(tradingDays))
}

// MaxDrawdown is the largest peak-to-trough decline as a non-positive fraction.
// It is nil with fewer than two closes.
func MaxDrawdown(closes []float64) *float64 {
	if len(closes) < 2 {
		return nil
	}
	peak := closes[0]
	worst := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if peak > 0 {
			if dd := (c - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}
	return ptr(worst)
}

// ClassifyRisk buckets annualized volatility.
func ClassifyRisk(volatility *float64) models.RiskLevel {
	if volatility == nil || *volatility == 0 || math.IsNaN(*volatility) {
		return models.RiskUnknown
	}
	switch v := *volatility; {
	case v < 0.15:
		return models.RiskLow
	case v < 0.25:
		return models.RiskMedium
	case v < 0.40:
		return models.RiskHigh
	default:
		return models.RiskVeryHigh
	}
}

// TrendAgainst reports bullish when price is above the average and bearish
// otherwise. A missing average is neutral.
func TrendAgainst(price float64, avg *float64) models.Trend {
	if avg == nil {
		return models.TrendNeutral
	}
	if price > *avg {
		return models.TrendBullish
	}
	return models.TrendBearish
}

// Percentile is the share of values less than or equal to value, times 100.
func Percentile(value float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if v <= value {
			n++
		}
	}
	return float64(n) / float64(len(values)) * 100
}

func ptr(v float64) *float64 { return &v }

// Package risk holds the return statistics used by backtest metrics.
package risk

import (
	"math"
	"sort"
)

// TradingDays annualizes per-period statistics.
const TradingDays = 252

// Mean of xs, 0 when empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the sample standard deviation; fewer than two values give 0.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// Annualize scales a per-period standard deviation to a yearly one.
func Annualize(stdev float64) float64 {
	return stdev * math.Sqrt(TradingDays)
}

// LogReturns returns ln(p[i]/p[i-1]); non-positive prices are skipped.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i] <= 0 || prices[i-1] <= 0 {
			continue
		}
		out = append(out, math.Log(prices[i]/prices[i-1]))
	}
	return out
}

// Percentile picks sorted[floor(q·n)] from an ascending slice, clamped to
// the last element. Empty input gives 0.
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Floor(q * float64(n)))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

// VaRResult is a historical value at risk. VaR is the cut-off return at
// the confidence tail (negative is a loss); CVaR averages the tail up to it.
type VaRResult struct {
	Confidence float64
	VaR        float64
	CVaR       float64
}

// HistoricalVaR computes VaR and CVaR from observed returns.
func HistoricalVaR(returns []float64, confidence float64) VaRResult {
	res := VaRResult{Confidence: confidence}
	if len(returns) == 0 {
		return res
	}

	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	q := 1 - confidence
	res.VaR = Percentile(sorted, q)

	idx := int(math.Floor(q * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	res.CVaR = Mean(sorted[:idx+1])
	return res
}

// Drawdown is (peak - value)/peak, 0 unless peak is positive and above value.
func Drawdown(peak, value float64) float64 {
	if peak <= 0 {
		return 0
	}
	dd := (peak - value) / peak
	if dd < 0 {
		return 0
	}
	return dd
}

// GainLoss splits deltas into the sum of gains and the absolute sum of losses.
func GainLoss(deltas []float64) (gains, losses float64) {
	for _, d := range deltas {
		if d > 0 {
			gains += d
		} else if d < 0 {
			losses -= d
		}
	}
	return gains, losses
}

package backtest

import (
	"math"

	"github.com/rustyeddy/hedger/risk"
)

// riskFreePct is the annual rate the Sharpe ratio is measured against.
const riskFreePct = 2.0

// Metrics summarises a row sequence. Percent fields are in percent units,
// ratios are plain numbers and WinRate is a fraction.
type Metrics struct {
	Periods             int     `json:"periods"`
	TotalReturnPct      float64 `json:"total_return_pct"`
	AnnualizedReturnPct float64 `json:"annualized_return_pct"`
	VolatilityPct       float64 `json:"volatility_pct"`
	Sharpe              float64 `json:"sharpe"`
	MaxDrawdownPct      float64 `json:"max_drawdown_pct"`
	WinRate             float64 `json:"win_rate"`
	ProfitFactor        float64 `json:"profit_factor"`
	VaR95Pct            float64 `json:"var95_pct"`
	Calmar              float64 `json:"calmar"`
}

// ComputeMetrics derives Metrics from rows in date order. No rows give the
// zero Metrics; callers check Periods before reading anything into them.
func ComputeMetrics(rows []Row) Metrics {
	n := len(rows)
	if n == 0 {
		return Metrics{}
	}

	m := Metrics{Periods: n}

	final := rows[n-1].TotalReturnPct / 100
	m.TotalReturnPct = final * 100

	years := float64(n) / risk.TradingDays
	growth := 1 + final
	if growth > 0 {
		m.AnnualizedReturnPct = (math.Pow(growth, 1/years) - 1) * 100
	} else {
		m.AnnualizedReturnPct = -100
	}

	deltas := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		deltas = append(deltas, rows[i].TotalReturnPct-rows[i-1].TotalReturnPct)
	}

	m.VolatilityPct = risk.Annualize(risk.StdDev(deltas))
	if m.VolatilityPct > 0 {
		m.Sharpe = (m.AnnualizedReturnPct - riskFreePct) / m.VolatilityPct
	}

	for _, r := range rows {
		m.MaxDrawdownPct = math.Max(m.MaxDrawdownPct, r.DrawdownPct)
	}

	if len(deltas) > 0 {
		wins := 0
		for _, d := range deltas {
			if d > 0 {
				wins++
			}
		}
		m.WinRate = float64(wins) / float64(len(deltas))
	}

	gains, losses := risk.GainLoss(deltas)
	if losses > 0 {
		m.ProfitFactor = gains / losses
	}

	m.VaR95Pct = risk.HistoricalVaR(deltas, 0.95).VaR

	if m.MaxDrawdownPct > 0 {
		m.Calmar = m.AnnualizedReturnPct / m.MaxDrawdownPct
	}
	return m
}

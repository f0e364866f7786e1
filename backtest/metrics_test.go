package backtest

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/hedger/risk"
)

func TestComputeMetricsEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Metrics{}, ComputeMetrics(nil))
}

func TestComputeMetricsSingleRow(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics([]Row{{TotalReturnPct: 0}})
	assert.Equal(t, 1, m.Periods)
	assert.Equal(t, 0.0, m.VolatilityPct)
	assert.Equal(t, 0.0, m.Sharpe)
	assert.Equal(t, 0.0, m.WinRate)
	assert.Equal(t, 0.0, m.VaR95Pct)
}

func TestComputeMetrics(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{TotalReturnPct: 0, DrawdownPct: 0},
		{TotalReturnPct: 1, DrawdownPct: 0},
		{TotalReturnPct: 0.5, DrawdownPct: 50},
		{TotalReturnPct: 2, DrawdownPct: 0},
	}
	m := ComputeMetrics(rows)

	assert.Equal(t, 4, m.Periods)
	assert.InDelta(t, 2.0, m.TotalReturnPct, 1e-12)

	ann := (math.Pow(1.02, 252.0/4.0) - 1) * 100
	assert.InDelta(t, ann, m.AnnualizedReturnPct, 1e-9)

	// deltas 1, -0.5, 1.5
	mean := 2.0 / 3.0
	ss := math.Pow(1-mean, 2) + math.Pow(-0.5-mean, 2) + math.Pow(1.5-mean, 2)
	vol := math.Sqrt(ss/2) * math.Sqrt(252)
	assert.InDelta(t, vol, m.VolatilityPct, 1e-9)
	assert.InDelta(t, (ann-2)/vol, m.Sharpe, 1e-9)

	assert.InDelta(t, 50.0, m.MaxDrawdownPct, 1e-12)
	assert.InDelta(t, 2.0/3.0, m.WinRate, 1e-12)
	assert.InDelta(t, 5.0, m.ProfitFactor, 1e-12)
	assert.InDelta(t, -0.5, m.VaR95Pct, 1e-12)
	assert.InDelta(t, ann/50, m.Calmar, 1e-9)
}

func TestComputeMetricsVaRUsesHistoricalTail(t *testing.T) {
	t.Parallel()

	// 40 deltas alternating +0.2 and -0.1 with one -3 shock
	rows := []Row{{}}
	var deltas []float64
	total := 0.0
	for i := 0; i < 40; i++ {
		d := 0.2
		if i%2 == 1 {
			d = -0.1
		}
		if i == 17 {
			d = -3
		}
		total += d
		deltas = append(deltas, d)
		rows = append(rows, Row{TotalReturnPct: total})
	}

	m := ComputeMetrics(rows)
	want := risk.HistoricalVaR(deltas, 0.95)
	assert.InDelta(t, want.VaR, m.VaR95Pct, 1e-12)
	// floor(0.05·40) = 2 skips the shock and the first -0.1
	assert.InDelta(t, -0.1, m.VaR95Pct, 1e-12)
}

func TestComputeMetricsNoLosses(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics([]Row{{TotalReturnPct: 0}, {TotalReturnPct: 1}, {TotalReturnPct: 3}})
	assert.Equal(t, 0.0, m.ProfitFactor)
	assert.Equal(t, 1.0, m.WinRate)
	assert.Equal(t, 0.0, m.Calmar)
}

func TestComputeMetricsTotalLoss(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics([]Row{{TotalReturnPct: -50}, {TotalReturnPct: -120}})
	assert.Equal(t, -100.0, m.AnnualizedReturnPct)
	assert.False(t, math.IsNaN(m.Sharpe))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSummary(&buf, Summary{Strategy: "Collar", Pair: "EUR_USD"}, Result{})
	assert.Contains(t, buf.String(), "No periods simulated.")

	buf.Reset()
	res := Result{Rows: []Row{
		{Date: day(2024, 1, 1), Spot: 1.08, TotalReturnPct: 0},
		{Date: day(2024, 1, 2), Spot: 1.09, TotalReturnPct: 1, HedgedPnL: 10_000},
	}}
	res.Metrics = ComputeMetrics(res.Rows)
	PrintSummary(&buf, Summary{RunID: "01ABC", Strategy: "Collar", Pair: "EUR_USD", Capital: 1_000_000}, res)

	out := buf.String()
	assert.Contains(t, out, "Run ID:        01ABC")
	assert.Contains(t, out, "Start:         2024-01-01")
	assert.Contains(t, out, "Hedged P/L:    10000.00")
	assert.Contains(t, out, "Total Return:  1.00%")
}

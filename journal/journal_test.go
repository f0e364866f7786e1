package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/hedger/backtest"
	"github.com/rustyeddy/hedger/strategy"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func sampleRows() []backtest.Row {
	return []backtest.Row{
		{Date: day(1), Spot: 1.0861, HedgedRate: 1.0861, UnhedgedPnL: 1013.82, HedgedPnL: 1013.82,
			TotalReturnPct: 0.101382, RollingVolPct: 0},
		{Date: day(2), Spot: 1.0790, HedgedRate: 1.0790, UnhedgedPnL: -5501.5, HedgedPnL: -5529.95,
			TotalReturnPct: -0.552995, DrawdownPct: 645.46, RollingVolPct: 10.5},
	}
}

func sampleRun() RunRecord {
	return RunRecord{
		RunID:       "01HZX0RUN",
		Created:     time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		Strategy:    "collar",
		Pair:        "EUR_USD",
		Start:       day(1),
		End:         day(2),
		Periodicity: "daily",
		Spot:        1.085,
		Capital:     1_000_000,
		Seed:        42,
		Legs:        []byte(`[{"kind":"put","strike":95,"strike_basis":"percent","quantity":100,"barrier_basis":"percent"}]`),
		FinalSpot:   1.079,
		UnhedgedPnL: -5501.5,
		HedgedPnL:   -5529.95,
		Metrics: backtest.Metrics{
			Periods:        2,
			TotalReturnPct: -0.552995,
			MaxDrawdownPct: 645.46,
			Sharpe:         -1.25,
			ProfitFactor:   0,
			VaR95Pct:       -0.654377,
		},
	}
}

func TestNewRunRecord(t *testing.T) {
	t.Parallel()

	p := backtest.Params{
		Legs:           []strategy.Leg{{Kind: strategy.KindForward, Strike: 100, Quantity: 100}},
		Spot:           1.085,
		Start:          day(1),
		End:            day(2),
		Periodicity:    backtest.Daily,
		InitialCapital: 1_000_000,
		Seed:           7,
	}
	res := backtest.Result{
		Rows:      sampleRows(),
		LegErrors: errors.New("leg 1 (one-touch): barrier must be positive"),
	}
	res.Metrics = backtest.ComputeMetrics(res.Rows)

	rec, err := NewRunRecord("RUN1", backtest.Summary{Strategy: "Forward", Pair: "EUR_USD"}, p, res)
	require.NoError(t, err)

	assert.Equal(t, "RUN1", rec.RunID)
	assert.Equal(t, "Forward", rec.Strategy)
	assert.Equal(t, "daily", rec.Periodicity)
	assert.Equal(t, int64(7), rec.Seed)
	assert.Equal(t, 1.0790, rec.FinalSpot)
	assert.Equal(t, -5529.95, rec.HedgedPnL)
	assert.Equal(t, 2, rec.Metrics.Periods)
	assert.Contains(t, rec.LegErrors, "barrier must be positive")
	assert.False(t, rec.Created.IsZero())

	legs, err := rec.DecodeLegs()
	require.NoError(t, err)
	assert.Equal(t, p.Legs, legs)
}

func TestDecodeLegs(t *testing.T) {
	t.Parallel()

	legs, err := RunRecord{}.DecodeLegs()
	assert.NoError(t, err)
	assert.Nil(t, legs)

	_, err = RunRecord{RunID: "X", Legs: []byte("{")}.DecodeLegs()
	assert.ErrorContains(t, err, "decode legs of run X")
}

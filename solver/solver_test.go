package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/hedger/pricing"
)

func TestSolveBalancesCallAgainstPut(t *testing.T) {
	t.Parallel()

	s := New(DefaultContext())
	res, err := s.Solve(Request{
		Target:            pricing.Call,
		Opposite:          pricing.Put,
		OppositeStrikePct: 95,
		Spot:              100,
		VolatilityPct:     20,
	})
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Less(t, res.Residual, DefaultTolerance)
	assert.InDelta(t, res.TargetPremium, res.AchievedPremium, DefaultTolerance)
	assert.Greater(t, res.StrikePct, 110.0)
	assert.Less(t, res.StrikePct, 125.0)
	assert.InDelta(t, res.Strike, res.StrikePct, 1e-9)

	call := pricing.Price(pricing.Call, 100, res.Strike, 0.05, 1, 0.2)
	put := pricing.Price(pricing.Put, 100, 95, 0.05, 1, 0.2)
	assert.InDelta(t, put, call, DefaultTolerance)
}

func TestSolveBalancesPutAgainstCall(t *testing.T) {
	t.Parallel()

	res, err := New(DefaultContext()).Solve(Request{
		Target:            pricing.Put,
		Opposite:          pricing.Call,
		OppositeStrikePct: 110,
		Spot:              1.085,
		VolatilityPct:     10,
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	// the carry pushes the matching put just above spot
	assert.Greater(t, res.StrikePct, 100.0)
	assert.Less(t, res.StrikePct, 102.0)

	put := pricing.Price(pricing.Put, 1.085, res.Strike, 0.05, 1, 0.10)
	assert.InDelta(t, res.TargetPremium, put, DefaultTolerance)
}

func TestSolveUnreachableTarget(t *testing.T) {
	t.Parallel()

	// a deep in the money call costs more than any put in the search range
	res, err := New(DefaultContext()).Solve(Request{
		Target:            pricing.Put,
		Opposite:          pricing.Call,
		OppositeStrikePct: 50,
		Spot:              100,
		VolatilityPct:     20,
	})
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Greater(t, res.Residual, 1.0)
	assert.InDelta(t, DefaultUpperBoundPct, res.StrikePct, 0.01)
	assert.LessOrEqual(t, res.Iterations, maxIterations)
}

func TestSolveInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
	}{
		{"zero spot", Request{Target: pricing.Call, Opposite: pricing.Put, OppositeStrikePct: 95, VolatilityPct: 20}},
		{"zero vol", Request{Target: pricing.Call, Opposite: pricing.Put, OppositeStrikePct: 95, Spot: 100}},
		{"zero opposite strike", Request{Target: pricing.Call, Opposite: pricing.Put, Spot: 100, VolatilityPct: 20}},
		{"empty bounds", Request{Target: pricing.Call, Opposite: pricing.Put, OppositeStrikePct: 95, Spot: 100,
			VolatilityPct: 20, LowerBoundPct: 120, UpperBoundPct: 80}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(DefaultContext()).Solve(tt.req)
			assert.ErrorIs(t, err, pricing.ErrInvalidParameter)
		})
	}
}

func TestSolveRespectsContext(t *testing.T) {
	t.Parallel()

	req := Request{
		Target:            pricing.Call,
		Opposite:          pricing.Put,
		OppositeStrikePct: 95,
		Spot:              100,
		VolatilityPct:     15,
	}
	short, err := New(Context{RiskFreeRate: 0.05, TimeToExpiry: 0.25}).Solve(req)
	require.NoError(t, err)
	long, err := New(DefaultContext()).Solve(req)
	require.NoError(t, err)

	// more time widens the distribution, pushing the balancing call further out
	assert.Greater(t, long.StrikePct, short.StrikePct)
}

func TestEquilibriumStrike(t *testing.T) {
	t.Parallel()

	k := EquilibriumStrike(pricing.Call, pricing.Put, 95, 100, 20)
	assert.Greater(t, k, 110.0)
	assert.Less(t, k, 125.0)

	assert.Equal(t, 0.0, EquilibriumStrike(pricing.Call, pricing.Put, 95, 0, 20))
}

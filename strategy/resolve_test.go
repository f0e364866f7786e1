package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/hedger/pricing"
	"github.com/rustyeddy/hedger/solver"
)

func TestResolveZeroCostCollar(t *testing.T) {
	t.Parallel()

	p, ok := LookupPreset("zero-cost-collar")
	require.True(t, ok)
	for i := range p.Legs {
		p.Legs[i].Volatility = 20
	}

	r := NewResolver(nil)
	legs, res, err := r.Resolve(p.Legs, 100, 100)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 1, res[0].Leg)
	assert.True(t, res[0].Result.Converged)

	call := legs[1]
	assert.Nil(t, call.DynamicStrike)
	assert.Equal(t, Absolute, call.StrikeBasis)
	assert.Greater(t, call.Strike, 100.0)

	ctx := solver.DefaultContext()
	putPrem := pricing.Price(pricing.Put, 100, 95, ctx.RiskFreeRate, ctx.TimeToExpiry, 0.2)
	callPrem := pricing.Price(pricing.Call, 100, call.Strike, ctx.RiskFreeRate, ctx.TimeToExpiry, 0.2)
	assert.InDelta(t, putPrem, callPrem, solver.DefaultTolerance)

	// the input is left untouched
	assert.NotNil(t, p.Legs[1].DynamicStrike)

	b, err := Compile(legs, 100)
	require.NoError(t, err)
	assert.Len(t, b.Positions, 2)
}

func TestResolveAtMovedSpot(t *testing.T) {
	t.Parallel()

	legs := []Leg{
		{Kind: KindPut, Strike: 95, Volatility: 10, Quantity: 100},
		{Kind: KindCall, Volatility: 8, Quantity: -100,
			DynamicStrike: &DynamicStrike{Method: MethodEquilibrium, BalanceWithLeg: 0, VolatilityAdjustment: 2}},
	}

	out, res, err := NewResolver(nil).Resolve(legs, 100, 110)
	require.NoError(t, err)
	require.Len(t, res, 1)

	// the fixed put stays at 95 absolute, so it is ~86% of the new spot
	ctx := solver.DefaultContext()
	putPrem := pricing.Price(pricing.Put, 110, 95, ctx.RiskFreeRate, ctx.TimeToExpiry, 0.10)
	callPrem := pricing.Price(pricing.Call, 110, out[1].Strike, ctx.RiskFreeRate, ctx.TimeToExpiry, 0.10)
	assert.InDelta(t, putPrem, callPrem, solver.DefaultTolerance)
	assert.InDelta(t, putPrem, res[0].Result.TargetPremium, 1e-9)
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	put := Leg{Kind: KindPut, Strike: 95, Volatility: 10, Quantity: 100}
	dyn := func(kind Kind, idx int) Leg {
		return Leg{Kind: kind, Volatility: 10, Quantity: -100,
			DynamicStrike: &DynamicStrike{Method: MethodEquilibrium, BalanceWithLeg: idx}}
	}

	tests := []struct {
		name string
		legs []Leg
	}{
		{"out_of_range", []Leg{put, dyn(KindCall, 5)}},
		{"self", []Leg{put, dyn(KindCall, 1)}},
		{"dynamic_opposite", []Leg{dyn(KindPut, 1), dyn(KindCall, 0)}},
		{"not_an_option", []Leg{put, dyn(KindForward, 0)}},
		{"opposite_not_option", []Leg{{Kind: KindSwap, Strike: 100, Quantity: 100}, dyn(KindCall, 0)}},
		{"bad_method", []Leg{put, {Kind: KindCall, Volatility: 10, Quantity: -100,
			DynamicStrike: &DynamicStrike{Method: "delta", BalanceWithLeg: 0}}}},
		{"zero_vol", []Leg{put, {Kind: KindCall, Quantity: -100,
			DynamicStrike: &DynamicStrike{BalanceWithLeg: 0}}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, res, err := NewResolver(nil).Resolve(tt.legs, 100, 100)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnresolvable))
			assert.Empty(t, res)
			assert.True(t, HasDynamic(out))

			// unresolved legs are dropped at compile time, the rest survive
			b, cerr := Compile(out, 100)
			assert.True(t, errors.Is(cerr, ErrUnresolvedStrike))
			assert.Less(t, len(b.Positions), len(tt.legs))
		})
	}
}

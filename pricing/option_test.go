package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormCDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x    float64
		want float64
	}{
		{0, 0.5},
		{1, 0.8413447461},
		{-1, 0.1586552539},
		{1.96, 0.9750021049},
		{-2.5, 0.0062096653},
		{6, 0.9999999990},
	}

	for _, tt := range tests {
		got := NormCDF(tt.x)
		assert.InDelta(t, tt.want, got, 1e-7, "N(%g)", tt.x)

		// matches the erf based reference used elsewhere
		ref := 0.5 * math.Erfc(-tt.x/math.Sqrt2)
		assert.InDelta(t, ref, got, 1e-7)
	}
}

func TestNormCDFSymmetry(t *testing.T) {
	t.Parallel()

	for x := -4.0; x <= 4.0; x += 0.25 {
		assert.InDelta(t, 1.0, NormCDF(x)+NormCDF(-x), 1e-7)
	}
}

func TestPriceKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  OptionType
		k    float64
		want float64
	}{
		{"atm_call", Call, 100, 10.4506},
		{"atm_put", Put, 100, 5.5735},
		{"otm_call", Call, 110, 6.0401},
		{"itm_put", Put, 110, 10.6753},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Price(tt.typ, 100, tt.k, 0.05, 1, 0.20)
			assert.InDelta(t, tt.want, got, 1e-3)
		})
	}
}

func TestPutCallParityAtTheMoneyZeroRate(t *testing.T) {
	t.Parallel()

	for _, vol := range []float64{0.05, 0.1, 0.2, 0.45} {
		for _, tt := range []float64{0.1, 0.5, 1, 2} {
			c := Price(Call, 100, 100, 0, tt, vol)
			p := Price(Put, 100, 100, 0, tt, vol)
			assert.InDelta(t, c, p, 1e-6, "vol=%g t=%g", vol, tt)
		}
	}
}

func TestPutCallParity(t *testing.T) {
	t.Parallel()

	spot, strike, r, tt := 1.0850, 1.1000, 0.03, 0.75
	c := Price(Call, spot, strike, r, tt, 0.09)
	p := Price(Put, spot, strike, r, tt, 0.09)
	assert.InDelta(t, spot-strike*math.Exp(-r*tt), c-p, 1e-6)
}

func TestPriceMonotoneInStrike(t *testing.T) {
	t.Parallel()

	prevCall, prevPut := math.Inf(1), math.Inf(-1)
	for k := 60.0; k <= 140; k += 5 {
		c := Price(Call, 100, k, 0.05, 1, 0.2)
		p := Price(Put, 100, k, 0.05, 1, 0.2)
		assert.Less(t, c, prevCall)
		assert.Greater(t, p, prevPut)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.GreaterOrEqual(t, p, 0.0)
		prevCall, prevPut = c, p
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(100, 100, 1, 0.2))

	for _, tc := range [][4]float64{
		{0, 100, 1, 0.2},
		{100, -1, 1, 0.2},
		{100, 100, 0, 0.2},
		{100, 100, 1, 0},
		{100, 100, 1, -0.1},
	} {
		err := Validate(tc[0], tc[1], tc[2], tc[3])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}
}

func TestGreeks(t *testing.T) {
	t.Parallel()

	call := Greeks(Call, 100, 100, 0.05, 1, 0.2)
	put := Greeks(Put, 100, 100, 0.05, 1, 0.2)

	assert.InDelta(t, 0.6368, call.Delta, 1e-4)
	assert.InDelta(t, -0.3632, put.Delta, 1e-4)
	assert.InDelta(t, 1.0, call.Delta-put.Delta, 1e-9)
	assert.InDelta(t, call.Gamma, put.Gamma, 1e-12)
	assert.InDelta(t, 0.018762, call.Gamma, 1e-5)
	assert.InDelta(t, 0.37524, call.Vega, 1e-4)
	assert.Less(t, call.Theta, 0.0)

	sum := Sensitivities{}.Add(call, 1).Add(put, -1)
	assert.InDelta(t, 1.0, sum.Delta, 1e-9)
	assert.InDelta(t, 0.0, sum.Gamma, 1e-12)
}

func TestParseOptionType(t *testing.T) {
	t.Parallel()

	typ, err := ParseOptionType(" CALL ")
	require.NoError(t, err)
	assert.Equal(t, Call, typ)

	typ, err = ParseOptionType("p")
	require.NoError(t, err)
	assert.Equal(t, Put, typ)
	assert.Equal(t, "put", typ.String())

	_, err = ParseOptionType("straddle")
	assert.Error(t, err)
}

package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultShocks(t *testing.T) {
	t.Parallel()

	shocks := DefaultShocks()
	require.Len(t, shocks, 7)
	assert.Equal(t, "-20%", shocks[0].Name)
	assert.Equal(t, "+0%", shocks[3].Name)
	assert.Equal(t, "+20%", shocks[6].Name)
}

func TestStressProtectivePut(t *testing.T) {
	t.Parallel()

	b := mustCompile(t, []Leg{{Kind: KindPut, Strike: 95, Quantity: 100}}, 100)
	res := b.Stress([]Shock{{Name: "down", MovePct: -20}, {Name: "up", MovePct: 10}}, false)
	require.Len(t, res, 2)

	down := res[0]
	assert.Equal(t, "down", down.Name)
	assert.InDelta(t, 80.0, down.Spot, 1e-9)
	assert.InDelta(t, 80.0, down.Unhedged, 1e-9)
	assert.InDelta(t, 95.0, down.Hedged, 1e-9)
	assert.InDelta(t, 15.0, down.HedgeValue, 1e-9)

	up := res[1]
	assert.InDelta(t, 110.0, up.Spot, 1e-9)
	assert.InDelta(t, 110.0, up.Hedged, 1e-9)
	assert.InDelta(t, 0.0, up.HedgeValue, 1e-9)
}

func TestStressEmpty(t *testing.T) {
	t.Parallel()

	b := mustCompile(t, []Leg{{Kind: KindForward, Strike: 100, Quantity: 100}}, 100)
	assert.Empty(t, b.Stress(nil, false))
}

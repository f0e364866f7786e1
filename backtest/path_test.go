package backtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnSeries(t *testing.T) {
	t.Parallel()

	s := &ReturnSeries{Returns: []float64{0.01, -0.02}}
	assert.Equal(t, 0.01, s.NextReturn())
	assert.Equal(t, -0.02, s.NextReturn())
	assert.Equal(t, 0.0, s.NextReturn())
	assert.Equal(t, 0.0, s.NextReturn())
}

func TestUniformWalkSeeded(t *testing.T) {
	t.Parallel()

	a, b := NewUniformWalk(9), NewUniformWalk(9)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.NextReturn(), b.NextReturn())
	}
}

func TestReadReturns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    []float64
		wantErr string
	}{
		{"bare column", "0.01\n-0.005\n0\n", []float64{0.01, -0.005, 0}, ""},
		{"with header", "date,return\n2024-01-01, 0.002\n2024-01-02,-0.001\n", []float64{0.002, -0.001}, ""},
		{"empty", "", nil, ""},
		{"bad value", "0.01\nabc\n", nil, "line 2: bad return"},
		{"wipeout", "-1\n", nil, "non-positive"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := ReadReturns(strings.NewReader(tt.in))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Returns)
		})
	}
}

func TestReadReturnsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "returns.csv")
	require.NoError(t, os.WriteFile(path, []byte("return\n0.01\n"), 0644))

	s, err := ReadReturnsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01}, s.Returns)

	_, err = ReadReturnsFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

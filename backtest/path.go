package backtest

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Periodicity is the spacing between simulated periods.
type Periodicity string

const (
	Daily   Periodicity = "daily"
	Weekly  Periodicity = "weekly"
	Monthly Periodicity = "monthly"
)

func ParsePeriodicity(s string) (Periodicity, error) {
	switch p := Periodicity(strings.ToLower(strings.TrimSpace(s))); p {
	case Daily, Weekly, Monthly:
		return p, nil
	case "":
		return Daily, nil
	}
	return "", fmt.Errorf("unknown periodicity %q (supported: daily, weekly, monthly)", s)
}

// Next advances t by one period.
func (p Periodicity) Next(t time.Time) time.Time {
	switch p {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Periods counts the dates in [start, end] stepping by p.
func (p Periodicity) Periods(start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = p.Next(d) {
		n++
	}
	return n
}

// PathGenerator yields the spot return of each simulated period.
type PathGenerator interface {
	NextReturn() float64
}

// UniformWalk draws returns uniformly in [-Amplitude, +Amplitude].
// It is an illustrative random walk, not a calibrated model.
type UniformWalk struct {
	Amplitude float64
	rng       *rand.Rand
}

// NewUniformWalk returns a ±1% walk; the same seed replays the same path.
func NewUniformWalk(seed int64) *UniformWalk {
	return &UniformWalk{Amplitude: 0.01, rng: rand.New(rand.NewSource(seed))}
}

func (w *UniformWalk) NextReturn() float64 {
	return (w.rng.Float64() - 0.5) * 2.0 * w.Amplitude
}

// ReturnSeries replays a fixed list of returns and yields 0 once exhausted.
// Use it to feed historical or model-generated returns.
type ReturnSeries struct {
	Returns []float64
	i       int
}

func (s *ReturnSeries) NextReturn() float64 {
	if s.i >= len(s.Returns) {
		return 0
	}
	r := s.Returns[s.i]
	s.i++
	return r
}

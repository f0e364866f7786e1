package strategy

import "fmt"

// Shock is an instantaneous spot move in percent.
type Shock struct {
	Name    string  `json:"name" yaml:"name"`
	MovePct float64 `json:"move_pct" yaml:"move_pct"`
}

// DefaultShocks are symmetric moves from -20% to +20%.
func DefaultShocks() []Shock {
	moves := []float64{-20, -10, -5, 0, 5, 10, 20}
	out := make([]Shock, len(moves))
	for i, m := range moves {
		out[i] = Shock{Name: fmt.Sprintf("%+.0f%%", m), MovePct: m}
	}
	return out
}

// StressResult compares hedged and unhedged rates after a shock.
type StressResult struct {
	Shock
	Spot       float64 `json:"spot" yaml:"spot"`
	Unhedged   float64 `json:"unhedged" yaml:"unhedged"`
	Hedged     float64 `json:"hedged" yaml:"hedged"`
	HedgeValue float64 `json:"hedge_value" yaml:"hedge_value"` // Hedged - Unhedged
}

// Stress evaluates the book at each shocked spot.
func (b Book) Stress(shocks []Shock, includePremium bool) []StressResult {
	out := make([]StressResult, len(shocks))
	for i, sh := range shocks {
		s := b.Reference * (1 + sh.MovePct/100)
		pt := b.Evaluate(s, includePremium)
		out[i] = StressResult{
			Shock:      sh,
			Spot:       s,
			Unhedged:   s,
			Hedged:     pt.HedgedRate,
			HedgeValue: pt.Payoff,
		}
	}
	return out
}

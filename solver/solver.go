// Package solver finds strikes that make two option legs premium-neutral.
package solver

import (
	"fmt"

	"github.com/rustyeddy/hedger/pricing"
)

const (
	DefaultLowerBoundPct = 50.0
	DefaultUpperBoundPct = 150.0
	DefaultTolerance     = 0.001

	// maxIterations caps the bisection even when tolerance is unreachably small.
	maxIterations = 200
)

// Context is the pricing environment the solver values both legs in.
type Context struct {
	RiskFreeRate float64 `json:"risk_free_rate" yaml:"risk_free_rate"` // decimal, 0.05 = 5%
	TimeToExpiry float64 `json:"time_to_expiry" yaml:"time_to_expiry"` // years
}

// DefaultContext is 5% risk free rate and one year to expiry.
func DefaultContext() Context {
	return Context{RiskFreeRate: 0.05, TimeToExpiry: 1}
}

// Request describes one equilibrium search. Zero bounds or tolerance fall
// back to the package defaults.
type Request struct {
	Target            pricing.OptionType
	Opposite          pricing.OptionType
	OppositeStrikePct float64
	Spot              float64
	VolatilityPct     float64

	LowerBoundPct float64
	UpperBoundPct float64
	Tolerance     float64
}

// Result is a best-effort equilibrium. When Converged is false the bisection
// ran out of interval without matching premiums and Residual tells by how much.
type Result struct {
	StrikePct       float64
	Strike          float64
	TargetPremium   float64
	AchievedPremium float64
	Residual        float64
	Converged       bool
	Iterations      int
}

type Solver struct {
	Context Context
}

func New(ctx Context) *Solver {
	return &Solver{Context: ctx}
}

func (r Request) withDefaults() Request {
	if r.LowerBoundPct == 0 {
		r.LowerBoundPct = DefaultLowerBoundPct
	}
	if r.UpperBoundPct == 0 {
		r.UpperBoundPct = DefaultUpperBoundPct
	}
	if r.Tolerance <= 0 {
		r.Tolerance = DefaultTolerance
	}
	return r
}

// Solve bisects over strike price within [lower%·spot, upper%·spot] for the
// strike whose target-leg premium equals the opposite leg's premium.
func (s *Solver) Solve(req Request) (Result, error) {
	req = req.withDefaults()
	if req.LowerBoundPct >= req.UpperBoundPct {
		return Result{}, fmt.Errorf("%w: search bounds [%g, %g] are empty",
			pricing.ErrInvalidParameter, req.LowerBoundPct, req.UpperBoundPct)
	}

	vol := req.VolatilityPct / 100
	r, t := s.Context.RiskFreeRate, s.Context.TimeToExpiry
	oppStrike := req.OppositeStrikePct / 100 * req.Spot
	if err := pricing.Validate(req.Spot, oppStrike, t, vol); err != nil {
		return Result{}, err
	}
	if err := pricing.Validate(req.Spot, req.LowerBoundPct/100*req.Spot, t, vol); err != nil {
		return Result{}, err
	}

	target := pricing.Price(req.Opposite, req.Spot, oppStrike, r, t, vol)

	low := req.LowerBoundPct / 100 * req.Spot
	high := req.UpperBoundPct / 100 * req.Spot

	var (
		mid, premium float64
		converged    bool
		iter         int
	)
	for iter = 1; iter <= maxIterations; iter++ {
		mid = (low + high) / 2
		premium = pricing.Price(req.Target, req.Spot, mid, r, t, vol)

		if abs(premium-target) < req.Tolerance {
			converged = true
			break
		}

		// Call premium falls as strike rises, put premium rises.
		tooExpensive := premium > target
		if req.Target == pricing.Call {
			if tooExpensive {
				low = mid
			} else {
				high = mid
			}
		} else {
			if tooExpensive {
				high = mid
			} else {
				low = mid
			}
		}

		if high-low <= req.Tolerance {
			break
		}
	}
	if iter > maxIterations {
		iter = maxIterations
	}

	residual := abs(premium - target)
	return Result{
		StrikePct:       mid / req.Spot * 100,
		Strike:          mid,
		TargetPremium:   target,
		AchievedPremium: premium,
		Residual:        residual,
		Converged:       converged || residual < req.Tolerance,
		Iterations:      iter,
	}, nil
}

// EquilibriumStrike returns the target strike, as percent of spot, whose
// premium matches an opposite leg struck at oppositeStrikePct. It uses the
// default context, bounds and tolerance and returns 0 for invalid inputs.
func EquilibriumStrike(target, opposite pricing.OptionType, oppositeStrikePct, spot, volPct float64) float64 {
	res, err := New(DefaultContext()).Solve(Request{
		Target:            target,
		Opposite:          opposite,
		OppositeStrikePct: oppositeStrikePct,
		Spot:              spot,
		VolatilityPct:     volPct,
	})
	if err != nil {
		return 0
	}
	return res.StrikePct
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/pricing"
	"github.com/rustyeddy/hedger/solver"
)

// ErrUnresolvable is returned when a dynamic strike cannot be solved.
var ErrUnresolvable = errors.New("dynamic strike unresolvable")

// Resolution records how one dynamic strike was settled.
type Resolution struct {
	Leg    int
	Result solver.Result
}

// Resolver settles dynamic strikes before evaluation.
type Resolver struct {
	Solver *solver.Solver
	Log    zerolog.Logger
}

func NewResolver(s *solver.Solver) *Resolver {
	if s == nil {
		s = solver.New(solver.DefaultContext())
	}
	return &Resolver{Solver: s, Log: zerolog.Nop()}
}

// Resolve returns a copy of legs with every dynamic strike replaced by an
// absolute strike solved at spot. Fixed legs expressed in percent are read
// against reference. Legs that cannot be resolved keep their marker, so a
// later Compile skips them, and are reported in the error.
func (r *Resolver) Resolve(legs []Leg, reference, spot float64) ([]Leg, []Resolution, error) {
	out := make([]Leg, len(legs))
	copy(out, legs)

	var (
		resolutions []Resolution
		errs        []error
	)
	for i, leg := range legs {
		if leg.DynamicStrike == nil {
			continue
		}
		res, err := r.resolveOne(legs, i, reference, spot)
		if err != nil {
			errs = append(errs, fmt.Errorf("leg %d (%s): %w", i, leg.Kind, err))
			continue
		}
		if !res.Converged {
			r.Log.Warn().
				Int("leg", i).
				Float64("strike", res.Strike).
				Float64("residual", res.Residual).
				Msg("equilibrium strike did not converge")
		}

		out[i].Strike = res.Strike
		out[i].StrikeBasis = Absolute
		out[i].DynamicStrike = nil
		resolutions = append(resolutions, Resolution{Leg: i, Result: res})
	}
	return out, resolutions, errors.Join(errs...)
}

func (r *Resolver) resolveOne(legs []Leg, i int, reference, spot float64) (solver.Result, error) {
	leg := legs[i]
	ds := leg.DynamicStrike

	method := strings.ToLower(strings.TrimSpace(ds.Method))
	if method != "" && method != MethodEquilibrium {
		return solver.Result{}, fmt.Errorf("%w: unsupported method %q", ErrUnresolvable, ds.Method)
	}
	if !leg.Kind.IsOption() {
		return solver.Result{}, fmt.Errorf("%w: %s has no strike to balance", ErrUnresolvable, leg.Kind)
	}

	j := ds.BalanceWithLeg
	if j < 0 || j >= len(legs) || j == i {
		return solver.Result{}, fmt.Errorf("%w: balance leg %d out of range", ErrUnresolvable, j)
	}
	opp := legs[j]
	if opp.DynamicStrike != nil {
		return solver.Result{}, fmt.Errorf("%w: balance leg %d is itself dynamic", ErrUnresolvable, j)
	}
	if !opp.Kind.IsOption() || opp.Strike <= 0 {
		return solver.Result{}, fmt.Errorf("%w: balance leg %d is not a struck option", ErrUnresolvable, j)
	}
	if spot <= 0 || reference <= 0 {
		return solver.Result{}, fmt.Errorf("%w: spot must be positive", ErrUnresolvable)
	}

	oppStrike := opp.StrikeBasis.Level(opp.Strike, reference)

	res, err := r.Solver.Solve(solver.Request{
		Target:            optionType(leg.Kind),
		Opposite:          optionType(opp.Kind),
		OppositeStrikePct: oppStrike / spot * 100,
		Spot:              spot,
		VolatilityPct:     leg.Volatility + ds.VolatilityAdjustment,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidParameter) {
			return solver.Result{}, fmt.Errorf("%w: %w", ErrUnresolvable, err)
		}
		return solver.Result{}, err
	}
	return res, nil
}

// HasDynamic reports whether any leg still carries a dynamic strike.
func HasDynamic(legs []Leg) bool {
	for _, l := range legs {
		if l.DynamicStrike != nil {
			return true
		}
	}
	return false
}

package strategy

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/hedger/pricing"
)

var (
	// ErrMalformedLeg marks a leg that cannot be turned into an instrument.
	ErrMalformedLeg = errors.New("malformed leg")
	// ErrUnresolvedStrike marks a leg whose dynamic strike was never resolved.
	ErrUnresolvedStrike = errors.New("unresolved dynamic strike")
)

// Instrument is the compiled, absolute-level form of a leg. The set of
// implementations is closed: Vanilla, Forward, Swap, Barrier and Digital.
type Instrument interface {
	Kind() Kind
	instrument()
}

// Vanilla is a plain European call or put.
type Vanilla struct {
	Type   pricing.OptionType
	Strike float64
}

// Forward locks Rate on the hedged share of notional.
type Forward struct {
	Rate float64
}

// Swap replaces the achieved rate with Rate outright.
type Swap struct {
	Rate float64
}

// Barrier is a vanilla option switched off (knock-out) or on (knock-in)
// once spot reaches Level. Calls trigger at or above, puts at or below.
type Barrier struct {
	Type   pricing.OptionType
	Strike float64
	Level  float64
	In     bool
}

// Digital pays a flat Rebate (percent) when spot satisfies its condition.
// Single level variants carry the same value in Lower and Upper.
type Digital struct {
	Variant Kind
	Lower   float64
	Upper   float64
	Rebate  float64
}

func (v Vanilla) Kind() Kind {
	if v.Type == pricing.Call {
		return KindCall
	}
	return KindPut
}

func (Forward) Kind() Kind { return KindForward }
func (Swap) Kind() Kind    { return KindSwap }

func (b Barrier) Kind() Kind {
	switch {
	case b.Type == pricing.Call && b.In:
		return KindCallKnockin
	case b.Type == pricing.Call:
		return KindCallKnockout
	case b.In:
		return KindPutKnockin
	default:
		return KindPutKnockout
	}
}

func (d Digital) Kind() Kind { return d.Variant }

func (Vanilla) instrument() {}
func (Forward) instrument() {}
func (Swap) instrument()    {}
func (Barrier) instrument() {}
func (Digital) instrument() {}

// Triggered reports whether spot has reached the barrier level.
func (b Barrier) Triggered(spot float64) bool {
	if b.Type == pricing.Call {
		return spot >= b.Level
	}
	return spot <= b.Level
}

// Active reports whether the underlying vanilla payoff applies at spot.
func (b Barrier) Active(spot float64) bool {
	return b.Triggered(spot) == b.In
}

// Pays reports whether the digital condition holds at spot.
func (d Digital) Pays(spot float64) bool {
	switch d.Variant {
	case KindOneTouch:
		return spot >= d.Upper
	case KindNoTouch:
		return spot < d.Upper
	case KindDoubleTouch:
		return spot <= d.Lower || spot >= d.Upper
	case KindDoubleNoTouch:
		return spot > d.Lower && spot < d.Upper
	case KindRangeBinary:
		return spot >= d.Lower && spot <= d.Upper
	case KindOutsideBinary:
		return spot < d.Lower || spot > d.Upper
	}
	return false
}

// Position is a compiled leg. Quantity is a signed fraction of notional.
type Position struct {
	Instrument Instrument
	Quantity   float64
	Volatility float64 // percent, used for pricing metadata only
	Leg        int     // index of the source leg
}

// Bought reports whether the position is long.
func (p Position) Bought() bool { return p.Quantity > 0 }

// Book is a fully resolved strategy anchored at a reference spot.
type Book struct {
	Reference float64
	Positions []Position
}

// Compile turns legs into a Book with absolute levels computed from
// reference. Legs that cannot be compiled are left out and reported in the
// returned error; the Book is usable either way.
func Compile(legs []Leg, reference float64) (Book, error) {
	b := Book{Reference: reference, Positions: make([]Position, 0, len(legs))}
	var errs []error
	for i, leg := range legs {
		inst, err := leg.compile(reference)
		if err != nil {
			errs = append(errs, fmt.Errorf("leg %d (%s): %w", i, leg.Kind, err))
			continue
		}
		b.Positions = append(b.Positions, Position{
			Instrument: inst,
			Quantity:   leg.Quantity / 100,
			Volatility: leg.Volatility,
			Leg:        i,
		})
	}
	return b, errors.Join(errs...)
}

func (l Leg) compile(ref float64) (Instrument, error) {
	if l.DynamicStrike != nil {
		return nil, ErrUnresolvedStrike
	}
	if ref <= 0 {
		return nil, fmt.Errorf("%w: reference spot must be positive", ErrMalformedLeg)
	}
	if l.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be non-zero", ErrMalformedLeg)
	}

	strike := l.StrikeBasis.Level(l.Strike, ref)
	barrier := l.BarrierBasis.Level(l.Barrier, ref)
	second := l.BarrierBasis.Level(l.SecondBarrier, ref)

	needStrike := func() error {
		if l.Strike <= 0 {
			return fmt.Errorf("%w: strike must be positive", ErrMalformedLeg)
		}
		return nil
	}
	needBarrier := func() error {
		if l.Barrier <= 0 {
			return fmt.Errorf("%w: barrier must be positive", ErrMalformedLeg)
		}
		return nil
	}

	switch l.Kind {
	case KindCall, KindPut:
		if err := needStrike(); err != nil {
			return nil, err
		}
		return Vanilla{Type: optionType(l.Kind), Strike: strike}, nil

	case KindForward:
		if err := needStrike(); err != nil {
			return nil, err
		}
		return Forward{Rate: strike}, nil

	case KindSwap:
		if err := needStrike(); err != nil {
			return nil, err
		}
		return Swap{Rate: strike}, nil

	case KindPutKnockout, KindCallKnockout, KindPutKnockin, KindCallKnockin:
		if err := needStrike(); err != nil {
			return nil, err
		}
		if err := needBarrier(); err != nil {
			return nil, err
		}
		return Barrier{
			Type:   optionType(l.Kind),
			Strike: strike,
			Level:  barrier,
			In:     l.Kind == KindPutKnockin || l.Kind == KindCallKnockin,
		}, nil

	case KindOneTouch, KindNoTouch:
		if err := needBarrier(); err != nil {
			return nil, err
		}
		return Digital{Variant: l.Kind, Lower: barrier, Upper: barrier, Rebate: l.Rebate}, nil

	case KindDoubleTouch, KindDoubleNoTouch:
		if err := needBarrier(); err != nil {
			return nil, err
		}
		if l.SecondBarrier <= 0 {
			return nil, fmt.Errorf("%w: second barrier must be positive", ErrMalformedLeg)
		}
		lo, hi := order(barrier, second)
		return Digital{Variant: l.Kind, Lower: lo, Upper: hi, Rebate: l.Rebate}, nil

	case KindRangeBinary, KindOutsideBinary:
		if err := needStrike(); err != nil {
			return nil, err
		}
		if err := needBarrier(); err != nil {
			return nil, err
		}
		// The band runs between the strike and the barrier, both in absolute terms.
		lo, hi := order(strike, barrier)
		return Digital{Variant: l.Kind, Lower: lo, Upper: hi, Rebate: l.Rebate}, nil
	}

	return nil, fmt.Errorf("%w: unknown kind %v", ErrMalformedLeg, l.Kind)
}

// optionType maps vanilla and barrier kinds to the option right they carry.
func optionType(k Kind) pricing.OptionType {
	switch k {
	case KindPut, KindPutKnockout, KindPutKnockin:
		return pricing.Put
	}
	return pricing.Call
}

func order(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

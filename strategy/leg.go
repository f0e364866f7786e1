// Package strategy models multi-leg FX hedging structures and maps spot
// prices to the effective rate a hedger achieves with them.
package strategy

import (
	"fmt"
	"strings"
)

// Kind is the closed set of instruments a leg can hold.
type Kind int

const (
	KindCall Kind = iota + 1
	KindPut
	KindForward
	KindSwap
	KindPutKnockout
	KindCallKnockout
	KindPutKnockin
	KindCallKnockin
	KindOneTouch
	KindNoTouch
	KindDoubleTouch
	KindDoubleNoTouch
	KindRangeBinary
	KindOutsideBinary
)

var kindNames = map[Kind]string{
	KindCall:          "call",
	KindPut:           "put",
	KindForward:       "forward",
	KindSwap:          "swap",
	KindPutKnockout:   "put-knockout",
	KindCallKnockout:  "call-knockout",
	KindPutKnockin:    "put-knockin",
	KindCallKnockin:   "call-knockin",
	KindOneTouch:      "one-touch",
	KindNoTouch:       "no-touch",
	KindDoubleTouch:   "double-touch",
	KindDoubleNoTouch: "double-no-touch",
	KindRangeBinary:   "range-binary",
	KindOutsideBinary: "outside-binary",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := KindCall; k <= KindOutsideBinary; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the canonical names; underscores, spaces and case are ignored
// so "call_knockout", "CallKnockout" and "call-knockout" are all the same kind.
func ParseKind(s string) (Kind, error) {
	norm := normalizeName(s)
	for k, name := range kindNames {
		if normalizeName(name) == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown leg kind %q", s)
}

func normalizeName(s string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("cannot marshal %v", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IsOption is true for vanilla and barrier kinds, the ones priced by Black-Scholes.
func (k Kind) IsOption() bool {
	switch k {
	case KindCall, KindPut, KindPutKnockout, KindCallKnockout, KindPutKnockin, KindCallKnockin:
		return true
	}
	return false
}

func (k Kind) IsBarrier() bool {
	switch k {
	case KindPutKnockout, KindCallKnockout, KindPutKnockin, KindCallKnockin:
		return true
	}
	return false
}

func (k Kind) IsDigital() bool {
	switch k {
	case KindOneTouch, KindNoTouch, KindDoubleTouch, KindDoubleNoTouch, KindRangeBinary, KindOutsideBinary:
		return true
	}
	return false
}

// Basis says how a strike or barrier level is expressed.
type Basis int

const (
	PercentOfSpot Basis = iota
	Absolute
)

func (b Basis) String() string {
	if b == Absolute {
		return "absolute"
	}
	return "percent"
}

func (b Basis) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Basis) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "", "percent", "pct", "percentofspot":
		*b = PercentOfSpot
	case "absolute", "abs":
		*b = Absolute
	default:
		return fmt.Errorf("unknown basis %q (supported: percent, absolute)", string(text))
	}
	return nil
}

// Level converts v expressed in basis b to an absolute price.
func (b Basis) Level(v, spot float64) float64 {
	if b == Absolute {
		return v
	}
	return v / 100 * spot
}

// Percent converts v expressed in basis b to percent of spot.
func (b Basis) Percent(v, spot float64) float64 {
	if b == PercentOfSpot {
		return v
	}
	return v / spot * 100
}

// MethodEquilibrium resolves a strike so the leg's premium matches another leg.
const MethodEquilibrium = "equilibrium"

// DynamicStrike defers a leg's strike to resolution time.
type DynamicStrike struct {
	Method               string  `json:"method" yaml:"method"`
	BalanceWithLeg       int     `json:"balance_with_leg" yaml:"balance_with_leg"`
	VolatilityAdjustment float64 `json:"volatility_adjustment,omitempty" yaml:"volatility_adjustment,omitempty"`
}

// Leg is one instrument of a strategy as configured by the user.
// Quantity is a signed percent of notional: positive bought, negative sold.
type Leg struct {
	Kind          Kind           `json:"kind" yaml:"kind"`
	Strike        float64        `json:"strike,omitempty" yaml:"strike,omitempty"`
	StrikeBasis   Basis          `json:"strike_basis" yaml:"strike_basis"`
	Volatility    float64        `json:"volatility,omitempty" yaml:"volatility,omitempty"`
	Quantity      float64        `json:"quantity" yaml:"quantity"`
	Barrier       float64        `json:"barrier,omitempty" yaml:"barrier,omitempty"`
	SecondBarrier float64        `json:"second_barrier,omitempty" yaml:"second_barrier,omitempty"`
	BarrierBasis  Basis          `json:"barrier_basis" yaml:"barrier_basis"`
	Rebate        float64        `json:"rebate,omitempty" yaml:"rebate,omitempty"`
	DynamicStrike *DynamicStrike `json:"dynamic_strike,omitempty" yaml:"dynamic_strike,omitempty"`
}

// Bought reports whether the leg is held long.
func (l Leg) Bought() bool { return l.Quantity > 0 }

func (l Leg) String() string {
	side := "buy"
	if l.Quantity < 0 {
		side = "sell"
	}
	strike := fmt.Sprintf("%.4g", l.Strike)
	if l.StrikeBasis == PercentOfSpot {
		strike += "%"
	}
	if l.DynamicStrike != nil {
		strike = "dynamic"
	}
	return fmt.Sprintf("%s %s %.4g%% @ %s", side, l.Kind, abs(l.Quantity), strike)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

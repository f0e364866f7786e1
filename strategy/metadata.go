package strategy

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/hedger/pricing"
	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/solver"
)

// RiskBucket is a coarse classification of a strategy's exposure.
type RiskBucket string

const (
	RiskLow    RiskBucket = "low"
	RiskMedium RiskBucket = "medium"
	RiskHigh   RiskBucket = "high"
)

// Metadata summarises a Book. It is always derived, never stored on its own.
type Metadata struct {
	Name         string                `json:"name" yaml:"name"`
	Risk         RiskBucket            `json:"risk" yaml:"risk"`
	Legs         int                   `json:"legs" yaml:"legs"`
	ExpectedCost float64               `json:"expected_cost" yaml:"expected_cost"` // percent of spot, positive is a cost
	MaxLoss      float64               `json:"max_loss" yaml:"max_loss"`
	MaxGain      float64               `json:"max_gain" yaml:"max_gain"`
	Breakevens   []float64             `json:"breakevens" yaml:"breakevens"`
	Greeks       pricing.Sensitivities `json:"greeks" yaml:"greeks"`
}

type MetadataOptions struct {
	Name    string
	Context solver.Context
	Profile ProfileOptions
}

// Describe derives Metadata from the book. Option legs are priced with
// Black-Scholes in opts.Context; legs without a usable volatility fall back
// to the flat premium estimate. Barrier legs are priced as their vanilla.
func (b Book) Describe(opts MetadataOptions) Metadata {
	md := Metadata{
		Name: opts.Name,
		Risk: b.riskBucket(),
		Legs: len(b.Positions),
	}
	if md.Name == "" {
		md.Name = b.Classify()
	}

	r, t := opts.Context.RiskFreeRate, opts.Context.TimeToExpiry
	var cost float64
	for _, p := range b.Positions {
		size := abs(p.Quantity)
		sign := 1.0
		if !p.Bought() {
			sign = -1
		}

		typ, strike, ok := p.struck()
		vol := p.Volatility / 100
		if ok && pricing.Validate(b.Reference, strike, t, vol) == nil {
			cost += sign * size * pricing.Price(typ, b.Reference, strike, r, t, vol)
			md.Greeks = md.Greeks.Add(pricing.Greeks(typ, b.Reference, strike, r, t, vol), sign*size)
			continue
		}
		switch p.Instrument.(type) {
		case Forward, Swap:
			// no upfront premium
		default:
			cost += sign * premiumRate * size * b.Reference
		}
	}
	if b.Reference > 0 {
		md.ExpectedCost = cost / b.Reference * 100
	}

	profile := b.PayoffProfile(opts.Profile)
	if len(profile) > 0 {
		md.MaxLoss, md.MaxGain = math.Inf(1), math.Inf(-1)
		for _, pt := range profile {
			md.MaxLoss = math.Min(md.MaxLoss, pt.Payoff)
			md.MaxGain = math.Max(md.MaxGain, pt.Payoff)
		}
	}
	md.Breakevens = breakevens(profile)
	return md
}

// struck returns the option right and strike for vanilla and barrier positions.
func (p Position) struck() (pricing.OptionType, float64, bool) {
	switch inst := p.Instrument.(type) {
	case Vanilla:
		return inst.Type, inst.Strike, true
	case Barrier:
		return inst.Type, inst.Strike, true
	}
	return 0, 0, false
}

// breakevens are the interpolated prices where the payoff changes sign.
func breakevens(profile []PayoffPoint) []float64 {
	out := []float64{}
	for i := 1; i < len(profile); i++ {
		a, b := profile[i-1], profile[i]
		switch {
		case b.Payoff == 0 && a.Payoff != 0:
			out = append(out, b.Price)
		case a.Payoff < 0 && b.Payoff > 0, a.Payoff > 0 && b.Payoff < 0:
			w := a.Payoff / (a.Payoff - b.Payoff)
			out = append(out, a.Price+w*(b.Price-a.Price))
		}
	}
	return out
}

func (b Book) riskBucket() RiskBucket {
	var bought, sold float64
	exotic := false
	for _, p := range b.Positions {
		switch inst := p.Instrument.(type) {
		case Vanilla, Digital:
			if p.Bought() {
				bought += abs(p.Quantity)
			} else {
				sold += abs(p.Quantity)
			}
			if _, ok := inst.(Digital); ok {
				exotic = true
			}
		case Barrier:
			exotic = true
			if p.Bought() {
				bought += abs(p.Quantity)
			} else {
				sold += abs(p.Quantity)
			}
		}
	}
	switch {
	case sold > bought:
		return RiskHigh
	case exotic || sold > 0:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Classify names common structures; anything else is "Custom".
func (b Book) Classify() string {
	n := len(b.Positions)
	if n == 0 {
		return "Unhedged"
	}
	if n == 1 {
		p := b.Positions[0]
		switch p.Instrument.(type) {
		case Forward:
			return "Forward"
		case Swap:
			return "Swap"
		}
		side := "Long"
		if !p.Bought() {
			side = "Short"
		}
		return side + " " + title(p.Instrument.Kind().String())
	}

	var longPut, shortPut, longCall, shortCall, other int
	var putStrikes, callStrikes []float64
	for _, p := range b.Positions {
		v, ok := p.Instrument.(Vanilla)
		if !ok {
			other++
			continue
		}
		switch {
		case v.Type == pricing.Put && p.Bought():
			longPut++
			putStrikes = append(putStrikes, v.Strike)
		case v.Type == pricing.Put:
			shortPut++
			putStrikes = append(putStrikes, v.Strike)
		case p.Bought():
			longCall++
			callStrikes = append(callStrikes, v.Strike)
		default:
			shortCall++
			callStrikes = append(callStrikes, v.Strike)
		}
	}

	if other == 0 {
		switch {
		case n == 2 && longPut == 1 && shortCall == 1, n == 2 && longCall == 1 && shortPut == 1:
			return "Collar"
		case n == 2 && longPut == 1 && longCall == 1:
			if putStrikes[0] == callStrikes[0] {
				return "Straddle"
			}
			return "Strangle"
		case n == 3 && longPut == 1 && shortPut == 1 && shortCall == 1,
			n == 3 && longCall == 1 && shortCall == 1 && shortPut == 1:
			return "Seagull"
		}
	}
	return fmt.Sprintf("Custom (%d legs)", n)
}

func title(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}

// Describe compiles legs at spot and derives their Metadata.
func Describe(legs []Leg, spot float64, opts MetadataOptions) (Metadata, error) {
	b, err := Compile(legs, spot)
	return b.Describe(opts), err
}

// Exposure summarises the book for a risk.Policy check. costPct is the
// expected cost in percent of spot, normally Metadata.ExpectedCost.
func (b Book) Exposure(costPct float64) risk.Exposure {
	e := risk.Exposure{CostPct: costPct}
	for _, p := range b.Positions {
		size := abs(p.Quantity) * 100
		switch p.Instrument.(type) {
		case Forward, Swap:
			e.HedgeRatioPct += size
		case Vanilla, Barrier:
			if p.Bought() {
				e.HedgeRatioPct += size
				e.BoughtOptionPct += size
			} else {
				e.SoldOptionPct += size
			}
		case Digital:
			if p.Bought() {
				e.BoughtOptionPct += size
			} else {
				e.SoldOptionPct += size
			}
		}
	}
	return e
}

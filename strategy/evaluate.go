package strategy

import "github.com/rustyeddy/hedger/pricing"

// premiumRate is the flat premium estimate per unit of |quantity|, as a
// fraction of the reference spot.
const premiumRate = 0.01

// Point is the evaluation of a Book at one spot.
type Point struct {
	Spot       float64
	HedgedRate float64
	Payoff     float64 // HedgedRate - Spot
	Return     float64 // (HedgedRate - Reference) / Reference
	NetPremium float64 // positive is a net cost
}

// Evaluate computes the effective hedged rate at spot. Every position is
// tested against spot itself, so position order never matters; their
// contributions are summed. With includePremium the net premium is taken
// off the final rate once.
func (b Book) Evaluate(spot float64, includePremium bool) Point {
	rate := spot
	for _, p := range b.Positions {
		rate += p.contribution(spot)
	}

	net := b.NetPremium()
	if includePremium {
		rate -= net
	}

	pt := Point{
		Spot:       spot,
		HedgedRate: rate,
		Payoff:     rate - spot,
		NetPremium: net,
	}
	if b.Reference > 0 {
		pt.Return = (rate - b.Reference) / b.Reference
	}
	return pt
}

// NetPremium is the simplified premium of the book in rate units: bought
// positions cost, sold positions earn.
func (b Book) NetPremium() float64 {
	var net float64
	for _, p := range b.Positions {
		est := premiumRate * abs(p.Quantity) * b.Reference
		if p.Bought() {
			net += est
		} else {
			net -= est
		}
	}
	return net
}

// contribution is the shift the position applies to spot.
func (p Position) contribution(spot float64) float64 {
	size := abs(p.Quantity)

	switch inst := p.Instrument.(type) {
	case Vanilla:
		return vanillaShift(inst.Type, inst.Strike, spot, size, p.Bought())

	case Forward:
		// strike·|q| + spot·(1-|q|), no optionality so the sign is ignored
		return (inst.Rate - spot) * size

	case Swap:
		return inst.Rate - spot

	case Barrier:
		if !inst.Active(spot) {
			return 0
		}
		return vanillaShift(inst.Type, inst.Strike, spot, size, p.Bought())

	case Digital:
		if !inst.Pays(spot) {
			return 0
		}
		return inst.Rebate / 100 * size * 100
	}
	return 0
}

// vanillaShift moves the rate toward the strike for a bought option and
// away from it by the same amount for a sold one, only when in the money.
func vanillaShift(typ pricing.OptionType, strike, spot, size float64, bought bool) float64 {
	var moneyness float64
	if typ == pricing.Call {
		if spot <= strike {
			return 0
		}
		moneyness = spot - strike
		if bought {
			return -moneyness * size
		}
		return moneyness * size
	}

	if spot >= strike {
		return 0
	}
	moneyness = strike - spot
	if bought {
		return moneyness * size
	}
	return -moneyness * size
}

// EvaluateAt is the single point evaluator: legs are compiled against
// initialSpot and evaluated at currentSpot. Malformed legs contribute nothing.
func EvaluateAt(legs []Leg, currentSpot, initialSpot float64, includePremium bool) (Point, error) {
	b, err := Compile(legs, initialSpot)
	return b.Evaluate(currentSpot, includePremium), err
}

package strategy

import "sort"

// Preset is a named strategy template. Legs are percent-of-spot based so a
// preset applies to any pair.
type Preset struct {
	Name        string
	Description string
	Legs        []Leg
}

const defaultVol = 10.0

var presets = map[string]Preset{
	"forward": {
		Name:        "forward",
		Description: "Lock the full notional at the current spot",
		Legs: []Leg{
			{Kind: KindForward, Strike: 100, Quantity: 100},
		},
	},
	"swap": {
		Name:        "swap",
		Description: "Swap the floating rate for a fixed one",
		Legs: []Leg{
			{Kind: KindSwap, Strike: 100, Quantity: 100},
		},
	},
	"protective-put": {
		Name:        "protective-put",
		Description: "Buy a 95% put as a floor",
		Legs: []Leg{
			{Kind: KindPut, Strike: 95, Volatility: defaultVol, Quantity: 100},
		},
	},
	"collar": {
		Name:        "collar",
		Description: "Buy a 95% put, sell a 105% call",
		Legs: []Leg{
			{Kind: KindPut, Strike: 95, Volatility: defaultVol, Quantity: 100},
			{Kind: KindCall, Strike: 105, Volatility: defaultVol, Quantity: -100},
		},
	},
	"zero-cost-collar": {
		Name:        "zero-cost-collar",
		Description: "Buy a 95% put, sell a call struck where premiums offset",
		Legs: []Leg{
			{Kind: KindPut, Strike: 95, Volatility: defaultVol, Quantity: 100},
			{
				Kind:          KindCall,
				Volatility:    defaultVol,
				Quantity:      -100,
				DynamicStrike: &DynamicStrike{Method: MethodEquilibrium, BalanceWithLeg: 0},
			},
		},
	},
	"seagull": {
		Name:        "seagull",
		Description: "Collar financed further by selling a 90% put",
		Legs: []Leg{
			{Kind: KindPut, Strike: 95, Volatility: defaultVol, Quantity: 100},
			{Kind: KindPut, Strike: 90, Volatility: defaultVol, Quantity: -100},
			{Kind: KindCall, Strike: 108, Volatility: defaultVol, Quantity: -100},
		},
	},
	"forward-extra": {
		Name:        "forward-extra",
		Description: "Floor at 97% with upside until a 108% knock-in",
		Legs: []Leg{
			{Kind: KindPut, Strike: 97, Volatility: defaultVol, Quantity: 100},
			{Kind: KindCallKnockin, Strike: 97, Barrier: 108, Volatility: defaultVol, Quantity: -100},
		},
	},
	"knockout-put": {
		Name:        "knockout-put",
		Description: "Cheaper 98% put that dies below 90%",
		Legs: []Leg{
			{Kind: KindPutKnockout, Strike: 98, Barrier: 90, Volatility: defaultVol, Quantity: 100},
		},
	},
	"range-binary": {
		Name:        "range-binary",
		Description: "Pay 2% while spot stays between 95% and 105%",
		Legs: []Leg{
			{Kind: KindRangeBinary, Strike: 95, Barrier: 105, Rebate: 2, Quantity: 100},
		},
	},
	"double-no-touch": {
		Name:        "double-no-touch",
		Description: "Pay 3% if spot never leaves the 92%-108% band",
		Legs: []Leg{
			{Kind: KindDoubleNoTouch, Barrier: 92, SecondBarrier: 108, Rebate: 3, Quantity: 100},
		},
	},
}

// Presets returns every template sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupPreset finds a template by name. The returned legs are a fresh copy.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	return p.clone(), true
}

func (p Preset) clone() Preset {
	legs := make([]Leg, len(p.Legs))
	for i, l := range p.Legs {
		if l.DynamicStrike != nil {
			ds := *l.DynamicStrike
			l.DynamicStrike = &ds
		}
		legs[i] = l
	}
	p.Legs = legs
	return p
}

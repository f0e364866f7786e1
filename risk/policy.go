package risk

import "fmt"

// Policy holds the limits a hedging strategy is checked against. A zero
// limit disables its check, except MaxNetShortPct where zero means no net
// sold optionality is allowed.
type Policy struct {
	MaxHedgeRatioPct float64 `json:"max_hedge_ratio_pct" yaml:"max_hedge_ratio_pct"` // 100
	MaxNetShortPct   float64 `json:"max_net_short_pct" yaml:"max_net_short_pct"`     // 0
	MaxCostPct       float64 `json:"max_cost_pct" yaml:"max_cost_pct"`               // 2, percent of spot
	MaxDrawdownPct   float64 `json:"max_drawdown_pct" yaml:"max_drawdown_pct"`       // backtests only
}

func DefaultPolicy() Policy {
	return Policy{
		MaxHedgeRatioPct: 100,
		MaxNetShortPct:   0,
		MaxCostPct:       2,
	}
}

// Exposure is what a strategy commits to, all in percent of notional
// except CostPct (percent of spot) and DrawdownPct.
type Exposure struct {
	HedgeRatioPct   float64 // forwards, swaps and bought options
	BoughtOptionPct float64
	SoldOptionPct   float64
	CostPct         float64
	DrawdownPct     float64
}

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	Allowed    bool
	Violations []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Check evaluates e against p and reports every limit breached.
func Check(p Policy, e Exposure) Decision {
	d := Decision{Allowed: true}

	if p.MaxHedgeRatioPct > 0 && e.HedgeRatioPct > p.MaxHedgeRatioPct {
		d.add("OVER_HEDGED",
			fmt.Sprintf("hedge ratio %.1f%% exceeds max %.1f%%", e.HedgeRatioPct, p.MaxHedgeRatioPct))
	}

	if net := e.SoldOptionPct - e.BoughtOptionPct; net > p.MaxNetShortPct {
		d.add("NET_SHORT_OPTIONS",
			fmt.Sprintf("net sold optionality %.1f%% exceeds max %.1f%%", net, p.MaxNetShortPct))
	}

	if p.MaxCostPct > 0 && e.CostPct > p.MaxCostPct {
		d.add("COST_TOO_HIGH",
			fmt.Sprintf("expected cost %.2f%% of spot exceeds max %.2f%%", e.CostPct, p.MaxCostPct))
	}

	if p.MaxDrawdownPct > 0 && e.DrawdownPct > p.MaxDrawdownPct {
		d.add("DRAWDOWN_TOO_HIGH",
			fmt.Sprintf("max drawdown %.2f%% exceeds limit %.2f%%", e.DrawdownPct, p.MaxDrawdownPct))
	}

	return d
}

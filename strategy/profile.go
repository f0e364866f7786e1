package strategy

const (
	DefaultProfilePoints   = 100
	DefaultProfileRangePct = 30.0
)

// HedgePoint is one row of a hedging profile.
type HedgePoint struct {
	Spot         float64 `json:"spot" yaml:"spot"`
	UnhedgedRate float64 `json:"unhedged_rate" yaml:"unhedged_rate"`
	HedgedRate   float64 `json:"hedged_rate" yaml:"hedged_rate"`
}

// PayoffPoint is one row of a payoff profile.
type PayoffPoint struct {
	Price  float64 `json:"price" yaml:"price"`
	Payoff float64 `json:"payoff" yaml:"payoff"`
}

// ProfileOptions shapes the spot grid: Points evenly spaced prices
// spanning ±RangePct around the book's reference spot.
type ProfileOptions struct {
	Points         int     `json:"points" yaml:"points"`
	RangePct       float64 `json:"range_pct" yaml:"range_pct"`
	IncludePremium bool    `json:"include_premium" yaml:"include_premium"`
}

func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{Points: DefaultProfilePoints, RangePct: DefaultProfileRangePct}
}

// Grid returns the spot prices a profile is evaluated at.
func (o ProfileOptions) Grid(center float64) []float64 {
	n := o.Points
	if n <= 0 {
		n = DefaultProfilePoints
	}
	rng := o.RangePct
	if rng < 0 {
		rng = -rng
	}
	if n == 1 || rng == 0 {
		return []float64{center}
	}

	low := center * (1 - rng/100)
	high := center * (1 + rng/100)
	step := (high - low) / float64(n-1)

	out := make([]float64, n)
	for i := range out {
		out[i] = low + float64(i)*step
	}
	out[n-1] = high
	return out
}

// HedgingProfile evaluates the book across the grid around its reference.
func (b Book) HedgingProfile(opts ProfileOptions) []HedgePoint {
	grid := opts.Grid(b.Reference)
	out := make([]HedgePoint, len(grid))
	for i, s := range grid {
		pt := b.Evaluate(s, opts.IncludePremium)
		out[i] = HedgePoint{Spot: s, UnhedgedRate: s, HedgedRate: pt.HedgedRate}
	}
	return out
}

// PayoffProfile is the hedged minus unhedged rate across the grid.
func (b Book) PayoffProfile(opts ProfileOptions) []PayoffPoint {
	grid := opts.Grid(b.Reference)
	out := make([]PayoffPoint, len(grid))
	for i, s := range grid {
		out[i] = PayoffPoint{Price: s, Payoff: b.Evaluate(s, opts.IncludePremium).Payoff}
	}
	return out
}

// Evaluate compiles legs against spot and returns the hedging profile.
// Legs that fail to compile are reported in the error and left out.
func Evaluate(legs []Leg, spot float64, opts ProfileOptions) ([]HedgePoint, error) {
	b, err := Compile(legs, spot)
	return b.HedgingProfile(opts), err
}

// Package backtest simulates a spot path and measures how a hedging
// strategy would have performed along it.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/strategy"
)

// RollingWindow is the number of rows the rolling volatility looks back over.
const RollingWindow = 30

// Row is one simulated period. Every field after Spot depends on all rows
// before it, so rows are only ever produced in date order.
type Row struct {
	Date           time.Time `json:"date"`
	Spot           float64   `json:"spot"`
	HedgedRate     float64   `json:"hedged_rate"`
	UnhedgedPnL    float64   `json:"unhedged_pnl"`
	HedgedPnL      float64   `json:"hedged_pnl"`
	TotalReturnPct float64   `json:"total_return_pct"`
	DrawdownPct    float64   `json:"drawdown_pct"`
	RollingVolPct  float64   `json:"rolling_vol_pct"`
}

// Params configures one run. A nil Generator uses NewUniformWalk(Seed).
type Params struct {
	Legs           []strategy.Leg
	Spot           float64
	Start          time.Time
	End            time.Time
	Periodicity    Periodicity
	InitialCapital float64
	IncludePremium bool

	// OptimizePerPeriod re-solves dynamic strikes at every period's spot
	// instead of once at the initial spot.
	OptimizePerPeriod bool

	Generator PathGenerator
	Seed      int64

	// Progress, when set, is called after each row with rows done and total.
	Progress func(done, total int)
}

func (p Params) validate() error {
	switch {
	case p.Spot <= 0:
		return fmt.Errorf("backtest: spot must be positive")
	case p.InitialCapital <= 0:
		return fmt.Errorf("backtest: initial capital must be positive")
	case p.Start.IsZero() || p.End.IsZero():
		return fmt.Errorf("backtest: start and end dates are required")
	case p.End.Before(p.Start):
		return fmt.Errorf("backtest: end %s is before start %s",
			p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
	}
	if _, err := ParsePeriodicity(string(p.Periodicity)); err != nil {
		return fmt.Errorf("backtest: %w", err)
	}
	return nil
}

// Result is the row sequence and the metrics derived from it.
type Result struct {
	Rows    []Row
	Metrics Metrics

	// Book is the strategy as evaluated at the first period.
	Book strategy.Book
	// LegErrors reports legs that were skipped, nil when every leg applied.
	LegErrors error
}

// Engine runs backtests. The zero value is not usable; see NewEngine.
type Engine struct {
	Resolver *strategy.Resolver
	Log      zerolog.Logger
}

func NewEngine(r *strategy.Resolver, log zerolog.Logger) *Engine {
	if r == nil {
		r = strategy.NewResolver(nil)
	}
	return &Engine{Resolver: r, Log: log}
}

// Run simulates the path period by period. Hedged P&L is recomputed from
// the initial spot at every step rather than accumulated, so legs never
// expire along the path.
func (e *Engine) Run(ctx context.Context, p Params) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	per, _ := ParsePeriodicity(string(p.Periodicity))

	gen := p.Generator
	if gen == nil {
		gen = NewUniformWalk(p.Seed)
	}

	total := per.Periods(p.Start, p.End)
	log := e.Log.With().
		Str("periodicity", string(per)).
		Int("periods", total).
		Float64("spot", p.Spot).
		Logger()
	log.Debug().Int("legs", len(p.Legs)).Msg("backtest starting")

	perPeriod := p.OptimizePerPeriod && strategy.HasDynamic(p.Legs)

	var (
		book    strategy.Book
		legErrs error
	)
	if !perPeriod {
		book, legErrs = e.prepare(p.Legs, p.Spot, p.Spot)
		if legErrs != nil {
			log.Warn().Err(legErrs).Msg("legs skipped")
		}
	}

	var (
		res      = Result{Rows: make([]Row, 0, total)}
		spot     = p.Spot
		unhedged float64
		peak     = math.Inf(-1)
		spots    = make([]float64, 0, total)
	)

	for date := p.Start; !date.After(p.End); date = per.Next(date) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		r := gen.NextReturn()
		spot *= 1 + r
		unhedged += r * p.InitialCapital

		if perPeriod {
			// resolve at this period's spot, evaluate against the initial one
			book, legErrs = e.prepare(p.Legs, p.Spot, spot)
		}
		pt := book.Evaluate(spot, p.IncludePremium)
		hedged := pt.Return * p.InitialCapital

		peak = math.Max(peak, hedged)
		spots = append(spots, spot)

		row := Row{
			Date:           date,
			Spot:           spot,
			HedgedRate:     pt.HedgedRate,
			UnhedgedPnL:    unhedged,
			HedgedPnL:      hedged,
			TotalReturnPct: hedged / p.InitialCapital * 100,
			DrawdownPct:    risk.Drawdown(peak, hedged) * 100,
			RollingVolPct:  rollingVol(spots) * 100,
		}
		res.Rows = append(res.Rows, row)

		if len(res.Rows) == 1 {
			res.Book = book
		}
		if p.Progress != nil {
			p.Progress(len(res.Rows), total)
		}
	}

	res.LegErrors = legErrs
	res.Metrics = ComputeMetrics(res.Rows)

	log.Info().
		Int("rows", len(res.Rows)).
		Float64("total_return_pct", res.Metrics.TotalReturnPct).
		Float64("max_drawdown_pct", res.Metrics.MaxDrawdownPct).
		Float64("sharpe", res.Metrics.Sharpe).
		Msg("backtest complete")
	return res, nil
}

// prepare is the two phase pipeline: resolve dynamic strikes at spot, then
// compile the resolved legs against the reference spot.
func (e *Engine) prepare(legs []strategy.Leg, reference, spot float64) (strategy.Book, error) {
	resolved, _, rerr := e.Resolver.Resolve(legs, reference, spot)
	book, cerr := strategy.Compile(resolved, reference)
	return book, errors.Join(rerr, cerr)
}

// rollingVol is the annualized stdev of log returns over the trailing window.
func rollingVol(spots []float64) float64 {
	if len(spots) > RollingWindow {
		spots = spots[len(spots)-RollingWindow:]
	}
	return risk.Annualize(risk.StdDev(risk.LogReturns(spots)))
}

// ErrNoRows is returned by helpers that need at least one row.
var ErrNoRows = errors.New("backtest: no rows")

// Final returns the last row of a result.
func (r Result) Final() (Row, error) {
	if len(r.Rows) == 0 {
		return Row{}, ErrNoRows
	}
	return r.Rows[len(r.Rows)-1], nil
}

// Package journal persists backtest runs and their rows so they can be
// listed, compared and exported after the fact.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/hedger/backtest"
	"github.com/rustyeddy/hedger/strategy"
)

// ErrRunNotFound is returned when a run id is not in the journal.
var ErrRunNotFound = errors.New("journal: run not found")

// RunRecord mirrors the backtest_runs table.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Strategy string
	Pair     string

	Start       time.Time
	End         time.Time
	Periodicity string

	Spot              float64
	Capital           float64
	Seed              int64
	OptimizePerPeriod bool
	IncludePremium    bool
	Legs              []byte // JSON encoded []strategy.Leg

	FinalSpot   float64
	UnhedgedPnL float64
	HedgedPnL   float64
	Metrics     backtest.Metrics
	LegErrors   string

	// Notes are rendered into Org exports only.
	Notes []string
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordRows(runID string, rows []backtest.Row) error
	Close() error
}

// NewRunRecord collects what a journal stores about a finished run.
func NewRunRecord(runID string, s backtest.Summary, p backtest.Params, r backtest.Result) (RunRecord, error) {
	legs, err := json.Marshal(p.Legs)
	if err != nil {
		return RunRecord{}, fmt.Errorf("encode legs: %w", err)
	}

	rec := RunRecord{
		RunID:             runID,
		Created:           time.Now().UTC(),
		Strategy:          s.Strategy,
		Pair:              s.Pair,
		Start:             p.Start,
		End:               p.End,
		Periodicity:       string(p.Periodicity),
		Spot:              p.Spot,
		Capital:           p.InitialCapital,
		Seed:              p.Seed,
		OptimizePerPeriod: p.OptimizePerPeriod,
		IncludePremium:    p.IncludePremium,
		Legs:              legs,
		Metrics:           r.Metrics,
	}
	if last, err := r.Final(); err == nil {
		rec.FinalSpot = last.Spot
		rec.UnhedgedPnL = last.UnhedgedPnL
		rec.HedgedPnL = last.HedgedPnL
	}
	if r.LegErrors != nil {
		rec.LegErrors = r.LegErrors.Error()
	}
	return rec, nil
}

// DecodeLegs returns the legs the run was made with.
func (r RunRecord) DecodeLegs() ([]strategy.Leg, error) {
	if len(r.Legs) == 0 {
		return nil, nil
	}
	var legs []strategy.Leg
	if err := json.Unmarshal(r.Legs, &legs); err != nil {
		return nil, fmt.Errorf("decode legs of run %s: %w", r.RunID, err)
	}
	return legs, nil
}

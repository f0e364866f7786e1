package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/hedger/backtest"
)

const runColumns = `run_id, created, strategy, pair, start_date, end_date, periodicity,
	spot, capital, seed, optimize_per_period, include_premium, legs,
	final_spot, unhedged_pl, hedged_pl,
	periods, total_return_pct, annualized_return_pct, volatility_pct, sharpe,
	max_drawdown_pct, win_rate, profit_factor, var95_pct, calmar, leg_errors`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var (
		r    RunRecord
		legs string
	)
	m := &r.Metrics
	err := s.Scan(
		&r.RunID, &r.Created, &r.Strategy, &r.Pair, &r.Start, &r.End, &r.Periodicity,
		&r.Spot, &r.Capital, &r.Seed, &r.OptimizePerPeriod, &r.IncludePremium, &legs,
		&r.FinalSpot, &r.UnhedgedPnL, &r.HedgedPnL,
		&m.Periods, &m.TotalReturnPct, &m.AnnualizedReturnPct, &m.VolatilityPct, &m.Sharpe,
		&m.MaxDrawdownPct, &m.WinRate, &m.ProfitFactor, &m.VaR95Pct, &m.Calmar, &r.LegErrors,
	)
	r.Legs = []byte(legs)
	return r, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM backtest_runs WHERE run_id = ?`, runID)

	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns the most recent runs first. limit <= 0 means all.
func (j *SQLite) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	q := `SELECT ` + runColumns + ` FROM backtest_runs ORDER BY run_id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRows returns the rows of a run in date order.
func (j *SQLite) ListRows(ctx context.Context, runID string) ([]backtest.Row, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT date, spot, hedged_rate, unhedged_pl, hedged_pl, total_return_pct, drawdown_pct, rolling_vol_pct
		FROM backtest_rows
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backtest.Row
	for rows.Next() {
		var r backtest.Row
		if err := rows.Scan(&r.Date, &r.Spot, &r.HedgedRate, &r.UnhedgedPnL,
			&r.HedgedPnL, &r.TotalReturnPct, &r.DrawdownPct, &r.RollingVolPct); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportRunOrg loads a run and returns its Org block.
func (j *SQLite) ExportRunOrg(ctx context.Context, runID string) (string, error) {
	rec, err := j.GetRun(ctx, runID)
	if err != nil {
		return "", err
	}
	return FormatRunOrg(rec)
}

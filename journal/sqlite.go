package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/hedger/backtest"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	m := r.Metrics
	_, err := j.db.Exec(`
		INSERT INTO backtest_runs
		(run_id, created, strategy, pair, start_date, end_date, periodicity,
		 spot, capital, seed, optimize_per_period, include_premium, legs,
		 final_spot, unhedged_pl, hedged_pl,
		 periods, total_return_pct, annualized_return_pct, volatility_pct, sharpe,
		 max_drawdown_pct, win_rate, profit_factor, var95_pct, calmar, leg_errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Pair, r.Start, r.End, r.Periodicity,
		r.Spot, r.Capital, r.Seed, r.OptimizePerPeriod, r.IncludePremium, string(r.Legs),
		r.FinalSpot, r.UnhedgedPnL, r.HedgedPnL,
		m.Periods, m.TotalReturnPct, m.AnnualizedReturnPct, m.VolatilityPct, m.Sharpe,
		m.MaxDrawdownPct, m.WinRate, m.ProfitFactor, m.VaR95Pct, m.Calmar, r.LegErrors,
	)
	return err
}

// RecordRows stores rows in one transaction.
func (j *SQLite) RecordRows(runID string, rows []backtest.Row) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO backtest_rows
		(run_id, date, spot, hedged_rate, unhedged_pl, hedged_pl, total_return_pct, drawdown_pct, rolling_vol_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(runID, r.Date, r.Spot, r.HedgedRate, r.UnhedgedPnL,
			r.HedgedPnL, r.TotalReturnPct, r.DrawdownPct, r.RollingVolPct); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert row %s: %w", r.Date.Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

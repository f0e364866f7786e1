package journal

const Schema = `
CREATE TABLE IF NOT EXISTS backtest_runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	pair TEXT NOT NULL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	periodicity TEXT NOT NULL,
	spot REAL NOT NULL,
	capital REAL NOT NULL,
	seed INTEGER NOT NULL,
	optimize_per_period INTEGER NOT NULL,
	include_premium INTEGER NOT NULL,
	legs TEXT NOT NULL,
	final_spot REAL NOT NULL,
	unhedged_pl REAL NOT NULL,
	hedged_pl REAL NOT NULL,
	periods INTEGER NOT NULL,
	total_return_pct REAL NOT NULL,
	annualized_return_pct REAL NOT NULL,
	volatility_pct REAL NOT NULL,
	sharpe REAL NOT NULL,
	max_drawdown_pct REAL NOT NULL,
	win_rate REAL NOT NULL,
	profit_factor REAL NOT NULL,
	var95_pct REAL NOT NULL,
	calmar REAL NOT NULL,
	leg_errors TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS backtest_rows (
	run_id TEXT NOT NULL REFERENCES backtest_runs(run_id),
	date DATETIME NOT NULL,
	spot REAL NOT NULL,
	hedged_rate REAL NOT NULL,
	unhedged_pl REAL NOT NULL,
	hedged_pl REAL NOT NULL,
	total_return_pct REAL NOT NULL,
	drawdown_pct REAL NOT NULL,
	rolling_vol_pct REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_backtest_rows_run ON backtest_rows(run_id, date);
`

package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/hedger/backtest"
)

type CSVJournal struct {
	runs *csv.Writer
	rows *csv.Writer
	rf   *os.File
	wf   *os.File
}

var (
	runsHeader = []string{"run_id", "created", "strategy", "pair", "start", "end", "periodicity",
		"spot", "capital", "seed", "final_spot", "unhedged_pl", "hedged_pl",
		"total_return_pct", "annualized_return_pct", "volatility_pct", "sharpe",
		"max_drawdown_pct", "win_rate", "profit_factor", "var95_pct", "calmar"}
	rowsHeader = []string{"run_id", "date", "spot", "hedged_rate", "unhedged_pl", "hedged_pl",
		"total_return_pct", "drawdown_pct", "rolling_vol_pct"}
)

// NewCSV opens or creates the runs and rows files for appending. Headers
// are written only to empty files.
func NewCSV(runsPath, rowsPath string) (*CSVJournal, error) {
	rf, err := openAppend(runsPath)
	if err != nil {
		return nil, err
	}
	wf, err := openAppend(rowsPath)
	if err != nil {
		_ = rf.Close()
		return nil, err
	}

	j := &CSVJournal{runs: csv.NewWriter(rf), rows: csv.NewWriter(wf), rf: rf, wf: wf}
	if err := j.writeHeader(rf, j.runs, runsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if err := j.writeHeader(wf, j.rows, rowsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	return j, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func (j *CSVJournal) writeHeader(fh *os.File, w *csv.Writer, header []string) error {
	st, err := fh.Stat()
	if err != nil {
		return err
	}
	if st.Size() > 0 {
		return nil
	}
	return j.write(w, header)
}

func (j *CSVJournal) closeFiles() {
	_ = j.rf.Close()
	_ = j.wf.Close()
}

func (j *CSVJournal) write(w *csv.Writer, rec []string) error {
	if err := w.Write(rec); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	m := r.Metrics
	return j.write(j.runs, []string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		r.Strategy,
		r.Pair,
		r.Start.Format(dateLayout),
		r.End.Format(dateLayout),
		r.Periodicity,
		f(r.Spot),
		money(r.Capital),
		strconv.FormatInt(r.Seed, 10),
		f(r.FinalSpot),
		money(r.UnhedgedPnL),
		money(r.HedgedPnL),
		pct(m.TotalReturnPct),
		pct(m.AnnualizedReturnPct),
		pct(m.VolatilityPct),
		pct(m.Sharpe),
		pct(m.MaxDrawdownPct),
		pct(m.WinRate),
		pct(m.ProfitFactor),
		pct(m.VaR95Pct),
		pct(m.Calmar),
	})
}

func (j *CSVJournal) RecordRows(runID string, rows []backtest.Row) error {
	for _, r := range rows {
		err := j.rows.Write([]string{
			runID,
			r.Date.Format(dateLayout),
			f(r.Spot),
			f(r.HedgedRate),
			money(r.UnhedgedPnL),
			money(r.HedgedPnL),
			pct(r.TotalReturnPct),
			pct(r.DrawdownPct),
			pct(r.RollingVolPct),
		})
		if err != nil {
			return err
		}
	}
	j.rows.Flush()
	return j.rows.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.rows.Flush()
	if err := j.rows.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	return j.wf.Close()
}

const dateLayout = "2006-01-02"

// f formats rates.
func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// money rounds half away from zero to cents.
func money(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

func pct(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(4)
}

package backtest

import (
	"fmt"
	"io"
)

// Summary is the header information printed with a result.
type Summary struct {
	RunID    string
	Strategy string
	Pair     string
	Capital  float64
	Seed     int64
}

// PrintSummary writes a human readable report of a run.
func PrintSummary(w io.Writer, s Summary, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Hedge Backtest")
	fmt.Fprintln(w, "==================================================")

	if s.RunID != "" {
		fmt.Fprintf(w, "Run ID:        %s\n", s.RunID)
	}
	fmt.Fprintf(w, "Strategy:      %s\n", s.Strategy)
	fmt.Fprintf(w, "Pair:          %s\n", s.Pair)
	fmt.Fprintf(w, "Seed:          %d\n", s.Seed)

	if len(r.Rows) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No periods simulated.")
		return
	}
	first, last := r.Rows[0], r.Rows[len(r.Rows)-1]

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Period")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start:         %s\n", first.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "End:           %s\n", last.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "Periods:       %d\n", r.Metrics.Periods)
	fmt.Fprintf(w, "Final Spot:    %.5f\n", last.Spot)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "P/L")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Capital:       %.2f\n", s.Capital)
	fmt.Fprintf(w, "Unhedged P/L:  %.2f\n", last.UnhedgedPnL)
	fmt.Fprintf(w, "Hedged P/L:    %.2f\n", last.HedgedPnL)

	m := r.Metrics
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", m.TotalReturnPct)
	fmt.Fprintf(w, "Annualized:    %.2f%%\n", m.AnnualizedReturnPct)
	fmt.Fprintf(w, "Volatility:    %.2f%%\n", m.VolatilityPct)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", m.Sharpe)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", m.MaxDrawdownPct)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", m.WinRate*100)
	if m.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", m.ProfitFactor)
	}
	fmt.Fprintf(w, "VaR 95%%:       %.4f%%\n", m.VaR95Pct)
	if m.Calmar != 0 {
		fmt.Fprintf(w, "Calmar:        %.2f\n", m.Calmar)
	}

	if r.LegErrors != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Skipped Legs")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "- %v\n", r.LegErrors)
	}

	fmt.Fprintln(w)
}

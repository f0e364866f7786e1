package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/backtest"
	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/pkg/id"
	"github.com/rustyeddy/hedger/pkg/logger"
	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/strategy"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Backtest the configured strategy along a simulated spot path",
	Long: `Simulate the spot period by period from the market spot and measure the
configured strategy against the unhedged position.

The path is a seeded uniform random walk of at most 1% per period unless
--returns points at a CSV of period returns. Rows and metrics are written
to the journal configured in the journal section.

Examples:
  hedger backtest -c collar.yaml --seed 7
  hedger backtest -c zero-cost-collar.yaml --optimize --periodicity weekly
  hedger backtest -c collar.yaml --returns eurusd-returns.csv --org run.org`,
	RunE: runBacktest,
}

var (
	btSeed        int64
	btOptimize    bool
	btPremium     bool
	btStart       string
	btEnd         string
	btPeriodicity string
	btReturns     string
	btNoJournal   bool
	btOrgPath     string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().Int64Var(&btSeed, "seed", 0, "random walk seed (default: backtest.seed)")
	backtestCmd.Flags().BoolVar(&btOptimize, "optimize", false, "re-solve dynamic strikes every period")
	backtestCmd.Flags().BoolVar(&btPremium, "premium", false, "net estimated premium from hedged P/L")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start date YYYY-MM-DD (default: backtest.start)")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end date YYYY-MM-DD (default: backtest.end)")
	backtestCmd.Flags().StringVar(&btPeriodicity, "periodicity", "", "daily, weekly or monthly (default: backtest.periodicity)")
	backtestCmd.Flags().StringVar(&btReturns, "returns", "", "CSV of period returns to replay instead of the random walk")
	backtestCmd.Flags().BoolVar(&btNoJournal, "no-journal", false, "do not record the run")
	backtestCmd.Flags().StringVar(&btOrgPath, "org", "", "also write an Org summary to this path")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	bc := cfg.Backtest
	if cmd.Flags().Changed("seed") {
		bc.Seed = btSeed
	}
	if cmd.Flags().Changed("optimize") {
		bc.OptimizePerPeriod = btOptimize
	}
	if cmd.Flags().Changed("premium") {
		bc.IncludePremium = btPremium
	}
	if btStart != "" {
		bc.Start = btStart
	}
	if btEnd != "" {
		bc.End = btEnd
	}
	if btPeriodicity != "" {
		bc.Periodicity = btPeriodicity
	}
	if btReturns != "" {
		bc.ReturnsFile = btReturns
	}

	start, end, err := bc.Dates()
	if err != nil {
		return err
	}
	per, err := backtest.ParsePeriodicity(bc.Periodicity)
	if err != nil {
		return err
	}

	params := backtest.Params{
		Legs:              cfg.Legs(),
		Spot:              cfg.Market.Spot,
		Start:             start,
		End:               end,
		Periodicity:       per,
		InitialCapital:    bc.Capital,
		IncludePremium:    bc.IncludePremium,
		OptimizePerPeriod: bc.OptimizePerPeriod,
		Seed:              bc.Seed,
	}
	if bc.ReturnsFile != "" {
		series, err := backtest.ReadReturnsFile(bc.ReturnsFile)
		if err != nil {
			return fmt.Errorf("returns: %w", err)
		}
		params.Generator = series
	}

	runID := id.New()
	runLog := logger.WithRun(log, runID)

	step := per.Periods(start, end) / 10
	params.Progress = func(done, total int) {
		if step > 0 && done%step == 0 {
			runLog.Debug().Int("done", done).Int("total", total).Msg("backtest progress")
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	engine := backtest.NewEngine(newResolver(), runLog)
	res, err := engine.Run(ctx, params)
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	summary := backtest.Summary{
		RunID:    runID,
		Strategy: strategyName(res),
		Pair:     cfg.Market.Pair,
		Capital:  bc.Capital,
		Seed:     bc.Seed,
	}
	backtest.PrintSummary(cmd.OutOrStdout(), summary, res)

	md := res.Book.Describe(strategy.MetadataOptions{Context: cfg.SolverContext(), Profile: cfg.ProfileOptions()})
	exp := res.Book.Exposure(md.ExpectedCost)
	exp.DrawdownPct = res.Metrics.MaxDrawdownPct
	printPolicy(cmd.OutOrStdout(), risk.Check(cfg.Policy, exp))

	rec, err := journal.NewRunRecord(runID, summary, params, res)
	if err != nil {
		return err
	}

	if !btNoJournal {
		if err := recordRun(rec, res.Rows); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		runLog.Info().Str("journal", cfg.Journal.Type).Msg("run recorded")
	}
	if btOrgPath != "" {
		if err := journal.WriteRunOrg(btOrgPath, rec); err != nil {
			return fmt.Errorf("org: %w", err)
		}
	}
	return nil
}

func strategyName(res backtest.Result) string {
	if n := cfg.StrategyName(); n != "" {
		return n
	}
	return res.Book.Classify()
}

func recordRun(rec journal.RunRecord, rows []backtest.Row) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.RecordRun(rec); err != nil {
		return err
	}
	return j.RecordRows(rec.RunID, rows)
}

func openJournal() (journal.Journal, error) {
	jc := cfg.Journal
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.RunsFile, jc.RowsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}

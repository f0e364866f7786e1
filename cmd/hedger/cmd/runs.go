package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/backtest"
	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/pkg/id"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect backtest runs recorded in the SQLite journal",
	Long: `List and show backtest runs from the SQLite journal.

Subcommands:
  list - List recent runs
  show - Show one run

Examples:
  hedger runs list --limit 5
  hedger runs list --org > runs.org
  hedger runs show 01J0ABCDEF... --org`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run as a report or Org block",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var (
	runsDB      string
	runsLimit   int
	runsListOrg bool
	runsOrg     bool
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsCmd.PersistentFlags().StringVarP(&runsDB, "db", "d", "", "SQLite journal (default: journal.db_path)")
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to list (0 for all)")
	runsListCmd.Flags().BoolVar(&runsListOrg, "org", false, "print the runs as Org-mode blocks")
	runsShowCmd.Flags().BoolVar(&runsOrg, "org", false, "print an Org-mode block")
}

func openRunsDB() (*journal.SQLite, error) {
	path := runsDB
	if path == "" {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, fmt.Errorf("no SQLite journal configured; pass --db")
	}
	return journal.NewSQLite(path)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	j, err := openRunsDB()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	if runsListOrg {
		org, err := journal.FormatRunsOrg(runs)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), org)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tSTRATEGY\tPAIR\tSTART\tEND\tPERIODS\tRETURN %\tMAX DD %\tSHARPE")
	for _, r := range runs {
		created := "-"
		if t, err := id.Time(r.RunID); err == nil {
			created = t.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\n",
			r.RunID, created, r.Strategy, r.Pair,
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"),
			r.Metrics.Periods, r.Metrics.TotalReturnPct, r.Metrics.MaxDrawdownPct, r.Metrics.Sharpe)
	}
	return w.Flush()
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	j, err := openRunsDB()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()
	if runsOrg {
		org, err := j.ExportRunOrg(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), org)
		return nil
	}

	run, err := j.GetRun(ctx, args[0])
	if err != nil {
		return err
	}
	rows, err := j.ListRows(ctx, run.RunID)
	if err != nil {
		return err
	}

	legs, err := run.DecodeLegs()
	if err != nil {
		return err
	}

	res := backtest.Result{Rows: rows, Metrics: run.Metrics}
	if run.LegErrors != "" {
		res.LegErrors = fmt.Errorf("%s", run.LegErrors)
	}
	backtest.PrintSummary(cmd.OutOrStdout(), backtest.Summary{
		RunID:    run.RunID,
		Strategy: run.Strategy,
		Pair:     run.Pair,
		Capital:  run.Capital,
		Seed:     run.Seed,
	}, res)

	if len(legs) > 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Legs:")
		for i, l := range legs {
			fmt.Fprintf(out, "  %d. %s\n", i+1, l)
		}
	}
	return nil
}

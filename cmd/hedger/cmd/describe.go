package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/strategy"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarise the configured strategy",
	Long: `Show the strategy's legs with any solved strikes, its risk bucket,
expected cost, maximum loss and gain, breakevens and aggregate Greeks.

Example:
  hedger describe -c zero-cost-collar.yaml`,
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	book, resolutions := configuredBook()
	md := book.Describe(strategy.MetadataOptions{
		Name:    cfg.Strategy.Name,
		Context: cfg.SolverContext(),
		Profile: cfg.ProfileOptions(),
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s, spot %.5f)\n", md.Name, cfg.Market.Pair, cfg.Market.Spot)
	fmt.Fprintln(out, "--------------------------------------------------")

	legs := cfg.Legs()
	for _, p := range book.Positions {
		fmt.Fprintf(out, "  leg %d: %s\n", p.Leg, legs[p.Leg])
	}
	for _, r := range resolutions {
		fmt.Fprintf(out, "  leg %d solved: strike %.5f (%.2f%%), converged %t\n",
			r.Leg, r.Result.Strike, r.Result.StrikePct, r.Result.Converged)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Risk:          %s\n", md.Risk)
	fmt.Fprintf(out, "Expected Cost: %.4f%% of spot\n", md.ExpectedCost)
	fmt.Fprintf(out, "Max Loss:      %.6f\n", md.MaxLoss)
	fmt.Fprintf(out, "Max Gain:      %.6f\n", md.MaxGain)

	be := make([]string, len(md.Breakevens))
	for i, b := range md.Breakevens {
		be[i] = fmt.Sprintf("%.5f", b)
	}
	if len(be) == 0 {
		be = append(be, "none")
	}
	fmt.Fprintf(out, "Breakevens:    %s\n", strings.Join(be, ", "))

	g := md.Greeks
	fmt.Fprintf(out, "Greeks:        delta %.4f  gamma %.4f  theta %.6f  vega %.4f\n",
		g.Delta, g.Gamma, g.Theta, g.Vega)

	printPolicy(out, risk.Check(cfg.Policy, book.Exposure(md.ExpectedCost)))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/pricing"
	"github.com/rustyeddy/hedger/solver"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find the strike that balances two option premiums",
	Long: `Solve for the strike of the target option whose premium equals the
premium of the opposite option. Strikes are percent of spot, volatility
is in percent. Rate and expiry come from the market config section.

Example:
  hedger solve --target call --opposite put --opposite-strike 95 --spot 100 --vol 20`,
	RunE: runSolve,
}

var (
	svTarget    string
	svOpposite  string
	svOppStrike float64
	svSpot      float64
	svVol       float64
	svLow       float64
	svHigh      float64
	svTol       float64
)

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&svTarget, "target", "call", "option to solve for (call, put)")
	solveCmd.Flags().StringVar(&svOpposite, "opposite", "put", "option whose premium is matched (call, put)")
	solveCmd.Flags().Float64Var(&svOppStrike, "opposite-strike", 95, "opposite strike, percent of spot")
	solveCmd.Flags().Float64Var(&svSpot, "spot", 0, "spot price (default: market.spot)")
	solveCmd.Flags().Float64Var(&svVol, "vol", 10, "volatility in percent")
	solveCmd.Flags().Float64Var(&svLow, "lower", solver.DefaultLowerBoundPct, "lower search bound, percent of spot")
	solveCmd.Flags().Float64Var(&svHigh, "upper", solver.DefaultUpperBoundPct, "upper search bound, percent of spot")
	solveCmd.Flags().Float64Var(&svTol, "tolerance", solver.DefaultTolerance, "premium tolerance")
}

func runSolve(cmd *cobra.Command, args []string) error {
	target, err := pricing.ParseOptionType(svTarget)
	if err != nil {
		return err
	}
	opposite, err := pricing.ParseOptionType(svOpposite)
	if err != nil {
		return err
	}
	spot := svSpot
	if spot == 0 {
		spot = cfg.Market.Spot
	}

	res, err := solver.New(cfg.SolverContext()).Solve(solver.Request{
		Target:            target,
		Opposite:          opposite,
		OppositeStrikePct: svOppStrike,
		Spot:              spot,
		VolatilityPct:     svVol,
		LowerBoundPct:     svLow,
		UpperBoundPct:     svHigh,
		Tolerance:         svTol,
	})
	if err != nil {
		return err
	}
	if !res.Converged {
		log.Warn().Float64("residual", res.Residual).Msg("no equilibrium inside search bounds")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Equilibrium %s strike vs %s @ %.2f%%\n", target, opposite, svOppStrike)
	fmt.Fprintf(out, "  Strike:      %.5f (%.4f%% of spot)\n", res.Strike, res.StrikePct)
	fmt.Fprintf(out, "  Premium:     %.6f (target %.6f)\n", res.AchievedPremium, res.TargetPremium)
	fmt.Fprintf(out, "  Residual:    %.6f\n", res.Residual)
	fmt.Fprintf(out, "  Converged:   %t\n", res.Converged)
	fmt.Fprintf(out, "  Iterations:  %d\n", res.Iterations)
	return nil
}

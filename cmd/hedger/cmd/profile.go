package cmd

import (
	"encoding/csv"
	"strconv"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the hedging or payoff profile as CSV",
	Long: `Evaluate the configured strategy over a grid of spot prices around the
market spot and write the series to stdout as CSV.

Examples:
  hedger profile -c collar.yaml
  hedger profile -c collar.yaml --payoff --premium`,
	RunE: runProfile,
}

var (
	pfPayoff  bool
	pfPremium bool
	pfPoints  int
	pfRange   float64
)

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().BoolVar(&pfPayoff, "payoff", false, "print the payoff profile instead of hedged rates")
	profileCmd.Flags().BoolVar(&pfPremium, "premium", false, "net estimated premium (overrides profile.include_premium)")
	profileCmd.Flags().IntVar(&pfPoints, "points", 0, "grid points (default: profile.points)")
	profileCmd.Flags().Float64Var(&pfRange, "range", 0, "grid half-width in percent (default: profile.range_pct)")
}

func runProfile(cmd *cobra.Command, args []string) error {
	opts := cfg.ProfileOptions()
	if pfPoints > 0 {
		opts.Points = pfPoints
	}
	if pfRange > 0 {
		opts.RangePct = pfRange
	}
	if cmd.Flags().Changed("premium") {
		opts.IncludePremium = pfPremium
	}

	book, _ := configuredBook()
	w := csv.NewWriter(cmd.OutOrStdout())

	if pfPayoff {
		if err := w.Write([]string{"price", "payoff"}); err != nil {
			return err
		}
		for _, p := range book.PayoffProfile(opts) {
			if err := w.Write([]string{f6(p.Price), f6(p.Payoff)}); err != nil {
				return err
			}
		}
	} else {
		if err := w.Write([]string{"spot", "unhedged_rate", "hedged_rate"}); err != nil {
			return err
		}
		for _, p := range book.HedgingProfile(opts) {
			if err := w.Write([]string{f6(p.Spot), f6(p.UnhedgedRate), f6(p.HedgedRate)}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func f6(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/pricing"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a vanilla option with Black-Scholes",
	Long: `Price a European call or put and show its sensitivities.

Rate and volatility are decimals (0.05 = 5%), time is in years.

Example:
  hedger price --type call --spot 100 --strike 105 --rate 0.05 --t 1 --vol 0.2`,
	RunE: runPrice,
}

var (
	prType   string
	prSpot   float64
	prStrike float64
	prRate   float64
	prTime   float64
	prVol    float64
)

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().StringVar(&prType, "type", "call", "option type (call, put)")
	priceCmd.Flags().Float64Var(&prSpot, "spot", 100, "spot price")
	priceCmd.Flags().Float64Var(&prStrike, "strike", 100, "strike price")
	priceCmd.Flags().Float64Var(&prRate, "rate", 0.05, "risk free rate")
	priceCmd.Flags().Float64Var(&prTime, "t", 1, "time to expiry in years")
	priceCmd.Flags().Float64Var(&prVol, "vol", 0.2, "volatility")
}

func runPrice(cmd *cobra.Command, args []string) error {
	typ, err := pricing.ParseOptionType(prType)
	if err != nil {
		return err
	}
	if err := pricing.Validate(prSpot, prStrike, prTime, prVol); err != nil {
		return err
	}

	price := pricing.Price(typ, prSpot, prStrike, prRate, prTime, prVol)
	g := pricing.Greeks(typ, prSpot, prStrike, prRate, prTime, prVol)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  S=%.5f K=%.5f r=%.4f T=%.4f vol=%.4f\n", typ, prSpot, prStrike, prRate, prTime, prVol)
	fmt.Fprintf(out, "  Price: %.6f (%.4f%% of spot)\n", price, price/prSpot*100)
	fmt.Fprintf(out, "  Delta: %.6f\n", g.Delta)
	fmt.Fprintf(out, "  Gamma: %.6f\n", g.Gamma)
	fmt.Fprintf(out, "  Theta: %.6f /day\n", g.Theta)
	fmt.Fprintf(out, "  Vega:  %.6f /vol pt\n", g.Vega)
	return nil
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/strategy"
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Evaluate the strategy under spot shocks",
	Long: `Shock the market spot by fixed percentages and compare the unhedged and
hedged rates at each shocked spot.

Example:
  hedger stress -c collar.yaml --shocks -15,-5,5,15`,
	RunE: runStress,
}

var (
	stShocks  []float64
	stPremium bool
)

func init() {
	rootCmd.AddCommand(stressCmd)

	stressCmd.Flags().Float64SliceVar(&stShocks, "shocks", nil, "spot moves in percent (default -20,-10,-5,0,5,10,20)")
	stressCmd.Flags().BoolVar(&stPremium, "premium", false, "net estimated premium")
}

func runStress(cmd *cobra.Command, args []string) error {
	shocks := strategy.DefaultShocks()
	if len(stShocks) > 0 {
		shocks = shocks[:0]
		for _, m := range stShocks {
			shocks = append(shocks, strategy.Shock{Name: fmt.Sprintf("%+.1f%%", m), MovePct: m})
		}
	}

	book, _ := configuredBook()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Shock\tSpot\tUnhedged\tHedged\tHedge Value\t")
	for _, r := range book.Stress(shocks, stPremium) {
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%.5f\t%+.5f\t\n", r.Name, r.Spot, r.Unhedged, r.Hedged, r.HedgeValue)
	}
	return w.Flush()
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage hedger configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  hedger config init -o collar.yaml --preset collar
  hedger config validate -f collar.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

Example:
  hedger config init -o hedge.yaml --preset zero-cost-collar`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  hedger config validate -f hedge.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configInitPreset   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "hedge.yaml", "output config file path")
	configInitCmd.Flags().StringVar(&configInitPreset, "preset", "", "expand this preset's legs into the file")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	_ = configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if configInitPreset != "" {
		c.Strategy = config.StrategyConfig{Name: configInitPreset, Preset: configInitPreset}
		if err := c.Validate(); err != nil {
			return err
		}
		c.Strategy.Legs = c.Legs()
	}
	if err := c.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  hedger backtest -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Market: %s @ %.5f (r=%.2f%%, T=%.2fy)\n",
		c.Market.Pair, c.Market.Spot, c.Market.RiskFreeRate*100, c.Market.TimeToExpiry)
	fmt.Fprintf(out, "  Strategy: %s (%d legs)\n", c.StrategyName(), len(c.Legs()))
	fmt.Fprintf(out, "  Backtest: %s to %s %s\n", c.Backtest.Start, c.Backtest.End, c.Backtest.Periodicity)
	fmt.Fprintf(out, "  Journal: %s\n", c.Journal.Type)
	return nil
}

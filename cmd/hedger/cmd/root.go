package cmd

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/config"
	"github.com/rustyeddy/hedger/pkg/logger"
	"github.com/rustyeddy/hedger/solver"
	"github.com/rustyeddy/hedger/strategy"
)

var rootCmd = &cobra.Command{
	Use:   "hedger",
	Short: "FX hedging strategy pricer and backtester",
	Long: `Hedger prices, compares and backtests FX hedging strategies.

It provides tools for:
  - Pricing vanilla options with Black-Scholes
  - Solving zero-cost strikes that balance two option legs
  - Hedging and payoff profiles for multi-leg strategies
  - Spot shock stress tests
  - Backtesting strategies along a simulated spot path
  - Journaling backtest runs to SQLite or CSV`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
	log zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command under ctx; long commands stop when
// it is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with HEDGER_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
}

// setup loads the configuration and builds the logger. Flags win over the
// environment, which wins over the config file.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	if err := cfg.LoadEnv(envFile); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}

	log = logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Debug().Str("config", cfgFile).Str("pair", cfg.Market.Pair).Msg("configuration loaded")
	return nil
}

func newResolver() *strategy.Resolver {
	r := strategy.NewResolver(solver.New(cfg.SolverContext()))
	r.Log = log
	return r
}

// configuredBook resolves and compiles the configured legs at the market
// spot. Skipped legs are logged, not fatal.
func configuredBook() (strategy.Book, []strategy.Resolution) {
	spot := cfg.Market.Spot

	resolved, res, rerr := newResolver().Resolve(cfg.Legs(), spot, spot)
	book, cerr := strategy.Compile(resolved, spot)
	if err := errors.Join(rerr, cerr); err != nil {
		log.Warn().Err(err).Msg("legs skipped")
	}
	return book, res
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/hedger/backtest"
	"github.com/rustyeddy/hedger/pkg/logger"
	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/solver"
	"github.com/rustyeddy/hedger/strategy"
)

// DateLayout is the format of backtest start and end dates.
const DateLayout = "2006-01-02"

// Environment overrides applied by LoadEnv.
const (
	EnvLogLevel  = "HEDGER_LOG_LEVEL"
	EnvLogFormat = "HEDGER_LOG_FORMAT"
	EnvJournalDB = "HEDGER_JOURNAL_DB"
)

// Config represents a complete hedging run
type Config struct {
	Market   MarketConfig   `json:"market" yaml:"market"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Profile  ProfileConfig  `json:"profile" yaml:"profile"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Policy   risk.Policy    `json:"policy" yaml:"policy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// MarketConfig is the spot and pricing environment
type MarketConfig struct {
	Pair         string  `json:"pair" yaml:"pair"`
	Spot         float64 `json:"spot" yaml:"spot"`
	RiskFreeRate float64 `json:"risk_free_rate" yaml:"risk_free_rate"` // decimal
	TimeToExpiry float64 `json:"time_to_expiry" yaml:"time_to_expiry"` // years
}

// StrategyConfig names the legs. Legs win over Preset when both are set.
type StrategyConfig struct {
	Name   string         `json:"name,omitempty" yaml:"name,omitempty"`
	Preset string         `json:"preset,omitempty" yaml:"preset,omitempty"`
	Legs   []strategy.Leg `json:"legs,omitempty" yaml:"legs,omitempty"`
}

// ProfileConfig controls the hedging and payoff profile grid
type ProfileConfig struct {
	Points         int     `json:"points" yaml:"points"`
	RangePct       float64 `json:"range_pct" yaml:"range_pct"`
	IncludePremium bool    `json:"include_premium" yaml:"include_premium"`
}

// BacktestConfig contains simulation parameters
type BacktestConfig struct {
	Start             string  `json:"start" yaml:"start"` // YYYY-MM-DD
	End               string  `json:"end" yaml:"end"`
	Periodicity       string  `json:"periodicity" yaml:"periodicity"`
	Capital           float64 `json:"capital" yaml:"capital"`
	Seed              int64   `json:"seed" yaml:"seed"`
	OptimizePerPeriod bool    `json:"optimize_per_period" yaml:"optimize_per_period"`
	IncludePremium    bool    `json:"include_premium" yaml:"include_premium"`

	// ReturnsFile replays period returns from a CSV instead of the random walk.
	ReturnsFile string `json:"returns_file,omitempty" yaml:"returns_file,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type     string `json:"type" yaml:"type"` // "csv" or "sqlite"
	RunsFile string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	RowsFile string `json:"rows_file,omitempty" yaml:"rows_file,omitempty"`
	DBPath   string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", errors.Join(err, jerr))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadEnv reads the first existing .env file among paths, then applies the
// HEDGER_* overrides from the environment. Missing files are not an error.
func (c *Config) LoadEnv(paths ...string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env %s: %w", p, err)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvJournalDB); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Market.Pair == "" {
		return fmt.Errorf("market.pair is required")
	}
	if c.Market.Spot <= 0 {
		return fmt.Errorf("market.spot must be positive")
	}
	if c.Market.TimeToExpiry <= 0 {
		return fmt.Errorf("market.time_to_expiry must be positive")
	}
	if c.Strategy.Preset != "" {
		if _, ok := strategy.LookupPreset(c.Strategy.Preset); !ok {
			return fmt.Errorf("unknown strategy preset: %s", c.Strategy.Preset)
		}
	}
	for i, l := range c.Strategy.Legs {
		if l.Kind == 0 {
			return fmt.Errorf("strategy.legs[%d].kind is required", i)
		}
		if l.Quantity == 0 {
			return fmt.Errorf("strategy.legs[%d].quantity must be non-zero", i)
		}
	}
	if c.Profile.Points < 2 {
		return fmt.Errorf("profile.points must be at least 2")
	}
	if c.Profile.RangePct <= 0 || c.Profile.RangePct >= 100 {
		return fmt.Errorf("profile.range_pct must be between 0 and 100")
	}
	if _, _, err := c.Backtest.Dates(); err != nil {
		return err
	}
	if _, err := backtest.ParsePeriodicity(c.Backtest.Periodicity); err != nil {
		return fmt.Errorf("backtest.periodicity: %w", err)
	}
	if c.Backtest.Capital <= 0 {
		return fmt.Errorf("backtest.capital must be positive")
	}
	p := c.Policy
	if p.MaxHedgeRatioPct < 0 || p.MaxNetShortPct < 0 || p.MaxCostPct < 0 || p.MaxDrawdownPct < 0 {
		return fmt.Errorf("policy limits must not be negative")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.RunsFile == "" || c.Journal.RowsFile == "") {
		return fmt.Errorf("journal runs_file and rows_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !logger.ValidFormat(c.Log.Format) {
		return fmt.Errorf("log.format must be 'json' or 'console'")
	}
	return nil
}

// Dates parses the backtest window.
func (b BacktestConfig) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, b.Start)
	if err != nil {
		return start, end, fmt.Errorf("backtest.start: %w", err)
	}
	end, err = time.Parse(DateLayout, b.End)
	if err != nil {
		return start, end, fmt.Errorf("backtest.end: %w", err)
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("backtest.end is before backtest.start")
	}
	return start, end, nil
}

// Legs returns the configured legs, falling back to the preset's.
func (c *Config) Legs() []strategy.Leg {
	if len(c.Strategy.Legs) > 0 || c.Strategy.Preset == "" {
		return c.Strategy.Legs
	}
	p, _ := strategy.LookupPreset(c.Strategy.Preset)
	return p.Legs
}

// StrategyName is the configured name or the preset name.
func (c *Config) StrategyName() string {
	if c.Strategy.Name != "" {
		return c.Strategy.Name
	}
	return c.Strategy.Preset
}

// SolverContext is the pricing environment for solving and metadata.
func (c *Config) SolverContext() solver.Context {
	return solver.Context{RiskFreeRate: c.Market.RiskFreeRate, TimeToExpiry: c.Market.TimeToExpiry}
}

// ProfileOptions converts the profile section.
func (c *Config) ProfileOptions() strategy.ProfileOptions {
	return strategy.ProfileOptions{
		Points:         c.Profile.Points,
		RangePct:       c.Profile.RangePct,
		IncludePremium: c.Profile.IncludePremium,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	ctx := solver.DefaultContext()
	return &Config{
		Market: MarketConfig{
			Pair:         "EUR_USD",
			Spot:         1.0850,
			RiskFreeRate: ctx.RiskFreeRate,
			TimeToExpiry: ctx.TimeToExpiry,
		},
		Strategy: StrategyConfig{
			Preset: "collar",
		},
		Profile: ProfileConfig{
			Points:   strategy.DefaultProfilePoints,
			RangePct: strategy.DefaultProfileRangePct,
		},
		Backtest: BacktestConfig{
			Start:       "2024-01-01",
			End:         "2024-12-31",
			Periodicity: string(backtest.Daily),
			Capital:     1_000_000,
			Seed:        42,
		},
		Policy: risk.DefaultPolicy(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./hedger.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: logger.FormatConsole,
		},
	}
}

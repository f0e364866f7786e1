package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/hedger/strategy"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "collar", cfg.StrategyName())
	assert.Len(t, cfg.Legs(), 2)
	assert.Equal(t, 0.05, cfg.SolverContext().RiskFreeRate)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"hedge.yaml", "hedge.json"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.Strategy = StrategyConfig{
				Name:   "Client collar",
				Preset: "collar",
				Legs: []strategy.Leg{
					{Kind: strategy.KindPut, Strike: 1.05, StrikeBasis: strategy.Absolute, Volatility: 8, Quantity: 100},
					{Kind: strategy.KindCall, Volatility: 8, Quantity: -100,
						DynamicStrike: &strategy.DynamicStrike{Method: strategy.MethodEquilibrium}},
				},
			}

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, cfg.SaveToFile(path))

			got, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
			assert.Equal(t, "Client collar", got.StrategyName())
			assert.Equal(t, strategy.Absolute, got.Legs()[0].StrikeBasis)
		})
	}
}

func TestLoadYAMLKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hedge.yaml")
	doc := `
market:
  pair: GBP_USD
  spot: 1.27
  risk_free_rate: 0.04
  time_to_expiry: 0.5
strategy:
  preset: seagull
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GBP_USD", cfg.Market.Pair)
	assert.Equal(t, 0.5, cfg.SolverContext().TimeToExpiry)
	assert.Equal(t, strategy.DefaultProfilePoints, cfg.Profile.Points)
	assert.Equal(t, "2024-01-01", cfg.Backtest.Start)
	assert.Len(t, cfg.Legs(), 3)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("market: [unclosed"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "parse config")

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("market:\n  spot: -1\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "market.spot must be positive")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"pair", func(c *Config) { c.Market.Pair = "" }, "market.pair is required"},
		{"expiry", func(c *Config) { c.Market.TimeToExpiry = 0 }, "market.time_to_expiry"},
		{"preset", func(c *Config) { c.Strategy.Preset = "nope" }, "unknown strategy preset"},
		{"leg quantity", func(c *Config) {
			c.Strategy.Legs = []strategy.Leg{{Kind: strategy.KindPut, Strike: 95}}
		}, "strategy.legs[0].quantity"},
		{"leg kind", func(c *Config) {
			c.Strategy.Legs = []strategy.Leg{{Strike: 95, Quantity: 100}}
		}, "strategy.legs[0].kind"},
		{"points", func(c *Config) { c.Profile.Points = 1 }, "profile.points"},
		{"range", func(c *Config) { c.Profile.RangePct = 100 }, "profile.range_pct"},
		{"start", func(c *Config) { c.Backtest.Start = "01/01/2024" }, "backtest.start"},
		{"window", func(c *Config) { c.Backtest.End = "2023-01-01" }, "before backtest.start"},
		{"periodicity", func(c *Config) { c.Backtest.Periodicity = "hourly" }, "backtest.periodicity"},
		{"capital", func(c *Config) { c.Backtest.Capital = 0 }, "backtest.capital"},
		{"policy", func(c *Config) { c.Policy.MaxCostPct = -1 }, "policy limits"},
		{"journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"csv files", func(c *Config) { c.Journal = JournalConfig{Type: "csv", RunsFile: "runs.csv"} }, "rows_file"},
		{"sqlite path", func(c *Config) { c.Journal.DBPath = "" }, "db_path"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

// LoadEnv touches process environment, so these tests do not run in parallel.
func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("HEDGER_LOG_FORMAT=json\n"), 0644))

	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "")
	require.NoError(t, os.Unsetenv(EnvLogFormat))
	t.Setenv(EnvJournalDB, filepath.Join(dir, "runs.db"))

	cfg := Default()
	cfg.Journal = JournalConfig{Type: "csv", RunsFile: "r.csv", RowsFile: "w.csv"}
	require.NoError(t, cfg.LoadEnv(filepath.Join(dir, "missing.env"), envPath))

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, filepath.Join(dir, "runs.db"), cfg.Journal.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvNoFiles(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(EnvJournalDB, "")

	cfg := Default()
	require.NoError(t, cfg.LoadEnv(filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, Default(), cfg)
}

// Package logger builds the zerolog logger shared by the hedger commands.
// Every logger in the module is created here.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Formats accepted by Options.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options selects level and output format. Out defaults to stderr so that
// command output on stdout stays clean.
type Options struct {
	Level  string
	Format string
	Out    io.Writer
}

// New creates a logger from opts. Unknown levels fall back to info.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = out
	switch strings.ToLower(opts.Format) {
	case FormatConsole, "pretty":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "hedger").
		Logger()
}

// ParseLevel converts a level name to a zerolog.Level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off", "none":
		return zerolog.Disabled, nil
	}
	return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	switch strings.ToLower(f) {
	case "", FormatJSON, FormatConsole, "pretty":
		return true
	}
	return false
}

// WithRun tags a logger with a backtest run id.
func WithRun(log zerolog.Logger, runID string) zerolog.Logger {
	return log.With().Str("run_id", runID).Logger()
}

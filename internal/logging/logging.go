// Package logging builds the diagnostic logger with charmbracelet/log.
//
// The board owns the terminal while it runs, so log output goes to a file
// when one is configured and is discarded otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/antopolskiy/taskboard/internal/config"
)

const (
	fileMode = 0o600
	dirMode  = 0o750

	// Prefix is prepended to every log line.
	Prefix = "taskboard"
)

// Options holds logger settings.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// OptionsFromConfig converts the log section of the config to Options.
func OptionsFromConfig(cfg config.LogConfig) Options {
	return Options{
		Level:           ParseLevel(cfg.Level),
		Formatter:       ParseFormatter(cfg.Format),
		ReportTimestamp: true,
		Prefix:          Prefix,
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Open creates a logger from config. When cfg.File is set the file is
// opened for appending and returned as the closer; otherwise the logger
// discards everything and the closer is a no-op.
func Open(cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	opts := OptionsFromConfig(cfg)
	if cfg.File == "" {
		return New(io.Discard, opts), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), dirMode); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode) //nolint:gosec // path from config
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, opts), f, nil
}

// Discard returns a logger that drops all output.
func Discard() *log.Logger {
	return New(io.Discard, Options{Level: log.FatalLevel})
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

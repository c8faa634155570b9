// Package cmd implements the taskboard CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/logging"
	"github.com/antopolskiy/taskboard/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagConfig   string
	flagNoColor  bool
	flagLogFile  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "A to-do board for the terminal",
	Long: `taskboard is an interactive to-do board. Add, edit, view and delete
task cards with a name, date, time, priority and description.

Running taskboard with no subcommand opens the board. Tasks live in memory
for the session; use --print to dump them when the board closes.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write diagnostic logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	addTUIFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, print nothing.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	os.Exit(reportError(os.Stdout, os.Stderr, err))
}

// reportError prints err as JSON on stdout when JSON output is active,
// or as text on stderr otherwise, and returns the exit code.
func reportError(stdout, stderr io.Writer, err error) int {
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(output.EnvOutput) == "json"
	}

	var cliErr *clierr.Error
	isCLI := errors.As(err, &cliErr)

	if jsonMode {
		if isCLI {
			output.JSONError(stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			return cliErr.ExitCode()
		}
		// Unknown errors are reported as INTERNAL_ERROR.
		output.JSONError(stdout, clierr.InternalError, err.Error(), nil)
		return 2 //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(stderr, "Error:", err)
	if isCLI {
		return cliErr.ExitCode()
	}
	return 1
}

// loadConfig resolves and loads the config, falling back to defaults
// when no config file exists.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(flagConfig, cwd)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return nil, clierr.New(clierr.InvalidConfig, err.Error())
		}
		return nil, err
	}
	return cfg, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// openLogger builds the diagnostic logger from config, with --log-file and
// --log-level taking precedence.
func openLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	lc := cfg.Log
	if flagLogFile != "" {
		lc.File = flagLogFile
	}
	if flagLogLevel != "" {
		if config.IndexOf(config.LogLevels, flagLogLevel) < 0 {
			return nil, nil, clierr.Newf(clierr.InvalidInput, "invalid log level %q", flagLogLevel).
				WithDetails(map[string]any{"allowed": config.LogLevels})
		}
		lc.Level = flagLogLevel
	}
	return logging.Open(lc)
}

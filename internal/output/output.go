// Package output handles formatting task lists as table, compact text or JSON.
package output

import (
	"os"

	"golang.org/x/term"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto detects based on TTY.
	FormatAuto Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a human-readable table.
	FormatTable
	// FormatCompact outputs one line per task.
	FormatCompact
)

// EnvOutput names the environment variable that forces a format.
const EnvOutput = "TASKBOARD_OUTPUT"

// isTerminalFn checks whether stdout is a terminal. Replaceable in tests.
var isTerminalFn = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Detect returns the appropriate format based on flags, environment, and TTY.
// When no explicit format is set: TTY → table, piped → JSON.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case tableFlag:
		return FormatTable
	case compactFlag:
		return FormatCompact
	}

	if f, ok := Parse(os.Getenv(EnvOutput)); ok {
		return f
	}

	// Auto-detect: TTY gets table, piped gets JSON.
	if isTerminalFn() {
		return FormatTable
	}
	return FormatJSON
}

// Parse maps a format name to a Format. ok is false for unknown names.
func Parse(name string) (Format, bool) {
	switch name {
	case "json":
		return FormatJSON, true
	case "table":
		return FormatTable, true
	case "compact", "oneline":
		return FormatCompact, true
	}
	return FormatAuto, false
}

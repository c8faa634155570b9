// Package clierr defines structured errors for taskboard commands.
package clierr

import "fmt"

// Error codes. They are stable identifiers for JSON error output.
const (
	TaskNotFound    = "TASK_NOT_FOUND"
	InvalidInput    = "INVALID_INPUT"
	InvalidPriority = "INVALID_PRIORITY"
	InvalidDate     = "INVALID_DATE"
	InvalidTime     = "INVALID_TIME"
	ConfigNotFound  = "CONFIG_NOT_FOUND"
	InvalidConfig   = "INVALID_CONFIG"
	ConfigExists    = "CONFIG_EXISTS"
	InternalError   = "INTERNAL_ERROR"
)

// Error is a user-facing error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// New creates an Error with the given code and message.
func New(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetails attaches structured details and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode maps the error code to a process exit code.
// Internal errors exit with 2, everything else with 1.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// SilentError carries an exit code for failures that were already reported.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

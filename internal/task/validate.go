package task

import (
	"strings"

	"github.com/antopolskiy/taskboard/internal/clierr"
)

// Field names a form field that can fail validation.
type Field string

// Validated fields. Description is optional and never fails.
const (
	FieldName     Field = "name"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldPriority Field = "priority"
)

// Failure reasons.
const (
	ReasonRequired  = "required"
	ReasonMalformed = "malformed"
)

// FieldError describes one failing form field.
type FieldError struct {
	Field  Field
	Reason string
}

// ValidateDraft checks that name, date, time and priority are present and
// that date and time are well formed. It returns one FieldError per failing
// field, in form order; nil means the draft can be saved.
func ValidateDraft(d Draft) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, FieldError{FieldName, ReasonRequired})
	}

	switch {
	case strings.TrimSpace(d.Date) == "":
		errs = append(errs, FieldError{FieldDate, ReasonRequired})
	default:
		if _, err := ParseDate(d.Date); err != nil {
			errs = append(errs, FieldError{FieldDate, ReasonMalformed})
		}
	}

	switch {
	case strings.TrimSpace(d.Time) == "":
		errs = append(errs, FieldError{FieldTime, ReasonRequired})
	default:
		if _, err := NormalizeTime(d.Time); err != nil {
			errs = append(errs, FieldError{FieldTime, ReasonMalformed})
		}
	}

	if strings.TrimSpace(d.Priority) == "" {
		errs = append(errs, FieldError{FieldPriority, ReasonRequired})
	}

	return errs
}

// DraftError wraps field failures as a CLI error.
func DraftError(errs []FieldError) *clierr.Error {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = string(e.Field) + " " + e.Reason
	}
	return clierr.Newf(clierr.InvalidInput, "task form incomplete: %s", strings.Join(fields, ", ")).
		WithDetails(map[string]any{"fields": fields})
}

// ValidatePriority checks that a priority is in the allowed list.
func ValidatePriority(priority string, allowed []string) error {
	for _, p := range allowed {
		if p == priority {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", priority).
		WithDetails(map[string]any{
			"priority": priority,
			"allowed":  allowed,
		})
}

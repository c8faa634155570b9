package task

import (
	"strconv"
	"strings"
	"time"

	"github.com/antopolskiy/taskboard/internal/clierr"
)

const (
	// DateLayout is the accepted format for task dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical 24-hour format for task times.
	TimeLayout = "15:04"
)

// FormatTime12Hour converts a 24-hour "HH:MM" string to "H:MM AM|PM".
// Blank input yields blank output. Minutes pass through unchanged, and
// input without a numeric hour is returned as-is.
func FormatTime12Hour(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	hourStr, minute, ok := strings.Cut(raw, ":")
	if !ok {
		return raw
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 {
		return raw
	}

	suffix := "AM"
	if hour >= 12 { //nolint:mnd // noon
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return strconv.Itoa(hour) + ":" + minute + " " + suffix
}

// NormalizeTime parses a 24-hour "H:MM" or "HH:MM" string and returns it
// zero-padded.
func NormalizeTime(raw string) (string, error) {
	parsed, err := time.Parse(TimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", clierr.Newf(clierr.InvalidTime, "invalid time %q (want HH:MM)", raw).
			WithDetails(map[string]any{"input": raw})
	}
	return parsed.Format(TimeLayout), nil
}

// ParseDate checks that raw is a YYYY-MM-DD calendar date.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, clierr.Newf(clierr.InvalidDate, "invalid date %q (want YYYY-MM-DD)", raw).
			WithDetails(map[string]any{"input": raw})
	}
	return d, nil
}

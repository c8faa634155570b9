// Package task defines the task record shown as a card on the board.
package task

import (
	"strings"
	"time"
)

// Task is a single to-do item. The card on screen is rendered from it.
type Task struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"` // 24-hour HH:MM
	Priority    string    `json:"priority"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// Draft holds raw form values as the user typed them.
type Draft struct {
	Name        string
	Date        string
	Time        string
	Priority    string
	Description string
}

// FromDraft builds a new task from a validated draft.
func FromDraft(id int, d Draft, now time.Time) *Task {
	t := &Task{ID: id, Created: now}
	t.Apply(d, now)
	return t
}

// Apply overwrites the task's fields with the draft values, keeping its ID.
func (t *Task) Apply(d Draft, now time.Time) {
	t.Name = strings.TrimSpace(d.Name)
	t.Date = strings.TrimSpace(d.Date)
	t.Time = strings.TrimSpace(d.Time)
	if norm, err := NormalizeTime(t.Time); err == nil {
		t.Time = norm
	}
	t.Priority = d.Priority
	t.Description = strings.TrimSpace(d.Description)
	t.Updated = now
}

// Draft returns the task's values in form shape, for editing.
func (t *Task) Draft() Draft {
	return Draft{
		Name:        t.Name,
		Date:        t.Date,
		Time:        t.Time,
		Priority:    t.Priority,
		Description: t.Description,
	}
}

// HasDescription reports whether the card shows a description line.
func (t *Task) HasDescription() bool {
	return strings.TrimSpace(t.Description) != ""
}

// When returns the combined date and 12-hour time display string,
// e.g. "2025-06-15 1:30 PM". It is empty when the task has no date.
func (t *Task) When() string {
	if t.Date == "" {
		return ""
	}
	return strings.TrimSpace(t.Date + " " + FormatTime12Hour(t.Time))
}

// PriorityClass derives the visual category for a priority label.
// "High" and "high" share a class; spaces become dashes.
func PriorityClass(priority string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(priority)), " ", "-")
}

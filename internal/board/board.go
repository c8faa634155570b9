// Package board holds the ordered, in-memory list of tasks and the
// operations that change it.
package board

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/task"
)

// Board is the ordered task list. New tasks are appended; edits keep
// position and ID. It is not safe for concurrent use; the TUI drives it
// from a single goroutine.
type Board struct {
	tasks  []*task.Task
	nextID int
	now    func() time.Time
	log    *log.Logger
}

// New creates an empty board that reports mutations to logger.
func New(logger *log.Logger) *Board {
	return &Board{nextID: 1, now: time.Now, log: logger}
}

// SetNow overrides the clock used for Created/Updated (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
}

// Tasks returns the tasks in display order. The slice is a copy; the
// tasks are shared.
func (b *Board) Tasks() []*task.Task {
	out := make([]*task.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Len returns the number of tasks.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Empty reports whether the board has no tasks.
func (b *Board) Empty() bool {
	return len(b.tasks) == 0
}

// Index returns the display position of the task with id, or -1.
func (b *Board) Index(id int) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with id.
func (b *Board) Get(id int) (*task.Task, error) {
	if i := b.Index(id); i >= 0 {
		return b.tasks[i], nil
	}
	return nil, notFound(id)
}

// At returns the task at display position i, or nil when out of range.
func (b *Board) At(i int) *task.Task {
	if i < 0 || i >= len(b.tasks) {
		return nil
	}
	return b.tasks[i]
}

// Save validates the draft and applies it according to mode. On
// validation failure nothing changes and the error lists the fields.
func (b *Board) Save(mode Mode, d task.Draft) (*task.Task, error) {
	if errs := task.ValidateDraft(d); len(errs) > 0 {
		return nil, task.DraftError(errs)
	}

	now := b.now()
	if id, ok := mode.TaskID(); ok {
		t, err := b.Get(id)
		if err != nil {
			return nil, err
		}
		t.Apply(d, now)
		b.logMutation("task updated", t)
		return t, nil
	}

	t := task.FromDraft(b.nextID, d, now)
	b.nextID++
	b.tasks = append(b.tasks, t)
	b.logMutation("task created", t)
	return t, nil
}

// Delete removes the task with id immediately.
func (b *Board) Delete(id int) error {
	i := b.Index(id)
	if i < 0 {
		return notFound(id)
	}
	t := b.tasks[i]
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	b.logMutation("task deleted", t)
	return nil
}

func (b *Board) logMutation(msg string, t *task.Task) {
	if b.log == nil {
		return
	}
	b.log.Info(msg, "id", t.ID, "name", t.Name, "priority", t.Priority, "total", len(b.tasks))
}

func notFound(id int) error {
	return clierr.Newf(clierr.TaskNotFound, "task #%d not found", id).
		WithDetails(map[string]any{"id": id})
}

// PriorityCount is the number of tasks carrying one priority label.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// CountByPriority counts tasks per priority. Labels in order come first,
// in that order and only when present; other labels follow alphabetically.
func CountByPriority(tasks []*task.Task, order []string) []PriorityCount {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Priority]++
	}

	out := make([]PriorityCount, 0, len(counts))
	for _, p := range order {
		if n, ok := counts[p]; ok {
			out = append(out, PriorityCount{Priority: p, Count: n})
			delete(counts, p)
		}
	}

	rest := make([]string, 0, len(counts))
	for p := range counts {
		rest = append(rest, p)
	}
	sort.Strings(rest)
	for _, p := range rest {
		out = append(out, PriorityCount{Priority: p, Count: counts[p]})
	}
	return out
}

package board

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/task"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestBoard(t *testing.T) (*Board, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel, Formatter: log.LogfmtFormatter})
	b := New(logger)
	b.SetNow(func() time.Time { return testNow })
	return b, &buf
}

func draft(name, priority string) task.Draft {
	return task.Draft{Name: name, Date: "2025-06-20", Time: "13:30", Priority: priority}
}

func mustAdd(t *testing.T, b *Board, d task.Draft) *task.Task {
	t.Helper()
	tk, err := b.Save(Adding(), d)
	require.NoError(t, err)
	return tk
}

func TestNewBoardIsEmpty(t *testing.T) {
	b, _ := newTestBoard(t)
	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Tasks())
}

func TestSaveAddingAppends(t *testing.T) {
	b, logs := newTestBoard(t)

	first := mustAdd(t, b, draft("First", "Normal"))
	second := mustAdd(t, b, draft("Second", "High"))

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, "First", b.At(0).Name)
	assert.Equal(t, "Second", b.At(1).Name)
	assert.False(t, b.Empty())
	assert.Equal(t, testNow, second.Created)
	assert.Contains(t, logs.String(), "task created")
}

func TestSaveInvalidChangesNothing(t *testing.T) {
	b, _ := newTestBoard(t)
	mustAdd(t, b, draft("Keep", "Normal"))

	_, err := b.Save(Adding(), task.Draft{Name: "  "})
	require.Error(t, err)

	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.InvalidInput, cliErr.Code)
	assert.Equal(t, 1, b.Len())
}

func TestSaveEditingOverwritesInPlace(t *testing.T) {
	b, logs := newTestBoard(t)
	mustAdd(t, b, draft("A", "Normal"))
	target := mustAdd(t, b, task.Draft{
		Name: "B", Date: "2025-06-20", Time: "09:00", Priority: "Low", Description: "old",
	})
	mustAdd(t, b, draft("C", "Normal"))

	later := testNow.Add(time.Hour)
	b.SetNow(func() time.Time { return later })

	updated, err := b.Save(Editing(target.ID), task.Draft{
		Name: "B2", Date: "2025-07-01", Time: "18:15", Priority: "High",
	})
	require.NoError(t, err)

	assert.Same(t, target, updated)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 1, b.Index(target.ID))
	assert.Equal(t, "B2", updated.Name)
	assert.Equal(t, "2025-07-01 6:15 PM", updated.When())
	assert.Equal(t, "High", updated.Priority)
	assert.False(t, updated.HasDescription(), "cleared description is gone")
	assert.Equal(t, testNow, updated.Created)
	assert.Equal(t, later, updated.Updated)
	assert.Contains(t, logs.String(), "task updated")
}

func TestSaveEditingUnknownID(t *testing.T) {
	b, _ := newTestBoard(t)
	_, err := b.Save(Editing(42), draft("x", "Normal"))

	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.TaskNotFound, cliErr.Code)
	assert.Equal(t, 0, b.Len())
}

func TestDelete(t *testing.T) {
	b, logs := newTestBoard(t)
	a := mustAdd(t, b, draft("A", "Normal"))
	c := mustAdd(t, b, draft("C", "Normal"))

	require.NoError(t, b.Delete(a.ID))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, c, b.At(0))
	assert.Contains(t, logs.String(), "task deleted")

	require.NoError(t, b.Delete(c.ID))
	assert.True(t, b.Empty())

	// IDs are not reused after deletion.
	again := mustAdd(t, b, draft("again", "Normal"))
	assert.Equal(t, 3, again.ID)
}

func TestDeleteUnknownID(t *testing.T) {
	b, _ := newTestBoard(t)
	err := b.Delete(9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#9")
}

func TestGetAndAt(t *testing.T) {
	b, _ := newTestBoard(t)
	tk := mustAdd(t, b, draft("A", "Normal"))

	got, err := b.Get(tk.ID)
	require.NoError(t, err)
	assert.Same(t, tk, got)

	_, err = b.Get(99)
	assert.Error(t, err)
	assert.Nil(t, b.At(-1))
	assert.Nil(t, b.At(1))
}

func TestTasksReturnsCopy(t *testing.T) {
	b, _ := newTestBoard(t)
	mustAdd(t, b, draft("A", "Normal"))

	list := b.Tasks()
	list[0] = nil
	assert.NotNil(t, b.At(0))
}

func TestNilLoggerIsAllowed(t *testing.T) {
	b := New(nil)
	_, err := b.Save(Adding(), draft("A", "Normal"))
	require.NoError(t, err)
	require.NoError(t, b.Delete(1))
}

func TestCountByPriority(t *testing.T) {
	tasks := []*task.Task{
		{Priority: "High"}, {Priority: "Normal"}, {Priority: "High"},
		{Priority: "Urgent"}, {Priority: "Blocker"},
	}
	got := CountByPriority(tasks, []string{"Normal", "High", "Low"})

	assert.Equal(t, []PriorityCount{
		{"Normal", 1}, {"High", 2}, {"Blocker", 1}, {"Urgent", 1},
	}, got)
}

func TestCountByPriorityEmpty(t *testing.T) {
	assert.Empty(t, CountByPriority(nil, []string{"Normal"}))
}

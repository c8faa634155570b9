package output

import (
	"io"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/task"
)

// Tasks writes tasks in the given format. FormatAuto resolves like Detect
// with no flags set.
func Tasks(w io.Writer, f Format, tasks []*task.Task, priorityOrder []string) error {
	if f == FormatAuto {
		f = Detect(false, false, false)
	}
	switch f {
	case FormatJSON:
		if tasks == nil {
			tasks = []*task.Task{}
		}
		return JSON(w, tasks)
	case FormatCompact:
		TaskCompact(w, tasks)
	default:
		TaskTable(w, tasks)
		PrioritySummary(w, board.CountByPriority(tasks, priorityOrder))
	}
	return nil
}

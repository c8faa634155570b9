package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, nameW, whenW, prioW := 4, 6, 6, 10
	for _, t := range tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		nameW = max(nameW, min(lipgloss.Width(t.Name)+pad, 40)) //nolint:mnd // max name column width
		whenW = max(whenW, lipgloss.Width(t.When())+pad)
		prioW = max(prioW, lipgloss.Width(t.Priority)+pad)
	}

	header := padCell("ID", idW) + " " + padCell("NAME", nameW) + " " +
		padCell("WHEN", whenW) + " " + padCell("PRIORITY", prioW) + " DESCRIPTION"
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		name := truncate(t.Name, nameW-pad)
		desc := dimStyle.Render("--")
		if t.HasDescription() {
			desc = truncate(firstLine(t.Description), 50) //nolint:mnd // description preview width
		}
		fmt.Fprintln(w, padCell(strconv.Itoa(t.ID), idW), padCell(name, nameW),
			padCell(t.When(), whenW), padCell(t.Priority, prioW), desc)
	}
}

// padCell right-pads s with spaces to width terminal cells.
func padCell(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

// PrioritySummary renders task counts per priority below a table.
func PrioritySummary(w io.Writer, counts []board.PriorityCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(w)
	const labelW = 16
	fmt.Fprintln(w, headerStyle.Render(padCell("PRIORITY", labelW)+fmt.Sprintf(" %6s", "COUNT")))
	for _, pc := range counts {
		fmt.Fprintf(w, "%s %6d\n", padCell(pc.Priority, labelW), pc.Count)
	}
}

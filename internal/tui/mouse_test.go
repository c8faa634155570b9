package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/taskboard/internal/tui"
)

// locate returns the screen cell where the nth occurrence (0-based) of
// text starts in the rendered view.
func locate(t *testing.T, view, text string, nth int) (x, y int) {
	t.Helper()
	seen := 0
	for row, line := range strings.Split(view, "\n") {
		rest, offset := line, 0
		for {
			i := strings.Index(rest, text)
			if i < 0 {
				break
			}
			if seen == nth {
				return lipgloss.Width(line[:offset+i]), row
			}
			seen++
			offset += i + len(text)
			rest = line[offset:]
		}
	}
	t.Fatalf("%q (occurrence %d) not found in view:\n%s", text, nth, view)
	return 0, 0
}

// click renders the board, then sends a left click on the nth
// occurrence of text, offset by dx columns.
func click(t *testing.T, b *tui.Board, text string, nth, dx int) *tui.Board {
	t.Helper()
	x, y := locate(t, b.View(), text, nth)
	return clickAt(b, x+dx, y)
}

func clickAt(b *tui.Board, x, y int) *tui.Board {
	b.View()
	m, _ := b.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	return m.(*tui.Board)
}

func TestMouse_AddButtonOpensForm(t *testing.T) {
	b, _ := setupTestBoard(t)

	b = click(t, b, "[ + Add Task ]", 0, 3)
	if !strings.Contains(b.View(), "Add Task") || !strings.Contains(b.View(), "[ Save ]") {
		t.Error("expected add form after clicking the add button")
	}
}

func TestMouse_BackdropClickKeepsFormOpen(t *testing.T) {
	b, store := setupTestBoard(t)

	b = sendKey(b, "a")
	b = typeText(b, "Draft")
	b = clickAt(b, 0, 0)
	b = clickAt(b, 99, 39)

	v := b.View()
	if !strings.Contains(v, "[ Save ]") {
		t.Fatal("backdrop click closed the form")
	}
	if !strings.Contains(v, "Draft") {
		t.Error("backdrop click discarded form input")
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3", store.Len())
	}
}

func TestMouse_CancelDiscards(t *testing.T) {
	b, store := setupTestBoard(t)

	b = click(t, b, "[ Edit ]", 1, 2)
	if !strings.Contains(b.View(), "Edit Task #2") {
		t.Fatal("expected edit form for #2")
	}
	b = typeText(b, " changed")
	b = click(t, b, "[ Cancel ]", 0, 2)

	if strings.Contains(b.View(), "Edit Task") {
		t.Error("cancel did not close the form")
	}
	got, _ := store.Get(2)
	if got.Name != "Call mom" {
		t.Errorf("Name = %q, want unchanged", got.Name)
	}
}

func TestMouse_SaveButton(t *testing.T) {
	b, store := setupTestBoard(t)

	b = click(t, b, "[ + Add Task ]", 0, 0)
	b = click(t, b, "[ Save ]", 0, 1)
	if store.Len() != 3 {
		t.Fatal("saved an incomplete form")
	}
	if !strings.Contains(b.View(), "✗ required") {
		t.Error("expected invalid markers after clicking save")
	}

	b = fillForm(b, "Pay rent", "2025-07-01", "10:00")
	b = click(t, b, "[ Save ]", 0, 1)
	if store.Len() != 4 {
		t.Errorf("Len() = %d, want 4", store.Len())
	}
}

func TestMouse_ClickFieldFocusesIt(t *testing.T) {
	b, _ := setupTestBoard(t)

	b = sendKey(b, "a")
	b = click(t, b, "Time:", 0, 0)
	b = typeText(b, "07:30")

	if !strings.Contains(b.View(), "(7:30 AM)") {
		t.Error("expected typed text in the time field")
	}
}

func TestMouse_CardOpensViewModal(t *testing.T) {
	b, _ := setupTestBoard(t)

	b = click(t, b, "Call mom", 0, 0)
	v := b.View()
	if !strings.Contains(v, "[ Close ]") || !strings.Contains(v, "2025-06-16 9:05 AM") {
		t.Fatalf("expected view modal for Call mom, got:\n%s", v)
	}

	b = click(t, b, "[ Close ]", 0, 4)
	if strings.Contains(b.View(), "[ Close ]") {
		t.Error("close button did not close the view modal")
	}
}

func TestMouse_ActionStripDoesNotOpenView(t *testing.T) {
	b, _ := setupTestBoard(t)

	// The gap between [ Edit ] and [ Delete ].
	b = click(t, b, "[ Edit ]", 0, len("[ Edit ]"))
	if strings.Contains(b.View(), "[ Close ]") {
		t.Error("click in the action strip opened the view modal")
	}
}

func TestMouse_DeleteButton(t *testing.T) {
	b, store := setupTestBoard(t)

	b = click(t, b, "[ Delete ]", 1, 2)

	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	if store.Index(2) != -1 {
		t.Error("expected task #2 to be deleted")
	}
	if strings.Contains(b.View(), "Call mom") {
		t.Error("deleted card still rendered")
	}
}

func TestMouse_StaleZonesIgnored(t *testing.T) {
	b, store := setupTestBoard(t)

	x, y := locate(t, b.View(), "[ Delete ]", 0)
	b = sendKey(b, "?") // help screen, list zones are stale
	b.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	if store.Len() != 3 {
		t.Error("click on a stale zone deleted a task")
	}
}

func TestMouse_WheelMovesCursor(t *testing.T) {
	b, _ := setupTestBoard(t)

	m, _ := b.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	b = m.(*tui.Board)
	b = sendKey(b, "e")
	if !strings.Contains(b.View(), "Edit Task #2") {
		t.Error("wheel down should select the next card")
	}
	b = sendSpecialKey(b, tea.KeyEscape)

	m, _ = b.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	b = m.(*tui.Board)
	b = sendKey(b, "e")
	if !strings.Contains(b.View(), "Edit Task #1") {
		t.Error("wheel up should select the previous card")
	}
}

func TestMouse_ReleaseIgnored(t *testing.T) {
	b, _ := setupTestBoard(t)

	x, y := locate(t, b.View(), "[ + Add Task ]", 0)
	m, _ := b.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	b = m.(*tui.Board)
	if strings.Contains(b.View(), "[ Save ]") {
		t.Error("mouse release should not trigger buttons")
	}
}

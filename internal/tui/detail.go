package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const detailWidth = 48

func (b *Board) viewDetail() string {
	t, err := b.store.Get(b.detailID)
	if err != nil {
		return "No task selected."
	}

	lines := []string{
		titleStyle.Render(t.Name),
		strings.Repeat("─", min(max(lipgloss.Width(t.Name), 1), detailWidth)),
		"",
		detailLabelStyle.Render("When:") + t.When(),
		detailLabelStyle.Render("Priority:") + priorityStyle(b.cfg, t.Priority).Render(t.Priority),
		"",
	}

	if t.HasDescription() {
		wrapped := lipgloss.NewStyle().Width(detailWidth).Render(t.Description)
		lines = append(lines, strings.Split(wrapped, "\n")...)
	} else {
		lines = append(lines, dimStyle.Render(b.cfg.NoDescription()))
	}

	lines = append(lines, "")
	closeRow := len(lines)
	lines = append(lines, buttonStyle.Render(closeButton))

	hint := "c/enter:close"
	if !b.cfg.TUI.ViewIgnoresEscape {
		hint += "  esc:close"
	}
	lines = append(lines, "", dimStyle.Render(hint))

	out, cx, cy := b.placeDialog(dialogStyle.Render(strings.Join(lines, "\n")), 0)
	b.addZone(actionClose, 0, cx, cy+closeRow, cx+lipgloss.Width(closeButton), cy+closeRow+1)
	return out
}

func (b *Board) viewHelp() string {
	help := []struct{ key, desc string }{
		{"a/n", "Add a task"},
		{"e", "Edit selected task"},
		{"d/x", "Delete selected task"},
		{"enter/v", "View selected task"},
		{"j/↓", "Move cursor down"},
		{"k/↑", "Move cursor up"},
		{"g/G", "Jump to first/last task"},
		{"tab", "Next form field"},
		{"ctrl+s", "Save form"},
		{"?", "Show this help"},
		{"esc/q", "Quit"},
		{"ctrl+c", "Force quit"},
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	for _, h := range help {
		keyStyle := lipgloss.NewStyle().Bold(true).Width(12) //nolint:mnd // key column width
		lines = append(lines, keyStyle.Render(h.key)+"  "+h.desc)
	}

	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("Press any key to close"))

	return dialogStyle.Render(strings.Join(lines, "\n"))
}

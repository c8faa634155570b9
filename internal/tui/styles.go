package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	dangerButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// priorityStyles are keyed by task.PriorityClass.
	priorityStyles = map[string]lipgloss.Style{
		"critical": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"high":     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		"medium":   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"normal":   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		"low":      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	labelStyle        = lipgloss.NewStyle().Bold(true).Width(labelWidth)
	invalidLabelStyle = lipgloss.NewStyle().Bold(true).Width(labelWidth).Foreground(lipgloss.Color("196"))
	detailLabelStyle  = lipgloss.NewStyle().Bold(true).Width(11) //nolint:mnd // label column width

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)

	shakeDialogStyle = dialogStyle.
				BorderForeground(lipgloss.Color("196"))
)

// priorityStyle derives the style for a priority label from its class.
// A color configured for the class wins over the built-in palette.
func priorityStyle(cfg *config.Config, priority string) lipgloss.Style {
	class := task.PriorityClass(priority)
	if color, ok := cfg.PriorityColor(class); ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}
	if s, ok := priorityStyles[class]; ok {
		return s
	}
	return dimStyle
}

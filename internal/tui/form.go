package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/task"
)

// formField identifies one row of the add/edit form.
type formField int

const (
	fieldNone formField = iota - 1
	fieldName
	fieldDate
	fieldTime
	fieldPriority
	fieldDescription
	fieldCount
)

// Form layout constants.
const (
	inputWidth       = 32
	descriptionWidth = 40
	descriptionRows  = 3
	descriptionLimit = 2000
	nameLimit        = 120
	dateLimit        = 10
	timeLimit        = 5
	labelWidth       = 13
)

// Button labels double as mouse targets.
const (
	saveButton   = "[ Save ]"
	cancelButton = "[ Cancel ]"
	closeButton  = "[ Close ]"
	buttonGap    = "  "
)

// form is the shared add/edit modal. The mode decides what saving does.
type form struct {
	mode        board.Mode
	name        textinput.Model
	date        textinput.Model
	clock       textinput.Model
	priorities  []string
	priority    int
	description textarea.Model
	focus       formField
	invalid     map[task.Field]string
}

// newForm builds a form in mode. A nil t leaves every field blank except
// the priority, which starts at the configured default.
func newForm(cfg *config.Config, mode board.Mode, t *task.Task) *form {
	f := &form{
		mode:       mode,
		name:       newInput("Task name", nameLimit),
		date:       newInput("YYYY-MM-DD", dateLimit),
		clock:      newInput("HH:MM (24h)", timeLimit),
		priorities: append([]string{}, cfg.Priorities...),
		focus:      fieldNone,
		invalid:    make(map[task.Field]string),
	}

	f.description = textarea.New()
	f.description.Placeholder = "Optional"
	f.description.ShowLineNumbers = false
	f.description.Prompt = ""
	f.description.CharLimit = descriptionLimit
	f.description.SetWidth(descriptionWidth)
	f.description.SetHeight(descriptionRows)
	f.description.Blur()

	d := task.Draft{Priority: cfg.Defaults.Priority}
	if t != nil {
		d = t.Draft()
	}
	f.name.SetValue(d.Name)
	f.date.SetValue(d.Date)
	f.clock.SetValue(d.Time)
	f.description.SetValue(d.Description)
	f.selectPriority(d.Priority)
	return f
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = inputWidth
	return in
}

// selectPriority points the selector at p, appending it when a task
// carries a label the config no longer lists.
func (f *form) selectPriority(p string) {
	if p == "" {
		if len(f.priorities) > 0 {
			f.priority = 0
		} else {
			f.priority = -1
		}
		return
	}
	if i := config.IndexOf(f.priorities, p); i >= 0 {
		f.priority = i
		return
	}
	f.priorities = append(f.priorities, p)
	f.priority = len(f.priorities) - 1
}

func (f *form) priorityValue() string {
	if f.priority < 0 || f.priority >= len(f.priorities) {
		return ""
	}
	return f.priorities[f.priority]
}

func (f *form) cyclePriority(delta int) {
	n := len(f.priorities)
	if n == 0 {
		return
	}
	f.priority = ((f.priority+delta)%n + n) % n
	f.clearIfFilled(fieldPriority)
}

// draft reads the raw field values.
func (f *form) draft() task.Draft {
	return task.Draft{
		Name:        f.name.Value(),
		Date:        f.date.Value(),
		Time:        f.clock.Value(),
		Priority:    f.priorityValue(),
		Description: f.description.Value(),
	}
}

// validate clears every marker, then marks each failing field.
// It reports whether the draft can be saved.
func (f *form) validate() bool {
	f.invalid = make(map[task.Field]string)
	errs := task.ValidateDraft(f.draft())
	for _, e := range errs {
		f.invalid[e.Field] = e.Reason
	}
	return len(errs) == 0
}

func (f *form) isInvalid(field task.Field) bool {
	_, ok := f.invalid[field]
	return ok
}

// setFocus moves keyboard focus to field, blurring the others.
func (f *form) setFocus(field formField) tea.Cmd {
	f.name.Blur()
	f.date.Blur()
	f.clock.Blur()
	f.description.Blur()
	f.focus = field

	switch field {
	case fieldName:
		return f.name.Focus()
	case fieldDate:
		return f.date.Focus()
	case fieldTime:
		return f.clock.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *form) focusNext(delta int) tea.Cmd {
	if f.focus == fieldNone {
		if delta > 0 {
			return f.setFocus(fieldName)
		}
		return f.setFocus(fieldDescription)
	}
	next := ((int(f.focus)+delta)%int(fieldCount) + int(fieldCount)) % int(fieldCount)
	return f.setFocus(formField(next))
}

// update delivers an editing key to the focused field. With nothing
// focused yet the name field takes focus first so no input is lost.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	var focusCmd tea.Cmd
	if f.focus == fieldNone {
		focusCmd = f.setFocus(fieldName)
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldTime:
		f.clock, cmd = f.clock.Update(msg)
	case fieldPriority:
		switch msg.String() {
		case "left", "h":
			f.cyclePriority(-1)
		case "right", "l", " ":
			f.cyclePriority(1)
		}
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	f.clearIfFilled(f.focus)
	return tea.Batch(focusCmd, cmd)
}

// clearIfFilled drops the invalid marker of a field that now has input.
func (f *form) clearIfFilled(field formField) {
	var (
		name  task.Field
		value string
	)
	switch field {
	case fieldName:
		name, value = task.FieldName, f.name.Value()
	case fieldDate:
		name, value = task.FieldDate, f.date.Value()
	case fieldTime:
		name, value = task.FieldTime, f.clock.Value()
	case fieldPriority:
		name, value = task.FieldPriority, f.priorityValue()
	default:
		return
	}
	if strings.TrimSpace(value) != "" {
		delete(f.invalid, name)
	}
}

func (f *form) title() string {
	if id, ok := f.mode.TaskID(); ok {
		return fmt.Sprintf("Edit Task #%d", id)
	}
	return "Add Task"
}

// formLayout records content-relative rows of the rendered form.
type formLayout struct {
	fieldRows [fieldCount]int
	buttons   int
}

// render draws the form body and reports where its rows landed.
func (f *form) render(cfg *config.Config) (string, formLayout) {
	var (
		lines  []string
		layout formLayout
	)

	lines = append(lines, titleStyle.Render(f.title()), "")

	layout.fieldRows[fieldName] = len(lines)
	lines = append(lines, f.row("Name:", task.FieldName, f.name.View()))

	layout.fieldRows[fieldDate] = len(lines)
	lines = append(lines, f.row("Date:", task.FieldDate, f.date.View()))

	clock := f.clock.View()
	if hint := task.FormatTime12Hour(f.clock.Value()); hint != "" && !f.isInvalid(task.FieldTime) {
		if _, err := task.NormalizeTime(f.clock.Value()); err == nil {
			clock += " " + dimStyle.Render("("+hint+")")
		}
	}
	layout.fieldRows[fieldTime] = len(lines)
	lines = append(lines, f.row("Time:", task.FieldTime, clock))

	layout.fieldRows[fieldPriority] = len(lines)
	lines = append(lines, f.row("Priority:", task.FieldPriority, f.renderPriority(cfg)))

	layout.fieldRows[fieldDescription] = len(lines)
	for i, l := range strings.Split(f.description.View(), "\n") {
		label := ""
		if i == 0 {
			label = "Description:"
		}
		lines = append(lines, labelStyle.Render(label)+l)
	}

	lines = append(lines, "")
	layout.buttons = len(lines)
	lines = append(lines, buttonStyle.Render(saveButton)+buttonGap+dimStyle.Render(cancelButton))
	lines = append(lines, "", dimStyle.Render("tab:next field  enter/ctrl+s:save  esc:cancel"))

	return strings.Join(lines, "\n"), layout
}

func (f *form) row(label string, field task.Field, value string) string {
	reason, bad := f.invalid[field]
	if !bad {
		return labelStyle.Render(label) + value
	}
	return invalidLabelStyle.Render(label) + value + " " + errorStyle.Render("✗ "+reasonText(field, reason))
}

func (f *form) renderPriority(cfg *config.Config) string {
	p := f.priorityValue()
	if p == "" {
		return dimStyle.Render("(none)")
	}
	label := priorityStyle(cfg, p).Render(p)
	if f.focus == fieldPriority {
		return buttonStyle.Render("‹ ") + label + buttonStyle.Render(" ›")
	}
	return "  " + label
}

func reasonText(field task.Field, reason string) string {
	if reason != task.ReasonMalformed {
		return reason
	}
	switch field {
	case task.FieldDate:
		return "use YYYY-MM-DD"
	case task.FieldTime:
		return "use HH:MM (24h)"
	}
	return reason
}

// buttonSpans returns the content-relative x ranges of Save and Cancel.
func buttonSpans() (save, cancel [2]int) {
	saveW := lipgloss.Width(saveButton)
	gapW := lipgloss.Width(buttonGap)
	save = [2]int{0, saveW}
	cancel = [2]int{saveW + gapW, saveW + gapW + lipgloss.Width(cancelButton)}
	return save, cancel
}

// Package tui implements the interactive task board.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/logging"
	"github.com/antopolskiy/taskboard/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewForm
	viewDetail
	viewHelp
)

// Key and layout constants.
const (
	keyEsc   = "esc"
	keyEnter = "enter"
	keyDown  = "down"
	keyUp    = "up"

	addButton    = "[ + Add Task ]"
	editButton   = "[ Edit ]"
	deleteButton = "[ Delete ]"

	maxCardWidth = 64
	minCardWidth = 24
	cardChrome   = 4 // border (2) + padding (2)
	listChrome   = 5 // header, up line, down line, blank, status bar
	shakeOffset  = 2
)

var quitKey = key.NewBinding(key.WithKeys("ctrl+c"))

// Board is the top-level bubbletea model.
type Board struct {
	cfg    *config.Config
	store  *board.Board
	log    *log.Logger
	view   view
	width  int
	height int
	err    error

	cursor    int
	scrollOff int

	// Add/edit form. Generations invalidate pending ticks when the form
	// closes or shakes again.
	form     *form
	focusGen int
	shaking  bool
	shakeGen int

	detailID int

	zones     []zone
	zonesView view
}

// NewBoard creates a Board over store. A nil store starts an empty board
// and a nil logger discards output.
func NewBoard(cfg *config.Config, store *board.Board, logger *log.Logger) *Board {
	if logger == nil {
		logger = logging.Discard()
	}
	if store == nil {
		store = board.New(logger)
	}
	return &Board{cfg: cfg, store: store, log: logger}
}

// Tasks returns the tasks currently on the board, in display order.
func (b *Board) Tasks() []*task.Task {
	return b.store.Tasks()
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.MouseMsg:
		return b.handleMouse(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.ensureVisible()
		return b, nil
	case focusMsg:
		return b, b.handleFocus(msg)
	case shakeDoneMsg:
		if msg.gen == b.shakeGen {
			b.shaking = false
		}
		return b, nil
	case ConfigMsg:
		b.cfg = msg.Config
		b.err = nil
		b.log.Info("config reloaded", "path", msg.Config.Path())
		b.ensureVisible()
		return b, nil
	case ConfigErrMsg:
		b.err = msg.Err
		b.log.Warn("config reload failed", "err", msg.Err)
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	b.zones = b.zones[:0]
	b.zonesView = b.view
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewForm:
		return b.viewForm()
	case viewDetail:
		return b.viewDetail()
	case viewHelp:
		return b.viewHelp()
	default:
		return b.viewList()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, quitKey) {
		return b, tea.Quit
	}

	switch b.view {
	case viewList:
		return b.handleListKey(msg)
	case viewForm:
		return b, b.handleFormKey(msg)
	case viewDetail:
		b.handleDetailKey(msg)
	case viewHelp:
		b.view = viewList
	}
	return b, nil
}

func (b *Board) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "?":
		b.view = viewHelp
	case "a", "n":
		return b, b.openAdd()
	case "e":
		if t := b.selected(); t != nil {
			return b, b.openEdit(t.ID)
		}
	case "d", "x", "delete":
		if t := b.selected(); t != nil {
			b.deleteTask(t.ID)
		}
	case keyEnter, "v", " ":
		if t := b.selected(); t != nil {
			b.openDetail(t.ID)
		}
	case "j", keyDown:
		b.moveCursor(1)
	case "k", keyUp:
		b.moveCursor(-1)
	case "g", "home":
		b.cursor = 0
		b.clampCursor()
	case "G", "end":
		b.cursor = b.store.Len() - 1
		b.clampCursor()
	}
	return b, nil
}

func (b *Board) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyEsc:
		b.closeForm()
		return nil
	case "ctrl+s":
		return b.save()
	case "tab":
		return b.form.focusNext(1)
	case "shift+tab":
		return b.form.focusNext(-1)
	case keyEnter:
		if b.form.focus != fieldDescription {
			return b.save()
		}
	}
	return b.form.update(msg)
}

func (b *Board) handleDetailKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "c", keyEnter:
		b.closeDetail()
	case keyEsc:
		if !b.cfg.TUI.ViewIgnoresEscape {
			b.closeDetail()
		}
	}
}

// --- Operations ---

func (b *Board) openAdd() tea.Cmd {
	return b.openForm(board.Adding(), nil)
}

func (b *Board) openEdit(id int) tea.Cmd {
	t, err := b.store.Get(id)
	if err != nil {
		b.err = err
		return nil
	}
	return b.openForm(board.Editing(id), t)
}

// openForm shows the form and schedules the deferred name-field focus.
func (b *Board) openForm(mode board.Mode, t *task.Task) tea.Cmd {
	b.form = newForm(b.cfg, mode, t)
	b.view = viewForm
	b.err = nil
	b.shaking = false
	b.shakeGen++
	b.focusGen++

	gen := b.focusGen
	return tea.Tick(b.cfg.FocusDelay(), func(time.Time) tea.Msg {
		return focusMsg{gen: gen}
	})
}

// handleFocus focuses the name field unless the form was closed or
// reopened, or the user already focused a field.
func (b *Board) handleFocus(msg focusMsg) tea.Cmd {
	if msg.gen != b.focusGen || b.view != viewForm || b.form == nil {
		return nil
	}
	if b.form.focus != fieldNone {
		return nil
	}
	return b.form.setFocus(fieldName)
}

// closeForm hides the form and discards its values.
func (b *Board) closeForm() {
	b.form = nil
	b.view = viewList
	b.shaking = false
	b.focusGen++
	b.shakeGen++
}

// save validates the form and applies it. An incomplete form stays open
// with its failing fields marked and the panel shaking.
func (b *Board) save() tea.Cmd {
	if b.form == nil {
		return nil
	}
	if !b.form.validate() {
		return b.shake()
	}

	t, err := b.store.Save(b.form.mode, b.form.draft())
	b.closeForm()
	if err != nil {
		b.err = err
		return nil
	}
	b.selectID(t.ID)
	return nil
}

// shake restarts the shake feedback. Ticks from earlier shakes are stale.
func (b *Board) shake() tea.Cmd {
	b.shaking = true
	b.shakeGen++
	gen := b.shakeGen
	return tea.Tick(b.cfg.ShakeDuration(), func(time.Time) tea.Msg {
		return shakeDoneMsg{gen: gen}
	})
}

func (b *Board) deleteTask(id int) {
	if err := b.store.Delete(id); err != nil {
		b.err = err
		return
	}
	b.clampCursor()
}

func (b *Board) openDetail(id int) {
	b.detailID = id
	b.view = viewDetail
}

func (b *Board) closeDetail() {
	b.detailID = 0
	b.view = viewList
}

// --- Selection and scrolling ---

func (b *Board) selected() *task.Task {
	return b.store.At(b.cursor)
}

func (b *Board) selectID(id int) {
	if i := b.store.Index(id); i >= 0 {
		b.cursor = i
	}
	b.ensureVisible()
}

func (b *Board) moveCursor(delta int) {
	b.cursor += delta
	b.clampCursor()
}

func (b *Board) clampCursor() {
	n := b.store.Len()
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	b.ensureVisible()
}

// cardHeight returns the rendered height of a card in lines:
// borders, title, when, optional description, actions.
func cardHeight(t *task.Task) int {
	h := 5 //nolint:mnd // borders(2) + title + when + actions
	if t.HasDescription() {
		h++
	}
	return h
}

func (b *Board) cardBudget() int {
	budget := b.height - listChrome
	if b.err != nil {
		budget--
	}
	return budget
}

// visibleEnd returns the index after the last card that fits when the
// list starts at scrollOff. At least one card is always shown.
func (b *Board) visibleEnd(tasks []*task.Task) int {
	budget := b.cardBudget()
	used := 0
	end := b.scrollOff
	for end < len(tasks) {
		h := cardHeight(tasks[end])
		if used+h > budget && end > b.scrollOff {
			break
		}
		used += h
		end++
	}
	return end
}

// ensureVisible adjusts the scroll offset so the cursor is on screen.
func (b *Board) ensureVisible() {
	tasks := b.store.Tasks()
	if b.scrollOff > len(tasks)-1 {
		b.scrollOff = max(len(tasks)-1, 0)
	}
	if b.cursor < b.scrollOff {
		b.scrollOff = b.cursor
	}
	if b.height == 0 {
		return
	}
	for b.scrollOff < b.cursor && b.cursor >= b.visibleEnd(tasks) {
		b.scrollOff++
	}
}

// --- Messages ---

// ConfigMsg is sent by the config watcher after a successful reload.
type ConfigMsg struct {
	Config *config.Config
}

// ConfigErrMsg is sent when a changed config file fails to load.
type ConfigErrMsg struct {
	Err error
}

type focusMsg struct{ gen int }

type shakeDoneMsg struct{ gen int }

// --- View rendering ---

func (b *Board) viewList() string {
	title := headerStyle.Render(b.cfg.Board.Name)
	addX := lipgloss.Width(title) + 2 //nolint:mnd // gap before the add button
	lines := []string{title + "  " + buttonStyle.Render(addButton)}
	b.addZone(actionAdd, 0, addX, 0, addX+lipgloss.Width(addButton), 1)

	tasks := b.store.Tasks()
	if b.store.Empty() {
		lines = append(lines, "", dimStyle.Render("  "+b.cfg.EmptyMessage()))
	} else {
		start, end := b.scrollOff, b.visibleEnd(tasks)
		if start > 0 {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
		} else {
			lines = append(lines, "")
		}

		width := b.cardWidth()
		for i := start; i < end; i++ {
			t := tasks[i]
			card := b.renderCard(t, i == b.cursor, width)
			b.addCardZones(t, len(lines), width, lipgloss.Height(card))
			lines = append(lines, strings.Split(card, "\n")...)
		}

		if end < len(tasks) {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↓ %d more", len(tasks)-end)))
		}
	}

	lines = append(lines, "", b.renderStatusBar())
	return strings.Join(lines, "\n")
}

func (b *Board) cardWidth() int {
	return max(min(b.width, maxCardWidth), minCardWidth)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	inner := width - cardChrome

	tagText := ansi.Truncate(t.Priority, inner/2, "…") //nolint:mnd // tag gets at most half the line
	tag := priorityStyle(b.cfg, t.Priority).Render(tagText)
	tagW := lipgloss.Width(tag)
	name := ansi.Truncate(t.Name, max(inner-tagW-1, 1), "…")
	gap := max(inner-lipgloss.Width(name)-tagW, 1)

	lines := []string{
		titleStyle.Render(name) + strings.Repeat(" ", gap) + tag,
		dimStyle.Render(ansi.Truncate(t.When(), inner, "…")),
	}
	if t.HasDescription() {
		lines = append(lines, ansi.Truncate(firstLine(t.Description), inner, "…"))
	}
	lines = append(lines, buttonStyle.Render(editButton)+buttonGap+dangerButtonStyle.Render(deleteButton))

	style := cardStyle
	if active {
		style = activeCardStyle
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n")) //nolint:mnd // border width
}

// addCardZones makes the whole card open the view modal, except its
// action line, where only the two buttons react.
func (b *Board) addCardZones(t *task.Task, top, width, height int) {
	b.addZone(actionView, t.ID, 0, top, width, top+height)

	actionsY := top + height - 2 //nolint:mnd // above the bottom border
	b.addZone(actionNone, t.ID, 0, actionsY, width, actionsY+1)

	x := 2 // border + padding
	editW := lipgloss.Width(editButton)
	b.addZone(actionEdit, t.ID, x, actionsY, x+editW, actionsY+1)
	x += editW + lipgloss.Width(buttonGap)
	b.addZone(actionDelete, t.ID, x, actionsY, x+lipgloss.Width(deleteButton), actionsY+1)
}

func (b *Board) renderStatusBar() string {
	tasks := b.store.Tasks()
	status := fmt.Sprintf(" %s | %d tasks", b.cfg.Board.Name, len(tasks))
	for _, c := range board.CountByPriority(tasks, b.cfg.Priorities) {
		status += fmt.Sprintf(" %s:%d", c.Priority, c.Count)
	}
	status += " | a:add e:edit d:delete enter:view ?:help q:quit"
	status = ansi.Truncate(status, b.width, "…")

	if b.err != nil {
		errStr := errorStyle.Render(ansi.Truncate("Error: "+b.err.Error(), b.width, "…"))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func (b *Board) viewForm() string {
	content, layout := b.form.render(b.cfg)

	style, shift := dialogStyle, 0
	if b.shaking {
		style, shift = shakeDialogStyle, shakeOffset
	}
	out, cx, cy := b.placeDialog(style.Render(content), shift)

	rowW := labelWidth + descriptionWidth
	for field := fieldName; field < fieldCount; field++ {
		y := cy + layout.fieldRows[field]
		h := 1
		if field == fieldDescription {
			h = descriptionRows
		}
		b.addZone(actionField, int(field), cx, y, cx+rowW, y+h)
	}

	save, cancel := buttonSpans()
	y := cy + layout.buttons
	b.addZone(actionSave, 0, cx+save[0], y, cx+save[1], y+1)
	b.addZone(actionCancel, 0, cx+cancel[0], y, cx+cancel[1], y+1)
	return out
}

// placeDialog centers a rendered panel on screen, shifted right by
// shift columns, and returns it with the origin of its content area.
func (b *Board) placeDialog(panel string, shift int) (out string, contentX, contentY int) {
	left := max((b.width-lipgloss.Width(panel))/2, 0) + shift //nolint:mnd // center
	top := max((b.height-lipgloss.Height(panel))/2, 0)        //nolint:mnd // center

	pad := strings.Repeat(" ", left)
	lines := strings.Split(panel, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	out = strings.Repeat("\n", top) + strings.Join(lines, "\n")

	// Border (1) plus padding.
	return out, left + 1 + dialogPadX, top + 1 + dialogPadY
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// action is what a click on a zone does.
type action int

const (
	actionNone action = iota // swallows the click, e.g. a card's button strip
	actionAdd
	actionView
	actionEdit
	actionDelete
	actionSave
	actionCancel
	actionClose
	actionField
)

// zone is a clickable screen rectangle, half-open on both axes.
// arg carries the task ID, or the form field for actionField.
type zone struct {
	action action
	arg    int
	x0, x1 int
	y0, y1 int
}

func (z zone) contains(x, y int) bool {
	return x >= z.x0 && x < z.x1 && y >= z.y0 && y < z.y1
}

// addZone registers a zone for the screen being rendered. Later zones
// sit on top of earlier ones.
func (b *Board) addZone(a action, arg, x0, y0, x1, y1 int) {
	b.zones = append(b.zones, zone{action: a, arg: arg, x0: x0, x1: x1, y0: y0, y1: y1})
}

// hit returns the topmost zone under (x, y) from the last render.
func (b *Board) hit(x, y int) (zone, bool) {
	if b.zonesView != b.view {
		return zone{}, false
	}
	for i := len(b.zones) - 1; i >= 0; i-- {
		if b.zones[i].contains(x, y) {
			return b.zones[i], true
		}
	}
	return zone{}, false
}

func (b *Board) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return b, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if b.view == viewList {
			b.moveCursor(-1)
		}
		return b, nil
	case tea.MouseButtonWheelDown:
		if b.view == viewList {
			b.moveCursor(1)
		}
		return b, nil
	case tea.MouseButtonLeft:
	default:
		return b, nil
	}

	// Clicks outside every zone land on the backdrop and are ignored.
	z, ok := b.hit(msg.X, msg.Y)
	if !ok {
		return b, nil
	}

	switch z.action {
	case actionAdd:
		return b, b.openAdd()
	case actionView:
		b.selectID(z.arg)
		b.openDetail(z.arg)
	case actionEdit:
		b.selectID(z.arg)
		return b, b.openEdit(z.arg)
	case actionDelete:
		b.deleteTask(z.arg)
	case actionSave:
		return b, b.save()
	case actionCancel:
		b.closeForm()
	case actionClose:
		b.closeDetail()
	case actionField:
		if b.form != nil {
			return b, b.form.setFocus(formField(z.arg))
		}
	}
	return b, nil
}

package board

import "strconv"

// Mode says what saving the form will do: append a new task or overwrite
// an existing one. The zero value is Adding.
type Mode struct {
	editing bool
	id      int
}

// Adding returns the mode for creating a new task.
func Adding() Mode {
	return Mode{}
}

// Editing returns the mode for overwriting the task with the given ID.
func Editing(id int) Mode {
	return Mode{editing: true, id: id}
}

// IsEditing reports whether the mode targets an existing task.
func (m Mode) IsEditing() bool {
	return m.editing
}

// TaskID returns the edited task's ID; ok is false in Adding mode.
func (m Mode) TaskID() (id int, ok bool) {
	return m.id, m.editing
}

func (m Mode) String() string {
	if m.editing {
		return "editing #" + strconv.Itoa(m.id)
	}
	return "adding"
}

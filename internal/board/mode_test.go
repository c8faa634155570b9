package board

import "testing"

func TestModeZeroValueIsAdding(t *testing.T) {
	var m Mode
	if m.IsEditing() {
		t.Error("zero Mode should be Adding")
	}
	if m != Adding() {
		t.Error("zero Mode should equal Adding()")
	}
}

func TestModeEditing(t *testing.T) {
	m := Editing(5)
	if !m.IsEditing() {
		t.Fatal("Editing(5).IsEditing() = false")
	}
	id, ok := m.TaskID()
	if !ok || id != 5 {
		t.Errorf("TaskID() = %d, %v; want 5, true", id, ok)
	}
	if _, ok := Adding().TaskID(); ok {
		t.Error("Adding().TaskID() ok = true")
	}
}

func TestModeString(t *testing.T) {
	if got := Adding().String(); got != "adding" {
		t.Errorf("Adding().String() = %q", got)
	}
	if got := Editing(3).String(); got != "editing #3" {
		t.Errorf("Editing(3).String() = %q", got)
	}
}

package app

import "todo/internal/todo"

// Event is a user gesture or timer firing.
type Event interface {
	event()
}

type AddTask struct {
	Text string
	Due  string
}

type ToggleDone struct{ ID string }

type DeleteTask struct{ ID string }

type RestoreUndo struct{}

type DismissUndo struct{}

// ExpireUndo and HideError carry the generation of the banner show that
// armed them.
type ExpireUndo struct{ Gen uint64 }

type HideError struct{ Gen uint64 }

type ClearCompleted struct{}

type BeginEdit struct{ ID string }

// CommitEdit is sent on Enter and on blur.
type CommitEdit struct {
	ID   string
	Text string
}

type CancelEdit struct{}

type DragStart struct{ ID string }

// DragOver names the row under the dragged one.
type DragOver struct{ ID string }

// Drop commits an explicit id order read from the view.
type Drop struct{ Order []string }

type DragEnd struct{}

type ToggleList struct{}

type SetFilter struct{ Filter todo.Filter }

func (AddTask) event()        {}
func (ToggleDone) event()     {}
func (DeleteTask) event()     {}
func (RestoreUndo) event()    {}
func (DismissUndo) event()    {}
func (ExpireUndo) event()     {}
func (HideError) event()      {}
func (ClearCompleted) event() {}
func (BeginEdit) event()      {}
func (CommitEdit) event()     {}
func (CancelEdit) event()     {}
func (DragStart) event()      {}
func (DragOver) event()       {}
func (Drop) event()           {}
func (DragEnd) event()        {}
func (ToggleList) event()     {}
func (SetFilter) event()      {}

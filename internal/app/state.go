package app

import (
	"time"

	"todo/internal/todo"
)

const InvalidInputMessage = "Please enter a valid task and due date."

type BannerKind int

const (
	BannerError BannerKind = iota
	BannerUndo
)

func (k BannerKind) String() string {
	if k == BannerUndo {
		return "undo"
	}
	return "error"
}

// Banner is a transient message. Gen increases on every show so a timer
// armed for an earlier show can be recognised as stale.
type Banner struct {
	Message string
	Visible bool
	Gen     uint64
}

func (b *Banner) show(msg string) uint64 {
	b.Gen++
	b.Message = msg
	b.Visible = true
	return b.Gen
}

func (b *Banner) hide() {
	b.Visible = false
	b.Message = ""
}

// Drag tracks a row being moved. Order is the live view order.
type Drag struct {
	ID    string
	Order []string
}

type State struct {
	Tasks        todo.List
	Filter       todo.Filter
	ListHidden   bool
	Undo         todo.UndoSlot
	UndoBanner   Banner
	ErrorBanner  Banner
	InputInvalid bool
	Editing      string
	Drag         *Drag
}

// DragAllowed reports whether the whole list is on screen, which reordering
// needs.
func (s State) DragAllowed() bool {
	return s.Filter == todo.FilterAll && !s.ListHidden
}

type Env struct {
	Now        time.Time
	NewID      func(time.Time) string
	UndoWindow time.Duration
}

type Arm struct {
	Banner BannerKind
	Gen    uint64
}

// Effects lists what the caller must do after a transition. Err reports a
// gesture that referenced something no longer there; it is never fatal.
type Effects struct {
	Persist bool
	Arm     []Arm
	Err     error
}

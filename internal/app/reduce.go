package app

import (
	"fmt"
	"strconv"
	"strings"

	"todo/internal/todo"
)

const maxIDAttempts = 8

// Reduce applies ev to s. It has no side effects: persistence and timers are
// requested through the returned Effects.
func Reduce(s State, ev Event, env Env) (State, Effects) {
	switch ev := ev.(type) {
	case AddTask:
		return addTask(s, ev, env)
	case ToggleDone:
		tasks, err := s.Tasks.ToggleDone(ev.ID)
		if err != nil {
			return s, Effects{Err: fmt.Errorf("toggle %q: %w", ev.ID, err)}
		}
		s.Tasks = tasks
		return s, Effects{Persist: true}
	case DeleteTask:
		return deleteTask(s, ev, env)
	case RestoreUndo:
		t, ok := s.Undo.Take()
		if !ok {
			return s, Effects{}
		}
		s.Tasks = s.Tasks.Prepend(t)
		s.UndoBanner.hide()
		return s, Effects{Persist: true}
	case DismissUndo:
		s.Undo.Clear()
		s.UndoBanner.hide()
		return s, Effects{}
	case ExpireUndo:
		if ev.Gen != s.UndoBanner.Gen || !s.Undo.Expired(env.Now) {
			return s, Effects{}
		}
		s.Undo.Clear()
		s.UndoBanner.hide()
		return s, Effects{}
	case HideError:
		if ev.Gen == s.ErrorBanner.Gen {
			s.ErrorBanner.hide()
		}
		return s, Effects{}
	case ClearCompleted:
		s.Tasks = s.Tasks.WithoutCompleted()
		if _, _, ok := s.Tasks.Find(s.Editing); !ok {
			s.Editing = ""
		}
		return s, Effects{Persist: true}
	case BeginEdit:
		if s.Drag != nil {
			return s, Effects{}
		}
		if _, _, ok := s.Tasks.Find(ev.ID); !ok {
			return s, Effects{Err: fmt.Errorf("edit %q: %w", ev.ID, todo.ErrNotFound)}
		}
		s.Editing = ev.ID
		return s, Effects{}
	case CommitEdit:
		return commitEdit(s, ev)
	case CancelEdit:
		s.Editing = ""
		return s, Effects{}
	case DragStart:
		if !s.DragAllowed() {
			return s, Effects{}
		}
		if _, _, ok := s.Tasks.Find(ev.ID); !ok {
			return s, Effects{Err: fmt.Errorf("drag %q: %w", ev.ID, todo.ErrNotFound)}
		}
		s.Editing = ""
		s.Drag = &Drag{ID: ev.ID, Order: s.Tasks.IDs()}
		return s, Effects{}
	case DragOver:
		if s.Drag == nil || ev.ID == s.Drag.ID {
			return s, Effects{}
		}
		order, ok := moveOver(s.Drag.Order, s.Drag.ID, ev.ID)
		if !ok {
			return s, Effects{}
		}
		s.Drag = &Drag{ID: s.Drag.ID, Order: order}
		return s, Effects{}
	case Drop:
		if s.Drag == nil {
			return s, Effects{}
		}
		order := append([]string(nil), ev.Order...)
		s.Tasks = s.Tasks.Reorder(order)
		s.Drag = &Drag{ID: s.Drag.ID, Order: s.Tasks.IDs()}
		return s, Effects{Persist: true}
	case DragEnd:
		s.Drag = nil
		return s, Effects{}
	case ToggleList:
		s.ListHidden = !s.ListHidden
		if s.ListHidden {
			s.Drag = nil
			s.Editing = ""
		}
		return s, Effects{}
	case SetFilter:
		s.Filter = ev.Filter
		if !s.DragAllowed() {
			s.Drag = nil
		}
		if t, _, ok := s.Tasks.Find(s.Editing); ok && !s.Filter.Matches(t) {
			s.Editing = ""
		}
		return s, Effects{}
	default:
		return s, Effects{Err: fmt.Errorf("unhandled event %T", ev)}
	}
}

func addTask(s State, ev AddTask, env Env) (State, Effects) {
	text := strings.TrimSpace(ev.Text)
	due := strings.TrimSpace(ev.Due)
	if !todo.ValidText(text) || !todo.ValidDate(due) {
		s.InputInvalid = true
		gen := s.ErrorBanner.show(InvalidInputMessage)
		return s, Effects{Arm: []Arm{{Banner: BannerError, Gen: gen}}}
	}
	t, err := todo.NewTask(uniqueID(s.Tasks, env), text, due, env.Now)
	if err != nil {
		return s, Effects{Err: err}
	}
	s.Tasks = s.Tasks.Prepend(t)
	s.InputInvalid = false
	return s, Effects{Persist: true}
}

func deleteTask(s State, ev DeleteTask, env Env) (State, Effects) {
	tasks, removed, ok := s.Tasks.Remove(ev.ID)
	if !ok {
		return s, Effects{}
	}
	s.Tasks = tasks
	if s.Editing == ev.ID {
		s.Editing = ""
	}
	s.Undo.Arm(removed, env.Now.Add(env.UndoWindow))
	gen := s.UndoBanner.show(fmt.Sprintf("Deleted %q", removed.Text))
	return s, Effects{Persist: true, Arm: []Arm{{Banner: BannerUndo, Gen: gen}}}
}

// commitEdit leaves edit mode. Text shorter than the minimum is discarded
// and the old text kept.
func commitEdit(s State, ev CommitEdit) (State, Effects) {
	if s.Editing == "" || s.Editing != ev.ID {
		return s, Effects{}
	}
	s.Editing = ""
	old, _, ok := s.Tasks.Find(ev.ID)
	if !ok || !todo.ValidText(ev.Text) {
		return s, Effects{}
	}
	if strings.TrimSpace(ev.Text) == old.Text {
		return s, Effects{}
	}
	tasks, err := s.Tasks.ReplaceText(ev.ID, ev.Text)
	if err != nil {
		return s, Effects{Err: err}
	}
	s.Tasks = tasks
	return s, Effects{Persist: true}
}

// moveOver places dragged after target when it currently sits before it and
// before target otherwise.
func moveOver(order []string, dragged, target string) ([]string, bool) {
	from, to := -1, -1
	for i, id := range order {
		switch id {
		case dragged:
			from = i
		case target:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return order, false
	}
	out := make([]string, 0, len(order))
	for _, id := range order {
		if id == dragged {
			continue
		}
		if id == target && from > to {
			out = append(out, dragged)
		}
		out = append(out, id)
		if id == target && from < to {
			out = append(out, dragged)
		}
	}
	return out, true
}

func uniqueID(tasks todo.List, env Env) string {
	var id string
	for i := 0; i < maxIDAttempts; i++ {
		id = env.NewID(env.Now)
		if _, _, taken := tasks.Find(id); !taken {
			return id
		}
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, _, taken := tasks.Find(candidate); !taken {
			return candidate
		}
	}
}

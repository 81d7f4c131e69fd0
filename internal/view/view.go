// Package view turns application state into a toolkit-agnostic description
// of the screen. Render is a pure function and rebuilds everything on each
// call.
package view

import (
	"fmt"
	"math"
	"time"

	"todo/internal/app"
	"todo/internal/todo"
)

const EmptyText = "No tasks."

type Row struct {
	ID       string
	Label    string
	Text     string
	DueDate  string
	Done     bool
	Overdue  bool
	Editing  bool
	Dragging bool
}

type FilterControl struct {
	Filter todo.Filter
	Label  string
	Active bool
}

type BannerView struct {
	Visible bool
	Message string
}

type UndoView struct {
	Visible bool
	Message string
	Seconds int
}

type View struct {
	Rows        []Row
	Placeholder string
	OpenCount   int
	OpenLabel   string
	Filters     []FilterControl
	ListVisible bool
	ToggleLabel string
	Dragging    bool
	Error       BannerView
	InputError  bool
	Undo        UndoView
}

// Interactive reports whether the list has real task rows.
func (v View) Interactive() bool {
	return v.ListVisible && len(v.Rows) > 0
}

// IDs returns the row ids in rendered order.
func (v View) IDs() []string {
	ids := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		ids[i] = r.ID
	}
	return ids
}

func Render(s app.State, now time.Time) View {
	today := todo.Today(now)
	v := View{
		OpenCount:   s.Tasks.OpenCount(),
		ListVisible: !s.ListHidden,
		ToggleLabel: "Hide list",
		Dragging:    s.Drag != nil,
		InputError:  s.InputInvalid,
		Error: BannerView{
			Visible: s.ErrorBanner.Visible,
			Message: s.ErrorBanner.Message,
		},
	}
	v.OpenLabel = openLabel(v.OpenCount)
	if s.ListHidden {
		v.ToggleLabel = "Show list"
	}
	for _, f := range todo.Filters() {
		v.Filters = append(v.Filters, FilterControl{Filter: f, Label: f.Label(), Active: f == s.Filter})
	}
	if s.Undo.Armed() && s.UndoBanner.Visible {
		v.Undo = UndoView{
			Visible: true,
			Message: s.UndoBanner.Message,
			Seconds: ceilSeconds(s.Undo.Remaining(now)),
		}
	}

	for _, t := range visible(s) {
		v.Rows = append(v.Rows, Row{
			ID:       t.ID,
			Label:    fmt.Sprintf("%s (%s)", t.Text, t.StartDate),
			Text:     t.Text,
			DueDate:  t.DueDate,
			Done:     t.Done,
			Overdue:  t.Overdue(today),
			Editing:  t.ID == s.Editing,
			Dragging: s.Drag != nil && t.ID == s.Drag.ID,
		})
	}
	if len(v.Rows) == 0 {
		v.Placeholder = EmptyText
	}
	return v
}

// visible applies the filter. During a drag the live order wins.
func visible(s app.State) todo.List {
	tasks := s.Tasks
	if s.Drag != nil {
		tasks = tasks.Reorder(s.Drag.Order)
	}
	return tasks.Filter(s.Filter)
}

func openLabel(n int) string {
	if n == 1 {
		return "1 task open"
	}
	return fmt.Sprintf("%d tasks open", n)
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/todo"
	"todo/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeDrag
)

const (
	focusText = iota
	focusDue
)

type errorHideMsg struct{ gen uint64 }

type undoTickMsg struct{ gen uint64 }

type Model struct {
	ctrl   *app.Controller
	cfg    config.Config
	keys   keyMap
	help   help.Model
	mode   mode
	cursor int
	text   textinput.Model
	due    textinput.Model
	edit   textinput.Model
	focus  int
	status string
}

func New(ctrl *app.Controller, cfg config.Config, firstLaunch bool) Model {
	text := textinput.New()
	text.Placeholder = "Task"
	text.CharLimit = 256
	text.Width = 40
	text.Prompt = "Task: "
	text.PromptStyle = promptStyle

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = len(todo.DateLayout)
	due.Width = 12
	due.Prompt = "Due: "
	due.PromptStyle = promptStyle

	edit := textinput.New()
	edit.CharLimit = 256
	edit.Width = 40
	edit.Prompt = ""

	keys := newKeyMap(cfg.Keys)
	status := fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to delete.", cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Delete)
	if firstLaunch {
		status = "Welcome! " + status
	}
	return Model{
		ctrl:   ctrl,
		cfg:    cfg,
		keys:   keys,
		help:   help.New(),
		mode:   modeList,
		text:   text,
		due:    due,
		edit:   edit,
		status: status,
	}
}

func Run(ctrl *app.Controller, cfg config.Config, firstLaunch bool) error {
	program := tea.NewProgram(New(ctrl, cfg, firstLaunch))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.text.Width = max(msg.Width-30, 10)
		m.edit.Width = max(msg.Width-20, 10)
		m.help.Width = msg.Width
	case errorHideMsg:
		return m, m.dispatch(app.HideError{Gen: msg.gen})
	case undoTickMsg:
		return m, m.undoTick(msg.gen)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(msg)
	case modeEdit:
		return m.updateEditMode(msg)
	case modeDrag:
		return m.updateDragMode(msg)
	default:
		return m.updateListMode(msg)
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.render()
	row, hasRow := m.selected(v)
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.down):
		if v.Interactive() {
			m.cursor = clampCursor(m.cursor+1, len(v.Rows))
		}
	case key.Matches(msg, m.keys.up):
		if v.Interactive() {
			m.cursor = clampCursor(m.cursor-1, len(v.Rows))
		}
	case key.Matches(msg, m.keys.add):
		m.mode = modeAdd
		m.focus = focusText
		m.due.Blur()
		m.status = "Add mode: type a task, tab to the due date, Enter to save"
		cmd := m.text.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.toggle):
		if !hasRow {
			return m, nil
		}
		m.status = "Toggled task"
		return m, m.dispatch(app.ToggleDone{ID: row.ID})
	case key.Matches(msg, m.keys.del):
		if !hasRow {
			return m, nil
		}
		cmd := m.dispatch(app.DeleteTask{ID: row.ID})
		m.cursor = clampCursor(m.cursor, len(m.render().Rows))
		m.status = "Deleted task"
		return m, cmd
	case key.Matches(msg, m.keys.edit):
		if !hasRow {
			return m, nil
		}
		cmd := m.dispatch(app.BeginEdit{ID: row.ID})
		if m.ctrl.State().Editing != row.ID {
			return m, cmd
		}
		m.mode = modeEdit
		m.edit.SetValue(row.Text)
		m.edit.CursorEnd()
		m.status = "Editing: Enter or tab saves, Esc cancels"
		focus := m.edit.Focus()
		return m, tea.Batch(cmd, focus)
	case key.Matches(msg, m.keys.move):
		if !hasRow {
			return m, nil
		}
		cmd := m.dispatch(app.DragStart{ID: row.ID})
		if m.ctrl.State().Drag == nil {
			m.status = "Reordering needs the full list (filter: all)"
			return m, cmd
		}
		m.mode = modeDrag
		m.status = "Moving: up/down to drag, Enter to drop, Esc to cancel"
		return m, cmd
	case key.Matches(msg, m.keys.undo):
		if !m.ctrl.State().Undo.Armed() {
			m.status = "Nothing to undo"
			return m, nil
		}
		cmd := m.dispatch(app.RestoreUndo{})
		m.cursor = 0
		m.status = "Restored task"
		return m, cmd
	case key.Matches(msg, m.keys.dismissUndo):
		return m, m.dispatch(app.DismissUndo{})
	case key.Matches(msg, m.keys.clearDone):
		cmd := m.dispatch(app.ClearCompleted{})
		m.cursor = clampCursor(m.cursor, len(m.render().Rows))
		m.status = "Cleared completed tasks"
		return m, cmd
	case key.Matches(msg, m.keys.toggleList):
		return m, m.dispatch(app.ToggleList{})
	case key.Matches(msg, m.keys.filterAll):
		return m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.filterOpen):
		return m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.filterDone):
		return m.setFilter(todo.FilterDone)
	}
	return m, nil
}

func (m Model) setFilter(f todo.Filter) (tea.Model, tea.Cmd) {
	cmd := m.dispatch(app.SetFilter{Filter: f})
	m.cursor = clampCursor(m.cursor, len(m.render().Rows))
	m.status = "Showing " + f.String()
	return m, cmd
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.mode = modeList
		m.text.Blur()
		m.due.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.blur):
		if m.focus == focusText {
			m.focus = focusDue
			m.text.Blur()
			cmd := m.due.Focus()
			return m, cmd
		}
		m.focus = focusText
		m.due.Blur()
		cmd := m.text.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.confirm):
		cmd := m.dispatch(app.AddTask{Text: m.text.Value(), Due: m.due.Value()})
		if m.ctrl.State().InputInvalid {
			m.text.PromptStyle = invalidPromptStyle
			return m, cmd
		}
		m.text.PromptStyle = promptStyle
		m.text.SetValue("")
		m.due.SetValue("")
		m.text.Blur()
		m.due.Blur()
		m.mode = modeList
		m.cursor = 0
		m.status = "Added task"
		return m, cmd
	}
	var cmd tea.Cmd
	if m.focus == focusDue {
		m.due, cmd = m.due.Update(msg)
	} else {
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.ctrl.State().Editing
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.mode = modeList
		m.edit.Blur()
		m.status = "Edit cancelled"
		return m, m.dispatch(app.CancelEdit{})
	case key.Matches(msg, m.keys.confirm), key.Matches(msg, m.keys.blur):
		m.mode = modeList
		m.edit.Blur()
		if !todo.ValidText(m.edit.Value()) {
			m.status = "Edit discarded: text too short"
		} else {
			m.status = "Saved"
		}
		return m, m.dispatch(app.CommitEdit{ID: id, Text: m.edit.Value()})
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

func (m Model) updateDragMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.render()
	idx := draggedIndex(v)
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		if idx > 0 {
			cmd := m.dispatch(app.DragOver{ID: v.Rows[idx-1].ID})
			m.cursor = draggedIndex(m.render())
			return m, cmd
		}
	case key.Matches(msg, m.keys.down):
		if idx >= 0 && idx < len(v.Rows)-1 {
			cmd := m.dispatch(app.DragOver{ID: v.Rows[idx+1].ID})
			m.cursor = draggedIndex(m.render())
			return m, cmd
		}
	case key.Matches(msg, m.keys.confirm), key.Matches(msg, m.keys.move):
		drop := m.dispatch(app.Drop{Order: v.IDs()})
		end := m.dispatch(app.DragEnd{})
		m.mode = modeList
		m.status = "Moved task"
		return m, tea.Batch(drop, end)
	case key.Matches(msg, m.keys.cancel):
		cmd := m.dispatch(app.DragEnd{})
		m.mode = modeList
		m.cursor = clampCursor(m.cursor, len(m.render().Rows))
		m.status = "Move cancelled"
		return m, cmd
	}
	return m, nil
}

// dispatch runs one transition and turns requested banner timers into
// commands.
func (m Model) dispatch(ev app.Event) tea.Cmd {
	fx := m.ctrl.Dispatch(ev)
	var cmds []tea.Cmd
	for _, arm := range fx.Arm {
		gen := arm.Gen
		switch arm.Banner {
		case app.BannerError:
			cmds = append(cmds, tea.Tick(m.cfg.ErrorHideDelay(), func(time.Time) tea.Msg {
				return errorHideMsg{gen: gen}
			}))
		case app.BannerUndo:
			cmds = append(cmds, scheduleUndoTick(gen, m.ctrl.State().Undo.Remaining(m.ctrl.Now())))
		}
	}
	return tea.Batch(cmds...)
}

// undoTick refreshes the countdown once a second and expires the slot at
// its deadline. Ticks from an earlier delete are dropped.
func (m Model) undoTick(gen uint64) tea.Cmd {
	s := m.ctrl.State()
	if gen != s.UndoBanner.Gen || !s.Undo.Armed() {
		return nil
	}
	remaining := s.Undo.Remaining(m.ctrl.Now())
	if remaining <= 0 {
		return m.dispatch(app.ExpireUndo{Gen: gen})
	}
	return scheduleUndoTick(gen, remaining)
}

func scheduleUndoTick(gen uint64, remaining time.Duration) tea.Cmd {
	next := remaining % time.Second
	if next <= 0 {
		next = time.Second
	}
	return tea.Tick(next, func(time.Time) tea.Msg {
		return undoTickMsg{gen: gen}
	})
}

func (m Model) render() view.View {
	return view.Render(m.ctrl.State(), m.ctrl.Now())
}

func (m Model) selected(v view.View) (view.Row, bool) {
	if !v.Interactive() {
		return view.Row{}, false
	}
	return v.Rows[clampCursor(m.cursor, len(v.Rows))], true
}

func (m Model) View() string {
	v := m.render()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(v.OpenLabel))
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.text.View())
		b.WriteString("  ")
		b.WriteString(m.due.View())
		b.WriteString("\n")
	}
	if v.Error.Visible {
		b.WriteString(errorStyle.Render(v.Error.Message))
		b.WriteString("\n")
	}

	b.WriteString(renderFilters(v.Filters))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("[%s] %s", m.cfg.Keys.ToggleList, v.ToggleLabel)))
	b.WriteString("\n\n")

	if v.ListVisible {
		b.WriteString(m.renderTaskList(v))
	}

	if v.Undo.Visible {
		msg := fmt.Sprintf("%s (%ds)  %s", v.Undo.Message, v.Undo.Seconds, m.help.ShortHelpView(m.keys.undoHelp()))
		b.WriteString(bannerStyle.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.listHelp()))

	return b.String()
}

func (m Model) renderTaskList(v view.View) string {
	if len(v.Rows) == 0 {
		return labelStyle.Render(v.Placeholder) + "\n"
	}
	var b strings.Builder
	cur := clampCursor(m.cursor, len(v.Rows))
	for i, row := range v.Rows {
		cursor := " "
		if i == cur && m.mode != modeAdd {
			cursor = ">"
		}
		checkbox := "[ ]"
		if row.Done {
			checkbox = "[x]"
		}

		label := row.Label
		switch {
		case row.Editing && m.mode == modeEdit:
			label = m.edit.View()
		case row.Done:
			label = doneStyle.Render(label)
		case row.Overdue:
			label = overdueStyle.Render(label)
		}
		due := "due " + row.DueDate
		if row.Overdue {
			due = overdueStyle.Render(due + " overdue")
		} else {
			due = labelStyle.Render(due)
		}

		line := fmt.Sprintf("%s %s %s  %s", cursor, checkbox, label, due)
		switch {
		case row.Dragging:
			line = draggingStyle.Render(line)
		case i == cur && m.mode == modeList:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderFilters(filters []view.FilterControl) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		if f.Active {
			parts = append(parts, activeFilterStyle.Render(f.Label))
			continue
		}
		parts = append(parts, labelStyle.Render(f.Label))
	}
	return strings.Join(parts, " ")
}

func draggedIndex(v view.View) int {
	for i, row := range v.Rows {
		if row.Dragging {
			return i
		}
	}
	return -1
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"todo/internal/config"
)

type keyMap struct {
	quit        key.Binding
	add         key.Binding
	up          key.Binding
	down        key.Binding
	toggle      key.Binding
	del         key.Binding
	confirm     key.Binding
	cancel      key.Binding
	edit        key.Binding
	blur        key.Binding
	move        key.Binding
	undo        key.Binding
	dismissUndo key.Binding
	clearDone   key.Binding
	toggleList  key.Binding
	filterAll   key.Binding
	filterOpen  key.Binding
	filterDone  key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		add:         key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		up:          key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up, "up")),
		down:        key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down, "down")),
		toggle:      key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(keyLabel(k.Toggle), "toggle")),
		del:         key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		confirm:     key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "confirm")),
		cancel:      key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		edit:        key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(k.Edit, "edit")),
		blur:        key.NewBinding(key.WithKeys("tab", "shift+tab")),
		move:        key.NewBinding(key.WithKeys(k.Move), key.WithHelp(k.Move, "move")),
		undo:        key.NewBinding(key.WithKeys(k.Undo), key.WithHelp(k.Undo, "undo")),
		dismissUndo: key.NewBinding(key.WithKeys(k.DismissUndo), key.WithHelp(k.DismissUndo, "dismiss")),
		clearDone:   key.NewBinding(key.WithKeys(k.ClearDone), key.WithHelp(k.ClearDone, "clear done")),
		toggleList:  key.NewBinding(key.WithKeys(k.ToggleList), key.WithHelp(k.ToggleList, "show/hide list")),
		filterAll:   key.NewBinding(key.WithKeys(k.FilterAll), key.WithHelp(k.FilterAll, "all")),
		filterOpen:  key.NewBinding(key.WithKeys(k.FilterOpen), key.WithHelp(k.FilterOpen, "active")),
		filterDone:  key.NewBinding(key.WithKeys(k.FilterDone), key.WithHelp(k.FilterDone, "done")),
	}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.add, k.toggle, k.del, k.edit, k.move, k.clearDone, k.filterAll, k.filterOpen, k.filterDone, k.toggleList, k.quit}
}

func (k keyMap) undoHelp() []key.Binding {
	return []key.Binding{k.undo, k.dismissUndo}
}

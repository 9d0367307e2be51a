// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection or starts editing the selected row.
	Select key.Binding

	// NextField moves an inline edit to the next entry field.
	NextField key.Binding

	// Add appends a blank entry to the selected node.
	Add key.Binding

	// Delete removes the selected entry or rule.
	Delete key.Binding

	// Commit writes pending edits back to the document.
	Commit key.Binding

	// ToggleAuto switches immediate write-back on or off.
	ToggleAuto key.Binding

	// NextMissing jumps to the first entry without a URL.
	NextMissing key.Binding

	// NextError jumps to the first entry with a broken URL.
	NextError key.Binding

	// Source shows the selected node in the document text.
	Source key.Binding

	// Save writes the document to the output directory.
	Save key.Binding

	// Copy places the document on the clipboard.
	Copy key.Binding

	// Rename changes the export file name.
	Rename key.Binding

	// Apply submits a multi-line input.
	Apply key.Binding

	// Reset restores defaults.
	Reset key.Binding

	// Persist writes the rule table to the config file.
	Persist key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Commit: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "update json"),
		),
		ToggleAuto: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "auto update"),
		),
		NextMissing: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next missing"),
		),
		NextError: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "next error"),
		),
		Source: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view json"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Rename: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "file name"),
		),
		Apply: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "apply"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
		Persist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write config"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Help}
}

// NodesHelp returns keybindings for the nodes view.
func (k *KeyMap) NodesHelp() []key.Binding {
	return []key.Binding{k.Select, k.Add, k.Delete, k.NextMissing, k.Save, k.Back}
}

// EditHelp returns keybindings shown while a field is being edited.
func (k *KeyMap) EditHelp() []key.Binding {
	return []key.Binding{k.Select, k.NextField, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.NextField, k.Back},
		{k.Add, k.Delete, k.Commit, k.ToggleAuto},
		{k.NextMissing, k.NextError, k.Source},
		{k.Save, k.Copy, k.Rename, k.Apply},
		{k.Reset, k.Persist, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

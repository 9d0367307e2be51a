// Package rules provides the directory rule table view for the TUI.
package rules

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// editMode tracks what the input is collecting.
type editMode int

const (
	editNone editMode = iota
	editNewType
	editNewDirectory
	editDirectory
	editRename
)

// View lists the directory rules and edits them. Changes are re-applied
// to the loaded document.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	rules  driving.RuleService
	editor driving.EditorService

	list  *list.List
	table []domain.DirectoryRule

	input   *input.FieldInput
	mode    editMode
	target  string
	pending string

	notice string
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new rules view. editor may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	rules driving.RuleService,
	editor driving.EditorService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		rules:  rules,
		editor: editor,
		list:   list.New(s, "No directory rules"),
		input:  input.NewFieldInput(s, "Node type", ""),
		width:  80,
		height: 24,
	}
}

// Init reloads the table.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh reloads the rule table.
func (v *View) Refresh() {
	v.table = nil
	if v.rules != nil {
		v.table = v.rules.List()
	}

	width := 0
	for _, r := range v.table {
		if len(r.NodeType) > width {
			width = len(r.NodeType)
		}
	}
	rows := make([]string, len(v.table))
	for i, r := range v.table {
		rows[i] = v.styles.Normal.Render(fmt.Sprintf("%-*s", width, r.NodeType)) +
			v.styles.Muted.Render("  → ") + v.styles.Success.Render(r.Directory)
	}
	v.list.SetRows(rows)
}

// Update handles messages for the rules view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RulesChanged:
		v.err = msg.Err
		v.notice = msg.Notice
		v.Refresh()
		return v, nil

	case tea.KeyMsg:
		if v.mode != editNone {
			return v.handleEditKeys(msg)
		}
		return v.handleKeys(msg)
	}

	return v, nil
}

func (v *View) handleKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	rule, hasRule := v.SelectedRule()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case v.rules == nil:
		return v, nil

	case keymap.Matches(key, v.keymap.Add):
		return v, v.startEdit(editNewType, "", "Node type", "")

	case keymap.Matches(key, v.keymap.Select):
		if hasRule {
			return v, v.startEdit(editDirectory, rule.NodeType, "Directory", rule.Directory)
		}

	case keymap.Matches(key, v.keymap.Rename):
		if hasRule {
			return v, v.startEdit(editRename, rule.NodeType, "Node type", rule.NodeType)
		}

	case keymap.Matches(key, v.keymap.Delete):
		if hasRule {
			nodeType := rule.NodeType
			return v, v.change("Removed "+nodeType, func() error {
				return v.rules.Remove(nodeType)
			})
		}

	case keymap.Matches(key, v.keymap.Reset):
		return v, v.change("Rules reset", v.rules.Reset)

	case keymap.Matches(key, v.keymap.Persist):
		return v, func() tea.Msg {
			if err := v.rules.Persist(); err != nil {
				return messages.RulesChanged{Err: err}
			}
			return messages.RulesChanged{Notice: "Rules saved to config"}
		}

	default:
		v.list, _ = v.list.Update(msg)
	}

	return v, nil
}

func (v *View) startEdit(mode editMode, target, label, value string) tea.Cmd {
	v.mode = mode
	v.target = target
	v.input.SetLabel(label)
	v.input.SetValue(value)
	return v.input.Focus()
}

func (v *View) stopEdit() {
	v.mode = editNone
	v.target = ""
	v.pending = ""
	v.input.Blur()
	v.input.Reset()
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.stopEdit()
		return v, nil

	case keymap.Matches(key, v.keymap.Select):
		value := strings.TrimSpace(v.input.Value())

		switch v.mode {
		case editNewType:
			if value == "" {
				v.err = fmt.Errorf("%w: node type is required", domain.ErrInvalidInput)
				return v, nil
			}
			v.err = nil
			v.pending = value
			v.mode = editNewDirectory
			v.input.SetLabel("Directory")
			v.input.SetValue(v.rules.DirectoryFor(value))
			return v, nil

		case editNewDirectory, editDirectory:
			nodeType := v.pending
			if v.mode == editDirectory {
				nodeType = v.target
			}
			v.stopEdit()
			return v, v.change(fmt.Sprintf("%s → %s", nodeType, value), func() error {
				return v.rules.Set(nodeType, value)
			})

		case editRename:
			oldType := v.target
			v.stopEdit()
			return v, v.change(fmt.Sprintf("Renamed %s to %s", oldType, value), func() error {
				return v.rules.Rename(oldType, value)
			})

		case editNone:
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// change applies a rule edit and re-reads the loaded document so the
// entries pick up the new table.
func (v *View) change(notice string, apply func() error) tea.Cmd {
	return func() tea.Msg {
		if err := apply(); err != nil {
			return messages.RulesChanged{Err: err}
		}
		if v.editor != nil && v.editor.Loaded() {
			if err := v.editor.Reparse(); err != nil {
				return messages.RulesChanged{Notice: notice, Err: err}
			}
		}
		return messages.RulesChanged{Notice: notice}
	}
}

// View renders the rules view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Directory Rules"))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d node types", len(v.table))))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n")

	if v.mode != editNone {
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[a] Add  [enter] Directory  [n] Rename  [d] Delete  [R] Reset  [w] Save  [esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, height-10)
	v.input.SetWidth(width)
}

// SelectedRule returns the rule under the cursor.
func (v *View) SelectedRule() (domain.DirectoryRule, bool) {
	i := v.list.Selected()
	if i < 0 || i >= len(v.table) {
		return domain.DirectoryRule{}, false
	}
	return v.table[i], true
}

// Select moves the cursor to the rule for nodeType.
func (v *View) Select(nodeType string) {
	for i, r := range v.table {
		if r.NodeType == nodeType {
			v.list.SetSelected(i)
			return
		}
	}
}

// Editing reports whether the input is open.
func (v *View) Editing() bool {
	return v.mode != editNone
}

// InputLabel returns the label of the open input.
func (v *View) InputLabel() string {
	return v.input.Label()
}

// InputValue returns the current input text.
func (v *View) InputValue() string {
	return v.input.Value()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Notice returns the last notice.
func (v *View) Notice() string {
	return v.notice
}

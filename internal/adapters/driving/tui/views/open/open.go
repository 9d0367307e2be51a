// Package open provides the file open prompt for the TUI.
package open

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

var errNoExport = errors.New("export service not available")

// View prompts for a workflow file path and loads it.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	export driving.ExportService
	input  *input.FieldInput
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new open view.
func NewView(s *styles.Styles, km *keymap.KeyMap, export driving.ExportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		export: export,
		input:  input.NewFieldInput(s, "Path", "workflow.json"),
	}
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	return v.input.Focus()
}

// Reset clears the last error and the input.
func (v *View) Reset() {
	v.err = nil
	v.input.Reset()
}

// Update handles messages for the open view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentLoaded:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Back):
			v.input.Blur()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(key, v.keymap.Select):
			path := strings.TrimSpace(v.input.Value())
			if path == "" {
				return v, nil
			}
			return v, v.open(path)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) open(path string) tea.Cmd {
	return func() tea.Msg {
		if v.export == nil {
			return messages.DocumentLoaded{Err: errNoExport}
		}
		if err := v.export.Open(path); err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		return messages.DocumentLoaded{FileName: v.export.FileName()}
	}
}

// View renders the open view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Open Workflow"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] Open  [esc] Back to menu"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// SetValue replaces the path text.
func (v *View) SetValue(path string) {
	v.input.SetValue(path)
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Package source provides the workflow text view for the TUI.
package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// View shows the document text with line numbers and highlights the line
// a node or model entry was located at.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	editor   driving.EditorService
	viewport viewport.Model

	lines []string
	focus int

	width  int
	height int
	ready  bool
}

// NewView creates a new source view.
func NewView(s *styles.Styles, km *keymap.KeyMap, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:   s,
		keymap:   km,
		editor:   editor,
		viewport: viewport.New(80, 18),
		focus:    domain.NoLine,
		width:    80,
		height:   24,
	}
}

// Init loads the current text.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh reloads the text from the editor.
func (v *View) Refresh() {
	v.lines = nil
	if v.editor != nil && v.editor.Text() != "" {
		v.lines = strings.Split(v.editor.Text(), "\n")
	}
	if v.focus >= len(v.lines) {
		v.focus = domain.NoLine
	}
	v.viewport.SetContent(v.render())
}

func (v *View) render() string {
	var b strings.Builder
	for i, line := range v.lines {
		b.WriteString(v.styles.LineNumber.Render(strconv.Itoa(i + 1)))
		if i == v.focus {
			b.WriteString(v.styles.FocusLine.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		if i < len(v.lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Focus highlights the line of a node's model entry and scrolls to it.
// Unknown nodes clear the highlight.
func (v *View) Focus(id domain.NodeID, name string) {
	v.focus = domain.NoLine
	if v.editor != nil {
		if pos, ok := v.editor.Positions()[id]; ok {
			v.focus = pos.FocusLine(name)
		}
	}
	v.Refresh()

	if v.focus > domain.NoLine {
		offset := v.focus - v.viewport.Height/3
		if offset < 0 {
			offset = 0
		}
		v.viewport.SetYOffset(offset)
	}
}

// FocusLine returns the highlighted 0-based line, or domain.NoLine.
func (v *View) FocusLine() int {
	return v.focus
}

// Update handles messages for the source view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentEdited, messages.DocumentLoaded:
		v.Refresh()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewNodes}
			}
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the source view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Workflow JSON"))
	if len(v.lines) > 0 {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d lines", len(v.lines))))
	}
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("No workflow loaded."))
	} else {
		b.WriteString(v.viewport.View())
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Scroll  [g/G] Top/Bottom  [esc] Back to nodes"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.viewport.Width = width
	v.viewport.Height = height - 8
	if v.viewport.Height < 3 {
		v.viewport.Height = 3
	}
	v.viewport.SetContent(v.render())
}

// YOffset returns the current scroll offset.
func (v *View) YOffset() int {
	return v.viewport.YOffset
}

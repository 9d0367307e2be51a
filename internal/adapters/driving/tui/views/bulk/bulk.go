// Package bulk provides the bulk link matching view for the TUI.
package bulk

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// View accepts a freeform blob of download links and matches them to
// model entries by file name.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	editor   driving.EditorService
	textarea textarea.Model

	result *domain.BulkMatchResult
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new bulk links view.
func NewView(s *styles.Styles, km *keymap.KeyMap, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste text containing model download links..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(76)
	ta.SetHeight(10)

	return &View{
		styles:   s,
		keymap:   km,
		editor:   editor,
		textarea: ta,
		width:    80,
		height:   24,
	}
}

// Init focuses the text area.
func (v *View) Init() tea.Cmd {
	return v.textarea.Focus()
}

// Reset clears the last result. The pasted text is kept.
func (v *View) Reset() {
	v.result = nil
	v.err = nil
}

// Update handles messages for the bulk view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.BulkMatched:
		v.err = msg.Err
		result := msg.Result
		v.result = &result
		return v, nil

	case tea.KeyMsg:
		switch key := msg.String(); {
		case keymap.Matches(key, v.keymap.Back):
			v.textarea.Blur()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(key, v.keymap.Apply):
			return v, v.apply(v.textarea.Value())
		}
	}

	var cmd tea.Cmd
	v.textarea, cmd = v.textarea.Update(msg)
	return v, cmd
}

// apply returns the command running the match.
func (v *View) apply(text string) tea.Cmd {
	return func() tea.Msg {
		if v.editor == nil {
			return messages.BulkMatched{Err: domain.ErrNoDocument}
		}
		result, err := v.editor.BulkMatch(text)
		return messages.BulkMatched{Result: result, Err: err}
	}
}

// View renders the bulk view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Bulk Links"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(
		"Links are matched to entries by file name. Blank and broken URLs are filled in."))
	b.WriteString("\n\n")
	b.WriteString(v.textarea.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n\n")
	case v.result != nil:
		b.WriteString(v.styles.Success.Render(v.result.Message()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[ctrl+s] Apply  [esc] Back to menu"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	w := width - 4
	if w < 20 {
		w = 20
	}
	v.textarea.SetWidth(w)
	h := height - 12
	if h < 3 {
		h = 3
	}
	v.textarea.SetHeight(h)
}

// SetValue replaces the pasted text.
func (v *View) SetValue(text string) {
	v.textarea.SetValue(text)
}

// Value returns the pasted text.
func (v *View) Value() string {
	return v.textarea.Value()
}

// Result returns the last match result, or nil.
func (v *View) Result() *domain.BulkMatchResult {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

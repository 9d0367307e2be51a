// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateEditing State = "editing"
	StateNotice  State = "notice"
	StateError   State = "error"
)

// Bar displays the document summary, audit result and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	bindings []key.Binding
	state    State
	message  string
	fileName string
	stats    domain.EntryStats
	audit    domain.ValidationStatus
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar: a summary line above a message line.
func (s *Bar) View() string {
	summary := s.renderSummary()

	left := s.renderLeft()
	right := s.renderRight()
	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	bar := s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
	if summary == "" {
		return bar
	}
	return summary + "\n" + bar
}

// renderSummary renders file name, entry counts and audit summary.
func (s *Bar) renderSummary() string {
	if s.stats.Total == 0 && s.audit.Level() == domain.LevelEmpty {
		return ""
	}

	parts := []string{}
	if s.fileName != "" {
		parts = append(parts, s.styles.Subtitle.Render(s.fileName))
	}
	parts = append(parts,
		s.styles.Normal.Render(fmt.Sprintf("%d entries", s.stats.Total)),
		s.styles.Success.Render(fmt.Sprintf("%d valid", s.stats.Valid)),
		s.styles.Warning.Render(fmt.Sprintf("%d missing", s.stats.MissingURL)),
		s.styles.Error.Render(fmt.Sprintf("%d error", s.stats.ErrorURL)),
	)
	if summary := s.audit.Summary(); summary != "" {
		parts = append(parts, s.styles.ForLevel(s.audit.Level()).Render(summary))
	}
	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

// renderLeft renders the state or message.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateNotice:
		return s.styles.Normal.Render(s.message)
	case StateEditing:
		return s.styles.Warning.Render("Editing")
	case StateReady:
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.bindings
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetNotice shows an informational message.
func (s *Bar) SetNotice(message string) {
	s.state = StateNotice
	s.message = message
}

// SetError shows an error. A nil error is ignored.
func (s *Bar) SetError(err error) {
	if err == nil {
		return
	}
	s.state = StateError
	s.message = err.Error()
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetFileName sets the export file name shown in the summary.
func (s *Bar) SetFileName(name string) {
	s.fileName = name
}

// SetStats sets the entry counts.
func (s *Bar) SetStats(stats domain.EntryStats) {
	s.stats = stats
}

// Stats returns the entry counts.
func (s *Bar) Stats() domain.EntryStats {
	return s.stats
}

// SetAudit sets the audit result.
func (s *Bar) SetAudit(audit domain.ValidationStatus) {
	s.audit = audit
}

// Audit returns the audit result.
func (s *Bar) Audit() domain.ValidationStatus {
	return s.audit
}

// SetBindings sets the hints shown on the right. Nil restores the default.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the message to the default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}

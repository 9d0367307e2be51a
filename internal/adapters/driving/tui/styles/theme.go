// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// Theme is the colour palette of the editor. Success, Warning and Error
// follow the entry classes: valid, missing link, broken link or format.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Highlight is the background of the focused source line.
	Highlight lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Background: lipgloss.Color("#181825"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Highlight:  lipgloss.Color("#3B3558"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style

	// Selected marks the focused list row or field.
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// LineNumber and FocusLine render the source view gutter and the
	// line a node jump lands on.
	LineNumber lipgloss.Style
	FocusLine  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Background).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		LineNumber: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(6).
			Align(lipgloss.Right).
			PaddingRight(1),

		FocusLine: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Highlight),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// ForClass returns the style for an entry class.
func (s *Styles) ForClass(c domain.EntryClass) lipgloss.Style {
	switch c {
	case domain.ClassValid:
		return s.Success
	case domain.ClassMissingURL:
		return s.Warning
	case domain.ClassErrorURL:
		return s.Error
	default:
		return s.Normal
	}
}

// ForLevel returns the style for an audit status level.
func (s *Styles) ForLevel(l domain.StatusLevel) lipgloss.Style {
	switch l {
	case domain.LevelOK:
		return s.Success
	case domain.LevelWarning:
		return s.Warning
	case domain.LevelError:
		return s.Error
	default:
		return s.Muted
	}
}

// ForField returns the style for a field check result.
func (s *Styles) ForField(r domain.FieldResult) lipgloss.Style {
	switch r.Status {
	case domain.StatusValid:
		return s.Success
	case domain.StatusEmpty:
		return s.Warning
	default:
		return s.Error
	}
}

// ForPath returns the style for a model path status.
func (s *Styles) ForPath(p domain.PathStatus) lipgloss.Style {
	switch p {
	case domain.PathValid:
		return s.Success
	case domain.PathFolder:
		return s.Warning
	default:
		return s.Error
	}
}

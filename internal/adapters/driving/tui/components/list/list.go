// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
)

// List displays pre-rendered rows with a cursor, scrolling to keep the
// selection visible.
type List struct {
	rows     []string
	selected int
	empty    string
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a new list component. empty is shown when there are no rows.
func New(s *styles.Styles, empty string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		empty:  empty,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "pgup":
			l.SetSelected(l.selected - l.visible())
		case "pgdown":
			l.SetSelected(l.selected + l.visible())
		case "home", "g":
			l.SetSelected(0)
		case "end", "G":
			l.SetSelected(len(l.rows) - 1)
		}
	}
	return l, nil
}

// View renders the visible window of rows.
func (l *List) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	start, end := l.window()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		indicator := "  "
		if i == l.selected {
			indicator = l.styles.Title.Render("> ")
		}
		lines = append(lines, indicator+l.rows[i])
	}
	return strings.Join(lines, "\n")
}

// window returns the visible row range.
func (l *List) window() (int, int) {
	visible := l.visible()
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.rows) {
		end = len(l.rows)
	}
	return start, end
}

func (l *List) visible() int {
	if l.height < 1 {
		return 1
	}
	return l.height
}

// SetRows replaces the rows, keeping the selection in range.
func (l *List) SetRows(rows []string) {
	l.rows = rows
	l.SetSelected(l.selected)
}

// Rows returns the current rows.
func (l *List) Rows() []string {
	return l.rows
}

// Selected returns the index of the selected row.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected moves the selection, clamped to the row range.
func (l *List) SetSelected(index int) {
	if index >= len(l.rows) {
		index = len(l.rows) - 1
	}
	if index < 0 {
		index = 0
	}
	l.selected = index
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Height returns the current height.
func (l *List) Height() int {
	return l.height
}

// Count returns the number of rows.
func (l *List) Count() int {
	return len(l.rows)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.rows) == 0
}

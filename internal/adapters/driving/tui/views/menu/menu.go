// Package menu is the editor's start screen.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Key selects it directly.
type Item struct {
	Key   string
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View lists the editor screens.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Key: "n", Label: "Model Nodes", Hint: "Edit name, URL and directory of every model entry", View: messages.ViewNodes},
			{Key: "b", Label: "Bulk Links", Hint: "Paste download links and fill matching URLs", View: messages.ViewBulk},
			{Key: "s", Label: "Workflow JSON", Hint: "Read the canonical workflow text", View: messages.ViewSource},
			{Key: "r", Label: "Directory Rules", Hint: "Map node types to model directories", View: messages.ViewRules},
			{Key: "o", Label: "Open File", Hint: "Load a workflow .json from disk", View: messages.ViewOpen},
			{Key: "c", Label: "Settings", Hint: "Auto update and export name", View: messages.ViewSettings},
			{Key: "?", Label: "Help", Hint: "Key bindings", View: messages.ViewHelp},
			{Key: "q", Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil
		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil
		case "home", "g":
			v.selected = 0
			return v, nil
		case "end", "G":
			v.selected = len(v.items) - 1
			return v, nil
		case "enter":
			return v, v.choose(v.selected)
		}

		for i, item := range v.items {
			if item.Key == key {
				v.selected = i
				return v, v.choose(i)
			}
		}
	}

	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("wfmodels"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Workflow model entry editor"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%s]", item.Key)))
		b.WriteString("\n")
	}

	if hint := v.items[v.selected].Hint; hint != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(hint))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [letter] Jump  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

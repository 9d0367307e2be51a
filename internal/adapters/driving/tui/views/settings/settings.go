// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// Item identifies an editable setting.
type Item int

const (
	ItemAutoUpdate Item = iota
	ItemDefaultName
	itemCount
)

var errNoSettings = errors.New("settings service not available")

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService
	editor          driving.EditorService

	// Current settings
	settings *domain.AppSettings
	err      error

	selected Item
	editing  bool
	input    *input.FieldInput

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view. Toggling auto update also applies
// to the editor session when one is given.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	settingsService driving.SettingsService,
	editor driving.EditorService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		settingsService: settingsService,
		editor:          editor,
		input:           input.NewFieldInput(s, "Default name", domain.DefaultExportName),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoSettings}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleKeys(msg)
	}

	return v, nil
}

func (v *View) handleKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.selected < itemCount-1 {
			v.selected++
		}
	case keymap.Matches(key, v.keymap.Select):
		switch v.selected {
		case ItemAutoUpdate:
			return v, v.toggleAutoUpdate()
		case ItemDefaultName:
			name := domain.DefaultExportName
			if v.settings != nil {
				name = v.settings.Export.DefaultName
			}
			v.editing = true
			v.input.SetValue(name)
			return v, v.input.Focus()
		case itemCount:
		}
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.stopEdit()
		return v, nil
	case keymap.Matches(key, v.keymap.Select):
		name := v.input.Value()
		v.stopEdit()
		return v, func() tea.Msg {
			if v.settingsService == nil {
				return messages.SettingsSaved{Err: errNoSettings}
			}
			return messages.SettingsSaved{Err: v.settingsService.SetDefaultName(name)}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) stopEdit() {
	v.editing = false
	v.input.Blur()
	v.input.Reset()
}

func (v *View) toggleAutoUpdate() tea.Cmd {
	enabled := true
	if v.settings != nil {
		enabled = !v.settings.Editor.AutoUpdate
	}
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoSettings}
		}
		if err := v.settingsService.SetAutoUpdate(enabled); err != nil {
			return messages.SettingsSaved{Err: err}
		}
		if v.editor != nil {
			v.editor.SetAutoUpdate(enabled)
		}
		return messages.SettingsSaved{}
	}
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n")
		return b.String()
	}

	auto := "off"
	if v.settings.Editor.AutoUpdate {
		auto = "on"
	}
	v.renderItem(&b, ItemAutoUpdate, "Auto update", auto)
	v.renderItem(&b, ItemDefaultName, "Default file name", v.settings.Export.DefaultName+".json")

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Directory rule overrides"))
	b.WriteString("\n")
	if len(v.settings.DirectoryRules) == 0 {
		b.WriteString(v.styles.Muted.Render("  none"))
		b.WriteString("\n")
	} else {
		types := make([]string, 0, len(v.settings.DirectoryRules))
		for t := range v.settings.DirectoryRules {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			dir := v.settings.DirectoryRules[t]
			if dir == "" {
				dir = "(removed)"
			}
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %s → %s", t, dir)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] change  [esc] back"))
	}
	return b.String()
}

func (v *View) renderItem(b *strings.Builder, item Item, label, value string) {
	indicator := "  "
	style := v.styles.Normal
	if item == v.selected {
		indicator = "> "
		style = v.styles.Selected
	}
	b.WriteString(style.Render(fmt.Sprintf("%s%-18s", indicator, label)))
	b.WriteString(v.styles.Success.Render(value))
	b.WriteString("\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.selected = ItemAutoUpdate
	v.err = nil
	v.stopEdit()
}

// Selected returns the highlighted item.
func (v *View) Selected() Item {
	return v.selected
}

// Editing reports whether the name input is open.
func (v *View) Editing() bool {
	return v.editing
}

// Settings returns the last loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/views/bulk"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/views/nodes"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/views/open"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/views/rules"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/wfmodels/internal/adapters/driving/tui/views/source"
	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/logger"
)

// statusHeight is the number of lines the status bar takes below a view.
const statusHeight = 3

// watchStarted carries the change channel of a started watch.
type watchStarted struct {
	ch <-chan struct{}
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation. It also bounds the file watch.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	nodesView    *nodes.View
	bulkView     *bulk.View
	sourceView   *source.View
	rulesView    *rules.View
	settingsView *settings.View
	openView     *open.View
	statusBar    *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// watchPath is the file reloaded on change; empty disables watching.
	watchPath string
	watchCh   <-chan struct{}

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// It starts on the node list when a document is already loaded.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		nodesView:    nodes.NewView(s, km, ports.Editor, ports.Export),
		bulkView:     bulk.NewView(s, km, ports.Editor),
		sourceView:   source.NewView(s, km, ports.Editor),
		rulesView:    rules.NewView(s, km, ports.Rules, ports.Editor),
		settingsView: settings.NewView(s, km, ports.Settings, ports.Editor),
		openView:     open.NewView(s, km, ports.Export),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewMenu,
	}

	if ports.Editor.Loaded() {
		a.currentView = messages.ViewNodes
		a.nodesView.Refresh()
		a.statusBar.SetBindings(km.NodesHelp())
	}
	a.refreshStatus()

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithOutputDir sets the directory saves are written to.
func (a *App) WithOutputDir(dir string) *App {
	a.nodesView.SetOutputDir(dir)
	return a
}

// WithWatch reloads path whenever it changes on disk. It needs a
// Watcher port.
func (a *App) WithWatch(path string) *App {
	a.watchPath = path
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("wfmodels - "+a.ports.Export.FileName()),
		a.startWatch(),
	)
}

// startWatch returns the command that begins watching, or nil.
func (a *App) startWatch() tea.Cmd {
	if a.watchPath == "" || a.ports.Watcher == nil {
		return nil
	}
	watcher, path, ctx := a.ports.Watcher, a.watchPath, a.ctx
	return func() tea.Msg {
		ch, err := watcher.Watch(ctx, path)
		if err != nil {
			return messages.WatchStopped{Err: err}
		}
		return watchStarted{ch: ch}
	}
}

// waitForChange blocks until the watched file changes.
func (a *App) waitForChange() tea.Cmd {
	ch, path := a.watchCh, a.watchPath
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return messages.WatchStopped{}
		}
		return messages.FileChanged{Path: path}
	}
}

// reload reads path into the editor.
func (a *App) reload(path string) tea.Cmd {
	export := a.ports.Export
	return func() tea.Msg {
		if err := export.Open(path); err != nil {
			return messages.DocumentLoaded{Err: err}
		}
		return messages.DocumentLoaded{FileName: export.FileName()}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if keymap.Matches(msg.String(), a.keymap.Back) {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.DocumentLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			if a.currentView == messages.ViewOpen {
				a.openView, cmd = a.openView.Update(msg)
			}
			return a, cmd
		}
		a.err = nil
		logger.Info("loaded %s", msg.FileName)
		a.nodesView, _ = a.nodesView.Update(msg)
		a.sourceView, _ = a.sourceView.Update(msg)
		a.openView, _ = a.openView.Update(msg)
		a.refreshStatus()
		a.statusBar.SetNotice("Loaded " + msg.FileName)
		if a.currentView == messages.ViewOpen || a.currentView == messages.ViewMenu {
			return a, a.switchTo(messages.ViewNodes)
		}
		return a, nil

	case messages.DocumentEdited:
		a.nodesView, cmd = a.nodesView.Update(msg)
		a.sourceView, _ = a.sourceView.Update(msg)
		a.refreshStatus()
		switch {
		case msg.Err != nil:
			a.setError(msg.Err)
		case msg.Notice != "":
			a.statusBar.SetNotice(msg.Notice)
		default:
			a.statusBar.Clear()
		}
		return a, cmd

	case messages.BulkMatched:
		a.bulkView, cmd = a.bulkView.Update(msg)
		a.nodesView.Refresh()
		a.sourceView.Refresh()
		a.refreshStatus()
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetNotice(msg.Result.Message())
		}
		return a, cmd

	case messages.RulesChanged:
		a.rulesView, cmd = a.rulesView.Update(msg)
		a.nodesView.Refresh()
		a.sourceView.Refresh()
		a.refreshStatus()
		if msg.Err != nil {
			a.setError(msg.Err)
		} else if msg.Notice != "" {
			a.statusBar.SetNotice(msg.Notice)
		}
		return a, cmd

	case messages.DocumentSaved:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetNotice("Saved " + msg.Path)
		}
		return a, nil

	case messages.DocumentCopied:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetNotice("Copied to clipboard")
		}
		return a, nil

	case messages.SourceRequested:
		a.currentView = messages.ViewSource
		a.statusBar.SetBindings(nil)
		a.sourceView.Refresh()
		a.sourceView.Focus(msg.NodeID, msg.Name)
		return a, nil

	case watchStarted:
		a.watchCh = msg.ch
		logger.Info("watching %s", a.watchPath)
		return a, a.waitForChange()

	case messages.FileChanged:
		logger.Debug("file changed: %s", msg.Path)
		return a, tea.Batch(a.reload(msg.Path), a.waitForChange())

	case messages.WatchStopped:
		a.watchCh = nil
		if msg.Err != nil {
			a.setError(fmt.Errorf("watch: %w", msg.Err))
		} else {
			a.statusBar.SetNotice("Stopped watching " + a.watchPath)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	return a, a.forward(msg)
}

// forward passes a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewNodes:
		a.nodesView, cmd = a.nodesView.Update(msg)
	case messages.ViewBulk:
		a.bulkView, cmd = a.bulkView.Update(msg)
	case messages.ViewSource:
		a.sourceView, cmd = a.sourceView.Update(msg)
	case messages.ViewRules:
		a.rulesView, cmd = a.rulesView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewOpen:
		a.openView, cmd = a.openView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

// switchTo activates a view and initialises it.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.SetBindings(nil)

	switch view {
	case messages.ViewNodes:
		a.statusBar.SetBindings(a.keymap.NodesHelp())
		return a.nodesView.Init()
	case messages.ViewBulk:
		a.bulkView.Reset()
		return a.bulkView.Init()
	case messages.ViewSource:
		return a.sourceView.Init()
	case messages.ViewRules:
		return a.rulesView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewOpen:
		a.openView.Reset()
		return a.openView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		// Other views don't need special initialisation
	}
	return nil
}

// refreshStatus copies the document summary into the status bar.
func (a *App) refreshStatus() {
	a.statusBar.SetFileName(a.ports.Export.FileName())
	if !a.ports.Editor.Loaded() {
		a.statusBar.SetStats(domain.EntryStats{})
		a.statusBar.SetAudit(domain.ValidationStatus{})
		return
	}
	a.statusBar.SetStats(a.ports.Editor.Stats())
	a.statusBar.SetAudit(a.ports.Editor.Audit())
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetError(err)
	logger.Debug("tui error: %v", err)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewNodes:
		body = a.nodesView.View()
	case messages.ViewBulk:
		body = a.bulkView.View()
	case messages.ViewSource:
		body = a.sourceView.View()
	case messages.ViewRules:
		body = a.rulesView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewOpen:
		body = a.openView.View()
	default:
		return a.menuView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Model Nodes:
  enter       Edit entry (tab moves to the next field) or path
  a           Add an entry to the node
  d           Delete the entry
  m / x       Jump to the next missing URL / URL error
  u           Write entries to the JSON
  A           Toggle auto update
  v           Show the node in the workflow JSON
  s / c       Save to file / copy to clipboard
  n           Rename the export file

Bulk Links:
  (paste)     Text containing download links
  ctrl+s      Match links to entries by file name

Directory Rules:
  a           Add a rule
  enter       Change the directory
  n           Rename the node type
  d / R       Delete / reset to built-ins
  w           Save rules to config

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar (for testing).
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions and sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := height - statusHeight
	a.menuView.SetDimensions(width, height)
	a.nodesView.SetDimensions(width, body)
	a.bulkView.SetDimensions(width, body)
	a.sourceView.SetDimensions(width, body)
	a.rulesView.SetDimensions(width, body)
	a.settingsView.SetDimensions(width, body)
	a.openView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}

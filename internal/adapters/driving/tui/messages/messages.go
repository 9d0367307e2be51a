// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/wfmodels/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewNodes lists model loader nodes and their entries.
	ViewNodes
	// ViewBulk accepts a freeform blob of download links.
	ViewBulk
	// ViewSource shows the document text.
	ViewSource
	// ViewRules edits the directory rule table.
	ViewRules
	// ViewSettings edits application settings.
	ViewSettings
	// ViewOpen prompts for a workflow file to load.
	ViewOpen
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewNodes:
		return "nodes"
	case ViewBulk:
		return "bulk"
	case ViewSource:
		return "source"
	case ViewRules:
		return "rules"
	case ViewSettings:
		return "settings"
	case ViewOpen:
		return "open"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentLoaded signals a workflow was read into the editor.
type DocumentLoaded struct {
	FileName string
	Err      error
}

// DocumentEdited signals the editor state changed.
type DocumentEdited struct {
	// Notice is an optional line for the status bar.
	Notice string

	// Focus selects an entry after the refresh, when set.
	Focus domain.EntryID

	Err error
}

// BulkMatched carries the outcome of a bulk link match.
type BulkMatched struct {
	Result domain.BulkMatchResult
	Err    error
}

// DocumentSaved signals the document was written to disk.
type DocumentSaved struct {
	Path string
	Err  error
}

// DocumentCopied signals the document was placed on the clipboard.
type DocumentCopied struct {
	Err error
}

// RulesChanged signals the directory rule table was edited.
type RulesChanged struct {
	Notice string
	Err    error
}

// SourceRequested asks for the source view focused on a node's entry.
type SourceRequested struct {
	NodeID domain.NodeID
	Name   string
}

// FileChanged signals the watched file was modified on disk.
type FileChanged struct {
	Path string
}

// WatchStopped signals the file watcher ended.
type WatchStopped struct {
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// Package tui provides an interactive terminal user interface for wfmodels.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// Ports aggregates the services the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Editor owns the loaded workflow and its entries.
	Editor driving.EditorService

	// Rules manages the directory rule table.
	Rules driving.RuleService

	// Export opens, saves and copies documents.
	Export driving.ExportService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Watcher reports changes to the opened file. Optional.
	Watcher driven.FileWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	editor driving.EditorService,
	rules driving.RuleService,
	export driving.ExportService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Editor:   editor,
		Rules:    rules,
		Export:   export,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	if p.Rules == nil {
		return ErrMissingRuleService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}

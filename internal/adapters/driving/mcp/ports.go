package mcp

import (
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// EditorFactory creates an independent editor session.
// Every tool call works on its own session so concurrent clients never
// see each other's documents.
type EditorFactory func() driving.EditorService

// Ports holds the driving ports the MCP server uses.
type Ports struct {
	NewEditor EditorFactory
	Rules     driving.RuleService

	// Links converts link sources by format. Optional.
	Links driven.LinkNormaliser
}

// Validate checks that the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.NewEditor == nil {
		return ErrMissingEditorFactory
	}
	if p.Rules == nil {
		return ErrMissingRuleService
	}
	return nil
}

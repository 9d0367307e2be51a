// Package mcp exposes the workflow model editor to AI assistants over the
// Model Context Protocol.
package mcp

import "errors"

var (
	// ErrMissingEditorFactory is returned when no editor factory is configured.
	ErrMissingEditorFactory = errors.New("mcp: editor factory is required")

	// ErrMissingRuleService is returned when no rule service is configured.
	ErrMissingRuleService = errors.New("mcp: rule service is required")
)

// Package driving declares what the CLI, the TUI and the MCP server may
// ask of the core: editing a workflow session, exporting it, and managing
// directory rules and settings.
//
// internal/core/services implements every interface here.
package driving

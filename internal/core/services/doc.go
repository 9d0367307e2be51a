// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The reconciliation engine is split by concern:
//
//   - extractor.go: finds model loader nodes and their candidate files
//   - reconcile.go: turns candidates and persisted models into entries
//   - validator.go: per-field checks and entry statistics
//   - audit.go: document-wide validation pass
//   - bulk.go: fuzzy URL backfilling from freeform text
//   - indexer.go: advisory line positions of the serialised text
//   - editor.go: the editing session tying them together
//   - rules.go: the session directory rule table
//   - export.go: opening, saving and copying workflow files
//   - settings.go: persisted application settings
package services

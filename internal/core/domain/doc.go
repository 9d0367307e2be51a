// Package domain defines the core business entities for wfmodels.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A parsed workflow with its ordered nodes
//   - Node: A view over one node object inside the document
//   - ModelEntry: The persisted {name, url, directory} record
//   - NodeEditContext: A model loader node with its candidate files
//   - EditableEntry: A model entry bound to the editor with its validation
//   - RuleTable: The node type to storage directory mapping
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

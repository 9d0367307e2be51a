package driving

import "github.com/custodia-labs/wfmodels/internal/core/domain"

// EditorService is the editing session over one workflow document.
// It owns the document, the editable entries and the canonical text.
type EditorService interface {
	// Load parses text and replaces the session state.
	// On failure the previous state is kept and the error wraps
	// domain.ErrParse or domain.ErrNoNodes.
	Load(text string) error

	// Reparse rebuilds the session from the current text, picking up rule
	// table changes. Entry edits made since the last load are kept.
	Reparse() error

	// Loaded reports whether a document is loaded.
	Loaded() bool

	// Text returns the current document text.
	Text() string

	// Nodes returns a snapshot of every model loader node in document order.
	Nodes() []domain.NodeState

	// Node returns a snapshot of one node.
	Node(id domain.NodeID) (domain.NodeState, error)

	// AddEntry appends a blank entry to a node, with the directory
	// pre-filled from the rule table.
	AddEntry(id domain.NodeID) (domain.EditableEntry, error)

	// RemoveEntry removes an entry.
	RemoveEntry(entryID domain.EntryID) error

	// UpdateEntry sets one field of an entry and re-validates it.
	UpdateEntry(entryID domain.EntryID, field domain.EntryField, value string) (domain.EditableEntry, error)

	// SetModelPath rewrites a candidate model path in widgets_values.
	SetModelPath(id domain.NodeID, index int, value string) error

	// Commit writes the complete entries back to the document and
	// re-serialises it. Returns the new text.
	Commit() (string, error)

	// BulkMatch fills entry URLs from the links found in text.
	BulkMatch(text string) (domain.BulkMatchResult, error)

	// Stats counts all entries by class.
	Stats() domain.EntryStats

	// Audit runs the document-wide validation pass.
	Audit() domain.ValidationStatus

	// InvalidModelFiles lists candidate files failing the extension rule.
	InvalidModelFiles() []domain.InvalidModelFile

	// Positions returns the advisory text positions of the current text.
	Positions() map[domain.NodeID]domain.NodePosition

	// FirstEntry finds the first entry of the given class.
	FirstEntry(class domain.EntryClass) (domain.NodeID, domain.EntryID, bool)

	// SetAutoUpdate toggles immediate write-back after each edit.
	SetAutoUpdate(enabled bool)

	// AutoUpdate reports whether edits are written back immediately.
	AutoUpdate() bool
}

package driven

import "github.com/custodia-labs/wfmodels/internal/core/domain"

// RuleStore holds the directory rule table for a session.
type RuleStore interface {
	// All returns a copy of the table.
	All() domain.RuleTable

	// Get returns the directory for a node type.
	Get(nodeType string) (string, bool)

	// Put adds or replaces a rule.
	Put(nodeType, directory string) error

	// Delete removes a rule. Returns domain.ErrNotFound if absent.
	Delete(nodeType string) error

	// Replace swaps the whole table.
	Replace(table domain.RuleTable) error
}

package driving

import "github.com/custodia-labs/wfmodels/internal/core/domain"

// RuleService manages the directory rule table.
// It doubles as the rule lookup handed to extraction.
type RuleService interface {
	domain.DirectoryRules

	// List returns all rules sorted by node type.
	List() []domain.DirectoryRule

	// Set adds or updates a rule.
	Set(nodeType, directory string) error

	// Rename moves a rule to a new node type, keeping its directory.
	Rename(oldType, newType string) error

	// Remove deletes a rule.
	Remove(nodeType string) error

	// Reset restores the built-in rules plus configured overrides.
	Reset() error

	// Persist writes the current table to configuration as overrides.
	Persist() error
}

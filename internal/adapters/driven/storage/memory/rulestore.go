package memory

import (
	"sync"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// RuleStore holds the directory rule table for the session.
type RuleStore struct {
	mu    sync.RWMutex
	rules domain.RuleTable
}

// NewRuleStore creates an empty rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(domain.RuleTable)}
}

// All returns a copy of the table.
func (s *RuleStore) All() domain.RuleTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules.Clone()
}

// Get returns the directory for a node type.
func (s *RuleStore) Get(nodeType string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dir, ok := s.rules[nodeType]
	return dir, ok
}

// Put adds or replaces a rule.
func (s *RuleStore) Put(nodeType, directory string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[nodeType] = directory
	return nil
}

// Delete removes a rule.
func (s *RuleStore) Delete(nodeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[nodeType]; !ok {
		return domain.ErrNotFound
	}
	delete(s.rules, nodeType)
	return nil
}

// Replace swaps the whole table.
func (s *RuleStore) Replace(table domain.RuleTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = table.Clone()
	return nil
}

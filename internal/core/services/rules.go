package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
	"github.com/custodia-labs/wfmodels/internal/logger"
)

// Ensure RuleService implements the interface.
var _ driving.RuleService = (*RuleService)(nil)

// keyDirectoryRules prefixes rule overrides in configuration.
const keyDirectoryRules = "directory_rules"

// RuleService manages the session's directory rule table.
// The table is seeded from the built-in rules overlaid with configured
// overrides. Edits stay in the session unless Persist is called.
type RuleService struct {
	store       driven.RuleStore
	configStore driven.ConfigStore
}

// NewRuleService creates a rule service and seeds the store.
// configStore may be nil, in which case only built-in rules apply.
func NewRuleService(store driven.RuleStore, configStore driven.ConfigStore) *RuleService {
	s := &RuleService{store: store, configStore: configStore}
	if err := s.Reset(); err != nil {
		logger.Warn("seed directory rules: %v", err)
	}
	return s
}

// Has reports whether a rule exists for the node type.
func (s *RuleService) Has(nodeType string) bool {
	if nodeType == "" {
		return false
	}
	_, ok := s.store.Get(nodeType)
	return ok
}

// DirectoryFor returns the directory for the node type, or "".
func (s *RuleService) DirectoryFor(nodeType string) string {
	dir, _ := s.store.Get(nodeType)
	return dir
}

// List returns all rules sorted by node type.
func (s *RuleService) List() []domain.DirectoryRule {
	return s.store.All().Rules()
}

// Set adds or updates a rule. Both fields are required: a blank
// directory is how persisted configuration marks a removed rule.
func (s *RuleService) Set(nodeType, directory string) error {
	nodeType = strings.TrimSpace(nodeType)
	if nodeType == "" {
		return fmt.Errorf("%w: node type is required", domain.ErrInvalidInput)
	}
	directory = strings.TrimSpace(directory)
	if directory == "" {
		return fmt.Errorf("%w: directory is required, remove the rule instead", domain.ErrInvalidInput)
	}
	return s.store.Put(nodeType, directory)
}

// Rename moves a rule to a new node type, keeping its directory.
// Renaming to an empty or unchanged type is a no-op.
func (s *RuleService) Rename(oldType, newType string) error {
	newType = strings.TrimSpace(newType)
	if newType == "" || newType == oldType {
		return nil
	}
	dir, ok := s.store.Get(oldType)
	if !ok {
		return fmt.Errorf("rule %q: %w", oldType, domain.ErrNotFound)
	}
	if err := s.store.Put(newType, dir); err != nil {
		return err
	}
	return s.store.Delete(oldType)
}

// Remove deletes a rule.
func (s *RuleService) Remove(nodeType string) error {
	return s.store.Delete(nodeType)
}

// Reset restores the built-in rules plus configured overrides.
func (s *RuleService) Reset() error {
	table := domain.DefaultDirectoryRules()
	if s.configStore != nil {
		for nodeType, dir := range s.configStore.GetStringMap(keyDirectoryRules) {
			if dir == "" {
				delete(table, nodeType)
				continue
			}
			table[nodeType] = dir
		}
	}
	return s.store.Replace(table)
}

// Persist writes the current table to configuration as overrides of the
// built-in rules. A built-in rule missing from the table is written with an
// empty directory, which Reset reads as a removal.
func (s *RuleService) Persist() error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no configuration store", domain.ErrInvalidInput)
	}

	current := s.store.All()
	defaults := domain.DefaultDirectoryRules()
	overrides := s.configStore.GetStringMap(keyDirectoryRules)

	for nodeType := range overrides {
		_, keep := current[nodeType]
		if !keep && !defaults.Has(nodeType) {
			if err := s.configStore.Delete(ruleKey(nodeType)); err != nil {
				return err
			}
		}
	}

	for nodeType, dir := range current {
		if def, ok := defaults[nodeType]; ok && def == dir {
			if _, set := overrides[nodeType]; set {
				if err := s.configStore.Delete(ruleKey(nodeType)); err != nil {
					return err
				}
			}
			continue
		}
		if err := s.configStore.Set(ruleKey(nodeType), dir); err != nil {
			return err
		}
	}

	for nodeType := range defaults {
		if _, ok := current[nodeType]; !ok {
			if err := s.configStore.Set(ruleKey(nodeType), ""); err != nil {
				return err
			}
		}
	}

	logger.Debug("persisted %d directory rules to %s", len(current), s.configStore.Path())
	return s.configStore.Save()
}

func ruleKey(nodeType string) string {
	return keyDirectoryRules + "." + nodeType
}

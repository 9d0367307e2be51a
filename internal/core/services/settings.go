package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAutoUpdate  = "editor.auto_update"
	keyDefaultName = "export.default_name"
)

// SettingsService manages application settings.
// Directory rule overrides are read here for display but are written by
// RuleService.Persist.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Editor: domain.EditorSettings{
			AutoUpdate: s.getBool(keyAutoUpdate, defaults.Editor.AutoUpdate),
		},
		Export: domain.ExportSettings{
			DefaultName: s.getString(keyDefaultName, defaults.Export.DefaultName),
		},
		DirectoryRules: s.configStore.GetStringMap(keyDirectoryRules),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings required", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyAutoUpdate, settings.Editor.AutoUpdate); err != nil {
		return fmt.Errorf("save editor auto_update: %w", err)
	}
	if err := s.configStore.Set(keyDefaultName, settings.Export.DefaultName); err != nil {
		return fmt.Errorf("save export default_name: %w", err)
	}

	return nil
}

// SetAutoUpdate updates the auto-update default.
func (s *SettingsService) SetAutoUpdate(enabled bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Editor.AutoUpdate = enabled
	return s.Save(settings)
}

// SetDefaultName updates the default export base name.
// The name is stored without a .json suffix.
func (s *SettingsService) SetDefaultName(name string) error {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".json")
	if name == "" {
		return fmt.Errorf("%w: default name must not be empty", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Export.DefaultName = name
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

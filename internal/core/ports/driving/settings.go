package driving

import "github.com/custodia-labs/wfmodels/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetAutoUpdate updates the auto-update default.
	SetAutoUpdate(enabled bool) error

	// SetDefaultName updates the default export base name.
	SetDefaultName(name string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}

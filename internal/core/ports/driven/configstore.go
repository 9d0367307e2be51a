package driven

// ConfigStore is a flat key/value view of the user's configuration.
// Keys are dotted ("editor.auto_update", "directory_rules.LoraLoader").
type ConfigStore interface {
	// Get returns the raw value for key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns the value for key, or "" when it is unset or not a string.
	GetString(key string) string

	// GetBool returns the value for key, or false when it is unset or not a bool.
	GetBool(key string) bool

	// GetStringMap returns every string value whose key starts with
	// prefix + ".", keyed by the remainder of the key.
	GetStringMap(prefix string) map[string]string

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Delete removes a value and persists the change. Deleting an unset
	// key is not an error.
	Delete(key string) error

	Save() error
	Load() error

	// Path identifies where the configuration lives, for log lines.
	Path() string
}

package domain

// DefaultExportName is the file base name used when none is given.
const DefaultExportName = "Untitled"

// EditorSettings holds editing behaviour configuration.
type EditorSettings struct {
	// AutoUpdate writes edits back to the document text immediately.
	AutoUpdate bool
}

// ExportSettings holds output configuration.
type ExportSettings struct {
	// DefaultName is the base file name used for saves when none is given.
	DefaultName string
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Editor EditorSettings
	Export ExportSettings

	// DirectoryRules are rule overrides layered over the built-in table.
	DirectoryRules map[string]string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Editor: EditorSettings{AutoUpdate: true},
		Export: ExportSettings{DefaultName: DefaultExportName},
	}
}

package driving

// ExportService moves documents in and out of the editor.
type ExportService interface {
	// Open reads a .json file into the editor and remembers its base name.
	Open(path string) error

	// FileName returns the file name a save would use.
	FileName() string

	// SetBaseName sets the base name used for saves.
	SetBaseName(name string)

	// Save writes the current text into dir and returns the written path.
	Save(dir string) (string, error)

	// Copy places the current text on the clipboard.
	Copy() error
}

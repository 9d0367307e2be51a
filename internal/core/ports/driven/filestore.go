package driven

// FileStore reads and writes workflow files.
type FileStore interface {
	// ReadFile returns the file content as text.
	ReadFile(path string) (string, error)

	// WriteFile writes text to a file, replacing it.
	WriteFile(path, text string) error
}

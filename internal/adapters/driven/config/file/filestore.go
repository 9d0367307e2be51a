package file

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore reads and writes workflow files on the local filesystem.
type FileStore struct{}

// NewFileStore creates a new filesystem store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// ReadFile returns the file content as text.
func (s *FileStore) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes text to a file, creating parent directories.
func (s *FileStore) WriteFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(text), 0644)
}

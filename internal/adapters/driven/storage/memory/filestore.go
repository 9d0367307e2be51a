package memory

import (
	"os"
	"sync"

	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore keeps workflow files in memory for testing.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewFileStore creates an empty in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{files: make(map[string]string)}
}

// ReadFile returns the stored text or an os.ErrNotExist error.
func (s *FileStore) ReadFile(path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.files[path]
	if !ok {
		return "", &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return text, nil
}

// WriteFile stores text under path.
func (s *FileStore) WriteFile(path, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = text
	return nil
}

package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/wfmodels/internal/core/domain"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/core/ports/driving"
	"github.com/custodia-labs/wfmodels/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

const jsonExt = ".json"

// ExportFileName returns base with a .json extension, falling back to the
// default export name when base is blank. An existing .json is kept.
func ExportFileName(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = domain.DefaultExportName
	}
	if strings.HasSuffix(strings.ToLower(base), jsonExt) {
		return base
	}
	return base + jsonExt
}

// baseName trims name and drops a trailing .json.
func baseName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(name), jsonExt) {
		name = strings.TrimSpace(name[:len(name)-len(jsonExt)])
	}
	return name
}

// CheckJSONFileName rejects paths that do not end in .json.
func CheckJSONFileName(path string) error {
	if !strings.HasSuffix(strings.ToLower(path), jsonExt) {
		return fmt.Errorf("%w: %s", domain.ErrNotJSONFile, filepath.Base(path))
	}
	return nil
}

// ExportService opens workflow files into the editor and writes the
// editor's text back out to disk or the clipboard.
type ExportService struct {
	mu sync.Mutex

	editor    driving.EditorService
	files     driven.FileStore
	clipboard driven.Clipboard

	baseName string
}

// NewExportService creates an export service. clipboard may be nil when
// the platform has none.
func NewExportService(
	editor driving.EditorService,
	files driven.FileStore,
	clipboard driven.Clipboard,
	defaultName string,
) *ExportService {
	return &ExportService{
		editor:    editor,
		files:     files,
		clipboard: clipboard,
		baseName:  baseName(defaultName),
	}
}

// Open reads a .json file into the editor and remembers its base name.
func (s *ExportService) Open(path string) error {
	if err := CheckJSONFileName(path); err != nil {
		return err
	}
	data, err := s.files.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := s.editor.Load(data); err != nil {
		return err
	}

	base := filepath.Base(path)
	s.SetBaseName(base[:len(base)-len(jsonExt)])
	logger.Debug("opened %s", path)
	return nil
}

// FileName returns the file name a save would use.
func (s *ExportService) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportFileName(s.baseName)
}

// SetBaseName sets the base name used for saves. A trailing .json is
// dropped so it is not doubled.
func (s *ExportService) SetBaseName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseName = baseName(name)
}

// Save writes the current text into dir and returns the written path.
func (s *ExportService) Save(dir string) (string, error) {
	text := s.editor.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyContent
	}

	path := filepath.Join(dir, s.FileName())
	if err := s.files.WriteFile(path, text); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("saved workflow to %s", path)
	return path, nil
}

// Copy places the current text on the clipboard.
func (s *ExportService) Copy() error {
	text := s.editor.Text()
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyContent
	}
	if s.clipboard == nil {
		return errors.New("clipboard not available")
	}
	if err := s.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

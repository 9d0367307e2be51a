// Package watch reports changes to a workflow file on disk so the editor can
// reload it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/wfmodels/internal/core/ports/driven"
	"github.com/custodia-labs/wfmodels/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// DefaultInterval is the minimum time between two reload signals.
const DefaultInterval = 250 * time.Millisecond

// ErrNoPath is returned when Watch is called without a file path.
var ErrNoPath = errors.New("watch: file path required")

// Watcher emits a signal whenever the watched file is created or written.
// Editors commonly replace files by rename, so the parent directory is
// watched and events are filtered by base name.
type Watcher struct {
	interval time.Duration
}

// New creates a watcher. A non-positive interval selects DefaultInterval.
func New(interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{interval: interval}
}

// Watch starts watching path. The returned channel receives one value per
// throttled burst of changes and is closed when ctx is cancelled or the
// underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	if path == "" {
		return nil, ErrNoPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan struct{}, 1)
	limiter := rate.NewLimiter(rate.Every(w.interval), 1)
	name := filepath.Base(abs)

	go func() {
		defer close(out)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if !relevant(event, name) {
					continue
				}
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				logger.Debug("workflow file changed: %s (%s)", event.Name, event.Op)
				select {
				case out <- struct{}{}:
				default:
					// A signal is already pending.
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("file watcher error: %v", err)
			}
		}
	}()

	return out, nil
}

// relevant reports whether event changes the content of the watched file.
func relevant(event fsnotify.Event, name string) bool {
	if filepath.Base(event.Name) != name {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

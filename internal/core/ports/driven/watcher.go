package driven

import "context"

// FileWatcher reports changes to a file on disk.
type FileWatcher interface {
	// Watch returns a channel that receives a value after each change to
	// path. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("uses default interval", func(t *testing.T) {
		w := New(0)
		assert.Equal(t, DefaultInterval, w.interval)
	})

	t.Run("keeps explicit interval", func(t *testing.T) {
		w := New(time.Second)
		assert.Equal(t, time.Second, w.interval)
	})
}

func TestWatch_RequiresPath(t *testing.T) {
	_, err := New(0).Watch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := New(0).Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "wf.json"))
	assert.Error(t, err)
}

func TestWatch_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":[]}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := New(10*time.Millisecond).Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":[{}]}`), 0o644))

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal received")
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := New(0).Watch(ctx, path)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to file", fsnotify.Event{Name: "/tmp/a/wf.json", Op: fsnotify.Write}, true},
		{"create file", fsnotify.Event{Name: "/tmp/a/wf.json", Op: fsnotify.Create}, true},
		{"chmod ignored", fsnotify.Event{Name: "/tmp/a/wf.json", Op: fsnotify.Chmod}, false},
		{"remove ignored", fsnotify.Event{Name: "/tmp/a/wf.json", Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: "/tmp/a/other.json", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event, "wf.json"))
		})
	}
}

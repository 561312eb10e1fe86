package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memobook.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	w, err := NewSnapshotWatcher(path)
	require.NoError(t, err)
	w.debounceDur = 50 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("no event after snapshot write")
	}
}

func TestSnapshotWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memobook.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	w, err := NewSnapshotWatcher(path)
	require.NoError(t, err)
	w.debounceDur = 50 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644))

	select {
	case <-w.Events():
		t.Fatal("event fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSnapshotWatcherStopIsIdempotentBeforeStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memobook.db")
	w, err := NewSnapshotWatcher(path)
	require.NoError(t, err)
	w.Stop() // never started; must not hang or panic
}

func TestSnapshotWatcherStopAfterFailedStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "memobook.db")
	w, err := NewSnapshotWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.Error(t, w.Start(ctx), "watching a nonexistent directory should fail")

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop hung after a failed Start")
	}
}

package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"memobook/internal/logging"
)

// SnapshotWatcher watches the snapshot database file and reports when another
// process rewrites it, so the interactive view can reload. Events are
// debounced: a burst of writes (SQLite touches the db and its WAL sidecar)
// collapses into one notification.
type SnapshotWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
	events      chan struct{}
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewSnapshotWatcher creates a watcher for the snapshot at path. Call Start
// to begin watching.
func NewSnapshotWatcher(path string) (*SnapshotWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &SnapshotWatcher{
		watcher:     watcher,
		path:        path,
		debounceDur: 500 * time.Millisecond,
		events:      make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Events delivers one value per (debounced) snapshot change. The channel has
// a buffer of one; an unread notification absorbs later ones.
func (w *SnapshotWatcher) Events() <-chan struct{} { return w.events }

// Start begins watching the snapshot's directory. Non-blocking; the watch
// loop runs in a goroutine until Stop or context cancellation.
func (w *SnapshotWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	// Watch the directory, not the file: SQLite replaces files on checkpoint
	// and a direct file watch would go stale. The running flag flips only
	// after the watch is in place; a failed Add leaves the watcher stopped so
	// a later Stop does not wait for a loop that never launched.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true

	go w.loop(ctx)
	logging.Store("Snapshot watcher started for %s", w.path)
	return nil
}

func (w *SnapshotWatcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var timerCh <-chan time.Time

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if name != base && name != base+"-wal" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounceDur)
			} else {
				timer.Reset(w.debounceDur)
			}
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryStore).Warn("Snapshot watcher error: %v", err)
		}
	}
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *SnapshotWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

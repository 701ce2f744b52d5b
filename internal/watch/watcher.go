// Package watch reports changes to the file backing a board.
package watch

import (
	"context"
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"kanban/internal/logs"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 300 * time.Millisecond

// Event is emitted once per burst of writes that changed the file content
type Event struct {
	Path    string
	Removed bool
}

// Watcher watches a single file. The parent directory is watched so that
// atomic replace-by-rename is seen as a change.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending bool
	hash    [sha256.Size]byte

	events chan Event
}

// New creates a watcher for path. A zero debounce uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch: empty path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		watcher:  fsw,
		events:   make(chan Event, 1),
	}, nil
}

// Events returns the channel of change events. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Start records the current content and begins watching
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	w.changed()

	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	logs.Logger.Printf("Watching %s (debounce %s)", w.path, w.debounce)
	return nil
}

// Stop stops the watcher. The events channel is closed by processEvents.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.mu.Lock()
			w.pending = true
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logs.Logger.Printf("Watcher error: %v", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// flushPending emits one event if anything happened since the last tick
// and the content differs from what was last seen.
func (w *Watcher) flushPending(ctx context.Context) {
	w.mu.Lock()
	pending := w.pending
	w.pending = false
	w.mu.Unlock()
	if !pending {
		return
	}

	event := Event{Path: w.path}
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		event.Removed = true
		w.mu.Lock()
		w.hash = [sha256.Size]byte{}
		w.mu.Unlock()
	} else if !w.changed() {
		return
	}

	select {
	case w.events <- event:
	case <-ctx.Done():
	default:
		// an undelivered event already covers this change
	}
}

// changed re-hashes the file and reports whether the content differs from
// the previous hash
func (w *Watcher) changed() bool {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if sum == w.hash {
		return false
	}
	w.hash = sum
	return true
}

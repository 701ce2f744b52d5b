package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher, timeout time.Duration) (Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		return ev, ok
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestNew_RejectsEmptyPath(t *testing.T) {
	_, err := New("", 0)
	assert.Error(t, err)
}

func TestWatcher_EmitsOnContentChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kanban-board.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"columns": []}`), 0644))

	w, err := New(path, 50*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// atomic replace, like the file store
	tmp := filepath.Join(dir, ".kanban-board-tmp.json")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"columns": [{"id": "a"}]}`), 0644))
	require.NoError(t, os.Rename(tmp, path))

	ev, ok := waitEvent(t, w, 2*time.Second)
	require.True(t, ok, "expected a change event")
	assert.Equal(t, path, ev.Path)
	assert.False(t, ev.Removed)
}

func TestWatcher_IgnoresIdenticalRewriteAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kanban-board.json")
	content := []byte(`{"columns": []}`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	w, err := New(path, 50*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, content, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0644))

	_, ok := waitEvent(t, w, 300*time.Millisecond)
	assert.False(t, ok, "no event expected")
}

func TestWatcher_ClosesEventsOnStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanban.db")
	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())

	_, ok := waitEvent(t, w, time.Second)
	assert.False(t, ok)
}

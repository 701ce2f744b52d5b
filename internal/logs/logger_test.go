package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_WritesToDir(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = Close() })

	require.NoError(t, Initialize(dir))
	Logger.Printf("Service: AddCard %s", "card-1")
	require.NoError(t, Close())

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "[kanban] "))
	assert.Contains(t, string(data), "Service: AddCard card-1")
}

func TestInitialize_IgnoresEmptyDir(t *testing.T) {
	assert.NoError(t, Initialize(""))
	assert.NoError(t, Initialize("."))
}

func TestInitialize_BadDir(t *testing.T) {
	err := Initialize(filepath.Join(t.TempDir(), "missing", "nested"))
	assert.Error(t, err)
	assert.NotNil(t, Logger)
}

func TestInitialize_RotatesLargeLog(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = Close() })

	logPath := filepath.Join(dir, "debug.log")
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxSize), 0644))

	require.NoError(t, Initialize(dir))
	Logger.Println("fresh")
	require.NoError(t, Close())

	old, err := os.Stat(logPath + ".1")
	require.NoError(t, err)
	assert.EqualValues(t, maxSize, old.Size())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Less(t, len(data), maxSize)
	assert.Contains(t, string(data), "fresh")
}

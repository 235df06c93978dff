package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForChange(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Changes():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherSeesAtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	w, err := newWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, saveConfig(path, DefaultConfig()))

	assert.True(t, waitForChange(t, w, 3*time.Second), "expected a change signal")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := newWatcher(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	assert.False(t, waitForChange(t, w, 600*time.Millisecond))
}

func TestWatcherCoalescesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	w, err := newWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	cfg := DefaultConfig()
	for i := 0; i < 3; i++ {
		cfg.TooltipDelayMS = 100 + i
		require.NoError(t, saveConfig(path, cfg))
	}

	assert.True(t, waitForChange(t, w, 3*time.Second))
	assert.False(t, waitForChange(t, w, 600*time.Millisecond), "burst should settle into one signal")
}

func TestWatcherCloseStopsDelivery(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	w, err := newWatcher(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "closing twice is fine")

	require.NoError(t, saveConfig(path, DefaultConfig()))
	assert.False(t, waitForChange(t, w, 400*time.Millisecond))
}

package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, d *Driver, options WatchOptions) *Watcher {
	t.Helper()
	w, err := NewWatcher(d, options, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })
	return w
}

func TestNewWatcher_ZeroOptionsGetDefaults(t *testing.T) {
	d := newTestDriver(t, Config{Root: t.TempDir()})
	w := newTestWatcher(t, d, WatchOptions{})

	assert.Equal(t, 200, w.options.DebounceMs)
	assert.Equal(t, 1024, w.options.HashCacheSize)
}

func TestWatcher_StopTwice(t *testing.T) {
	d := newTestDriver(t, Config{Root: t.TempDir()})
	w := newTestWatcher(t, d, DefaultWatchOptions())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestProcessChanged_MigratesEligibleFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"panel.dart": "const Divider(),\n",
	})
	d := newTestDriver(t, Config{Root: root})
	w := newTestWatcher(t, d, DefaultWatchOptions())

	w.processChanged(filepath.Join(root, "panel.dart"))

	assert.Contains(t, readBack(t, root, "panel.dart"), "ThemedDivider()")
}

func TestProcessChanged_IgnoresIneligibleFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"notes.txt": "const Divider(),\n",
	})
	d := newTestDriver(t, Config{Root: root})
	w := newTestWatcher(t, d, DefaultWatchOptions())

	w.processChanged(filepath.Join(root, "notes.txt"))

	assert.Equal(t, "const Divider(),\n", readBack(t, root, "notes.txt"))
}

func TestProcessChanged_HashCacheBreaksSelfEventLoop(t *testing.T) {
	root := writeTree(t, map[string]string{
		"panel.dart": "const Divider(),\n",
	})
	d := newTestDriver(t, Config{Root: root})
	w := newTestWatcher(t, d, DefaultWatchOptions())
	path := filepath.Join(root, "panel.dart")

	w.processChanged(path)
	afterFirst := readBack(t, root, "panel.dart")

	// The write-back raises its own event; the recorded hash must turn
	// that reprocessing into a no-op.
	hash, ok := w.hashes.Get(path)
	require.True(t, ok)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, contentHash(data), hash)

	w.processChanged(path)
	assert.Equal(t, afterFirst, readBack(t, root, "panel.dart"))
}

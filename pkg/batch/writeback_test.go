package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc", normalizeNewlines("a\r\nb\r\nc"))
	assert.Equal(t, "a\nb", normalizeNewlines("a\nb"))
	assert.Equal(t, "", normalizeNewlines(""))
}

func TestWriteFileAtomic_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.dart")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeFileAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileAtomic_PreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.dart")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, writeFileAtomic(path, []byte("new")))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}

func TestWriteFileAtomic_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panel.dart")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, writeFileAtomic(path, []byte("new")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "panel.dart", entries[0].Name())
}

func TestWriteFileAtomic_MissingDirectoryFails(t *testing.T) {
	err := writeFileAtomic(filepath.Join(t.TempDir(), "absent", "panel.dart"), []byte("x"))
	require.Error(t, err)
}

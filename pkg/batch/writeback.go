package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// normalizeNewlines rewrites CRLF sequences to the single LF convention
// the tree uses on disk.
func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// writeFileAtomic replaces the file at path by writing to a temporary file
// in the same directory and renaming it over the original. A crash or
// cancellation mid-write leaves the original intact; readers never observe
// a partially written file. File mode is preserved from the original when
// it can be read, 0644 otherwise.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	perm := os.FileMode(0644)
	if stat, err := os.Stat(path); err == nil {
		perm = stat.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure path below.
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(fmt.Errorf("write %q: %w", tmpName, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("sync %q: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %q: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %q over %q: %w", tmpName, path, err)
	}

	return nil
}

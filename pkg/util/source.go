package util

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadSource reads a source file through a read-only memory mapping,
// falling back to a plain read when mmap is unavailable (network mounts,
// exotic file systems).
//
// The returned slice is always a private copy: the driver rewrites files in
// place by renaming over them, and holding a mapping of the old inode
// across that rename would pin it. Map, copy, unmap.
func ReadSource(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	// Zero-byte files can't be mapped.
	if stat.Size() == 0 {
		return []byte{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return os.ReadFile(path)
	}

	data := make([]byte, len(m))
	copy(data, m)

	if err := m.Unmap(); err != nil {
		return nil, fmt.Errorf("unmap %q: %w", path, err)
	}
	return data, nil
}

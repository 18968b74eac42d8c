package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/thememig/pkg/util"
)

// WatchOptions configures watch-mode behavior.
type WatchOptions struct {
	// DebounceMs groups rapid successive events for one file into a single
	// rewrite. Default: 200ms.
	DebounceMs int

	// HashCacheSize bounds the LRU of last-seen content hashes.
	// Default: 1024 files.
	HashCacheSize int
}

// DefaultWatchOptions returns the recommended watch settings.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		DebounceMs:    200,
		HashCacheSize: 1024,
	}
}

// Watcher keeps a tree migrated as files change: every write or create
// event debounces into a single-file run of the driver pipeline.
//
// The rewrite pass is idempotent, so reprocessing is always safe — but our
// own write-backs also raise events. The content-hash LRU breaks that loop
// cheaply: a file whose bytes match the hash recorded at its last
// processing is skipped without running any rule.
type Watcher struct {
	watcher *fsnotify.Watcher
	driver  *Driver
	hashes  *lru.Cache[string, string]
	logger  *slog.Logger
	options WatchOptions

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher over the given driver.
func NewWatcher(driver *Driver, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if options.HashCacheSize == 0 {
		options.HashCacheSize = 1024
	}

	hashes, err := lru.New[string, string](options.HashCacheSize)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("create hash cache: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher:        fsw,
		driver:         driver,
		hashes:         hashes,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching the driver's root and all subdirectories, then
// processes events on a background goroutine until Stop.
func (w *Watcher) Start() error {
	root := w.driver.cfg.Root

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if werr := w.watcher.Add(path); werr != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", werr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("setup watches under %q: %w", root, err)
	}

	w.logger.Info("watch mode started", "root", root)

	go w.eventLoop()
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("watch mode stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		// New directories need their own watch.
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return
		}
		w.debounceProcess(path)

	case event.Op&fsnotify.Write == fsnotify.Write:
		w.debounceProcess(path)

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.hashes.Remove(path)
	}
}

// debounceProcess schedules processing after the debounce delay, replacing
// any pending timer for the same file.
func (w *Watcher) debounceProcess(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.processChanged(path)

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

// processChanged runs the driver pipeline on one changed file unless its
// content hash matches the last processed state.
func (w *Watcher) processChanged(path string) {
	if !w.driver.eligible(path) {
		return
	}

	raw, err := util.ReadSource(path)
	if err != nil {
		w.logger.Warn("failed to read changed file", "file", path, "error", err)
		return
	}

	hash := contentHash(raw)
	if prev, ok := w.hashes.Get(path); ok && prev == hash {
		w.logger.Debug("content unchanged, skipping", "file", path)
		return
	}

	stats := &RunStats{ReplacementsByRule: make(map[string]int), StartTime: time.Now()}
	modified := w.driver.ProcessFile(path, stats)
	stats.EndTime = time.Now()

	if modified && !w.driver.cfg.DryRun {
		// Record the hash of what we just wrote so the resulting event
		// is a no-op.
		if written, err := util.ReadSource(path); err == nil {
			w.hashes.Add(path, contentHash(written))
		}
	} else {
		w.hashes.Add(path, hash)
	}

	if modified {
		w.logger.Info("changed file migrated",
			"file", path,
			"replacements", stats.TotalReplacements,
			"imports_added", stats.ImportsAdded)
	}
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Package batch walks a source tree and applies the rewrite pass, import
// reconciliation, and complexity triage to every eligible file, writing
// back only what actually changed. Pure orchestration: all rewrite
// semantics live in pkg/rewrite and pkg/rules.
package batch

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/thememig/pkg/imports"
	"github.com/gnana997/thememig/pkg/rewrite"
	"github.com/gnana997/thememig/pkg/util"
)

// Config is the explicit driver configuration. Everything the original
// one-shot scripts kept as globals — project root, skip list, patterns —
// is passed in here so the driver can run against synthetic trees in tests.
type Config struct {
	// Root is the directory tree to migrate.
	Root string

	// SourceRoot is the directory import paths are computed relative to.
	// Defaults to Root. Must be Root or an ancestor-relative subdirectory
	// containing the processed files.
	SourceRoot string

	// Include are doublestar patterns selecting eligible files,
	// relative to Root. Default: **/*.dart.
	Include []string

	// Exclude are doublestar patterns pruning files and whole directories.
	Exclude []string

	// SkipFiles lists file names never modified regardless of content:
	// the themed component definitions and known-hard files.
	SkipFiles []string

	// DryRun reports intended changes without writing anything.
	DryRun bool
}

// Driver applies the rule catalog to a source tree, one file at a time.
// Processing is sequential by design: each file completes its
// read → rewrite → write cycle before the next begins, so an interruption
// can affect at most the file currently in flight — and that one is
// protected by the atomic rename in writeFileAtomic.
type Driver struct {
	cfg      Config
	rewriter *rewrite.Rewriter
	checks   []rewrite.TriageCheck
	skip     map[string]bool
	logger   *slog.Logger
}

// NewDriver validates cfg and builds a Driver over the given rule catalog
// and triage checks.
func NewDriver(cfg Config, rules []rewrite.Rule, checks []rewrite.TriageCheck, logger *slog.Logger) (*Driver, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("driver config: root is required")
	}
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = cfg.Root
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**/*.dart"}
	}
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("driver config: invalid pattern %q", pattern)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	skip := make(map[string]bool, len(cfg.SkipFiles))
	for _, name := range cfg.SkipFiles {
		skip[name] = true
	}

	return &Driver{
		cfg:      cfg,
		rewriter: rewrite.NewRewriter(rules, logger),
		checks:   checks,
		skip:     skip,
		logger:   logger,
	}, nil
}

// Run processes the whole tree and returns the aggregated statistics.
// Errors are local to individual files; Run itself fails only when the
// tree cannot be walked at all.
func (d *Driver) Run() (*RunStats, error) {
	stats := &RunStats{
		ReplacementsByRule: make(map[string]int),
		DryRun:             d.cfg.DryRun,
		StartTime:          time.Now(),
	}

	files, err := d.discoverFiles()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	d.logger.Info("starting migration run",
		"root", d.cfg.Root,
		"files", len(files),
		"dry_run", d.cfg.DryRun)

	for _, file := range files {
		d.ProcessFile(file, stats)
	}

	stats.EndTime = time.Now()

	d.logger.Info("migration run complete",
		"scanned", stats.FilesScanned,
		"modified", stats.FilesModified,
		"replacements", stats.TotalReplacements,
		"imports_added", stats.ImportsAdded,
		"triage", len(stats.Triage),
		"duration_ms", stats.EndTime.Sub(stats.StartTime).Milliseconds())

	return stats, nil
}

// discoverFiles walks Root and returns matching files in walk order.
func (d *Driver) discoverFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(d.cfg.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.logger.Warn("walk error", "path", path, "error", err)
			return nil
		}

		relPath, err := filepath.Rel(d.cfg.Root, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range d.cfg.Exclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if entry.IsDir() {
			return nil
		}

		for _, pattern := range d.cfg.Include {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ProcessFile runs the full per-file pipeline and folds the outcome into
// stats. Returns true when the file was modified (or would have been,
// under DryRun).
func (d *Driver) ProcessFile(path string, stats *RunStats) bool {
	if d.skip[filepath.Base(path)] {
		stats.FilesSkipped++
		d.logger.Debug("skip-listed file", "file", path)
		return false
	}

	raw, err := util.ReadSource(path)
	if err != nil {
		stats.FilesSkipped++
		stats.Errors = append(stats.Errors, FileError{File: path, Err: err})
		d.logger.Warn("unreadable file skipped", "file", path, "error", err)
		return false
	}

	if !utf8.Valid(raw) {
		stats.FilesSkipped++
		stats.Errors = append(stats.Errors, FileError{File: path, Err: fmt.Errorf("not valid UTF-8")})
		d.logger.Warn("undecodable file skipped", "file", path)
		return false
	}

	stats.FilesScanned++
	original := string(raw)

	result := d.rewriter.Rewrite(original)

	output := result.Output
	importsAdded := 0
	if len(result.NeededImports) > 0 {
		output, importsAdded = imports.Reconcile(output, d.docPath(path), result.NeededImports)
	}

	// Triage is diagnostic only and runs on the final text, so entries
	// reflect what a manual follow-up would actually see.
	for _, entry := range rewrite.RunTriage(output, d.checks) {
		stats.Triage = append(stats.Triage, TriageRecord{File: path, Entry: entry})
	}

	if result.Total == 0 && importsAdded == 0 {
		return false
	}

	output = normalizeNewlines(output)
	if output == original {
		return false
	}

	for name, n := range result.Counts {
		stats.ReplacementsByRule[name] += n
	}
	stats.TotalReplacements += result.Total
	stats.ImportsAdded += importsAdded
	stats.FilesModified++

	d.logger.Info("file rewritten",
		"file", path,
		"replacements", result.Total,
		"imports_added", importsAdded,
		"dry_run", d.cfg.DryRun)

	if d.cfg.DryRun {
		return true
	}

	if err := writeFileAtomic(path, []byte(output)); err != nil {
		stats.Errors = append(stats.Errors, FileError{File: path, Err: err})
		d.logger.Warn("write-back failed", "file", path, "error", err)
		return false
	}

	return true
}

// eligible reports whether path passes the include/exclude patterns.
// Used by watch mode, which sees events for every file under the root.
func (d *Driver) eligible(path string) bool {
	relPath, err := filepath.Rel(d.cfg.Root, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range d.cfg.Exclude {
		if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
			return false
		}
	}
	for _, pattern := range d.cfg.Include {
		if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
			return true
		}
	}
	return false
}

// docPath returns path relative to SourceRoot with forward slashes, the
// form the import reconciler computes traversal depth from.
func (d *Driver) docPath(path string) string {
	rel, err := filepath.Rel(d.cfg.SourceRoot, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

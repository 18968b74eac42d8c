package batch

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gnana997/thememig/pkg/rewrite"
)

// TriageRecord ties a triage entry to the file it was found in.
type TriageRecord struct {
	File  string
	Entry rewrite.TriageEntry
}

// FileError records a per-file failure. Failures never abort the run; the
// file is skipped and the batch continues.
type FileError struct {
	File string
	Err  error
}

// RunStats aggregates one batch run. Created fresh per run, read-only once
// Run returns; nothing is persisted between invocations.
type RunStats struct {
	// FilesScanned is the number of files read and considered.
	FilesScanned int

	// FilesModified is the number of files whose content changed.
	FilesModified int

	// FilesSkipped counts skip-list hits and unreadable files.
	FilesSkipped int

	// ReplacementsByRule maps rule name to total replacements across files.
	ReplacementsByRule map[string]int

	// TotalReplacements is the sum over ReplacementsByRule.
	TotalReplacements int

	// ImportsAdded is the number of import lines synthesized.
	ImportsAdded int

	// Triage lists detected-but-unhandled constructs for manual follow-up.
	Triage []TriageRecord

	// Errors holds per-file read/decode/write failures.
	Errors []FileError

	// DryRun records whether write-back was suppressed.
	DryRun bool

	StartTime time.Time
	EndTime   time.Time
}

// Summary renders the human-readable run report.
func (s *RunStats) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "files scanned:   %d\n", s.FilesScanned)
	fmt.Fprintf(&b, "files modified:  %d\n", s.FilesModified)
	fmt.Fprintf(&b, "files skipped:   %d\n", s.FilesSkipped)
	fmt.Fprintf(&b, "imports added:   %d\n", s.ImportsAdded)
	fmt.Fprintf(&b, "replacements:    %d\n", s.TotalReplacements)

	if len(s.ReplacementsByRule) > 0 {
		names := make([]string, 0, len(s.ReplacementsByRule))
		for name := range s.ReplacementsByRule {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %-20s %d\n", name, s.ReplacementsByRule[name])
		}
	}

	if len(s.Triage) > 0 {
		fmt.Fprintf(&b, "needs manual follow-up (%d):\n", len(s.Triage))
		for _, t := range s.Triage {
			fmt.Fprintf(&b, "  %s:%d: %s\n", t.File, t.Entry.Line, t.Entry.Reason)
		}
	}

	if len(s.Errors) > 0 {
		fmt.Fprintf(&b, "errors (%d):\n", len(s.Errors))
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "  %s: %v\n", e.File, e.Err)
		}
	}

	if s.DryRun {
		b.WriteString("dry run: no files were written\n")
	}

	return b.String()
}

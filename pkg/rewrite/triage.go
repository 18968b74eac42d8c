package rewrite

import (
	"regexp"
	"strings"
)

// TriageCheck recognizes a broader construct family than the safe rewrite
// rules: same operand class, but parameterized outside the supported
// canonical shapes (an explicit color, a dynamic thickness). Checks are run
// after the rewrite pass for operator visibility only — they never mutate
// text or block replacements.
type TriageCheck struct {
	// Rule names the construct family the check belongs to.
	Rule string

	// Reason is the human-readable explanation recorded for follow-up.
	Reason string

	// Pattern is the broad recognizer. First match per document is
	// recorded; one entry per check per document, matching the advisory
	// granularity of a manual-follow-up list.
	Pattern *regexp.Regexp
}

// TriageEntry records one detected-but-unhandled construct. Tagged for the
// JSON surface of the triage tool.
type TriageEntry struct {
	Rule   string `json:"rule"`
	Reason string `json:"reason"`

	// Line is the 1-based line of the first match.
	Line int `json:"line"`
}

// RunTriage evaluates every check against text and returns the entries
// for constructs the rewrite rules deliberately declined. Read-only.
func RunTriage(text string, checks []TriageCheck) []TriageEntry {
	var entries []TriageEntry
	for _, c := range checks {
		loc := c.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		entries = append(entries, TriageEntry{
			Rule:   c.Rule,
			Reason: c.Reason,
			Line:   1 + strings.Count(text[:loc[0]], "\n"),
		})
	}
	return entries
}

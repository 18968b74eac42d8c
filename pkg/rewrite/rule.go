// Package rewrite implements the structural rewrite engine: locating
// balanced-delimiter expressions, matching construct patterns despite
// formatting variance, and splicing in canonical replacements.
//
// The engine is deliberately lexical. It does not parse the source language;
// it bounds candidate constructs with the delimiter matcher and tests them
// with anchored textual predicates. Correctness outranks completeness: a
// rule that cannot safely recognize an occurrence leaves it untouched.
package rewrite

import "github.com/gnana997/thememig/pkg/imports"

// Occurrence identifies one recognized construct inside a document.
//
// Offsets are valid only against the exact text the occurrence was matched
// in; any earlier splice invalidates them. The rewrite pass therefore never
// holds occurrences across mutations — it re-searches from the post-splice
// cursor instead.
type Occurrence struct {
	// Start is the byte offset of the first character of the construct.
	Start int

	// End is the byte offset one past the last character of the construct.
	End int

	// Rule is the name of the rule that recognized the construct.
	Rule string

	// Props holds named sub-values extracted from the construct
	// (e.g. "side" → "bottom", "height" → "24").
	Props map[string]string
}

// Rule is one declarative rewrite unit: a recognizer for a candidate
// construct and a generator for its canonical replacement.
type Rule struct {
	// Name identifies the rule in statistics and logs.
	Name string

	// Trigger is the substring the pass scans for before invoking Match.
	// A cheap pre-filter, not the recognizer itself.
	Trigger string

	// Match attempts to recognize a construct at the trigger offset.
	// It returns the occurrence (whose span may start at or after the
	// trigger offset, and always covers the full construct) or false when
	// the candidate is not one of the supported canonical shapes.
	//
	// Contract: the generated replacement for any occurrence must never
	// itself satisfy Match — this is what makes the pass idempotent.
	Match func(text string, at int) (*Occurrence, bool)

	// Generate produces the canonical replacement text for an occurrence's
	// extracted properties. The output must be syntactically well-formed in
	// place of the matched span.
	Generate func(props map[string]string) string

	// Imports lists the declarations the generated text references.
	Imports []imports.Ref
}

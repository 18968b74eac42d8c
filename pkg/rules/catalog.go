// Package rules is the pattern catalog for the themed-component migration:
// which ad-hoc widget constructions are recognized, what canonical text they
// become, and which parameterized variants are flagged for manual follow-up
// instead of rewritten.
//
// The engine in pkg/rewrite is generic; everything Flutter-specific lives
// here.
package rules

import (
	"github.com/gnana997/thememig/pkg/imports"
	"github.com/gnana997/thememig/pkg/rewrite"
)

// Import refs for the shared themed components. Module file names are
// unique in the project, which is what lets the reconciler detect existing
// imports with a substring check.
var (
	refThemedBorder    = imports.Ref{Symbol: "ThemedBorder", ModulePath: "widgets/common/themed_border.dart"}
	refThemedDivider   = imports.Ref{Symbol: "ThemedDivider", ModulePath: "widgets/common/themed_divider.dart"}
	refThemedInput     = imports.Ref{Symbol: "ThemedInput", ModulePath: "widgets/common/themed_input.dart"}
	refThemedFormInput = imports.Ref{Symbol: "ThemedFormInput", ModulePath: "widgets/common/themed_form_input.dart"}
)

// Rules returns the full catalog in priority order: longer, more specific
// patterns first so a shorter rule never claims a sub-span of a longer
// legitimate construct.
func Rules() []rewrite.Rule {
	return []rewrite.Rule{
		borderRule(),
		verticalDividerRule(),
		dividerRule(),
		textFormFieldRule(),
		textFieldRule(),
	}
}

// TriageChecks returns the advisory checks for construct variants the
// catalog deliberately declines to rewrite.
func TriageChecks() []rewrite.TriageCheck {
	var checks []rewrite.TriageCheck
	checks = append(checks, borderTriageChecks()...)
	checks = append(checks, dividerTriageChecks()...)
	checks = append(checks, inputTriageChecks()...)
	return checks
}

// DefaultSkipFiles lists file names the driver must never rewrite: the
// themed component definitions themselves, and hand-ported input widgets
// whose internals intentionally use the raw constructs.
func DefaultSkipFiles() []string {
	return []string{
		"themed_border.dart",
		"themed_divider.dart",
		"themed_input.dart",
		"themed_form_input.dart",
		"autocomplete_text_field.dart",
		"draggable_number_input.dart",
		"themed_dropdown.dart",
	}
}

// wordBoundaryBefore reports whether text[at] starts a fresh identifier,
// i.e. is not preceded by an identifier byte. Keeps "Divider" from matching
// inside "ThemedDivider" or "VerticalDivider".
func wordBoundaryBefore(text string, at int) bool {
	if at == 0 {
		return true
	}
	c := text[at-1]
	return !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// skipSpaces returns the offset of the first non-whitespace byte at or
// after i.
func skipSpaces(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// openParenAfter locates the argument list that follows the identifier
// ending at end (exclusive), tolerating whitespace between name and paren.
// Returns the offsets of the opening and matching closing parens.
func openParenAfter(text string, end int) (open, close int, ok bool) {
	open = skipSpaces(text, end)
	if open >= len(text) || text[open] != '(' {
		return 0, 0, false
	}
	close, err := rewrite.MatchDelimiter(text, open)
	if err != nil {
		// Truncated or unbalanced input: treat as no match, never guess.
		return 0, 0, false
	}
	return open, close, true
}

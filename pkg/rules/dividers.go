package rules

import (
	"regexp"
	"strings"

	"github.com/gnana997/thememig/pkg/imports"
	"github.com/gnana997/thememig/pkg/rewrite"
)

// verticalDividerArgs is the one canonical VerticalDivider shape: hairline
// width with literal indents. Anything else goes to triage.
var verticalDividerArgs = regexp.MustCompile(
	`(?s)^\s*width:\s*1\s*,\s*indent:\s*(\d+)\s*,\s*endIndent:\s*(\d+)\s*,?\s*$`)

// dividerHeightArgs matches a Divider whose only parameter is a numeric
// height literal.
var dividerHeightArgs = regexp.MustCompile(`(?s)^\s*height:\s*\d+(?:\.\d+)?\s*,?\s*$`)

// verticalDividerRule rewrites the canonical hairline VerticalDivider:
//
//	const VerticalDivider(width: 1, indent: 8, endIndent: 8)
//	  → const ThemedDivider(height: 1, vertical: true, indent: 8, endIndent: 8)
//
// Runs before dividerRule so the longer name is claimed first.
func verticalDividerRule() rewrite.Rule {
	return rewrite.Rule{
		Name:    "vertical-divider",
		Trigger: "VerticalDivider",
		Match: func(text string, at int) (*rewrite.Occurrence, bool) {
			if !wordBoundaryBefore(text, at) {
				return nil, false
			}

			open, close, ok := openParenAfter(text, at+len("VerticalDivider"))
			if !ok {
				return nil, false
			}

			args := text[open+1 : close]
			if !verticalDividerArgs.MatchString(args) {
				return nil, false
			}

			indent, ok1 := rewrite.ExtractProperty(args, "indent")
			endIndent, ok2 := rewrite.ExtractProperty(args, "endIndent")
			if !ok1 || !ok2 {
				return nil, false
			}

			return &rewrite.Occurrence{
				Start: at,
				End:   close + 1,
				Rule:  "vertical-divider",
				Props: map[string]string{"indent": indent, "endIndent": endIndent},
			}, true
		},
		Generate: func(props map[string]string) string {
			return "ThemedDivider(height: 1, vertical: true, indent: " +
				props["indent"] + ", endIndent: " + props["endIndent"] + ")"
		},
		Imports: []imports.Ref{refThemedDivider},
	}
}

// dividerRule rewrites bare and height-only Dividers:
//
//	const Divider()          → const ThemedDivider()
//	Divider(height: 24)      → ThemedDivider(height: 24)
//
// The word-boundary guard keeps ThemedDivider and VerticalDivider (already
// handled above) from re-matching.
func dividerRule() rewrite.Rule {
	return rewrite.Rule{
		Name:    "divider",
		Trigger: "Divider",
		Match: func(text string, at int) (*rewrite.Occurrence, bool) {
			if !wordBoundaryBefore(text, at) {
				return nil, false
			}

			open, close, ok := openParenAfter(text, at+len("Divider"))
			if !ok {
				return nil, false
			}

			args := text[open+1 : close]
			props := map[string]string{}

			switch {
			case strings.TrimSpace(args) == "":
				// const Divider()
			case dividerHeightArgs.MatchString(args):
				height, ok := rewrite.ExtractProperty(args, "height")
				if !ok {
					return nil, false
				}
				props["height"] = height
			default:
				// Colored or otherwise parameterized divider; left for triage.
				return nil, false
			}

			return &rewrite.Occurrence{
				Start: at,
				End:   close + 1,
				Rule:  "divider",
				Props: props,
			}, true
		},
		Generate: func(props map[string]string) string {
			if h, ok := props["height"]; ok {
				return "ThemedDivider(height: " + h + ")"
			}
			return "ThemedDivider()"
		},
		Imports: []imports.Ref{refThemedDivider},
	}
}

// dividerTriageChecks flags divider variants with explicit colors or
// thickness — those carry design intent the canonical component does not
// express yet.
func dividerTriageChecks() []rewrite.TriageCheck {
	return []rewrite.TriageCheck{
		{
			Rule:    "divider",
			Reason:  "Divider with color parameter",
			Pattern: regexp.MustCompile(`(?s)(?:^|[^A-Za-z0-9_])Divider\s*\([^)]*color\s*:`),
		},
		{
			Rule:    "vertical-divider",
			Reason:  "VerticalDivider with color or thickness parameter",
			Pattern: regexp.MustCompile(`(?s)VerticalDivider\s*\([^)]*(?:color|thickness)\s*:`),
		},
	}
}

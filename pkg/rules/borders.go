package rules

import (
	"regexp"

	"github.com/gnana997/thememig/pkg/imports"
	"github.com/gnana997/thememig/pkg/rewrite"
)

// decorativeBorderArgs matches the argument list of a decorative
// single-side Border(...): one BorderSide whose color comes from the
// theme's outline or divider color, optionally softened with withOpacity
// and optionally carrying the default width of 1.
//
// The span fed to this expression is already bounded by the delimiter
// matcher, so the anchors cover exactly one balanced argument list even
// when it spans several lines.
var decorativeBorderArgs = regexp.MustCompile(
	`(?s)^\s*(top|bottom|left|right):\s*BorderSide\(\s*` +
		`color:\s*(?:colorScheme\.outlineVariant\.withOpacity\([0-9.]+\)|` +
		`theme\.dividerColor(?:\.withOpacity\([0-9.]+\))?)\s*,?\s*` +
		`(?:width:\s*1(?:\.0)?\s*,?\s*)?\)\s*,?\s*$`)

// borderRule rewrites decorative single-side borders to ThemedBorder:
//
//	border: Border(bottom: BorderSide(color: colorScheme.outlineVariant.withOpacity(0.3), width: 1))
//	  → border: ThemedBorder.bottom(context)
//
// Button outlines (side: BorderSide(...)) are untouched: the recognizer
// requires the "border:" label and a Border(...) constructor.
func borderRule() rewrite.Rule {
	return rewrite.Rule{
		Name:    "border-side",
		Trigger: "border:",
		Match: func(text string, at int) (*rewrite.Occurrence, bool) {
			if !wordBoundaryBefore(text, at) {
				// focusedBorder:, enabledBorder: and friends.
				return nil, false
			}

			name := skipSpaces(text, at+len("border:"))
			if len(text)-name < len("Border") || text[name:name+len("Border")] != "Border" {
				return nil, false
			}

			open, close, ok := openParenAfter(text, name+len("Border"))
			if !ok {
				return nil, false
			}

			m := decorativeBorderArgs.FindStringSubmatch(text[open+1 : close])
			if m == nil {
				return nil, false
			}

			return &rewrite.Occurrence{
				Start: at,
				End:   close + 1,
				Rule:  "border-side",
				Props: map[string]string{"side": m[1]},
			}, true
		},
		Generate: func(props map[string]string) string {
			return "border: ThemedBorder." + props["side"] + "(context)"
		},
		Imports: []imports.Ref{refThemedBorder},
	}
}

// borderTriageChecks flags border variants outside the decorative default:
// explicit accent colors need a design decision, not a mechanical rewrite.
func borderTriageChecks() []rewrite.TriageCheck {
	return []rewrite.TriageCheck{
		{
			Rule:    "border-side",
			Reason:  "BorderSide with explicit white color",
			Pattern: regexp.MustCompile(`BorderSide\([^)]*Colors\.white`),
		},
		{
			Rule:    "border-side",
			Reason:  "BorderSide with primary accent color",
			Pattern: regexp.MustCompile(`BorderSide\([^)]*colorScheme\.primary`),
		},
	}
}

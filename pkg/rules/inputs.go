package rules

import (
	"regexp"
	"strings"

	"github.com/gnana997/thememig/pkg/imports"
	"github.com/gnana997/thememig/pkg/rewrite"
)

// textFormFieldRule renames TextFormField constructions to ThemedFormInput.
// The argument list is preserved verbatim — the themed component accepts
// the same surface — but the rule only fires once the delimiter matcher
// confirms the parameter list is balanced; a truncated construct is left
// alone rather than half-renamed.
func textFormFieldRule() rewrite.Rule {
	return inputRenameRule("text-form-field", "TextFormField", "ThemedFormInput", refThemedFormInput)
}

// textFieldRule renames TextField constructions to ThemedInput. Runs after
// textFormFieldRule per the longer-name-first ordering.
func textFieldRule() rewrite.Rule {
	return inputRenameRule("text-field", "TextField", "ThemedInput", refThemedInput)
}

// inputRenameRule builds a class-name swap rule. The occurrence span covers
// only the identifier; the balanced argument list stays in place.
//
// hintText and labelText are pulled out of a decoration: InputDecoration(...)
// parameter when one is present, purely as reporting properties — preview
// output and logs show what the migrated field is labeled.
func inputRenameRule(name, from, to string, ref imports.Ref) rewrite.Rule {
	return rewrite.Rule{
		Name:    name,
		Trigger: from,
		Match: func(text string, at int) (*rewrite.Occurrence, bool) {
			if !wordBoundaryBefore(text, at) {
				return nil, false
			}

			open, close, ok := openParenAfter(text, at+len(from))
			if !ok {
				return nil, false
			}

			props := map[string]string{}
			args := text[open+1 : close]
			if deco, ok := rewrite.ExtractProperty(args, "decoration"); ok {
				if inner, ok := decorationArgs(deco); ok {
					if hint, ok := decorationText(inner, "hintText"); ok {
						props["hintText"] = hint
					}
					if label, ok := decorationText(inner, "labelText"); ok {
						props["labelText"] = label
					}
				}
			}

			return &rewrite.Occurrence{
				Start: at,
				End:   at + len(from),
				Rule:  name,
				Props: props,
			}, true
		},
		Generate: func(map[string]string) string {
			return to
		},
		Imports: []imports.Ref{ref},
	}
}

// decorationArgs unwraps an InputDecoration(...) expression and returns its
// argument list.
func decorationArgs(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimPrefix(expr, "const ")
	if !strings.HasPrefix(expr, "InputDecoration") {
		return "", false
	}
	open := strings.IndexByte(expr, '(')
	if open < 0 {
		return "", false
	}
	close, err := rewrite.MatchDelimiter(expr, open)
	if err != nil {
		return "", false
	}
	return expr[open+1 : close], true
}

// decorationText extracts a string-literal decoration property. Interpolated
// or variable values are skipped — the raw expression is not a label.
func decorationText(args, name string) (string, bool) {
	val, ok := rewrite.ExtractProperty(args, name)
	if !ok || len(val) < 2 {
		return "", false
	}
	if (val[0] == '\'' && val[len(val)-1] == '\'') || (val[0] == '"' && val[len(val)-1] == '"') {
		return val[1 : len(val)-1], true
	}
	return "", false
}

// inputTriageChecks flags inputs whose decoration overrides visual
// properties the themed components own (borders, padding), plus dialogs
// that build a raw text field inline instead of using the shared rename
// dialog widget.
func inputTriageChecks() []rewrite.TriageCheck {
	return []rewrite.TriageCheck{
		{
			Rule:    "text-field",
			Reason:  "InputDecoration overrides border or contentPadding",
			Pattern: regexp.MustCompile(`(?s)decoration:\s*(?:const\s+)?InputDecoration\([^)]*(?:\bborder|contentPadding)\s*:`),
		},
		{
			Rule:    "text-field",
			Reason:  "dialog builds an inline text field; use the shared rename dialog",
			// Statements contain semicolons, widget trees don't: [^;] keeps
			// the window inside one dialog expression. Matches both the raw
			// and already-renamed field since triage runs post-rewrite.
			Pattern: regexp.MustCompile(`(?s)AlertDialog\([^;]*?content:\s*(?:TextField|ThemedInput)\(`),
		},
	}
}

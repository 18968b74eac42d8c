package rewrite

import (
	"log/slog"
	"strings"

	"github.com/gnana997/thememig/pkg/imports"
)

// Rewriter applies an ordered rule catalog to documents.
//
// Rules run in the order given, more specific (longer) patterns first so a
// short rule never claims a sub-span of a longer legitimate construct.
// Within one rule the scan cursor always advances past inserted replacement
// text, so canonical output is never re-matched in the same pass. Re-running
// the pass on its own output yields zero further replacements.
type Rewriter struct {
	rules  []Rule
	logger *slog.Logger
}

// Result is the outcome of rewriting one document.
type Result struct {
	// Output is the rewritten document text. Equal to the input when no
	// rule matched.
	Output string

	// Counts maps rule name to the number of replacements it made.
	Counts map[string]int

	// Total is the sum of all replacement counts.
	Total int

	// NeededImports lists the declarations the replacements introduced, in
	// order of first need, deduplicated by symbol.
	NeededImports []imports.Ref
}

// NewRewriter creates a Rewriter over the given rule catalog.
// If logger is nil, slog.Default() is used.
func NewRewriter(rules []Rule, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{rules: rules, logger: logger}
}

// Rewrite applies every rule to text and returns the accumulated result.
//
// The input is never mutated; all work happens on the returned copy.
func (r *Rewriter) Rewrite(text string) Result {
	res := Result{
		Counts: make(map[string]int, len(r.rules)),
	}
	seen := make(map[string]bool)

	for _, rule := range r.rules {
		cursor := 0
		for {
			rel := strings.Index(text[cursor:], rule.Trigger)
			if rel < 0 {
				break
			}
			at := cursor + rel

			occ, ok := rule.Match(text, at)
			if !ok {
				// Not a canonical shape. Step past this trigger hit only;
				// a later hit of the same trigger may still match.
				cursor = at + 1
				continue
			}

			replacement := rule.Generate(occ.Props)
			text = text[:occ.Start] + replacement + text[occ.End:]
			cursor = occ.Start + len(replacement)

			res.Counts[rule.Name]++
			res.Total++

			for _, ref := range rule.Imports {
				if !seen[ref.Symbol] {
					seen[ref.Symbol] = true
					res.NeededImports = append(res.NeededImports, ref)
				}
			}

			r.logger.Debug("replaced construct",
				"rule", rule.Name,
				"offset", occ.Start,
				"props", occ.Props)
		}
	}

	res.Output = text
	return res
}

// Package imports keeps a rewritten document's import block consistent:
// when a replacement introduces a reference to a canonical symbol, exactly
// one import declaration for it is synthesized, positioned after the last
// existing import, with a path computed relative to the document's location
// under the UI source root.
package imports

import (
	"path"
	"strings"
)

// Ref identifies a canonical symbol and the source-root-relative path of
// the Dart module that defines it.
type Ref struct {
	// Symbol is the canonical symbol name, e.g. "ThemedBorder".
	Symbol string

	// ModulePath is the defining module's path relative to the UI source
	// root, e.g. "widgets/common/themed_border.dart".
	ModulePath string
}

// FileName returns the defining module's file name. Module file names are
// unique and non-overlapping in the project, so a plain substring check on
// the file name is enough to detect an existing import.
func (r Ref) FileName() string {
	return path.Base(r.ModulePath)
}

// Line synthesizes the import statement for ref as seen from docPath, the
// document's path relative to the UI source root. One parent-traversal
// segment is emitted per directory between the document and the root.
func Line(docPath string, ref Ref) string {
	docPath = strings.ReplaceAll(docPath, "\\", "/")
	depth := strings.Count(docPath, "/")
	return "import '" + strings.Repeat("../", depth) + ref.ModulePath + "';"
}

// Reconcile ensures text contains exactly one import for each needed ref.
//
// Refs whose module file name already occurs anywhere in text are skipped,
// so a ref added earlier in the same run (or an existing hand-written
// import) is never duplicated. Insertion order follows refs, which the
// rewrite pass supplies in order of first need, keeping output reproducible
// across runs.
//
// Returns the updated text and the number of import lines added.
func Reconcile(text, docPath string, refs []Ref) (string, int) {
	added := 0
	for _, ref := range refs {
		if strings.Contains(text, ref.FileName()) {
			continue
		}
		text = insertImport(text, Line(docPath, ref))
		added++
	}
	return text, added
}

// insertImport places stmt after the last line that begins with the import
// keyword, or at the top of the document when no imports exist.
func insertImport(text, stmt string) string {
	lines := strings.Split(text, "\n")

	last := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			last = i
		}
	}

	if last >= 0 {
		lines = append(lines[:last+1], append([]string{stmt}, lines[last+1:]...)...)
	} else {
		lines = append([]string{stmt}, lines...)
	}

	return strings.Join(lines, "\n")
}

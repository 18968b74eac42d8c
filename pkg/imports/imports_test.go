package imports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var borderRef = Ref{Symbol: "ThemedBorder", ModulePath: "widgets/common/themed_border.dart"}
var dividerRef = Ref{Symbol: "ThemedDivider", ModulePath: "widgets/common/themed_divider.dart"}

// --- Line ---

func TestLine_RootLevelDocument(t *testing.T) {
	assert.Equal(t,
		"import 'widgets/common/themed_border.dart';",
		Line("main.dart", borderRef))
}

func TestLine_OneTraversalPerDirectory(t *testing.T) {
	assert.Equal(t,
		"import '../../widgets/common/themed_border.dart';",
		Line("screens/settings/panel.dart", borderRef))
}

func TestLine_WindowsSeparators(t *testing.T) {
	assert.Equal(t,
		"import '../widgets/common/themed_border.dart';",
		Line(`screens\panel.dart`, borderRef))
}

// --- Reconcile ---

func TestReconcile_AfterLastImport(t *testing.T) {
	doc := strings.Join([]string{
		"import 'package:flutter/material.dart';",
		"import 'theme.dart';",
		"",
		"class Panel {}",
	}, "\n")

	out, added := Reconcile(doc, "screens/panel.dart", []Ref{borderRef})

	assert.Equal(t, 1, added)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "import '../widgets/common/themed_border.dart';", lines[2])
	assert.Equal(t, "class Panel {}", lines[len(lines)-1])
}

func TestReconcile_TopWhenNoImports(t *testing.T) {
	out, added := Reconcile("class Panel {}", "panel.dart", []Ref{borderRef})

	assert.Equal(t, 1, added)
	assert.True(t, strings.HasPrefix(out, "import 'widgets/common/themed_border.dart';\n"))
}

func TestReconcile_ExistingImportNotDuplicated(t *testing.T) {
	doc := "import '../widgets/common/themed_border.dart';\n\nclass Panel {}"

	out, added := Reconcile(doc, "screens/panel.dart", []Ref{borderRef})

	assert.Zero(t, added)
	assert.Equal(t, doc, out)
	assert.Equal(t, 1, strings.Count(out, "themed_border.dart"))
}

func TestReconcile_MultipleRefsKeepOrder(t *testing.T) {
	doc := "import 'theme.dart';\n\nclass Panel {}"

	out, added := Reconcile(doc, "panel.dart", []Ref{borderRef, dividerRef})

	assert.Equal(t, 2, added)
	borderAt := strings.Index(out, "themed_border.dart")
	dividerAt := strings.Index(out, "themed_divider.dart")
	require.NotEqual(t, -1, borderAt)
	require.NotEqual(t, -1, dividerAt)
	assert.Less(t, borderAt, dividerAt)
}

func TestReconcile_Idempotent(t *testing.T) {
	doc := "import 'theme.dart';\n\nclass Panel {}"

	first, _ := Reconcile(doc, "screens/panel.dart", []Ref{borderRef, dividerRef})
	second, added := Reconcile(first, "screens/panel.dart", []Ref{borderRef, dividerRef})

	assert.Zero(t, added)
	assert.Equal(t, first, second)
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package docstrings

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/docstring-checker/services/docstrings/ast"
	"github.com/AleutianAI/docstring-checker/services/docstrings/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFixer(t *testing.T) *Fixer {
	t.Helper()

	cfg, err := config.Default()
	require.NoError(t, err)
	return NewFixer(cfg, ast.NewPythonParser(), testLogger())
}

func fixString(t *testing.T, source string) (string, *FileResult) {
	t.Helper()

	fixer := newTestFixer(t)
	out, result, err := fixer.FixSource(context.Background(), []byte(source), "test.py")
	require.NoError(t, err)
	return string(out), result
}

func TestFixer_InsertsCanonicalDocstring(t *testing.T) {
	source := "def add(a, b):\n    return a + b\n"

	out, result := fixString(t, source)

	assert.True(t, result.Changed)
	assert.Equal(t, 1, result.Inserted)

	want := "def add(a, b):\n" +
		"    \"\"\"\n" +
		"    Add.\n" +
		"\n" +
		"    Args:\n" +
		"    ----\n" +
		"        a (TYPE): Description.\n" +
		"        b (TYPE): Description.\n" +
		"\n" +
		"    Returns:\n" +
		"    -------\n" +
		"        None: Description.\n" +
		"\n" +
		"    \"\"\"\n" +
		"    return a + b\n"
	assert.Equal(t, want, out)
}

func TestFixer_RegeneratesAndRemovesStray(t *testing.T) {
	source := "def f(x):\n" +
		"    \"\"\"old text\"\"\"\n" +
		"    x = 1\n" +
		"    \"stray\"\n" +
		"    return x\n"

	out, result := fixString(t, source)

	assert.True(t, result.Changed)
	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 1, result.RemovedMisplaced)

	assert.NotContains(t, out, "stray")
	assert.Contains(t, out, "    \"\"\"\n    old text\n")

	// x = 1 and return x survive, unmoved relative to each other.
	trimmed := strings.Split(out, "\n")
	var kept []string
	for _, line := range trimmed {
		if line == "    x = 1" || line == "    return x" {
			kept = append(kept, line)
		}
	}
	assert.Equal(t, []string{"    x = 1", "    return x"}, kept)
}

func TestFixer_Idempotent(t *testing.T) {
	sources := []string{
		"def add(a, b):\n    return a + b\n",
		"def f(x):\n    \"\"\"old text\"\"\"\n    x = 1\n    \"stray\"\n    return x\n",
		"def g():\n    x = 1\n    \"note\"\n    return x\n",
	}

	for _, source := range sources {
		once, _ := fixString(t, source)
		twice, result := fixString(t, once)

		assert.False(t, result.Changed, "second pass must plan no edits for:\n%s", once)
		assert.Equal(t, once, twice)
	}
}

func TestFixer_MultiLineSummaryIdempotent(t *testing.T) {
	source := "def fetch(x):\n" +
		"    \"\"\"Fetch the thing\n" +
		"    from the remote.\"\"\"\n" +
		"    return x\n"

	once, result := fixString(t, source)
	assert.True(t, result.Changed)

	// Both summary lines land at the body indent, not stacked deeper.
	assert.Contains(t, once, "    Fetch the thing\n    from the remote.\n")
	assert.NotContains(t, once, "        from the remote.")

	twice, second := fixString(t, once)
	assert.False(t, second.Changed)
	assert.Equal(t, once, twice)
}

func TestFixer_MultiLineSignature_InsertsAfterClosingParen(t *testing.T) {
	source := "def add(\n" +
		"    a,\n" +
		"    b,\n" +
		"):\n" +
		"    return a + b\n"

	out, result := fixString(t, source)

	assert.True(t, result.Changed)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "):", lines[3])
	assert.Equal(t, `    """`, lines[4])

	// The rewritten file must still parse; a second pass finds nothing.
	again, second := fixString(t, out)
	assert.False(t, second.Changed)
	assert.Equal(t, out, again)
}

func TestFixer_BodyOnSignatureClosingLine_LeftUntouched(t *testing.T) {
	source := "def f(\n" +
		"    a,\n" +
		"): return a\n"

	out, result := fixString(t, source)

	assert.False(t, result.Changed)
	assert.Equal(t, source, out)
}

func TestFixer_ContentQuotesSurviveRegeneration(t *testing.T) {
	source := "def f(x):\n" +
		"    \"\"\"'quoted advice'\"\"\"\n" +
		"    return x\n"

	out, result := fixString(t, source)

	assert.True(t, result.Changed)
	assert.Contains(t, out, "    'quoted advice'\n")
}

func TestFixer_AlreadyCanonicalProducesZeroEdits(t *testing.T) {
	source := "def add(a, b):\n" +
		"    \"\"\"\n" +
		"    Add.\n" +
		"\n" +
		"    Args:\n" +
		"    ----\n" +
		"        a (TYPE): Description.\n" +
		"        b (TYPE): Description.\n" +
		"\n" +
		"    Returns:\n" +
		"    -------\n" +
		"        None: Description.\n" +
		"\n" +
		"    \"\"\"\n" +
		"    return a + b\n"

	out, result := fixString(t, source)

	assert.False(t, result.Changed)
	assert.Equal(t, source, out)
}

func TestFixer_PrivateAndDunderNeverEdited(t *testing.T) {
	source := "class C:\n" +
		"    def __init__(self, a):\n" +
		"        self.a = a\n" +
		"\n" +
		"    def _hidden(self):\n" +
		"        pass\n" +
		"\n" +
		"\n" +
		"def _module_private(x):\n" +
		"    return x\n"

	out, result := fixString(t, source)

	assert.False(t, result.Changed)
	assert.Equal(t, source, out)
	assert.Equal(t, 3, result.Functions)
	assert.Equal(t, 0, result.Eligible)
}

func TestFixer_MethodDocstringIndentation(t *testing.T) {
	source := "class C:\n" +
		"    def scale(self, factor):\n" +
		"        return factor\n"

	out, result := fixString(t, source)

	assert.True(t, result.Changed)
	assert.Contains(t, out, "        \"\"\"\n        Scale.\n")
	assert.Contains(t, out, "            self (TYPE): Description.\n")
}

func TestFixer_ReplaceLineDelta(t *testing.T) {
	source := "def before():\n" +
		"    pass\n" +
		"\n" +
		"def f(x):\n" +
		"    \"\"\"old text\"\"\"\n" +
		"    return x\n" +
		"\n" +
		"def after():\n" +
		"    pass\n"

	out, _ := fixString(t, source)

	// New block is 12 lines (no blank-line Args gap counted twice), old
	// docstring was 1: delta must be exactly new minus old, with lines
	// outside the patched span untouched.
	inLines := strings.Split(source, "\n")
	outLines := strings.Split(out, "\n")
	assert.Equal(t, len(inLines)+12-1, len(outLines))

	assert.Equal(t, inLines[:4], outLines[:4])
	assert.Equal(t, inLines[len(inLines)-4:], outLines[len(outLines)-4:])
}

func TestFixer_ParseFailurePatchesNothing(t *testing.T) {
	fixer := newTestFixer(t)

	_, _, err := fixer.FixSource(context.Background(), []byte("def broken(:\n"), "broken.py")
	require.Error(t, err)
	assert.ErrorIs(t, err, ast.ErrSyntax)
}

func TestFixer_MultipleFunctionsOnePass(t *testing.T) {
	source := "def first(a):\n" +
		"    return a\n" +
		"\n" +
		"\n" +
		"def second(b):\n" +
		"    \"\"\"Keep this summary.\"\"\"\n" +
		"    return b\n" +
		"\n" +
		"\n" +
		"def third():\n" +
		"    x = 1\n" +
		"    'leftover'\n" +
		"    return x\n"

	out, result := fixString(t, source)

	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 1, result.RemovedMisplaced)

	assert.Contains(t, out, "    First.\n")
	assert.Contains(t, out, "    Keep this summary.\n")
	assert.Contains(t, out, "    Third.\n")
	assert.NotContains(t, out, "leftover")

	// Functions keep their relative order.
	assert.Less(t, strings.Index(out, "def first"), strings.Index(out, "def second"))
	assert.Less(t, strings.Index(out, "def second"), strings.Index(out, "def third"))
}

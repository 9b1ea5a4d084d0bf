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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/docstring-checker/services/docstrings/config"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()

	cfg, err := config.Default()
	require.NoError(t, err)
	return NewRunner(cfg, testLogger())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunner_FixRewritesOnlyPythonFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.py", "def add(a, b):\n    return a + b\n")
	text := writeFile(t, dir, "notes.txt", "def add(a, b):\n")

	result := newTestRunner(t).Run(context.Background(), ModeFix, []string{dir})

	assert.Equal(t, 1, result.FilesProcessed)
	assert.Equal(t, 1, result.FilesChanged)
	assert.Equal(t, 1, result.Inserted)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, 0, result.ExitCode())
	assert.NotEmpty(t, result.RunID)

	patched, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Contains(t, string(patched), `    """`)
	assert.Contains(t, string(patched), "    Add.")

	untouched, err := os.ReadFile(text)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b):\n", string(untouched))
}

func TestRunner_ParseFailureSkipsFileUntouched(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.py", "def broken(:\n")
	writeFile(t, dir, "good.py", "def f(x):\n    return x\n")

	result := newTestRunner(t).Run(context.Background(), ModeFix, []string{dir})

	assert.Equal(t, 1, result.FilesProcessed)
	assert.Equal(t, 1, result.FilesSkipped)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, KindParseFailure, result.Diagnostics[0].Kind)
	assert.Equal(t, broken, result.Diagnostics[0].File)
	assert.Contains(t, result.Diagnostics[0].Message, "cannot process file")
	assert.Equal(t, 1, result.ExitCode())

	content, err := os.ReadFile(broken)
	require.NoError(t, err)
	assert.Equal(t, "def broken(:\n", string(content))
}

func TestRunner_CheckNeverWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mod.py", "def add(a, b):\n    return a + b\n")

	result := newTestRunner(t).Run(context.Background(), ModeCheck, []string{path})

	assert.Equal(t, 1, result.FilesProcessed)
	assert.Len(t, result.Diagnostics, 2)
	assert.Equal(t, 1, result.ExitCode())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b):\n    return a + b\n", string(content))
}

func TestRunner_FixThenCheckIsClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mod.py", "def add(a, b):\n    return a + b\n")

	runner := newTestRunner(t)
	fixResult := runner.Run(context.Background(), ModeFix, []string{dir})
	require.Equal(t, 1, fixResult.FilesChanged)

	checkResult := runner.Run(context.Background(), ModeCheck, []string{dir})
	assert.Empty(t, checkResult.Diagnostics)
	assert.Equal(t, 0, checkResult.ExitCode())

	// A second fix run finds nothing left to do.
	again := runner.Run(context.Background(), ModeFix, []string{dir})
	assert.Equal(t, 0, again.FilesChanged)
}

func TestRunner_MissingPathReported(t *testing.T) {
	result := newTestRunner(t).Run(context.Background(), ModeFix, []string{"/nonexistent/nope.py"})

	assert.Equal(t, 0, result.FilesProcessed)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, KindParseFailure, result.Diagnostics[0].Kind)
	assert.Equal(t, 1, result.ExitCode())
}

func TestRunner_Matches(t *testing.T) {
	runner := newTestRunner(t)

	assert.True(t, runner.Matches("pkg/mod.py"))
	assert.False(t, runner.Matches("pkg/mod.go"))
	assert.False(t, runner.Matches("README"))
}

func TestRunner_CanceledContextStopsEarly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def f(x):\n    return x\n")
	writeFile(t, dir, "b.py", "def g(x):\n    return x\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestRunner(t).Run(ctx, ModeFix, []string{dir})
	assert.Equal(t, 0, result.FilesProcessed)
	assert.Equal(t, 0, result.FilesChanged)
}

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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FixesChangedFile(t *testing.T) {
	dir := t.TempDir()
	runner := newTestRunner(t)
	watcher := NewWatcher(runner, 20*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, []string{dir})
	}()

	// Give the watch registration a moment before creating the file.
	time.Sleep(100 * time.Millisecond)

	path := writeFile(t, dir, "mod.py", "def add(a, b):\n    return a + b\n")

	assert.Eventually(t, func() bool {
		content, err := os.ReadFile(path)
		return err == nil && strings.Contains(string(content), `"""`)
	}, 5*time.Second, 50*time.Millisecond, "watcher never fixed the file")

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_IgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	runner := newTestRunner(t)
	watcher := NewWatcher(runner, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, []string{dir})
	}()

	time.Sleep(100 * time.Millisecond)

	path := writeFile(t, dir, "notes.txt", "def add(a, b):\n")

	// The file must never be rewritten.
	time.Sleep(300 * time.Millisecond)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b):\n", string(content))

	cancel()
	<-done
}

func TestWatcher_MissingPath(t *testing.T) {
	watcher := NewWatcher(newTestRunner(t), time.Millisecond, testLogger())

	err := watcher.Watch(context.Background(), []string{"/nonexistent/dir"})
	assert.Error(t, err)
}

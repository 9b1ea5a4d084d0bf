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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs the fixer whenever a watched source file changes.
//
// Each change is debounced: editors typically emit several write events
// per save, and the fixer's own write-back emits one more. The quiet
// window collapses these into a single run per file. Because the fixer is
// idempotent, re-processing our own write-back is harmless; the debounce
// only keeps it cheap.
type Watcher struct {
	runner   *Runner
	debounce time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher builds a Watcher around a Runner.
func NewWatcher(runner *Runner, debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		runner:   runner,
		debounce: debounce,
		log:      logger,
		timers:   make(map[string]*time.Timer),
	}
}

// Watch blocks until the context is canceled, fixing matching files as
// they are written or created under the given paths. Directories are
// watched recursively (directories existing at start time).
func (w *Watcher) Watch(ctx context.Context, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := w.addPath(watcher, path); err != nil {
			return err
		}
	}

	w.log.Info("watching for changes",
		slog.Int("paths", len(paths)),
		slog.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.runner.Matches(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", slog.Any("error", watchErr))
		}
	}
}

// addPath registers a file's parent or a directory tree with the watcher.
func (w *Watcher) addPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}

// schedule arms (or re-arms) the debounce timer for one file.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.runner.Run(ctx, ModeFix, []string{path})
	})
}

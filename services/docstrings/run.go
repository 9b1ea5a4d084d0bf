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

	"github.com/google/uuid"

	"github.com/AleutianAI/docstring-checker/services/docstrings/ast"
	"github.com/AleutianAI/docstring-checker/services/docstrings/config"
)

// Mode selects what a run does to the files it visits.
type Mode string

const (
	// ModeFix rewrites files in place.
	ModeFix Mode = "fix"

	// ModeCheck verifies section coverage and never writes.
	ModeCheck Mode = "check"
)

// RunResult accumulates the outcome of one run over any number of files.
// Accumulation is append-only while files are processed; nothing reads it
// until the run is over.
type RunResult struct {
	// RunID correlates log lines and results for one invocation.
	RunID string

	FilesProcessed int
	FilesChanged   int
	FilesSkipped   int

	Inserted         int
	Replaced         int
	RemovedMisplaced int

	// Diagnostics holds policy violations and parse failures across all
	// files, in visit order.
	Diagnostics []Diagnostic
}

// ExitCode derives the process exit code: zero only when every file parsed
// and, in check mode, every eligible function passed section verification.
func (r *RunResult) ExitCode() int {
	if len(r.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// Runner drives fix or check runs over files and directories.
//
// Files are processed one at a time: fully read, parsed, planned and
// rewritten before the next file starts. A file that fails to parse is
// reported, skipped and never partially patched; the run continues with
// the remaining files.
type Runner struct {
	registry *ast.Registry
	fixer    *Fixer
	checker  *Checker
	log      *slog.Logger
}

// NewRunner builds a Runner with the built-in Python parser configured
// from cfg.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	parser := ast.NewPythonParser(ast.WithPythonMaxFileSize(cfg.MaxFileSizeBytes))
	registry := ast.NewRegistry()
	registry.Register(parser)

	return &Runner{
		registry: registry,
		fixer:    NewFixer(cfg, parser, logger),
		checker:  NewChecker(cfg.RequiredSections, parser, logger),
		log:      logger,
	}
}

// Run processes the given paths in order. Directories are walked
// recursively; paths whose extension has no registered parser are skipped
// silently.
func (r *Runner) Run(ctx context.Context, mode Mode, paths []string) *RunResult {
	result := &RunResult{RunID: uuid.New().String()}
	logger := r.log.With(
		slog.String("run_id", result.RunID),
		slog.String("mode", string(mode)))

	files, err := r.expand(paths)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Kind:    KindParseFailure,
			Message: err.Error(),
		})
		return result
	}

	logger.Info("run started", slog.Int("files", len(files)))

	for _, path := range files {
		if ctx.Err() != nil {
			logger.Warn("run canceled", slog.String("file", path))
			break
		}
		r.processFile(ctx, mode, path, result, logger)
	}

	logger.Info("run finished",
		slog.Int("processed", result.FilesProcessed),
		slog.Int("changed", result.FilesChanged),
		slog.Int("skipped", result.FilesSkipped),
		slog.Int("diagnostics", len(result.Diagnostics)))

	return result
}

// processFile handles one file, accumulating into result.
func (r *Runner) processFile(ctx context.Context, mode Mode, path string, result *RunResult, logger *slog.Logger) {
	switch mode {
	case ModeCheck:
		diags, err := r.checker.CheckFile(ctx, path)
		if err != nil {
			r.recordFailure(path, err, result, logger)
			return
		}
		result.FilesProcessed++
		result.Diagnostics = append(result.Diagnostics, diags...)

	default:
		fixed, err := r.fixer.FixFile(ctx, path)
		if err != nil {
			r.recordFailure(path, err, result, logger)
			return
		}
		result.FilesProcessed++
		result.Inserted += fixed.Inserted
		result.Replaced += fixed.Replaced
		result.RemovedMisplaced += fixed.RemovedMisplaced
		if fixed.Changed {
			result.FilesChanged++
			recordFileOutcome("changed")
		} else {
			recordFileOutcome("unchanged")
		}
	}
}

// recordFailure reports a skipped file. The file was not modified.
func (r *Runner) recordFailure(path string, err error, result *RunResult, logger *slog.Logger) {
	result.FilesSkipped++
	recordFileOutcome("parse_failed")
	result.Diagnostics = append(result.Diagnostics, Diagnostic{
		File:    path,
		Kind:    KindParseFailure,
		Message: fmt.Sprintf("cannot process file: %v", err),
	})
	logger.Warn("file skipped", slog.String("file", path), slog.Any("error", err))
}

// Matches reports whether a path's extension has a registered parser.
func (r *Runner) Matches(path string) bool {
	_, ok := r.registry.ByExtension(filepath.Ext(path))
	return ok
}

// expand resolves the argument paths to the ordered list of files to
// process: directories are walked recursively, explicit files are kept
// only when a parser handles their extension.
func (r *Runner) expand(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			if r.Matches(path) {
				files = append(files, path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && r.Matches(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}

	return files, nil
}

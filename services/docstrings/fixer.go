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
	"strings"

	"github.com/AleutianAI/docstring-checker/services/docstrings/ast"
	"github.com/AleutianAI/docstring-checker/services/docstrings/check"
	"github.com/AleutianAI/docstring-checker/services/docstrings/config"
	"github.com/AleutianAI/docstring-checker/services/docstrings/patch"
)

// defaultFileMode is used for write-back when the original mode cannot be
// determined (should not happen for a file that was just read).
const defaultFileMode fs.FileMode = 0o644

// FileResult summarizes fixing one file.
type FileResult struct {
	Path             string
	Functions        int
	Eligible         int
	Inserted         int
	Replaced         int
	RemovedMisplaced int

	// Changed is true when the rewritten content differs from the input.
	Changed bool
}

// Fixer rewrites files so every eligible function carries a canonical
// docstring.
//
// One file is fully read, parsed, planned and rewritten before the next
// starts; nothing is shared between files. The whole file is rewritten in
// memory before write-back, so a failure before completion leaves the
// original untouched.
type Fixer struct {
	parser  ast.Parser
	planner *patch.Planner
	log     *slog.Logger
}

// NewFixer builds a Fixer from the configuration.
func NewFixer(cfg *config.Config, parser ast.Parser, logger *slog.Logger) *Fixer {
	synth := check.NewSynthesizer(
		check.WithPlaceholders(cfg.TypePlaceholder, cfg.DescriptionPlaceholder),
		check.WithGeneratedSections(cfg.GeneratedSections),
	)

	return &Fixer{
		parser:  parser,
		planner: patch.NewPlanner(synth, patch.WithIndentStep(cfg.IndentStep)),
		log:     logger,
	}
}

// FixSource rewrites source content in memory and returns the patched
// bytes. The input is returned unchanged (same backing array) when no
// edits are planned.
//
// Everything outside the patched regions is preserved byte-for-byte: the
// content is split into lines on newline boundaries and only whole lines
// are removed or inserted.
func (f *Fixer) FixSource(ctx context.Context, content []byte, path string) ([]byte, *FileResult, error) {
	result := &FileResult{Path: path}

	parsed, err := f.parser.Parse(ctx, content, path)
	if err != nil {
		return nil, nil, err
	}

	lines := strings.Split(string(content), "\n")
	edits := &patch.EditList{}

	for _, fn := range parsed.Functions {
		result.Functions++
		if !check.IsChecked(fn.Name) {
			continue
		}
		result.Eligible++

		state := check.Classify(fn)
		summary := f.planner.Plan(fn, state, lines, edits)
		if !summary.Changed() {
			continue
		}

		if summary.Inserted {
			result.Inserted++
		}
		if summary.Replaced {
			result.Replaced++
		}
		result.RemovedMisplaced += summary.RemovedMisplaced

		f.log.Debug("planned docstring edits",
			slog.String("file", path),
			slog.String("function", fn.Name),
			slog.Int("line", fn.StartLine),
			slog.Bool("inserted", summary.Inserted),
			slog.Bool("replaced", summary.Replaced),
			slog.Int("misplaced_removed", summary.RemovedMisplaced))
	}

	if edits.Empty() {
		return content, result, nil
	}

	result.Changed = true
	recordDocstringEdits(result.Inserted, result.Replaced, result.RemovedMisplaced)

	return []byte(strings.Join(edits.Apply(lines), "\n")), result, nil
}

// FixFile rewrites the file at path in place. The file is written back
// only when its content changed, preserving the original permissions.
func (f *Fixer) FixFile(ctx context.Context, path string) (*FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	patched, result, err := f.FixSource(ctx, content, path)
	if err != nil {
		return nil, err
	}

	if !result.Changed {
		return result, nil
	}

	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, patched, mode); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	f.log.Info("fixed docstrings",
		slog.String("file", path),
		slog.Int("inserted", result.Inserted),
		slog.Int("replaced", result.Replaced),
		slog.Int("misplaced_removed", result.RemovedMisplaced))

	return result, nil
}

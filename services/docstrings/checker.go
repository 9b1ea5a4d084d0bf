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
	"log/slog"
	"os"

	"github.com/AleutianAI/docstring-checker/services/docstrings/ast"
	"github.com/AleutianAI/docstring-checker/services/docstrings/check"
)

// Checker verifies docstring section coverage without modifying files.
type Checker struct {
	parser   ast.Parser
	required []string
	log      *slog.Logger
}

// NewChecker builds a Checker that requires the given sections in every
// eligible function's docstring.
func NewChecker(required []string, parser ast.Parser, logger *slog.Logger) *Checker {
	return &Checker{
		parser:   parser,
		required: required,
		log:      logger,
	}
}

// CheckSource returns one policy-violation diagnostic per missing required
// section per eligible function. A function with no docstring at all is
// missing every required section.
func (c *Checker) CheckSource(ctx context.Context, content []byte, path string) ([]Diagnostic, error) {
	parsed, err := c.parser.Parse(ctx, content, path)
	if err != nil {
		return nil, err
	}

	var diags []Diagnostic
	for _, fn := range parsed.Functions {
		if !check.IsChecked(fn.Name) {
			continue
		}

		var text string
		if state := check.Classify(fn); state.Leading != nil {
			text = state.Leading.Text
		}

		for _, section := range check.MissingSections(text, c.required) {
			diags = append(diags, Diagnostic{
				File:     path,
				Line:     fn.StartLine,
				Function: fn.Name,
				Kind:     KindPolicyViolation,
				Message:  fmt.Sprintf("Function '%s' is missing '%s:' section", fn.Name, section),
			})
		}
	}

	if len(diags) > 0 {
		recordSectionViolations(len(diags))
		c.log.Debug("section coverage violations",
			slog.String("file", path),
			slog.Int("count", len(diags)))
	}

	return diags, nil
}

// CheckFile reads and checks the file at path. The file is never written.
func (c *Checker) CheckFile(ctx context.Context, path string) ([]Diagnostic, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return c.CheckSource(ctx, content, path)
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package patch

import (
	"slices"
	"strings"

	"github.com/AleutianAI/docstring-checker/services/docstrings/ast"
	"github.com/AleutianAI/docstring-checker/services/docstrings/check"
)

// DefaultIndentStep is the number of spaces a body is indented past its
// function header.
const DefaultIndentStep = 4

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithIndentStep overrides the body indent step. Values below 1 are ignored.
func WithIndentStep(step int) PlannerOption {
	return func(p *Planner) {
		if step >= 1 {
			p.indentStep = step
		}
	}
}

// Planner converts a function's DocstringState into edits on an EditList.
//
// All planned positions are computed from the original buffer; the planner
// never looks at intermediate states. One Plan call per function, any
// number of functions per EditList, one Apply per file.
type Planner struct {
	synth      *check.Synthesizer
	indentStep int
}

// NewPlanner creates a Planner that synthesizes replacement docstrings
// with the given Synthesizer.
func NewPlanner(synth *check.Synthesizer, opts ...PlannerOption) *Planner {
	p := &Planner{
		synth:      synth,
		indentStep: DefaultIndentStep,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Summary reports what Plan decided for one function.
type Summary struct {
	// Inserted is true when a new leading docstring was planned for a
	// function that had none.
	Inserted bool

	// Replaced is true when an existing leading docstring was planned for
	// regeneration. False when the existing block is already canonical.
	Replaced bool

	// RemovedMisplaced counts misplaced literal statements planned for
	// removal.
	RemovedMisplaced int
}

// Changed reports whether Plan added any edits.
func (s Summary) Changed() bool {
	return s.Inserted || s.Replaced || s.RemovedMisplaced > 0
}

// Plan appends this function's edits to the edit list.
//
// Rules:
//   - Missing docstring: one insert at the first body line (or just after
//     the header when the body is empty), synthesized with no prior text.
//     This also covers functions whose only docstring-like literals are
//     misplaced: they get the removals and a fresh leading docstring in the
//     same pass, so the output is a fixed point for the next run.
//   - Present docstring: a remove covering the literal's full span plus an
//     insert at the same starting line, synthesized with the existing text
//     carried forward. Skipped entirely when the regenerated block is
//     byte-identical to the existing lines, so already-canonical input
//     plans zero edits.
//   - Every misplaced occurrence: one remove for its full span, never an
//     insertion.
//
// Functions whose body begins on a signature line — "def f(): pass", or a
// multi-line signature whose body shares the closing-parenthesis line — are
// left untouched: there is no line to patch without restructuring the
// statement, and inserting above the body would land inside the parameter
// list.
//
// The buffer is the file's original lines, used only to compare an
// existing docstring block against its regeneration.
func (p *Planner) Plan(fn ast.FunctionNode, state check.DocstringState, buffer []string, edits *EditList) Summary {
	var summary Summary

	for _, occ := range state.Misplaced {
		if occ.StartLine <= fn.HeaderEndLine {
			continue
		}
		edits.Remove(occ.StartLine, occ.EndLine+1)
		summary.RemovedMisplaced++
	}

	indent := strings.Repeat(" ", fn.IndentWidth+p.indentStep)

	if state.Leading != nil {
		if state.Leading.StartLine <= fn.HeaderEndLine {
			return summary
		}

		block := indentBlock(p.synth.Synthesize(fn, state.Leading.Text), indent)
		existing := buffer[state.Leading.StartLine-1 : state.Leading.EndLine]
		if !slices.Equal(existing, block) {
			edits.Remove(state.Leading.StartLine, state.Leading.EndLine+1)
			edits.Insert(state.Leading.StartLine, block)
			summary.Replaced = true
		}
		return summary
	}

	insertLine := fn.HeaderEndLine + 1
	if len(fn.Body) > 0 {
		if fn.Body[0].StartLine <= fn.HeaderEndLine {
			return summary
		}
		insertLine = fn.Body[0].StartLine
	}

	edits.Insert(insertLine, indentBlock(p.synth.Synthesize(fn, ""), indent))
	summary.Inserted = true
	return summary
}

// indentBlock prefixes every non-empty line with the indent. Blank lines
// inside the docstring stay empty so the rewrite never adds trailing
// whitespace.
func indentBlock(lines []string, indent string) []string {
	block := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			block[i] = ""
			continue
		}
		block[i] = indent + line
	}
	return block
}

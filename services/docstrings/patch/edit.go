// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package patch plans and applies line-level edits to source files. It is
// the core of the docstring fixer: the planner converts classifier output
// into removals and insertions, and the applier rewrites the line buffer
// without any edit invalidating another edit's line numbers.
package patch

import (
	"slices"
	"sort"
)

// RemoveOp deletes the line range [StartLine, EndLine). Lines are
// 1-indexed; EndLine is exclusive.
type RemoveOp struct {
	StartLine int
	EndLine   int
}

// InsertOp inserts Lines before the given 1-indexed line of the original
// buffer.
type InsertOp struct {
	Line  int
	Lines []string
}

// EditList collects planned edits for one file.
//
// All positions refer to the original, unmutated buffer: edits are
// collected first and applied in a single deterministic pass. Apply sorts
// removals and insertions in descending line order internally, so correct
// ordering is a structural property of the type rather than a calling
// convention the planner has to remember.
//
// Lifetime: created by the planner, consumed exactly once by Apply within
// a single file-processing pass; never persisted.
type EditList struct {
	removes []RemoveOp
	inserts []InsertOp
}

// Remove plans deletion of the line range [startLine, endLine), 1-indexed,
// end exclusive.
func (l *EditList) Remove(startLine, endLine int) {
	l.removes = append(l.removes, RemoveOp{StartLine: startLine, EndLine: endLine})
}

// Insert plans insertion of the given lines before the 1-indexed line.
func (l *EditList) Insert(line int, lines []string) {
	l.inserts = append(l.inserts, InsertOp{Line: line, Lines: lines})
}

// Empty reports whether no edits are planned.
func (l *EditList) Empty() bool {
	return len(l.removes) == 0 && len(l.inserts) == 0
}

// Len returns the number of planned edits.
func (l *EditList) Len() int {
	return len(l.removes) + len(l.inserts)
}

// Apply rewrites the buffer and returns the result. The input slice is not
// mutated.
//
// Invariant: edits are applied in a single pass in descending line order,
// and a removal starting at the same line as an insertion applies before
// it. Deleting lines shifts every subsequent index downward and inserting
// shifts it upward, but every mutation touches only indices at or above
// the edit's own start line; processing in descending order therefore
// means an edit at a higher line never invalidates a still-pending edit
// at a lower line, and every recorded original-buffer position stays
// valid when its turn comes. Remove-before-insert at the same line makes
// a replace land exactly where the removed span began.
//
// The applier trusts the planner completely: overlapping removals or an
// insertion inside a removed range are planner errors and produce
// undefined results.
func (l *EditList) Apply(buffer []string) []string {
	lines := slices.Clone(buffer)

	type op struct {
		line   int
		insert bool
		end    int      // remove end, exclusive
		block  []string // insert lines
	}

	ops := make([]op, 0, len(l.removes)+len(l.inserts))
	for _, r := range l.removes {
		ops = append(ops, op{line: r.StartLine, end: r.EndLine})
	}
	for _, ins := range l.inserts {
		ops = append(ops, op{line: ins.Line, insert: true, block: ins.Lines})
	}

	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].line != ops[j].line {
			return ops[i].line > ops[j].line
		}
		return !ops[i].insert && ops[j].insert
	})

	for _, o := range ops {
		if o.insert {
			lines = slices.Insert(lines, o.line-1, o.block...)
		} else {
			lines = append(lines[:o.line-1], lines[o.end-1:]...)
		}
	}

	return lines
}

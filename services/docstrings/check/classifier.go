// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package check

import "github.com/AleutianAI/docstring-checker/services/docstrings/ast"

// Leading is a proper docstring: a string-literal expression statement that
// is the first statement of the function body.
type Leading struct {
	// Text is the literal content with quotes removed and surrounding
	// insignificant whitespace trimmed.
	Text string

	// StartLine and EndLine are the 1-indexed inclusive source span of the
	// whole literal statement. Multi-line literals span several lines.
	StartLine int
	EndLine   int
}

// Occurrence is a misplaced docstring-like literal: a string-literal
// expression statement that is not the first statement of the body. It has
// no documentation effect in the host grammar, purely textual noise.
type Occurrence struct {
	StartLine int
	EndLine   int
}

// DocstringState is a function's classified docstring situation.
//
// A function has exactly one DocstringState. A leading docstring and
// misplaced occurrences can coexist: the planner reconciles both in a
// single pass.
type DocstringState struct {
	// Leading is the proper docstring, nil when missing.
	Leading *Leading

	// Misplaced holds every string-literal statement appearing after the
	// first statement position, in document order.
	Misplaced []Occurrence
}

// Missing reports whether the function has no proper leading docstring.
func (s DocstringState) Missing() bool { return s.Leading == nil }

// Classify determines the DocstringState of a function from its body
// statement shapes and spans.
//
// Algorithm:
//  1. Empty body: missing.
//  2. First statement is a string literal: that is the leading docstring,
//     with the statement's full inclusive span.
//  3. Every string-literal statement after the first position becomes a
//     misplaced occurrence. When the first statement is not a literal, the
//     scan covers the whole body.
//
// Quoting style never matters: classification is by statement shape only,
// which the parser adapter has already reduced to StatementKind.
func Classify(fn ast.FunctionNode) DocstringState {
	var state DocstringState

	if len(fn.Body) == 0 {
		return state
	}

	rest := fn.Body
	if first := fn.Body[0]; first.Kind == ast.StatementStringLiteral {
		state.Leading = &Leading{
			Text:      first.Text,
			StartLine: first.StartLine,
			EndLine:   first.EndLine,
		}
		rest = fn.Body[1:]
	}

	for _, stmt := range rest {
		if stmt.Kind != ast.StatementStringLiteral {
			continue
		}
		state.Misplaced = append(state.Misplaced, Occurrence{
			StartLine: stmt.StartLine,
			EndLine:   stmt.EndLine,
		})
	}

	return state
}

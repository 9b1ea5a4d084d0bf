// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package docstrings wires the parser adapter, the policy layer and the
// patch engine into per-file fix and check pipelines. The core returns
// structured results and diagnostics; rendering and exit codes belong to
// the CLI.
package docstrings

import "fmt"

// DiagnosticKind classifies reported problems.
type DiagnosticKind string

const (
	// KindPolicyViolation is a recoverable finding in check-only mode: a
	// required section is missing from an eligible function's docstring.
	// Accumulated, non-fatal, drives the final exit code.
	KindPolicyViolation DiagnosticKind = "policy_violation"

	// KindParseFailure is a fatal per-file condition: the file could not
	// be parsed and was skipped without being touched.
	KindParseFailure DiagnosticKind = "parse_failure"
)

// Diagnostic is one reported problem. The core accumulates these instead
// of printing; the CLI decides how to render them and what exit code to
// return.
type Diagnostic struct {
	// File is the path of the offending file.
	File string

	// Line is the 1-indexed source line, 0 when the problem is file-wide.
	Line int

	// Function is the offending function name, empty for file-wide
	// problems.
	Function string

	// Kind classifies the problem.
	Kind DiagnosticKind

	// Message is the human-readable description.
	Message string
}

// String renders the diagnostic in path:line: message form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}

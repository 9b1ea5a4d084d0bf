// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report renders run results for the terminal. The core returns
// structured diagnostics; this package is the only place that decides how
// they look.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/docstring-checker/services/docstrings"
)

var (
	styleViolation = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleFailure   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleSuccess   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Diagnostics renders one line per diagnostic in path:line: message form.
// Returns the empty string when there is nothing to report. With color
// disabled the output is plain text suitable for piping.
func Diagnostics(diags []docstrings.Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for _, d := range diags {
		line := d.String()
		if color {
			switch d.Kind {
			case docstrings.KindParseFailure:
				line = styleFailure.Render(line)
			default:
				line = styleViolation.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary renders the one-line run summary.
func Summary(mode docstrings.Mode, result *docstrings.RunResult, color bool) string {
	var line string

	switch {
	case mode == docstrings.ModeCheck && len(result.Diagnostics) == 0:
		line = fmt.Sprintf("✅ Docstring checks complete. %d file(s) verified.", result.FilesProcessed)
	case mode == docstrings.ModeCheck:
		return fmt.Sprintf("❌ Docstring checks failed: %d problem(s) in %d file(s).",
			len(result.Diagnostics), result.FilesProcessed+result.FilesSkipped)
	default:
		line = fmt.Sprintf("✅ Docstring checks complete. Missing sections have been added. (%d file(s) changed)",
			result.FilesChanged)
	}

	if color {
		line = styleSuccess.Render(line)
	}
	return line
}

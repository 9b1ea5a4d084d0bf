// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package check holds the pure policy layer of the docstring checker:
// the eligibility filter, the docstring state classifier, the canonical
// docstring synthesizer, and required-section verification. Nothing in
// this package performs I/O or mutates its inputs.
package check

import "strings"

// IsChecked reports whether a function name is subject to docstring
// enforcement.
//
// Policy (single explicit rule):
//   - names with a leading underscore are implementation-private: excluded
//   - dunder names (__init__, __repr__, ...) are special methods: excluded
//   - every other name is checked
//
// Pure function of the name string alone.
func IsChecked(name string) bool {
	if name == "" {
		return false
	}

	// Dunder form also starts with an underscore, so a single prefix test
	// covers both exclusions.
	return !strings.HasPrefix(name, "_")
}

// IsDunder reports whether a name has the two-character-prefix-and-suffix
// magic form (__name__). Exposed for diagnostics and tests; IsChecked
// already excludes these via the leading-underscore rule.
func IsDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

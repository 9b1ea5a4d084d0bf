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

import "strings"

// MissingSections returns the required sections absent from a docstring's
// text, in the required set's order.
//
// The check is literal: a section counts as present when the text contains
// its header word followed by a colon ("Args:", "Returns:", "Raises:").
// An empty docstring is missing every required section. The verification
// set is configured independently of the generation set and need not match.
func MissingSections(docstring string, required []string) []string {
	var missing []string
	for _, section := range required {
		if !strings.Contains(docstring, section+":") {
			missing = append(missing, section)
		}
	}
	return missing
}

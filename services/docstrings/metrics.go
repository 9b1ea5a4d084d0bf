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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// filesTotal counts processed files by outcome.
	// Labels: outcome (changed, unchanged, parse_failed)
	filesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docstrings",
		Subsystem: "fixer",
		Name:      "files_total",
		Help:      "Processed files by outcome",
	}, []string{"outcome"})

	// editsTotal counts planned docstring edits by kind.
	// Labels: kind (inserted, replaced, misplaced_removed)
	editsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docstrings",
		Subsystem: "fixer",
		Name:      "edits_total",
		Help:      "Planned docstring edits by kind",
	}, []string{"kind"})

	// violationsTotal counts required-section violations found in
	// check-only mode.
	violationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "docstrings",
		Subsystem: "checker",
		Name:      "section_violations_total",
		Help:      "Required-section violations found in check mode",
	})
)

func recordFileOutcome(outcome string) {
	filesTotal.WithLabelValues(outcome).Inc()
}

func recordDocstringEdits(inserted, replaced, misplacedRemoved int) {
	editsTotal.WithLabelValues("inserted").Add(float64(inserted))
	editsTotal.WithLabelValues("replaced").Add(float64(replaced))
	editsTotal.WithLabelValues("misplaced_removed").Add(float64(misplacedRemoved))
}

func recordSectionViolations(count int) {
	violationsTotal.Add(float64(count))
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the package tracer. Only the otel API is used here; span
// export is wired (or not) by the host process.
var tracer = otel.Tracer("docstring-checker/ast")

// startParseSpan starts a tracing span for one parse call.
func startParseSpan(ctx context.Context, language, filePath string, sizeBytes int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ast.parse",
		trace.WithAttributes(
			attribute.String("ast.language", language),
			attribute.String("ast.file", filePath),
			attribute.Int("ast.size_bytes", sizeBytes),
		))
}

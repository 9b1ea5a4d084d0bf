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
	"sync"
)

// Parser defines the contract for language-specific function extraction.
//
// Description:
//
//	Parser implementations turn raw source text into FunctionNode values.
//	Each implementation handles one grammar but produces output in the
//	common format defined in types.go, so the classifier and planner stay
//	portable across parser back-ends.
//
// Outputs:
//
//	*ParseResult - Every function definition in the file in document order.
//	error        - Non-nil for total failures only: ErrSyntax for malformed
//	               source, ErrFileTooLarge, ErrInvalidContent, or a context
//	               error. A file that fails to parse is never patched.
//
// Thread Safety:
//
//	Implementations must be safe for concurrent use. Each Parse call
//	creates its own grammar parser internally.
type Parser interface {
	// Parse extracts function definitions from source code.
	Parse(ctx context.Context, content []byte, filePath string) (*ParseResult, error)

	// Language returns the canonical lowercase language name (e.g. "python").
	Language() string

	// Extensions returns the file extensions this parser handles,
	// including the leading dot and lowercase (e.g. [".py", ".pyi"]).
	Extensions() []string
}

// Registry manages parser instances by language and file extension.
//
// File discovery uses the registry to decide which files are subject to
// checking at all: a path whose extension has no registered parser is
// silently skipped.
//
// Thread Safety: fully thread-safe; registration uses write locks,
// lookups use read locks.
type Registry struct {
	mu sync.RWMutex

	byLanguage  map[string]Parser
	byExtension map[string]Parser
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Parser),
		byExtension: make(map[string]Parser),
	}
}

// DefaultRegistry returns a Registry with all built-in parsers registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPythonParser())
	return r
}

// Register adds a parser under its Language() name and all its Extensions().
// Existing entries for the same language or extension are overwritten.
// A nil parser is ignored.
func (r *Registry) Register(parser Parser) {
	if parser == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLanguage[parser.Language()] = parser
	for _, ext := range parser.Extensions() {
		r.byExtension[ext] = parser
	}
}

// ByLanguage returns the parser registered for the given language name.
func (r *Registry) ByLanguage(language string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, ok := r.byLanguage[language]
	return parser, ok
}

// ByExtension returns the parser registered for the given file extension.
// The extension must include the leading dot and is case-sensitive.
func (r *Registry) ByExtension(ext string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, ok := r.byExtension[ext]
	return parser, ok
}

// Extensions returns all registered file extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extensions := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		extensions = append(extensions, ext)
	}
	return extensions
}

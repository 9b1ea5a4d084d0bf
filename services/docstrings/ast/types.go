// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ast extracts function definitions from source files using
// tree-sitter. It is the parser adapter for the docstring checker: every
// downstream component (classifier, planner, applier) operates on the
// FunctionNode values produced here and never touches the parse tree.
package ast

import "errors"

// Sentinel errors returned by parsers.
var (
	// ErrSyntax indicates the source text does not conform to the host
	// grammar. Fatal for the whole file: the caller must skip the file
	// and never partially patch it.
	ErrSyntax = errors.New("syntax error")

	// ErrFileTooLarge indicates the content exceeds the parser's size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidContent indicates the content is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

const (
	// DefaultMaxFileSize is the default maximum file size parsers accept (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the threshold above which parsers log a warning (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

// StatementKind discriminates body statements for docstring classification.
type StatementKind string

const (
	// StatementStringLiteral is an expression statement whose expression is
	// a plain string literal of any quoting style (single, double, triple,
	// raw). Only these can be docstrings.
	StatementStringLiteral StatementKind = "string_literal"

	// StatementOther is any other statement. Computed string expressions
	// (concatenations, calls, f-string arithmetic) fall here: a value that
	// is not a plain literal is never treated as a docstring.
	StatementOther StatementKind = "other"
)

// Statement is one statement in a function body, reduced to the position
// and shape information the classifier needs.
type Statement struct {
	// StartLine is the 1-indexed first source line of the statement.
	StartLine int

	// EndLine is the 1-indexed last source line, inclusive. Multi-line
	// string literals span several lines; EndLine comes from the
	// statement's full span, not its first line.
	EndLine int

	// Kind discriminates string-literal expression statements from
	// everything else.
	Kind StatementKind

	// Text is the literal content with quotes removed and surrounding
	// insignificant whitespace trimmed. Empty for StatementOther.
	Text string
}

// FunctionNode describes one function definition. Produced by a Parser,
// read-only to every downstream component.
type FunctionNode struct {
	// Name is the declared identifier.
	Name string

	// Parameters holds parameter names in declaration order. Splat
	// parameters (*args, **kwargs) and positional/keyword separators are
	// not included.
	Parameters []string

	// ReturnAnnotation is the return type name when the annotation is a
	// simple identifier, otherwise empty. Callers treat empty as "None".
	ReturnAnnotation string

	// StartLine is the 1-indexed source line of the def keyword.
	StartLine int

	// HeaderEndLine is the 1-indexed last line of the signature: the
	// closing parenthesis of the parameter list, or the return annotation
	// when one follows it. Equal to StartLine for single-line headers. A
	// patchable body begins strictly below this line.
	HeaderEndLine int

	// IndentWidth is the column at which the function header begins.
	// Body indentation is IndentWidth plus the configured indent step.
	IndentWidth int

	// Body holds the function's statements in document order. Comments
	// are not statements and are excluded.
	Body []Statement
}

// ParseResult is the output of one Parse call.
type ParseResult struct {
	// FilePath is the path the content was parsed as.
	FilePath string

	// Language is the parser's canonical language name.
	Language string

	// Functions holds every function definition in the file in document
	// order, including methods and nested functions.
	Functions []FunctionNode
}

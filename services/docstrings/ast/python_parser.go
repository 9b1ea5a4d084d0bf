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
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"go.opentelemetry.io/otel/attribute"
)

// PythonParserOption configures a PythonParser instance.
type PythonParserOption func(*PythonParser)

// WithPythonMaxFileSize sets the maximum file size the parser will accept.
//
// Parameters:
//   - bytes: Maximum file size in bytes. Must be positive.
//
// Example:
//
//	parser := NewPythonParser(WithPythonMaxFileSize(5 * 1024 * 1024)) // 5MB limit
func WithPythonMaxFileSize(bytes int64) PythonParserOption {
	return func(p *PythonParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// PythonParser implements the Parser interface for Python source code.
//
// Description:
//
//	PythonParser uses tree-sitter to parse Python source files and extract
//	every function definition (module-level functions, methods, nested
//	functions) into FunctionNode values. Unlike the error-tolerant parsers
//	in the code-intelligence services, this parser treats any syntax error
//	as fatal for the file: a file that cannot be fully parsed must never be
//	partially patched.
//
// Thread Safety:
//
//	PythonParser instances are safe for concurrent use. Each Parse call
//	creates its own tree-sitter parser instance internally.
type PythonParser struct {
	maxFileSize int64
}

// NewPythonParser creates a new PythonParser with the given options.
func NewPythonParser(opts ...PythonParserOption) *PythonParser {
	p := &PythonParser{
		maxFileSize: DefaultMaxFileSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Language returns "python".
func (p *PythonParser) Language() string { return "python" }

// Extensions returns the Python file extensions.
func (p *PythonParser) Extensions() []string { return []string{".py", ".pyi"} }

// Parse extracts function definitions from Python source code.
//
// Inputs:
//   - ctx: Context for cancellation. Checked before parsing.
//     Note: Tree-sitter parsing itself cannot be interrupted mid-parse.
//   - content: Raw Python source code bytes. Must be valid UTF-8.
//   - filePath: Path to the file (for error reporting and result metadata).
//
// Outputs:
//   - *ParseResult: Every function definition in document order. Never nil
//     on success.
//   - error: Non-nil for total failures:
//   - ErrSyntax: The source does not conform to the Python grammar.
//   - ErrFileTooLarge: Content exceeds maxFileSize.
//   - ErrInvalidContent: Content is not valid UTF-8.
//   - Context errors: Context was canceled or timed out.
//
// Thread Safety:
//
//	This method is safe for concurrent use.
func (p *PythonParser) Parse(ctx context.Context, content []byte, filePath string) (*ParseResult, error) {
	ctx, span := startParseSpan(ctx, "python", filePath, len(content))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}

	if len(content) > WarnFileSize {
		slog.Warn("parsing large file",
			slog.String("file", filePath),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed for %s: %w", filePath, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, filePath)
	}

	result := &ParseResult{
		FilePath: filePath,
		Language: "python",
	}

	p.collectFunctions(rootNode, content, result)

	span.SetAttributes(attribute.Int("ast.functions", len(result.Functions)))

	return result, nil
}

// collectFunctions walks the parse tree and appends a FunctionNode for every
// function_definition, in document order. The walk is an explicit recursion
// over the generic node interface (type, children, position) rather than a
// grammar-specific visitor, so descent into classes, decorated definitions
// and nested functions needs no special cases.
func (p *PythonParser) collectFunctions(node *sitter.Node, content []byte, result *ParseResult) {
	if node.Type() == "function_definition" {
		if fn := p.processFunction(node, content); fn != nil {
			result.Functions = append(result.Functions, *fn)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.collectFunctions(node.Child(i), content, result)
	}
}

// processFunction extracts a function definition into a FunctionNode.
func (p *PythonParser) processFunction(node *sitter.Node, content []byte) *FunctionNode {
	fn := &FunctionNode{
		StartLine:     int(node.StartPoint().Row + 1),
		HeaderEndLine: int(node.StartPoint().Row + 1),
		IndentWidth:   int(node.StartPoint().Column),
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if fn.Name == "" {
				fn.Name = nodeText(child, content)
			}
		case "parameters":
			fn.Parameters = extractParameters(child, content)
			fn.HeaderEndLine = max(fn.HeaderEndLine, int(child.EndPoint().Row+1))
		case "type":
			fn.ReturnAnnotation = returnAnnotationName(child, content)
			fn.HeaderEndLine = max(fn.HeaderEndLine, int(child.EndPoint().Row+1))
		case "block":
			fn.Body = extractStatements(child, content)
		}
	}

	if fn.Name == "" {
		return nil
	}

	return fn
}

// extractParameters collects parameter names in declaration order.
//
// Plain, typed and defaulted parameters contribute their name. Splat
// parameters (*args, **kwargs) and the bare positional/keyword separators
// do not: they carry no per-name documentation line in the canonical
// docstring template.
func extractParameters(paramsNode *sitter.Node, content []byte) []string {
	var params []string

	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		switch child.Type() {
		case "identifier":
			params = append(params, nodeText(child, content))
		case "typed_parameter":
			// First named child is the identifier; annotated splats are skipped.
			if inner := child.NamedChild(0); inner != nil && inner.Type() == "identifier" {
				params = append(params, nodeText(inner, content))
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil && nameNode.Type() == "identifier" {
				params = append(params, nodeText(nameNode, content))
			}
		}
	}

	return params
}

// returnAnnotationName extracts the return type name from a "type" node.
// Only a simple identifier annotation contributes its name; subscripted or
// dotted annotations yield "" and the synthesizer falls back to "None".
func returnAnnotationName(typeNode *sitter.Node, content []byte) string {
	inner := typeNode.NamedChild(0)
	if inner == nil || inner.Type() != "identifier" {
		return ""
	}
	return nodeText(inner, content)
}

// extractStatements reduces a block node's children to Statement values.
// Comments are not statements in the Python grammar and are skipped, so a
// leading comment never hides a docstring from the classifier.
func extractStatements(block *sitter.Node, content []byte) []Statement {
	var stmts []Statement

	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}

		stmt := Statement{
			StartLine: int(child.StartPoint().Row + 1),
			EndLine:   int(child.EndPoint().Row + 1),
			Kind:      StatementOther,
		}

		if strNode := stringLiteralChild(child); strNode != nil {
			stmt.Kind = StatementStringLiteral
			stmt.Text = stringLiteralText(nodeText(strNode, content))
		}

		stmts = append(stmts, stmt)
	}

	return stmts
}

// stringLiteralChild returns the string node when the statement is an
// expression statement wrapping a single plain string literal, nil
// otherwise. Classification is by statement shape only: concatenations,
// calls and other computed expressions are never docstrings, whatever
// their runtime value.
func stringLiteralChild(stmt *sitter.Node) *sitter.Node {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return nil
	}

	expr := stmt.NamedChild(0)
	if expr.Type() != "string" {
		return nil
	}
	return expr
}

// stringLiteralText extracts the content of a string literal, removing any
// prefix (r, b, u, f), the surrounding delimiter pair, and insignificant
// surrounding whitespace. Only the exact matched delimiter is stripped —
// three quotes or one, never quote characters that belong to the content.
func stringLiteralText(raw string) string {
	// Strip prefix characters up to the first quote.
	for i := 0; i < len(raw); i++ {
		if raw[i] == '"' || raw[i] == '\'' {
			raw = raw[i:]
			break
		}
	}

	for _, delim := range []string{`"""`, "'''", `"`, "'"} {
		if len(raw) >= 2*len(delim) && strings.HasPrefix(raw, delim) && strings.HasSuffix(raw, delim) {
			raw = raw[len(delim) : len(raw)-len(delim)]
			break
		}
	}

	return strings.TrimSpace(raw)
}

// nodeText returns the source text covered by a node.
func nodeText(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

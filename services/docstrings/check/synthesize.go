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

import (
	"strings"
	"unicode"

	"github.com/AleutianAI/docstring-checker/services/docstrings/ast"
)

// Section header words used by generation and verification.
const (
	SectionArgs    = "Args"
	SectionReturns = "Returns"
	SectionRaises  = "Raises"
)

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithPlaceholders overrides the TYPE and description placeholder strings.
func WithPlaceholders(typePlaceholder, description string) SynthesizerOption {
	return func(s *Synthesizer) {
		if typePlaceholder != "" {
			s.typePlaceholder = typePlaceholder
		}
		if description != "" {
			s.description = description
		}
	}
}

// WithGeneratedSections restricts which sections the synthesizer emits.
// Only Args and Returns are recognized; a Raises section is never
// generated, even when verification requires one (the two section sets
// are configured independently).
func WithGeneratedSections(sections []string) SynthesizerOption {
	return func(s *Synthesizer) {
		s.generateArgs = false
		s.generateReturns = false
		for _, section := range sections {
			switch section {
			case SectionArgs:
				s.generateArgs = true
			case SectionReturns:
				s.generateReturns = true
			}
		}
	}
}

// Synthesizer produces canonical docstring blocks.
//
// Synthesis is a pure function: identical inputs always produce
// byte-identical output. Section ordering is fixed (Args before Returns).
// Parameter types are never inferred; every parameter line carries the
// literal TYPE placeholder.
type Synthesizer struct {
	typePlaceholder string
	description     string
	generateArgs    bool
	generateReturns bool
}

// NewSynthesizer creates a Synthesizer with the canonical defaults.
func NewSynthesizer(opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		typePlaceholder: "TYPE",
		description:     "Description.",
		generateArgs:    true,
		generateReturns: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Synthesize renders the canonical docstring for a function as unindented
// lines, triple-quote delimiters included.
//
// The opening line is the first paragraph of priorText verbatim when one
// exists, otherwise a sentence generated from the function name
// (underscores become spaces, first letter capitalized, trailing period).
// The block has a blank line after the opening sentence and a blank line
// before the closing quotes:
//
//	"""
//	Add.
//
//	Args:
//	----
//	    a (TYPE): Description.
//
//	Returns:
//	-------
//	    None: Description.
//
//	"""
//
// Each section header is underlined with dashes exactly as long as the
// header word. A missing return annotation renders as the literal "None".
func (s *Synthesizer) Synthesize(fn ast.FunctionNode, priorText string) []string {
	lines := []string{`"""`}
	lines = append(lines, strings.Split(s.opening(fn.Name, priorText), "\n")...)

	if s.generateArgs && len(fn.Parameters) > 0 {
		lines = append(lines, "", SectionArgs+":", strings.Repeat("-", len(SectionArgs)))
		for _, param := range fn.Parameters {
			lines = append(lines, "    "+param+" ("+s.typePlaceholder+"): "+s.description)
		}
	}

	if s.generateReturns {
		annotation := fn.ReturnAnnotation
		if annotation == "" {
			annotation = "None"
		}
		lines = append(lines, "", SectionReturns+":", strings.Repeat("-", len(SectionReturns)))
		lines = append(lines, "    "+annotation+": "+s.description)
	}

	lines = append(lines, "", `"""`)
	return lines
}

// opening returns the docstring's first paragraph: prior free text when
// present, a generated sentence otherwise.
func (s *Synthesizer) opening(name, priorText string) string {
	if paragraph := firstParagraph(priorText); paragraph != "" {
		return paragraph
	}

	sentence := strings.ReplaceAll(name, "_", " ")
	return capitalize(sentence) + "."
}

// firstParagraph returns the lines of text up to the first blank line, each
// trimmed of surrounding whitespace. Continuation lines arrive carrying the
// source file's indentation; the synthesizer re-indents the whole block, so
// the carried text must be flush left for re-synthesis to be a fixed point.
func firstParagraph(text string) string {
	var paragraph []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		paragraph = append(paragraph, trimmed)
	}
	return strings.Join(paragraph, "\n")
}

// capitalize uppercases the first rune and lowercases the rest, so a name
// like "fetchHTTP_response" still yields one sentence-cased opening.
func capitalize(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}

// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines the typed error taxonomy the ShExC pipeline
// surfaces to callers: lexical, grammar, semantic, import, and control
// errors, each carrying a single source position.
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rudof-project/shex-go/token"
)

// Kind identifies one leaf of the error taxonomy from the diagnostics
// design: lexical errors, grammar (parse) errors, semantic errors raised by
// the resolver, import-graph errors, and the cooperative-cancellation
// control error.
type Kind int

const (
	_ Kind = iota

	// Lex errors.
	UnterminatedString
	BadEscape
	BadIRI
	BadNumeric
	BadLangTag
	BadRegexFlags

	// Grammar errors.
	Expected
	UnexpectedEOF
	TrailingInput

	// Semantic errors.
	UnknownPrefix
	DuplicateShapeLabel
	UnresolvedShapeRef
	UnresolvedTripleExprRef
	DuplicateClosedQualifier
	NegativeCardinality
	CardinalityOutOfOrder
	EmptyNodeConstraint
	ConflictingFacets

	// Import errors.
	ImportCycle
	ImportFailed

	// Control.
	Cancelled
)

var kindNames = map[Kind]string{
	UnterminatedString:      "UnterminatedString",
	BadEscape:                "BadEscape",
	BadIRI:                   "BadIRI",
	BadNumeric:               "BadNumeric",
	BadLangTag:               "BadLangTag",
	BadRegexFlags:            "BadRegexFlags",
	Expected:                 "Expected",
	UnexpectedEOF:            "UnexpectedEOF",
	TrailingInput:            "TrailingInput",
	UnknownPrefix:            "UnknownPrefix",
	DuplicateShapeLabel:      "DuplicateShapeLabel",
	UnresolvedShapeRef:       "UnresolvedShapeRef",
	UnresolvedTripleExprRef:  "UnresolvedTripleExprRef",
	DuplicateClosedQualifier: "DuplicateClosedQualifier",
	NegativeCardinality:      "NegativeCardinality",
	CardinalityOutOfOrder:    "CardinalityOutOfOrder",
	EmptyNodeConstraint:      "EmptyNodeConstraint",
	ConflictingFacets:        "ConflictingFacets",
	ImportCycle:              "ImportCycle",
	ImportFailed:             "ImportFailed",
	Cancelled:                "Cancelled",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a single diagnostic: a Kind, the position where it was detected,
// the production under attempt (for grammar errors), the offending token
// text (truncated to 80 bytes, per the core contract), and an optional
// detail such as a prefix alias or shape label.
type Error struct {
	Kind       Kind
	Pos        token.Pos
	Production string
	Token      string
	Detail     string
}

const maxTokenText = 80

// Newf builds an Error, truncating the offending token text to the
// contract's 80-byte limit.
func Newf(kind Kind, pos token.Pos, production, tok, detail string) *Error {
	if len(tok) > maxTokenText {
		tok = tok[:maxTokenText]
	}
	return &Error{Kind: kind, Pos: pos, Production: production, Token: tok, Detail: detail}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Pos, e.Kind)
	if e.Production != "" {
		fmt.Fprintf(&b, " (in %s)", e.Production)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " near %q", e.Token)
	}
	return b.String()
}

// Position implements the position-carrying contract consumers rely on.
func (e *Error) Position() token.Pos { return e.Pos }

// List collects multiple Errors, typically accumulated by the resolver,
// which does not stop at the first semantic error it finds.
type List []*Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Add appends err to the list; call Sort to order it by position.
func (l *List) Add(err *Error) {
	*l = append(*l, err)
}

// Sort orders the list by position, for deterministic output.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Pos.Offset() < l[j].Pos.Offset()
	})
}

// Err returns nil if the list is empty, or the list itself as an error
// otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

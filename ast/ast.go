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

// Package ast declares the normalized schema AST a ShExC parse produces:
// shape expressions, triple expressions, node constraints, value sets,
// facets, cardinalities, semantic actions, and annotations. Nodes are
// created bottom-up by the parser and are never mutated once the resolver
// pass completes; the resolver instead returns a second, canonical Schema
// value with prefixed names and relative IRIs replaced by absolute ones.
package ast

import "github.com/rudof-project/shex-go/token"

// A Node is any node in the schema syntax tree. Every node carries the
// position of its first byte and the position immediately following its
// last, so that diagnostics and round-trip tooling can locate it in source.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Span is embedded by leaf nodes that span a single token.
type Span struct {
	From, To token.Pos
}

func (p Span) Pos() token.Pos { return p.From }
func (p Span) End() token.Pos { return p.To }

// NewSpan returns a Span spanning [from, to).
func NewSpan(from, to token.Pos) Span { return Span{from, to} }

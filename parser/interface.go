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

// Package parser implements a recursive-descent parser for ShExC
// (Shape Expressions Compact Syntax). It produces a raw ast.Schema whose
// IriRefs may still be prefixed names or relative IRIREFs and whose shape
// labels may collide; resolving both is the resolver package's job.
//
// The parser calls directly into the scanner package's on-demand Scan*
// methods at each position the grammar expects a particular terminal,
// rather than tokenizing the whole input up front — the grammar's own
// terminals (CODE, REGEXP) are only well-defined once the parser already
// knows which production it is in.
package parser

import (
	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
)

// Config holds parser-wide options, set via functional Option values
// passed to ParseFile.
type Config struct {
	// Filename is attached to every position the parser reports, and has
	// no effect on parsing itself.
	Filename string
}

// Option configures a Config.
type Option func(*Config)

// Filename sets the name recorded against source positions.
func Filename(name string) Option {
	return func(c *Config) { c.Filename = name }
}

// ParseFile parses src as a ShExC document and returns its raw syntax
// tree. A non-nil errors.List is returned whenever the parser recovered
// from one or more syntax errors; callers that want to keep going despite
// errors may still use the partial tree.
func ParseFile(src []byte, opts ...Option) (*ast.Schema, error) {
	cfg := &Config{Filename: "schema.shex"}
	for _, o := range opts {
		o(cfg)
	}
	p := newParser(cfg.Filename, src)
	sch := p.parseSchema()
	if err := p.errs.Err(); err != nil {
		return sch, err
	}
	return sch, nil
}

// ParseFileErrors is like ParseFile but returns the concrete errors.List
// (nil when parsing was clean) instead of a plain error, for callers that
// want to inspect individual diagnostics.
func ParseFileErrors(src []byte, opts ...Option) (*ast.Schema, errors.List) {
	cfg := &Config{Filename: "schema.shex"}
	for _, o := range opts {
		o(cfg)
	}
	p := newParser(cfg.Filename, src)
	sch := p.parseSchema()
	return sch, p.errs
}

// Package shex parses and resolves ShExC (Shape Expressions Compact
// Syntax) documents into canonical ast.Schema values.
package shex

import (
	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/parser"
	"github.com/rudof-project/shex-go/resolver"
)

// Re-exported so callers need only import this package to implement an
// ImportResolver or a RegexEngine, or to pass a resolver.Option.
type (
	ImportResolver = resolver.ImportResolver
	Source         = resolver.Source
	RegexEngine    = resolver.RegexEngine
	Regexp         = resolver.Regexp
	Option         = resolver.Option
)

var (
	WithContext        = resolver.WithContext
	WithBaseIRI        = resolver.WithBaseIRI
	WithImportResolver = resolver.WithImportResolver
	WithRegexEngine    = resolver.WithRegexEngine
	FailFast           = resolver.FailFast
	WithLogger         = resolver.WithLogger
)

// ParseSchema parses src as a ShExC document and resolves it: directives
// are collated, prefixed names and relative IRIs are expanded, IMPORTs
// are fetched and merged through opts' ImportResolver, and every shape
// and triple-expression label reference is checked against the final
// label tables.
//
// A syntax error aborts before resolution and is returned alone. A
// clean parse that fails resolution returns the partial Schema together
// with every semantic diagnostic found, as an errors.List (from
// github.com/rudof-project/shex-go/errors); under FailFast the list
// holds only the first diagnostic found.
func ParseSchema(src []byte, opts ...Option) (*ast.Schema, error) {
	raw, err := parser.ParseFile(src)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(raw, opts...)
}

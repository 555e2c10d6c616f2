package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/parser"
)

func TestParseFilePrefixAndShape(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S { ex:p . }`))
	require.NoError(t, err)
	require.Len(t, sch.Prefixes, 1)
	assert.Equal(t, "ex", sch.Prefixes[0].Alias)
	require.Len(t, sch.Shapes, 1)

	decl := sch.Shapes[0]
	require.NotNil(t, decl.Label.Iri)
	assert.Equal(t, "S", decl.Label.Iri.Local)
	shapeDef, ok := decl.Expr.(*ast.ShapeDef)
	require.True(t, ok)
	tc, ok := shapeDef.Shape.Expr.(*ast.TripleConstraint)
	require.True(t, ok)
	assert.Equal(t, "p", tc.Predicate.Local)
	assert.Equal(t, ast.DefaultCardinality, tc.Card)
}

func TestParseFileBaseAndImport(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`base <http://example.org/> import <http://example.org/other.shex>`))
	require.NoError(t, err)
	require.Len(t, sch.Bases, 1)
	require.Len(t, sch.Imports, 1)
	assert.Equal(t, "http://example.org/other.shex", sch.Imports[0].Iri.Full)
}

func TestParseFileStartDecl(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> start = @ex:S ex:S { ex:p . }`))
	require.NoError(t, err)
	require.NotNil(t, sch.Start)
	ref, ok := sch.Start.(*ast.ShapeRef)
	require.True(t, ok)
	require.NotNil(t, ref.Label.Iri)
	assert.Equal(t, "S", ref.Label.Iri.Local)
}

func TestParseFileAbstractAndExternal(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ABSTRACT ex:S EXTERNAL`))
	require.NoError(t, err)
	require.Len(t, sch.Shapes, 1)
	decl := sch.Shapes[0]
	assert.True(t, decl.IsAbstract)
	_, ok := decl.Expr.(*ast.ShapeExternal)
	assert.True(t, ok)
}

func TestParseFileEachOfDefaultCardinality(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S { ex:p . ; ex:q . }`))
	require.NoError(t, err)
	shapeDef := sch.Shapes[0].Expr.(*ast.ShapeDef)
	eachOf, ok := shapeDef.Shape.Expr.(*ast.EachOf)
	require.True(t, ok)
	assert.Equal(t, ast.DefaultCardinality, eachOf.Card)
	assert.Len(t, eachOf.Exprs, 2)
}

func TestParseFileOneOfDefaultCardinality(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S { ex:p . | ex:q . }`))
	require.NoError(t, err)
	shapeDef := sch.Shapes[0].Expr.(*ast.ShapeDef)
	oneOf, ok := shapeDef.Shape.Expr.(*ast.OneOf)
	require.True(t, ok)
	assert.Equal(t, ast.DefaultCardinality, oneOf.Card)
	assert.Len(t, oneOf.Exprs, 2)
}

func TestParseFileQualifiers(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S EXTRA ex:q CLOSED { ex:p . }`))
	require.NoError(t, err)
	shapeDef := sch.Shapes[0].Expr.(*ast.ShapeDef)
	assert.Equal(t, 1, shapeDef.Shape.ClosedCount)
	require.Len(t, shapeDef.Shape.Extra, 1)
	assert.Equal(t, "q", shapeDef.Shape.Extra[0].Local)
}

func TestParseFileCardinalityShorthand(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S { ex:p .* }`))
	require.NoError(t, err)
	shapeDef := sch.Shapes[0].Expr.(*ast.ShapeDef)
	tc := shapeDef.Shape.Expr.(*ast.TripleConstraint)
	assert.Equal(t, ast.Star(), tc.Card)
}

func TestParseFileExtendsRestricts(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S EXTENDS @ex:Base RESTRICTS @ex:Other { ex:p . }`))
	require.NoError(t, err)
	shapeDef := sch.Shapes[0].Expr.(*ast.ShapeDef)
	require.Len(t, shapeDef.Shape.Extends, 1)
	assert.Equal(t, "Base", shapeDef.Shape.Extends[0].Iri.Local)
	require.Len(t, shapeDef.Shape.Restricts, 1)
	assert.Equal(t, "Other", shapeDef.Shape.Restricts[0].Iri.Local)
}

func TestParseFileExtendsRequiresAt(t *testing.T) {
	_, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S EXTENDS ex:Base { ex:p . }`))
	assert.Error(t, err)
}

func TestParseFileExtendsRestrictsShorthand(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S &@ex:Base -@ex:Other { ex:p . }`))
	require.NoError(t, err)
	shapeDef := sch.Shapes[0].Expr.(*ast.ShapeDef)
	require.Len(t, shapeDef.Shape.Extends, 1)
	assert.Equal(t, "Base", shapeDef.Shape.Extends[0].Iri.Local)
	require.Len(t, shapeDef.Shape.Restricts, 1)
	assert.Equal(t, "Other", shapeDef.Shape.Restricts[0].Iri.Local)
}

func TestParseFileValueSetNumericAndBoolean(t *testing.T) {
	sch, err := parser.ParseFile([]byte(`prefix ex: <http://example.org/> ex:S [ 1 2.5 true false ]`))
	require.NoError(t, err)
	snc, ok := sch.Shapes[0].Expr.(*ast.ShapeNodeConstraint)
	require.True(t, ok)
	nc := snc.Constraint
	require.Len(t, nc.Values, 4)

	intVal := nc.Values[0].(*ast.Value)
	assert.Equal(t, "1", intVal.Lexical)
	require.NotNil(t, intVal.Datatype)
	assert.Equal(t, ast.NumericDatatypeIRI(ast.NumericInteger), intVal.Datatype.Full)

	decVal := nc.Values[1].(*ast.Value)
	assert.Equal(t, "2.5", decVal.Lexical)
	require.NotNil(t, decVal.Datatype)
	assert.Equal(t, ast.NumericDatatypeIRI(ast.NumericDecimal), decVal.Datatype.Full)

	trueVal := nc.Values[2].(*ast.Value)
	assert.Equal(t, "true", trueVal.Lexical)
	require.NotNil(t, trueVal.Datatype)
	assert.Equal(t, ast.BooleanDatatypeIRI(), trueVal.Datatype.Full)

	falseVal := nc.Values[3].(*ast.Value)
	assert.Equal(t, "false", falseVal.Lexical)
	require.NotNil(t, falseVal.Datatype)
	assert.Equal(t, ast.BooleanDatatypeIRI(), falseVal.Datatype.Full)
}

func TestParseFileSyntaxError(t *testing.T) {
	_, err := parser.ParseFile([]byte(`prefix ex <http://example.org/>`))
	assert.Error(t, err)
}

func TestParseFileErrorsRecovers(t *testing.T) {
	sch, errs := parser.ParseFileErrors([]byte(`prefix ex <http://example.org/> ex:S { ex:p . }`))
	assert.NotEmpty(t, errs)
	assert.NotNil(t, sch)
}

package resolver_test

import (
	"context"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/parser"
	"github.com/rudof-project/shex-go/resolver"
	"github.com/rudof-project/shex-go/token"
)

func mustParse(t *testing.T, src string) *ast.Schema {
	t.Helper()
	sch, err := parser.ParseFile([]byte(src))
	require.NoError(t, err)
	return sch
}

func errKinds(t *testing.T, err error) []errors.Kind {
	t.Helper()
	if err == nil {
		return nil
	}
	list, ok := err.(errors.List)
	require.True(t, ok, "expected errors.List, got %T", err)
	kinds := make([]errors.Kind, len(list))
	for i, e := range list {
		kinds[i] = e.Kind
	}
	return kinds
}

// scenario 1.
func TestResolvePrefixedShape(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S { :p . }`)
	sch, err := resolver.Resolve(raw)
	require.NoError(t, err)

	decl, ok := sch.Labels["http://ex/S"]
	require.True(t, ok)
	shape, ok := decl.Expr.(*ast.ShapeDef)
	require.True(t, ok)
	tc, ok := shape.Shape.Expr.(*ast.TripleConstraint)
	require.True(t, ok)
	assert.Equal(t, "http://ex/p", tc.Predicate.Full)
	assert.Equal(t, ast.Cardinality{Min: 1, Max: 1}, tc.Card)
}

// scenario 4: forward shape reference resolves once the schema is fully walked.
func TestResolveForwardShapeRef(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S @:T :T { :q . }`)
	sch, err := resolver.Resolve(raw)
	require.NoError(t, err)

	decl, ok := sch.Labels["http://ex/S"]
	require.True(t, ok)
	ref, ok := decl.Expr.(*ast.ShapeRef)
	require.True(t, ok)
	assert.Equal(t, "http://ex/T", ref.Label.Key())
}

// scenario 5.
func TestResolveDuplicateShapeLabel(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S { :p . } :S { :p . }`)
	_, err := resolver.Resolve(raw)
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.DuplicateShapeLabel)
}

// scenario 6: redeclaring a prefix does not retroactively change earlier
// references.
func TestResolvePrefixPositionMonotonic(t *testing.T) {
	raw := mustParse(t, `prefix ex: <http://e/>
ex:S { ex:p . }
prefix ex: <http://other/>
ex:T { ex:p . }
`)
	sch, err := resolver.Resolve(raw)
	require.NoError(t, err)

	early := sch.Labels["http://e/S"]
	require.NotNil(t, early)
	earlyShape := early.Expr.(*ast.ShapeDef).Shape
	earlyTC := earlyShape.Expr.(*ast.TripleConstraint)
	assert.Equal(t, "http://e/p", earlyTC.Predicate.Full)

	late := sch.Labels["http://other/T"]
	require.NotNil(t, late)
	lateShape := late.Expr.(*ast.ShapeDef).Shape
	lateTC := lateShape.Expr.(*ast.TripleConstraint)
	assert.Equal(t, "http://other/p", lateTC.Predicate.Full)
}

func TestResolveUnknownPrefix(t *testing.T) {
	raw := mustParse(t, `:S { ex:p . }`)
	_, err := resolver.Resolve(raw)
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.UnknownPrefix)
}

func TestResolveUnresolvedShapeRef(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S @:Missing`)
	_, err := resolver.Resolve(raw)
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.UnresolvedShapeRef)
}

func TestResolveCardinalityOutOfOrder(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S { :p .{2,1} }`)
	_, err := resolver.Resolve(raw)
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.CardinalityOutOfOrder)
}

func TestResolveDuplicateClosedQualifier(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S CLOSED CLOSED { :p . }`)
	_, err := resolver.Resolve(raw)
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.DuplicateClosedQualifier)
}

func TestResolveBadLangTag(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S [@en @q]`)
	_, err := resolver.Resolve(raw)
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.BadLangTag)
}

func TestResolveConflictingFacets(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> :S MININCLUSIVE 5 MAXINCLUSIVE 1`)
	_, err := resolver.Resolve(raw)
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.ConflictingFacets)
}

type byteResolver struct {
	sources map[string][]byte
}

func (r byteResolver) Resolve(_ context.Context, iri string) (resolver.Source, error) {
	src, ok := r.sources[iri]
	if !ok {
		return resolver.Source{}, errors.Newf(errors.ImportFailed, token.NoPos, "importDecl", "", "not found")
	}
	return resolver.Source{Bytes: src}, nil
}

func TestResolveImportCycle(t *testing.T) {
	raw := mustParse(t, `import <http://ex/a>`)
	imports := byteResolver{sources: map[string][]byte{
		"http://ex/a": []byte(`import <http://ex/b>`),
		"http://ex/b": []byte(`import <http://ex/a>`),
	}}
	_, err := resolver.Resolve(raw, resolver.WithImportResolver(imports))
	kinds := errKinds(t, err)
	assert.Contains(t, kinds, errors.ImportCycle)
}

func TestResolveImportMergesLabels(t *testing.T) {
	raw := mustParse(t, `prefix : <http://ex/> import <http://ex/shared> :S @:T`)
	imports := byteResolver{sources: map[string][]byte{
		"http://ex/shared": []byte(`prefix : <http://ex/> :T { :q . }`),
	}}
	sch, err := resolver.Resolve(raw, resolver.WithImportResolver(imports))
	require.NoError(t, err)
	_, ok := sch.Labels["http://ex/T"]
	assert.True(t, ok)
}

// merging two imports whose prefix sets only partly overlap with the
// importing schema's own must produce the same alias list regardless of
// Go's randomized map iteration order.
func TestResolveImportMergeDeterministicPrefixOrder(t *testing.T) {
	raw := mustParse(t, `prefix a: <http://a/> import <http://ex/one> import <http://ex/two> a:S { a:p . }`)
	imports := byteResolver{sources: map[string][]byte{
		"http://ex/one": []byte(`prefix b: <http://b/> prefix c: <http://c/> b:T1 { b:p . }`),
		"http://ex/two": []byte(`prefix d: <http://d/> prefix c: <http://c/other/> d:T2 { d:p . }`),
	}}

	var runs [][]string
	for i := 0; i < 5; i++ {
		sch, err := resolver.Resolve(raw, resolver.WithImportResolver(imports))
		require.NoError(t, err)
		aliases := make([]string, len(sch.Prefixes))
		for j, p := range sch.Prefixes {
			aliases[j] = p.Alias
		}
		runs = append(runs, aliases)
	}
	for i := 1; i < len(runs); i++ {
		if diff := pretty.Diff(runs[0], runs[i]); len(diff) > 0 {
			t.Errorf("prefix merge order not deterministic across runs: %v", diff)
		}
	}
}

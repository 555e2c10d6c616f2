package format_test

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/format"
	"github.com/rudof-project/shex-go/parser"
	"github.com/rudof-project/shex-go/resolver"
)

// cmpOpts ignores source-position bookkeeping (irrelevant once a schema is
// resolved and re-parsed from freshly formatted text) and compares
// arbitrary-precision decimals by value.
var cmpOpts = cmp.Options{
	cmpopts.IgnoreTypes(ast.Span{}),
	cmpopts.IgnoreFields(ast.Schema{}, "Labels"),
	cmp.Comparer(func(a, b *apd.Decimal) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Cmp(b) == 0
	}),
}

func resolveSrc(t *testing.T, src string) *ast.Schema {
	t.Helper()
	raw, err := parser.ParseFile([]byte(src))
	require.NoError(t, err)
	sch, err := resolver.Resolve(raw)
	require.NoError(t, err)
	return sch
}

// parse(serialize(S)) = S, for a handful of schemas exercising each
// corner of the model: Boolean combinators, qualifiers, cardinalities,
// facets, value sets, and semantic actions/annotations.
func TestRoundTrip(t *testing.T) {
	cases := []string{
		`<http://ex/S> { <http://ex/p> . }`,
		`<http://ex/S> { <http://ex/p> <http://ex/T>{1,*} }`,
		`<http://ex/S> EXTRA <http://ex/q> CLOSED { <http://ex/p> . ; <http://ex/q> . }`,
		`<http://ex/S> { (<http://ex/p> . | <http://ex/q> .){0,3} }`,
		`<http://ex/S> [ "a" "b"~ -"ab" ]`,
		`<http://ex/S> [ 1 2.5 true false ]`,
		`<http://ex/S> IRI MINLENGTH 3`,
		`<http://ex/S> { <http://ex/p> . // <http://ex/note> "ok" }`,
		`<http://ex/T> { <http://ex/p> . } <http://ex/S> @<http://ex/T>`,
		`<http://ex/S> EXTERNAL`,
		`<http://ex/Base> { <http://ex/p> . } <http://ex/S> EXTENDS @<http://ex/Base> { <http://ex/q> . }`,
		`<http://ex/Base> { <http://ex/p> . } <http://ex/S> &@<http://ex/Base> { <http://ex/q> . }`,
		`<http://ex/Base> { <http://ex/p> . } <http://ex/S> RESTRICTS @<http://ex/Base> { <http://ex/q> . }`,
	}

	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			want := resolveSrc(t, src)
			out := format.Schema(want)
			got := resolveSrc(t, out)
			if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
				t.Errorf("round trip mismatch for %q via %q (-want +got):\n%s", src, out, diff)
			}
		})
	}
}

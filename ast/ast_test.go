package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/ast"
)

func TestCardinalityShorthands(t *testing.T) {
	assert.Equal(t, ast.Cardinality{Min: 0, Max: ast.Unbounded}, ast.Star())
	assert.Equal(t, ast.Cardinality{Min: 1, Max: ast.Unbounded}, ast.Plus())
	assert.Equal(t, ast.Cardinality{Min: 0, Max: 1}, ast.Optional())
	assert.Equal(t, ast.Cardinality{Min: 3, Max: 3}, ast.Exactly(3))
	assert.Equal(t, ast.Cardinality{Min: 2, Max: ast.Unbounded}, ast.AtLeast(2))
	assert.Equal(t, ast.Cardinality{Min: 2, Max: 5}, ast.Range(2, 5))
	assert.Equal(t, ast.Cardinality{Min: 1, Max: 1}, ast.DefaultCardinality)
}

func TestCardinalityIsUnbounded(t *testing.T) {
	assert.True(t, ast.Star().IsUnbounded())
	assert.True(t, ast.Plus().IsUnbounded())
	assert.False(t, ast.Optional().IsUnbounded())
	assert.False(t, ast.Exactly(4).IsUnbounded())
}

func TestCardinalityWellOrdered(t *testing.T) {
	tests := []struct {
		c    ast.Cardinality
		want bool
	}{
		{ast.Cardinality{Min: 1, Max: 1}, true},
		{ast.Cardinality{Min: 0, Max: ast.Unbounded}, true},
		{ast.Cardinality{Min: 2, Max: 1}, false},
		{ast.Cardinality{Min: -1, Max: 1}, false},
		{ast.Cardinality{Min: 2, Max: 2}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.WellOrdered())
	}
}

func TestNumericLiteralCmp(t *testing.T) {
	a, err := ast.NewNumericLiteral(ast.NumericDecimal, "1.50")
	require.NoError(t, err)
	b, err := ast.NewNumericLiteral(ast.NumericDecimal, "1.5")
	require.NoError(t, err)
	c, err := ast.NewNumericLiteral(ast.NumericInteger, "2")
	require.NoError(t, err)

	assert.Equal(t, 0, a.Cmp(b))
	assert.Equal(t, -1, a.Cmp(c))
	assert.Equal(t, 1, c.Cmp(a))
}

func TestNumericLiteralString(t *testing.T) {
	n, err := ast.NewNumericLiteral(ast.NumericDouble, "1.5e10")
	require.NoError(t, err)
	assert.Equal(t, "1.5e10", n.String())
}

package resolver

import (
	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/token"
)

// checkCardinality flags the two cardinality-order problems the grammar
// accepts syntactically but the resolver must surface: a negative
// minimum, or a finite max below the min.
func (s *state) checkCardinality(card ast.Cardinality, pos token.Pos, production string) {
	if card.Min < 0 {
		s.addErr(errors.NegativeCardinality, pos, production, "")
		return
	}
	if !card.WellOrdered() {
		s.addErr(errors.CardinalityOutOfOrder, pos, production, "")
	}
}

// checkNodeConstraint flags an empty NodeConstraint and any conflicting
// facet pair (min bound exceeding a max bound of the same family).
func (s *state) checkNodeConstraint(nc *ast.NodeConstraint, production string) {
	if nc.IsEmpty() {
		s.addErr(errors.EmptyNodeConstraint, nc.Pos(), production, "")
	}
	s.checkFacets(nc.Facets, nc.Pos(), production)
}

func (s *state) checkFacets(facets []ast.XsFacet, pos token.Pos, production string) {
	var minLen, maxLen *int
	var minIncl, maxIncl, minExcl, maxExcl *ast.NumericLiteral
	for _, f := range facets {
		switch v := f.(type) {
		case *ast.MinLength:
			n := v.N
			minLen = &n
		case *ast.MaxLength:
			n := v.N
			maxLen = &n
		case *ast.MinInclusive:
			val := v.Value
			minIncl = &val
		case *ast.MaxInclusive:
			val := v.Value
			maxIncl = &val
		case *ast.MinExclusive:
			val := v.Value
			minExcl = &val
		case *ast.MaxExclusive:
			val := v.Value
			maxExcl = &val
		}
	}
	if minLen != nil && maxLen != nil && *minLen > *maxLen {
		s.addErr(errors.ConflictingFacets, pos, production, "minLength/maxLength")
	}
	checkNumericBound := func(lo, hi *ast.NumericLiteral, kind string) {
		if lo != nil && hi != nil && lo.Cmp(*hi) > 0 {
			s.addErr(errors.ConflictingFacets, pos, production, kind)
		}
	}
	checkNumericBound(minIncl, maxIncl, "minInclusive/maxInclusive")
	checkNumericBound(minIncl, maxExcl, "minInclusive/maxExclusive")
	checkNumericBound(minExcl, maxIncl, "minExclusive/maxInclusive")
	checkNumericBound(minExcl, maxExcl, "minExclusive/maxExclusive")
}

package parser

import (
	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/token"
)

// rdfTypeIri is the absolute IRI the `a` predicate shorthand expands to.
const rdfTypeIri = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// parseTripleExpression parses oneOfTripleExpr: one or more
// groupTripleExprs separated by `|`.
func (p *parser) parseTripleExpression(production string) (ast.TripleExpression, bool) {
	from := p.pos()
	first, ok := p.parseGroupTripleExpr(production)
	if !ok {
		return nil, false
	}
	exprs := []ast.TripleExpression{first}
	for {
		p.ws()
		if p.sc.Peek() != '|' {
			break
		}
		p.sc.Advance()
		next, ok := p.parseGroupTripleExpr(production)
		if !ok {
			return nil, false
		}
		exprs = append(exprs, next)
	}
	if len(exprs) == 1 {
		return exprs[0], true
	}
	return &ast.OneOf{Span: ast.NewSpan(from, p.pos()), Exprs: exprs, Card: ast.DefaultCardinality}, true
}

// parseGroupTripleExpr parses groupTripleExpr: one or more
// unaryTripleExprs separated by `;`, with an optional dangling trailing
// `;`.
func (p *parser) parseGroupTripleExpr(production string) (ast.TripleExpression, bool) {
	from := p.pos()
	first, ok := p.parseUnaryTripleExpr(production)
	if !ok {
		return nil, false
	}
	exprs := []ast.TripleExpression{first}
	for {
		p.ws()
		if p.sc.Peek() != ';' {
			break
		}
		p.sc.Advance()
		if p.atTripleExprTerminator() {
			break
		}
		next, ok := p.parseUnaryTripleExpr(production)
		if !ok {
			return nil, false
		}
		exprs = append(exprs, next)
	}
	if len(exprs) == 1 {
		return exprs[0], true
	}
	return &ast.EachOf{Span: ast.NewSpan(from, p.pos()), Exprs: exprs, Card: ast.DefaultCardinality}, true
}

// atTripleExprTerminator reports whether the cursor sits at one of the
// runes that may legally follow a dangling trailing `;`.
func (p *parser) atTripleExprTerminator() bool {
	p.ws()
	switch p.sc.Peek() {
	case '}', ')', '|', -1:
		return true
	default:
		return false
	}
}

// parseUnaryTripleExpr parses unaryTripleExpr: an optional `$label`
// binding followed by a tripleConstraint or bracketedTripleExpr, or an
// `&label` include.
func (p *parser) parseUnaryTripleExpr(production string) (ast.TripleExpression, bool) {
	p.ws()
	if p.sc.Peek() == '&' {
		from := p.pos()
		p.sc.Advance()
		label, ok := p.parseTripleExprLabel(production)
		if !ok {
			return nil, false
		}
		return &ast.TripleExprRef{Span: ast.NewSpan(from, p.pos()), Label: label}, true
	}
	from := p.pos()
	var id *ast.TripleExprLabel
	if p.sc.Peek() == '$' {
		p.sc.Advance()
		label, ok := p.parseTripleExprLabel(production)
		if !ok {
			return nil, false
		}
		id = &label
	}
	p.ws()
	if p.sc.Peek() == '(' {
		return p.parseBracketedTripleExpr(from, id, production)
	}
	return p.parseTripleConstraint(from, id, production)
}

// parseBracketedTripleExpr parses `'(' tripleExpression ')' cardinality?
// annotation* semanticActions`, attaching the cardinality/label/
// annotations/semantic actions to the inner OneOf/EachOf, or wrapping a
// singleton inner expression in a one-element EachOf so they have
// somewhere to live.
func (p *parser) parseBracketedTripleExpr(from token.Pos, id *ast.TripleExprLabel, production string) (ast.TripleExpression, bool) {
	p.sc.Advance() // '('
	inner, ok := p.parseTripleExpression(production)
	if !ok {
		return nil, false
	}
	if !p.expect(')', production) {
		return nil, false
	}
	card := p.parseCardinality()
	anns := p.parseAnnotations()
	acts := p.parseSemanticActions()
	span := ast.NewSpan(from, p.pos())
	switch v := inner.(type) {
	case *ast.OneOf:
		v.Span, v.Card, v.Annotations, v.SemActs, v.Id = span, card, anns, acts, id
		return v, true
	case *ast.EachOf:
		v.Span, v.Card, v.Annotations, v.SemActs, v.Id = span, card, anns, acts, id
		return v, true
	default:
		return &ast.EachOf{
			Span: span, Exprs: []ast.TripleExpression{inner},
			Card: card, Annotations: anns, SemActs: acts, Id: id,
		}, true
	}
}

// parseTripleConstraint parses `senseFlags? predicate inlineShapeExpression
// cardinality? annotation* semanticActions`.
func (p *parser) parseTripleConstraint(from token.Pos, id *ast.TripleExprLabel, production string) (ast.TripleExpression, bool) {
	negated, inverse := p.parseSenseFlags()
	predicate, ok := p.parsePredicate(production)
	if !ok {
		return nil, false
	}
	valueExpr, ok := p.parseInlineShapeExpression(production)
	if !ok {
		return nil, false
	}
	card := p.parseCardinality()
	anns := p.parseAnnotations()
	acts := p.parseSemanticActions()
	return &ast.TripleConstraint{
		Span:        ast.NewSpan(from, p.pos()),
		Negated:     negated,
		Inverse:     inverse,
		Predicate:   predicate,
		ValueExpr:   valueExpr,
		Card:        card,
		SemActs:     acts,
		Annotations: anns,
		Id:          id,
	}, true
}

// parseSenseFlags parses the optional `!`/`^` pair in either order.
func (p *parser) parseSenseFlags() (negated, inverse bool) {
	for {
		p.ws()
		switch p.sc.Peek() {
		case '!':
			p.sc.Advance()
			negated = true
		case '^':
			p.sc.Advance()
			inverse = true
		default:
			return negated, inverse
		}
	}
}

// parsePredicate parses an IRI, or the bare `a` RDF_TYPE shorthand.
func (p *parser) parsePredicate(production string) (ast.IriRef, bool) {
	p.ws()
	if p.peekRDFType() {
		from := p.pos()
		p.sc.ScanWord()
		return ast.NewIriRefFull(from, p.pos(), rdfTypeIri), true
	}
	return p.parseIri(production)
}

// parseInlineShapeExpression parses an inline shape expression for a
// tripleConstraint's value expression, collapsing the wildcard `.` atom
// to a nil ShapeExpression per TripleConstraint's convention.
func (p *parser) parseInlineShapeExpression(production string) (ast.ShapeExpression, bool) {
	expr, ok := p.parseShapeExpression(production)
	if !ok {
		return nil, false
	}
	if _, isWildcard := expr.(*ast.ShapeWildcard); isWildcard {
		return nil, true
	}
	return expr, true
}

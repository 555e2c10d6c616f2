package parser

import (
	"strings"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/token"
)

// parseShapeExpression parses shapeOr, the entry point for every shape
// expression context (inline or top-level — the grammar's inline forms
// differ from the top-level ones only in where a trailing `.` cardinality
// marker is legal, which this parser resolves structurally rather than
// with a parallel inline* production set).
func (p *parser) parseShapeExpression(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	first, ok := p.parseShapeAnd(production)
	if !ok {
		return nil, false
	}
	exprs := []ast.ShapeExpression{first}
	for {
		if _, ok := p.atKeyword(token.OR); !ok {
			break
		}
		next, ok := p.parseShapeAnd(production)
		if !ok {
			return nil, false
		}
		exprs = append(exprs, next)
	}
	return ast.NewShapeOr(from, p.pos(), exprs), true
}

func (p *parser) parseShapeAnd(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	first, ok := p.parseShapeNot(production)
	if !ok {
		return nil, false
	}
	exprs := []ast.ShapeExpression{first}
	for {
		if _, ok := p.atKeyword(token.AND); !ok {
			break
		}
		next, ok := p.parseShapeNot(production)
		if !ok {
			return nil, false
		}
		exprs = append(exprs, next)
	}
	return ast.NewShapeAnd(from, p.pos(), exprs), true
}

func (p *parser) parseShapeNot(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	p.ws()
	if p.eat('!') {
		inner, ok := p.parseShapeAtom(production)
		if !ok {
			return nil, false
		}
		return &ast.ShapeNot{Span: ast.NewSpan(from, p.pos()), Expr: inner}, true
	}
	return p.parseShapeAtom(production)
}

// parseShapeAtom implements the grammar's adaptive-predictive shapeAtom
// dispatch: the current rune, or the keyword starting at the cursor,
// determines which of the five alternatives to commit to. nonLitNodeConstraint
// and shapeOrRef may be followed by one another (conjoined with AND) since
// both can legally qualify the same focus node.
func (p *parser) parseShapeAtom(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	p.ws()

	switch {
	case p.sc.Peek() == '.':
		p.sc.Advance()
		return &ast.ShapeWildcard{Span: ast.NewSpan(from, p.pos())}, true

	case p.sc.Peek() == '(':
		p.sc.Advance()
		inner, ok := p.parseShapeExpression(production)
		if !ok {
			return nil, false
		}
		if !p.expect(')', production) {
			return nil, false
		}
		return inner, true

	case p.sc.Peek() == '@':
		ref, ok := p.parseShapeRef(production)
		if !ok {
			return nil, false
		}
		if p.atNonLitNodeConstraintStart() {
			nc, ok := p.parseNonLitNodeConstraint(production)
			if !ok {
				return nil, false
			}
			return ast.NewShapeAnd(from, p.pos(), []ast.ShapeExpression{ref, nc}), true
		}
		return ref, true

	case p.atShapeDefinitionStart():
		def, ok := p.parseShapeDefinition(production)
		if !ok {
			return nil, false
		}
		if p.atNonLitNodeConstraintStart() {
			nc, ok := p.parseNonLitNodeConstraint(production)
			if !ok {
				return nil, false
			}
			return ast.NewShapeAnd(from, p.pos(), []ast.ShapeExpression{def, nc}), true
		}
		return def, true

	case p.atNonLitNodeConstraintStart():
		nc, ok := p.parseNonLitNodeConstraint(production)
		if !ok {
			return nil, false
		}
		if p.sc.Peek() == '@' || p.atShapeDefinitionStart() {
			ref, ok := p.parseShapeOrRef(production)
			if !ok {
				return nil, false
			}
			return ast.NewShapeAnd(from, p.pos(), []ast.ShapeExpression{nc, ref}), true
		}
		return nc, true

	case p.atLitNodeConstraintStart():
		return p.parseLitNodeConstraint(production)

	default:
		// A bare IRI or prefixed name at this position is the datatype
		// form of litNodeConstraint.
		if p.atIriStart() {
			return p.parseLitNodeConstraint(production)
		}
		p.errorf(errors.Expected, production, "expected a shape expression")
		return nil, false
	}
}

// parseShapeOrRef parses shapeOrRef: either a shapeRef (`@label`) or a
// shapeDefinition.
func (p *parser) parseShapeOrRef(production string) (ast.ShapeExpression, bool) {
	if p.sc.Peek() == '@' {
		return p.parseShapeRef(production)
	}
	return p.parseShapeDefinition(production)
}

func (p *parser) parseShapeRef(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	label, ok := p.parseShapeRefLabel(production)
	if !ok {
		return nil, false
	}
	return &ast.ShapeRef{Span: ast.NewSpan(from, p.pos()), Label: label}, true
}

// parseShapeRefLabel parses a shapeRef (`@PNAME_*` or `@shapeExprLabel`),
// the form EXTENDS/RESTRICTS and their `&`/`-` shorthands all require,
// returning just the label.
func (p *parser) parseShapeRefLabel(production string) (ast.ShapeExprLabel, bool) {
	if !p.expect('@', production) {
		return ast.ShapeExprLabel{}, false
	}
	return p.parseShapeExprLabel(production)
}

// atShapeDefinitionStart reports whether a shapeDefinition (qualifiers or
// the opening brace of its body) starts at the cursor.
func (p *parser) atShapeDefinitionStart() bool {
	p.ws()
	if p.sc.Peek() == '{' || p.sc.Peek() == '&' || p.sc.Peek() == '-' {
		return true
	}
	for _, kw := range []token.Token{token.CLOSED, token.EXTRA, token.EXTENDS, token.RESTRICTS} {
		if tok, ok := p.peekKeyword(); ok && tok == kw {
			return true
		}
	}
	return false
}

// parseShapeDefinition parses `qualifiers ('{' tripleExpression? '}')?
// annotation* semanticActions`.
func (p *parser) parseShapeDefinition(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	shape := &ast.Shape{}
	if !p.parseQualifiers(shape, production) {
		return nil, false
	}
	p.ws()
	if p.eat('{') {
		p.ws()
		if p.sc.Peek() != '}' {
			expr, ok := p.parseTripleExpression(production)
			if !ok {
				return nil, false
			}
			shape.Expr = expr
		}
		if !p.expect('}', production) {
			return nil, false
		}
	}
	shape.Annotations = p.parseAnnotations()
	shape.SemActs = p.parseSemanticActions()
	shape.Span = ast.NewSpan(from, p.pos())
	return &ast.ShapeDef{Span: shape.Span, Shape: shape}, true
}

// parseQualifiers parses the CLOSED/EXTRA/EXTENDS/RESTRICTS modifiers
// (EXTENDS and RESTRICTS also accept the `&`/`-` shorthand sigils) that
// may precede a shape's triple-expression body, in any order and
// combination (a DuplicateClosedQualifier is flagged by the resolver, not
// rejected here).
func (p *parser) parseQualifiers(shape *ast.Shape, production string) bool {
	for {
		p.ws()
		if _, ok := p.atKeyword(token.CLOSED); ok {
			shape.Closed = true
			shape.ClosedCount++
			continue
		}
		if _, ok := p.atKeyword(token.EXTRA); ok {
			for {
				iri, ok := p.parseIri(production)
				if !ok {
					return false
				}
				shape.Extra = append(shape.Extra, iri)
				p.ws()
				if !p.atIriStart() {
					break
				}
			}
			continue
		}
		if _, ok := p.atKeyword(token.EXTENDS); ok {
			label, ok := p.parseShapeRefLabel(production)
			if !ok {
				return false
			}
			shape.Extends = append(shape.Extends, label)
			continue
		}
		if _, ok := p.atKeyword(token.RESTRICTS); ok {
			label, ok := p.parseShapeRefLabel(production)
			if !ok {
				return false
			}
			shape.Restricts = append(shape.Restricts, label)
			continue
		}
		if p.eat('&') {
			label, ok := p.parseShapeRefLabel(production)
			if !ok {
				return false
			}
			shape.Extends = append(shape.Extends, label)
			continue
		}
		if p.eat('-') {
			label, ok := p.parseShapeRefLabel(production)
			if !ok {
				return false
			}
			shape.Restricts = append(shape.Restricts, label)
			continue
		}
		return true
	}
}

// atIriStart reports whether an IRIREF or prefixed name starts at the
// cursor, without consuming anything.
func (p *parser) atIriStart() bool {
	p.ws()
	if p.sc.Peek() == '<' {
		return true
	}
	if p.sc.Peek() == ':' {
		return true
	}
	word, boundary := p.sc.PeekWord()
	if word == "" {
		return false
	}
	if boundary == ':' {
		return true
	}
	// A longer identifier whose boundary continues PN_CHARS is still the
	// start of a PN_PREFIX; only a recognized keyword or the bare `a`
	// shorthand is NOT an IRI here.
	if isIdentContinuation(boundary) {
		return true
	}
	if word == "a" {
		return false
	}
	if _, ok := token.Lookup(strings.ToUpper(word)); ok || word == "start" {
		return false
	}
	return true
}

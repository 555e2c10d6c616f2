package parser

import (
	"strconv"
	"strings"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/scanner"
	"github.com/rudof-project/shex-go/token"
)

// atNonLitNodeConstraintStart reports whether the nonLitNodeConstraint
// alternative of shapeAtom (a nonLiteralKind keyword, or a string facet)
// starts at the cursor.
func (p *parser) atNonLitNodeConstraintStart() bool {
	p.ws()
	for _, kw := range []token.Token{token.IRIKind, token.BNODE, token.NONLITERAL} {
		if tok, ok := p.peekKeyword(); ok && tok == kw {
			return true
		}
	}
	return p.atStringFacetStart()
}

// atLitNodeConstraintStart reports whether the litNodeConstraint
// alternative (excluding its bare-datatype form, handled separately by
// the caller) starts at the cursor.
func (p *parser) atLitNodeConstraintStart() bool {
	p.ws()
	if p.sc.Peek() == '[' {
		return true
	}
	kws := []token.Token{
		token.LITERAL, token.MININCLUSIVE, token.MINEXCLUSIVE,
		token.MAXINCLUSIVE, token.MAXEXCLUSIVE, token.TOTALDIGITS, token.FRACTIONDIGITS,
	}
	for _, kw := range kws {
		if tok, ok := p.peekKeyword(); ok && tok == kw {
			return true
		}
	}
	return false
}

func (p *parser) atStringFacetStart() bool {
	p.ws()
	if p.sc.Peek() == '/' {
		return true
	}
	for _, kw := range []token.Token{token.LENGTH, token.MINLENGTH, token.MAXLENGTH} {
		if tok, ok := p.peekKeyword(); ok && tok == kw {
			return true
		}
	}
	return false
}

func (p *parser) atXsFacetStart() bool {
	if p.atStringFacetStart() {
		return true
	}
	p.ws()
	kws := []token.Token{
		token.MININCLUSIVE, token.MINEXCLUSIVE, token.MAXINCLUSIVE,
		token.MAXEXCLUSIVE, token.TOTALDIGITS, token.FRACTIONDIGITS,
	}
	for _, kw := range kws {
		if tok, ok := p.peekKeyword(); ok && tok == kw {
			return true
		}
	}
	return false
}

func (p *parser) parseNonLiteralKind() (ast.NodeKind, bool) {
	if _, ok := p.atKeyword(token.IRIKind); ok {
		return ast.IRIKind, true
	}
	if _, ok := p.atKeyword(token.BNODE); ok {
		return ast.BNodeKind, true
	}
	if _, ok := p.atKeyword(token.NONLITERAL); ok {
		return ast.NonLiteralKind, true
	}
	return ast.NoNodeKind, false
}

// parseNonLitNodeConstraint parses `nonLiteralKind stringFacet* |
// stringFacet+`.
func (p *parser) parseNonLitNodeConstraint(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	nc := &ast.NodeConstraint{}
	if kind, ok := p.parseNonLiteralKind(); ok {
		nc.Kind = kind
	}
	for p.atStringFacetStart() {
		f, ok := p.parseStringFacet(production)
		if !ok {
			return nil, false
		}
		nc.Facets = append(nc.Facets, f)
	}
	nc.Span = ast.NewSpan(from, p.pos())
	return &ast.ShapeNodeConstraint{Span: nc.Span, Constraint: nc}, true
}

// parseLitNodeConstraint parses `"LITERAL" xsFacet* | datatype xsFacet* |
// valueSet xsFacet* | numericFacet+`. The bare-datatype alternative is
// only entered via the shapeAtom default case, which has already
// confirmed an IRI starts at the cursor.
func (p *parser) parseLitNodeConstraint(production string) (ast.ShapeExpression, bool) {
	from := p.pos()
	nc := &ast.NodeConstraint{}
	p.ws()
	if _, ok := p.atKeyword(token.LITERAL); ok {
		nc.Kind = ast.LiteralKind
	} else if p.sc.Peek() == '[' {
		values, ok := p.parseValueSet(production)
		if !ok {
			return nil, false
		}
		nc.Values = values
	} else if p.atIriStart() {
		iri, ok := p.parseIri(production)
		if !ok {
			return nil, false
		}
		nc.Datatype = &iri
	}
	for p.atXsFacetStart() {
		f, ok := p.parseXsFacet(production)
		if !ok {
			return nil, false
		}
		nc.Facets = append(nc.Facets, f)
	}
	nc.Span = ast.NewSpan(from, p.pos())
	return &ast.ShapeNodeConstraint{Span: nc.Span, Constraint: nc}, true
}

func (p *parser) parseStringFacet(production string) (ast.XsFacet, bool) {
	from := p.pos()
	p.ws()
	if p.sc.Peek() == '/' {
		pattern, flags, err := p.sc.ScanRegexp()
		if err != nil {
			p.addErr(err)
			return nil, false
		}
		return &ast.Pattern{Span: ast.NewSpan(from, p.pos()), Regex: pattern, Flags: flags}, true
	}
	if _, ok := p.atKeyword(token.LENGTH); ok {
		n, ok := p.parseUnsignedInt(production)
		if !ok {
			return nil, false
		}
		return &ast.Length{Span: ast.NewSpan(from, p.pos()), N: n}, true
	}
	if _, ok := p.atKeyword(token.MINLENGTH); ok {
		n, ok := p.parseUnsignedInt(production)
		if !ok {
			return nil, false
		}
		return &ast.MinLength{Span: ast.NewSpan(from, p.pos()), N: n}, true
	}
	if _, ok := p.atKeyword(token.MAXLENGTH); ok {
		n, ok := p.parseUnsignedInt(production)
		if !ok {
			return nil, false
		}
		return &ast.MaxLength{Span: ast.NewSpan(from, p.pos()), N: n}, true
	}
	p.errorf(errors.Expected, production, "expected a string facet")
	return nil, false
}

func (p *parser) parseXsFacet(production string) (ast.XsFacet, bool) {
	if p.atStringFacetStart() {
		return p.parseStringFacet(production)
	}
	from := p.pos()
	if _, ok := p.atKeyword(token.MININCLUSIVE); ok {
		v, ok := p.parseNumericLiteral(production)
		if !ok {
			return nil, false
		}
		return &ast.MinInclusive{Span: ast.NewSpan(from, p.pos()), Value: v}, true
	}
	if _, ok := p.atKeyword(token.MINEXCLUSIVE); ok {
		v, ok := p.parseNumericLiteral(production)
		if !ok {
			return nil, false
		}
		return &ast.MinExclusive{Span: ast.NewSpan(from, p.pos()), Value: v}, true
	}
	if _, ok := p.atKeyword(token.MAXINCLUSIVE); ok {
		v, ok := p.parseNumericLiteral(production)
		if !ok {
			return nil, false
		}
		return &ast.MaxInclusive{Span: ast.NewSpan(from, p.pos()), Value: v}, true
	}
	if _, ok := p.atKeyword(token.MAXEXCLUSIVE); ok {
		v, ok := p.parseNumericLiteral(production)
		if !ok {
			return nil, false
		}
		return &ast.MaxExclusive{Span: ast.NewSpan(from, p.pos()), Value: v}, true
	}
	if _, ok := p.atKeyword(token.TOTALDIGITS); ok {
		n, ok := p.parseUnsignedInt(production)
		if !ok {
			return nil, false
		}
		return &ast.TotalDigits{Span: ast.NewSpan(from, p.pos()), N: n}, true
	}
	if _, ok := p.atKeyword(token.FRACTIONDIGITS); ok {
		n, ok := p.parseUnsignedInt(production)
		if !ok {
			return nil, false
		}
		return &ast.FractionDigits{Span: ast.NewSpan(from, p.pos()), N: n}, true
	}
	p.errorf(errors.Expected, production, "expected a facet")
	return nil, false
}

func (p *parser) parseUnsignedInt(production string) (int, bool) {
	p.ws()
	kind, raw, err := p.sc.ScanNumber()
	if err != nil {
		p.addErr(err)
		return 0, false
	}
	if kind != scanner.NumberInteger {
		p.errorf(errors.BadNumeric, production, "expected an integer")
		return 0, false
	}
	n, convErr := strconv.Atoi(strings.TrimPrefix(raw, "+"))
	if convErr != nil {
		p.errorf(errors.BadNumeric, production, "integer out of range")
		return 0, false
	}
	return n, true
}

func (p *parser) parseNumericLiteral(production string) (ast.NumericLiteral, bool) {
	p.ws()
	kind, raw, err := p.sc.ScanNumber()
	if err != nil {
		p.addErr(err)
		return ast.NumericLiteral{}, false
	}
	var ak ast.NumericKind
	switch kind {
	case scanner.NumberDecimal:
		ak = ast.NumericDecimal
	case scanner.NumberDouble:
		ak = ast.NumericDouble
	default:
		ak = ast.NumericInteger
	}
	lit, convErr := ast.NewNumericLiteral(ak, raw)
	if convErr != nil {
		p.errorf(errors.BadNumeric, production, convErr.Error())
		return ast.NumericLiteral{}, false
	}
	return lit, true
}

// parseLiteralObjectValue parses the `literal` production a value set's
// literalRange and literalExclusion both share: a STRING literal with an
// optional ^^datatype or @langtag suffix (mutually exclusive), or a bare
// numeric or boolean literal, the latter two implying their XSD datatype.
func (p *parser) parseLiteralObjectValue(production string) (ast.ObjectValue, bool) {
	from := p.pos()
	p.ws()
	switch {
	case p.sc.Peek() == '"' || p.sc.Peek() == '\'':
		return p.parseStringObjectValue(from, production)
	case p.atBooleanLiteralStart():
		word, _ := p.sc.PeekWord()
		p.sc.ScanWord()
		dt := ast.IriRef{Full: ast.BooleanDatatypeIRI()}
		return ast.ObjectValue{Span: ast.NewSpan(from, p.pos()), Lexical: word, Datatype: &dt}, true
	default:
		lit, ok := p.parseNumericLiteral(production)
		if !ok {
			return ast.ObjectValue{}, false
		}
		dt := ast.IriRef{Full: ast.NumericDatatypeIRI(lit.Kind)}
		return ast.ObjectValue{Span: ast.NewSpan(from, p.pos()), Lexical: lit.Raw, Datatype: &dt}, true
	}
}

// parseStringObjectValue parses the rdfLiteral alternative of `literal`:
// a quoted string with an optional ^^datatype or @langtag suffix.
func (p *parser) parseStringObjectValue(from token.Pos, production string) (ast.ObjectValue, bool) {
	lex, err := p.sc.ScanStringLiteral()
	if err != nil {
		p.addErr(err)
		return ast.ObjectValue{}, false
	}
	ov := ast.ObjectValue{Lexical: lex}
	p.ws()
	switch {
	case p.sc.Peek() == '^' && p.sc.PeekAt(1) == '^':
		p.sc.Advance()
		p.sc.Advance()
		dt, ok := p.parseIri(production)
		if !ok {
			return ast.ObjectValue{}, false
		}
		ov.Datatype = &dt
	case p.sc.Peek() == '@':
		lang, err := p.sc.ScanLangTag()
		if err != nil {
			p.addErr(err)
			return ast.ObjectValue{}, false
		}
		ov.Lang = lang
	}
	ov.Span = ast.NewSpan(from, p.pos())
	return ov, true
}

// atNumericLiteralStart reports whether an INTEGER/DECIMAL/DOUBLE starts
// at the cursor, without consuming anything.
func (p *parser) atNumericLiteralStart() bool {
	p.ws()
	r := p.sc.Peek()
	if r >= '0' && r <= '9' {
		return true
	}
	if r == '+' || r == '-' {
		next := p.sc.PeekAt(1)
		return (next >= '0' && next <= '9') || next == '.'
	}
	return false
}

// atBooleanLiteralStart reports whether a bare true/false literal starts
// at the cursor, without consuming anything.
func (p *parser) atBooleanLiteralStart() bool {
	p.ws()
	word, boundary := p.sc.PeekWord()
	if word != "true" && word != "false" {
		return false
	}
	return boundary != ':' && !isIdentContinuation(boundary)
}

func (p *parser) parseValueSet(production string) ([]ast.ValueSetValue, bool) {
	if !p.expect('[', production) {
		return nil, false
	}
	var values []ast.ValueSetValue
	for {
		p.ws()
		if p.sc.Peek() == ']' || p.sc.AtEOF() {
			break
		}
		v, ok := p.parseValueSetValue(production)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	if !p.expect(']', production) {
		return nil, false
	}
	return values, true
}

func (p *parser) parseValueSetValue(production string) (ast.ValueSetValue, bool) {
	from := p.pos()
	p.ws()
	switch {
	case p.sc.Peek() == '.':
		p.sc.Advance()
		return p.parseWildcardStemRange(from, production)
	case p.sc.Peek() == '@':
		return p.parseLanguageRange(from, production)
	case p.sc.Peek() == '"' || p.sc.Peek() == '\'':
		return p.parseLiteralRange(from, production)
	case p.atNumericLiteralStart() || p.atBooleanLiteralStart():
		return p.parseLiteralRange(from, production)
	case p.atIriStart():
		return p.parseIriRange(from, production)
	default:
		p.errorf(errors.Expected, production, "expected a value-set member")
		return nil, false
	}
}

func (p *parser) parseIriRange(from token.Pos, production string) (ast.ValueSetValue, bool) {
	iri, ok := p.parseIri(production)
	if !ok {
		return nil, false
	}
	p.ws()
	if !p.eat('~') {
		ov := ast.ObjectValue{Span: ast.NewSpan(from, p.pos()), Iri: &iri}
		return &ast.Value{Span: ov.Span, ObjectValue: ov}, true
	}
	var exclusions []ast.IriExclusion
	for {
		p.ws()
		if p.sc.Peek() != '-' {
			break
		}
		p.sc.Advance()
		exIri, ok := p.parseIri(production)
		if !ok {
			return nil, false
		}
		p.ws()
		isStem := p.eat('~')
		exclusions = append(exclusions, ast.IriExclusion{Iri: exIri, IsStem: isStem})
	}
	if len(exclusions) == 0 {
		return &ast.IriStem{Span: ast.NewSpan(from, p.pos()), Stem: iri}, true
	}
	return &ast.IriStemRange{Span: ast.NewSpan(from, p.pos()), Stem: iri, Exclusions: exclusions}, true
}

func (p *parser) parseLiteralRange(from token.Pos, production string) (ast.ValueSetValue, bool) {
	ov, ok := p.parseLiteralObjectValue(production)
	if !ok {
		return nil, false
	}
	p.ws()
	if !p.eat('~') {
		return &ast.Value{Span: ast.NewSpan(from, p.pos()), ObjectValue: ov}, true
	}
	var exclusions []ast.LiteralExclusion
	for {
		p.ws()
		if p.sc.Peek() != '-' {
			break
		}
		p.sc.Advance()
		ex, ok := p.parseLiteralObjectValue(production)
		if !ok {
			return nil, false
		}
		p.ws()
		isStem := p.eat('~')
		exclusions = append(exclusions, ast.LiteralExclusion{Lexical: ex.Lexical, IsStem: isStem})
	}
	if len(exclusions) == 0 {
		return &ast.LiteralStem{Span: ast.NewSpan(from, p.pos()), Stem: ov.Lexical}, true
	}
	return &ast.LiteralStemRange{Span: ast.NewSpan(from, p.pos()), Stem: ov.Lexical, Exclusions: exclusions}, true
}

func (p *parser) parseLanguageRange(from token.Pos, production string) (ast.ValueSetValue, bool) {
	p.ws()
	if p.sc.Peek() == '@' && p.sc.PeekAt(1) == '~' {
		p.sc.Advance()
		p.sc.Advance()
		var exclusions []ast.LanguageExclusion
		for {
			p.ws()
			if p.sc.Peek() != '-' {
				break
			}
			p.sc.Advance()
			lang, err := p.sc.ScanLangTag()
			if err != nil {
				p.addErr(err)
				return nil, false
			}
			p.ws()
			isStem := p.eat('~')
			exclusions = append(exclusions, ast.LanguageExclusion{Lang: lang, IsStem: isStem})
		}
		return &ast.LanguageStemRange{Span: ast.NewSpan(from, p.pos()), Wildcard: true, Exclusions: exclusions}, true
	}
	lang, err := p.sc.ScanLangTag()
	if err != nil {
		p.addErr(err)
		return nil, false
	}
	p.ws()
	if !p.eat('~') {
		return &ast.Language{Span: ast.NewSpan(from, p.pos()), Lang: lang}, true
	}
	var exclusions []ast.LanguageExclusion
	for {
		p.ws()
		if p.sc.Peek() != '-' {
			break
		}
		p.sc.Advance()
		exLang, err := p.sc.ScanLangTag()
		if err != nil {
			p.addErr(err)
			return nil, false
		}
		p.ws()
		isStem := p.eat('~')
		exclusions = append(exclusions, ast.LanguageExclusion{Lang: exLang, IsStem: isStem})
	}
	if len(exclusions) == 0 {
		return &ast.LanguageStem{Span: ast.NewSpan(from, p.pos()), Lang: lang}, true
	}
	return &ast.LanguageStemRange{Span: ast.NewSpan(from, p.pos()), Lang: lang, Exclusions: exclusions}, true
}

// exclusionKind distinguishes the first exclusion of a wildcard stem
// range (`. - member ...`), whose syntax alone determines whether the
// whole range is an IRI, literal, or language wildcard.
type exclusionKind int

const (
	exclusionIri exclusionKind = iota
	exclusionLiteral
	exclusionLang
)

type firstExclusion struct {
	kind exclusionKind
	iri  ast.IriExclusion
	lit  ast.LiteralExclusion
	lang ast.LanguageExclusion
}

func (p *parser) parseExclusionKindFirst(production string) (firstExclusion, bool) {
	p.ws()
	switch {
	case p.sc.Peek() == '@':
		lang, err := p.sc.ScanLangTag()
		if err != nil {
			p.addErr(err)
			return firstExclusion{}, false
		}
		p.ws()
		isStem := p.eat('~')
		return firstExclusion{kind: exclusionLang, lang: ast.LanguageExclusion{Lang: lang, IsStem: isStem}}, true
	case p.sc.Peek() == '"' || p.sc.Peek() == '\'':
		ov, ok := p.parseLiteralObjectValue(production)
		if !ok {
			return firstExclusion{}, false
		}
		p.ws()
		isStem := p.eat('~')
		return firstExclusion{kind: exclusionLiteral, lit: ast.LiteralExclusion{Lexical: ov.Lexical, IsStem: isStem}}, true
	default:
		iri, ok := p.parseIri(production)
		if !ok {
			return firstExclusion{}, false
		}
		p.ws()
		isStem := p.eat('~')
		return firstExclusion{kind: exclusionIri, iri: ast.IriExclusion{Iri: iri, IsStem: isStem}}, true
	}
}

// parseWildcardStemRange parses the exclusions following a wildcard stem
// (`.`) value-set member; at least one exclusion is required, and its
// syntactic kind (IRI, literal, or language tag) fixes the kind of every
// subsequent exclusion in the list.
func (p *parser) parseWildcardStemRange(from token.Pos, production string) (ast.ValueSetValue, bool) {
	p.ws()
	if !p.expect('-', production) {
		return nil, false
	}
	first, ok := p.parseExclusionKindFirst(production)
	if !ok {
		return nil, false
	}
	switch first.kind {
	case exclusionIri:
		exclusions := []ast.IriExclusion{first.iri}
		for {
			p.ws()
			if p.sc.Peek() != '-' {
				break
			}
			p.sc.Advance()
			iri, ok := p.parseIri(production)
			if !ok {
				return nil, false
			}
			p.ws()
			isStem := p.eat('~')
			exclusions = append(exclusions, ast.IriExclusion{Iri: iri, IsStem: isStem})
		}
		return &ast.IriStemRange{Span: ast.NewSpan(from, p.pos()), Wildcard: true, Exclusions: exclusions}, true
	case exclusionLiteral:
		exclusions := []ast.LiteralExclusion{first.lit}
		for {
			p.ws()
			if p.sc.Peek() != '-' {
				break
			}
			p.sc.Advance()
			ov, ok := p.parseLiteralObjectValue(production)
			if !ok {
				return nil, false
			}
			p.ws()
			isStem := p.eat('~')
			exclusions = append(exclusions, ast.LiteralExclusion{Lexical: ov.Lexical, IsStem: isStem})
		}
		return &ast.LiteralStemRange{Span: ast.NewSpan(from, p.pos()), Wildcard: true, Exclusions: exclusions}, true
	default:
		exclusions := []ast.LanguageExclusion{first.lang}
		for {
			p.ws()
			if p.sc.Peek() != '-' {
				break
			}
			p.sc.Advance()
			lang, err := p.sc.ScanLangTag()
			if err != nil {
				p.addErr(err)
				return nil, false
			}
			p.ws()
			isStem := p.eat('~')
			exclusions = append(exclusions, ast.LanguageExclusion{Lang: lang, IsStem: isStem})
		}
		return &ast.LanguageStemRange{Span: ast.NewSpan(from, p.pos()), Wildcard: true, Exclusions: exclusions}, true
	}
}

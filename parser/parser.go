package parser

import (
	"strings"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/scanner"
	"github.com/rudof-project/shex-go/token"
)

// maxSyncErrors bounds how many top-level declarations the parser will
// skip while resynchronizing after a syntax error, so a badly malformed
// file fails fast instead of looping.
const maxSyncErrors = 200

type parser struct {
	sc   scanner.Scanner
	file *token.File
	errs errors.List
}

func newParser(filename string, src []byte) *parser {
	file := token.NewFile(filename, len(src))
	p := &parser{file: file}
	p.sc.Init(file, src)
	return p
}

func (p *parser) pos() token.Pos { return p.sc.Pos() }

func (p *parser) ws() { p.sc.SkipTWS0() }

// eat consumes the current rune if it equals r, skipping leading
// whitespace/comments first.
func (p *parser) eat(r rune) bool {
	p.ws()
	if p.sc.Peek() == r {
		p.sc.Advance()
		return true
	}
	return false
}

// expect requires the current rune to equal r, recording a grammar error
// against production otherwise.
func (p *parser) expect(r rune, production string) bool {
	if p.eat(r) {
		return true
	}
	p.errorf(errors.Expected, production, "expected '"+string(r)+"'")
	return false
}

func (p *parser) errorf(kind errors.Kind, production, detail string) {
	p.errs.Add(errors.Newf(kind, p.pos(), production, p.sc.TokenText(), detail))
}

func (p *parser) addErr(err *errors.Error) {
	if err != nil {
		p.errs.Add(err)
	}
}

// isIdentContinuation reports whether r can continue a PN_PREFIX/PN_LOCAL
// run, used to tell a keyword-shaped word apart from a longer identifier
// that merely starts with the same letters.
func isIdentContinuation(r rune) bool {
	if r == '.' || r == '-' || r == '_' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	return r > 0x7f
}

// peekKeyword reports the keyword token starting at the cursor, if any,
// without consuming input. A word is only a keyword if it is immediately
// followed by a non-identifier, non-':' rune; otherwise it is the start of
// a longer PN_PREFIX or PNAME.
func (p *parser) peekKeyword() (token.Token, bool) {
	word, boundary := p.sc.PeekWord()
	if word == "" {
		return 0, false
	}
	if boundary == ':' || isIdentContinuation(boundary) {
		return 0, false
	}
	if word == "start" {
		return token.START, true
	}
	return token.Lookup(strings.ToUpper(word))
}

// peekRDFType reports whether the bare `a` RDF_TYPE shorthand starts at
// the cursor.
func (p *parser) peekRDFType() bool {
	word, boundary := p.sc.PeekWord()
	return word == "a" && boundary != ':' && !isIdentContinuation(boundary)
}

// atKeyword reports whether want starts at the cursor (after skipping
// whitespace), consuming it and returning its start position if so.
func (p *parser) atKeyword(want token.Token) (token.Pos, bool) {
	p.ws()
	from := p.pos()
	tok, ok := p.peekKeyword()
	if !ok || tok != want {
		return token.NoPos, false
	}
	p.sc.ScanWord()
	return from, true
}

// parseIri parses an IRIREF or prefixed name (PNAME_NS/PNAME_LN) at the
// cursor, whichever is present.
func (p *parser) parseIri(production string) (ast.IriRef, bool) {
	p.ws()
	from := p.pos()
	if p.sc.Peek() == '<' {
		text, err := p.sc.ScanIRIRef()
		if err != nil {
			p.addErr(err)
			return ast.IriRef{}, false
		}
		return ast.NewIriRefFull(from, p.pos(), text), true
	}
	alias, local, isBlank, err := p.sc.ScanPNameOrBlank()
	if err != nil {
		p.addErr(err)
		return ast.IriRef{}, false
	}
	if isBlank {
		p.errorf(errors.Expected, production, "expected an IRI, found a blank node label")
		return ast.IriRef{}, false
	}
	return ast.NewIriRefPrefixed(from, p.pos(), alias, local), true
}

// parseIriLiteral parses a bare IRIREF, rejecting prefixed-name form; used
// by PREFIX/BASE/IMPORT, which the grammar restricts to IRIREF.
func (p *parser) parseIriLiteral(production string) (ast.IriRef, bool) {
	p.ws()
	if p.sc.Peek() != '<' {
		p.errorf(errors.Expected, production, "expected an IRIREF")
		return ast.IriRef{}, false
	}
	from := p.pos()
	text, err := p.sc.ScanIRIRef()
	if err != nil {
		p.addErr(err)
		return ast.IriRef{}, false
	}
	return ast.NewIriRefFull(from, p.pos(), text), true
}

// parsePNameNS parses a PNAME_NS (alias, no local part) as used by a
// PREFIX directive.
func (p *parser) parsePNameNS(production string) (string, bool) {
	p.ws()
	alias, local, isBlank, err := p.sc.ScanPNameOrBlank()
	if err != nil {
		p.addErr(err)
		return "", false
	}
	if isBlank || local != "" {
		p.errorf(errors.Expected, production, "expected a namespace prefix")
		return "", false
	}
	return alias, true
}

// parseShapeExprLabel parses a shapeExprLabel: an IRI or a blank node
// identifier.
func (p *parser) parseShapeExprLabel(production string) (ast.ShapeExprLabel, bool) {
	p.ws()
	from := p.pos()
	if p.sc.Peek() == '<' {
		text, err := p.sc.ScanIRIRef()
		if err != nil {
			p.addErr(err)
			return ast.ShapeExprLabel{}, false
		}
		return ast.NewShapeExprLabelIri(from, p.pos(), ast.NewIriRefFull(from, p.pos(), text)), true
	}
	alias, local, isBlank, err := p.sc.ScanPNameOrBlank()
	if err != nil {
		p.addErr(err)
		return ast.ShapeExprLabel{}, false
	}
	if isBlank {
		return ast.NewShapeExprLabelBnode(from, p.pos(), alias), true
	}
	return ast.NewShapeExprLabelIri(from, p.pos(), ast.NewIriRefPrefixed(from, p.pos(), alias, local)), true
}

// parseTripleExprLabel parses a $label / &label target: an IRI or blank
// node identifier, without the leading sigil (the caller consumes it).
func (p *parser) parseTripleExprLabel(production string) (ast.TripleExprLabel, bool) {
	p.ws()
	from := p.pos()
	if p.sc.Peek() == '<' {
		text, err := p.sc.ScanIRIRef()
		if err != nil {
			p.addErr(err)
			return ast.TripleExprLabel{}, false
		}
		return ast.NewTripleExprLabelIri(from, p.pos(), ast.NewIriRefFull(from, p.pos(), text)), true
	}
	alias, local, isBlank, err := p.sc.ScanPNameOrBlank()
	if err != nil {
		p.addErr(err)
		return ast.TripleExprLabel{}, false
	}
	if isBlank {
		return ast.NewTripleExprLabelBnode(from, p.pos(), alias), true
	}
	return ast.NewTripleExprLabelIri(from, p.pos(), ast.NewIriRefPrefixed(from, p.pos(), alias, local)), true
}

// parseSchema parses the whole document: directives interleaved freely
// with the start declaration and shape-expression declarations, following
// the grammar's `statement := directive | notStartAction` production.
func (p *parser) parseSchema() *ast.Schema {
	start := p.pos()
	sch := &ast.Schema{}
	syncErrors := 0
	for {
		p.ws()
		if p.sc.AtEOF() {
			break
		}
		if from, ok := p.atKeyword(token.PREFIX); ok {
			p.parsePrefixDecl(sch, from)
			continue
		}
		if from, ok := p.atKeyword(token.BASE); ok {
			p.parseBaseDecl(sch, from)
			continue
		}
		if from, ok := p.atKeyword(token.IMPORT); ok {
			p.parseImportDecl(sch, from)
			continue
		}
		if from, ok := p.atKeyword(token.START); ok {
			p.parseStartDecl(sch, from)
			continue
		}
		before := p.pos()
		decl, ok := p.parseShapeExprDecl()
		if ok {
			sch.Shapes = append(sch.Shapes, decl)
			continue
		}
		syncErrors++
		if syncErrors > maxSyncErrors {
			break
		}
		if p.pos() == before && !p.sc.AtEOF() {
			// Nothing was consumed; force progress so the loop terminates.
			p.sc.Advance()
		}
	}
	sch.Span = ast.NewSpan(start, p.pos())
	return sch
}

func (p *parser) parsePrefixDecl(sch *ast.Schema, from token.Pos) {
	alias, ok := p.parsePNameNS("prefixDecl")
	if !ok {
		return
	}
	iri, ok := p.parseIriLiteral("prefixDecl")
	if !ok {
		return
	}
	sch.Prefixes = append(sch.Prefixes, ast.PrefixDecl{Span: ast.NewSpan(from, p.pos()), Alias: alias, Iri: iri})
}

func (p *parser) parseBaseDecl(sch *ast.Schema, from token.Pos) {
	iri, ok := p.parseIriLiteral("baseDecl")
	if !ok {
		return
	}
	sch.Bases = append(sch.Bases, ast.BaseDecl{Span: ast.NewSpan(from, p.pos()), Iri: iri})
}

func (p *parser) parseImportDecl(sch *ast.Schema, from token.Pos) {
	iri, ok := p.parseIriLiteral("importDecl")
	if !ok {
		return
	}
	sch.Imports = append(sch.Imports, ast.ImportDecl{Span: ast.NewSpan(from, p.pos()), Iri: iri})
}

func (p *parser) parseStartDecl(sch *ast.Schema, from token.Pos) {
	if !p.expect('=', "start") {
		return
	}
	expr, ok := p.parseShapeExpression("start")
	if !ok {
		return
	}
	sch.Start = expr
	sch.StartActs = p.parseSemanticActions()
}

// parseShapeExprDecl parses `ABSTRACT? shapeExprLabel (shapeExpression |
// EXTERNAL)`.
func (p *parser) parseShapeExprDecl() (ast.ShapeExprDecl, bool) {
	from := p.pos()
	isAbstract := false
	if _, ok := p.atKeyword(token.ABSTRACT); ok {
		isAbstract = true
	}
	label, ok := p.parseShapeExprLabel("shapeExprDecl")
	if !ok {
		return ast.ShapeExprDecl{}, false
	}
	p.ws()
	if extFrom, ok := p.atKeyword(token.EXTERNAL); ok {
		return ast.ShapeExprDecl{
			Span:       ast.NewSpan(from, p.pos()),
			Label:      label,
			IsAbstract: isAbstract,
			Expr:       &ast.ShapeExternal{Span: ast.NewSpan(extFrom, p.pos())},
		}, true
	}
	expr, ok := p.parseShapeExpression("shapeExprDecl")
	if !ok {
		return ast.ShapeExprDecl{}, false
	}
	return ast.ShapeExprDecl{
		Span:       ast.NewSpan(from, p.pos()),
		Label:      label,
		IsAbstract: isAbstract,
		Expr:       expr,
	}, true
}

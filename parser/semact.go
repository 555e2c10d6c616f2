package parser

import (
	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
)

// parseSemanticActions parses zero or more codeDecls: `%` iri (CODE |
// "%"). A malformed semantic action stops the loop without discarding
// what was already collected, so a single bad action does not lose its
// well-formed siblings.
func (p *parser) parseSemanticActions() []ast.SemAct {
	var acts []ast.SemAct
	for {
		p.ws()
		if p.sc.Peek() != '%' {
			return acts
		}
		from := p.pos()
		p.sc.Advance()
		name, ok := p.parseIri("semanticAction")
		if !ok {
			return acts
		}
		p.ws()
		var code *string
		switch p.sc.Peek() {
		case '{':
			body, err := p.sc.ScanCode()
			if err != nil {
				p.addErr(err)
				return acts
			}
			code = &body
		case '%':
			p.sc.Advance()
		default:
			p.errorf(errors.Expected, "semanticAction", "expected '{' or '%' after the action IRI")
			return acts
		}
		acts = append(acts, ast.SemAct{Span: ast.NewSpan(from, p.pos()), Name: name, Code: code})
	}
}

// parseAnnotations parses zero or more `// predicate objectValue`
// annotations.
func (p *parser) parseAnnotations() []ast.Annotation {
	var anns []ast.Annotation
	for {
		p.ws()
		if !(p.sc.Peek() == '/' && p.sc.PeekAt(1) == '/') {
			return anns
		}
		from := p.pos()
		p.sc.Advance()
		p.sc.Advance()
		pred, ok := p.parseIri("annotation")
		if !ok {
			return anns
		}
		p.ws()
		var obj ast.ObjectValue
		if p.sc.Peek() == '"' || p.sc.Peek() == '\'' {
			ov, ok := p.parseLiteralObjectValue("annotation")
			if !ok {
				return anns
			}
			obj = ov
		} else {
			iri, ok := p.parseIri("annotation")
			if !ok {
				return anns
			}
			obj = ast.ObjectValue{Span: iri.Span, Iri: &iri}
		}
		anns = append(anns, ast.Annotation{Span: ast.NewSpan(from, p.pos()), Predicate: pred, Object: obj})
	}
}

// parseCardinality parses an optional cardinality marker, defaulting to
// (1,1) when none is present.
func (p *parser) parseCardinality() ast.Cardinality {
	p.ws()
	switch p.sc.Peek() {
	case '*':
		p.sc.Advance()
		return ast.Star()
	case '+':
		p.sc.Advance()
		return ast.Plus()
	case '?':
		p.sc.Advance()
		return ast.Optional()
	case '{':
		min, max, err := p.sc.ScanRepeatRange()
		if err != nil {
			p.addErr(err)
			return ast.DefaultCardinality
		}
		return ast.Cardinality{Min: min, Max: max}
	default:
		return ast.DefaultCardinality
	}
}

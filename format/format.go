// Package format renders a resolved ast.Schema back to canonical ShExC
// text. It is the inverse of parser.ParseFile + resolver.Resolve: every
// IriRef it prints is the absolute form the resolver leaves in Full, so
// the output never depends on a PREFIX/BASE directive being in scope.
package format

import (
	"fmt"
	"strings"

	"github.com/rudof-project/shex-go/ast"
)

// Schema renders sch as a ShExC document.
func Schema(sch *ast.Schema) string {
	var p printer
	p.schema(sch)
	return p.buf.String()
}

type printer struct {
	buf strings.Builder
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(&p.buf, format, args...)
}

func (p *printer) schema(sch *ast.Schema) {
	for _, b := range sch.Bases {
		p.printf("BASE <%s>\n", b.Iri.Full)
	}
	for _, pd := range sch.Prefixes {
		p.printf("PREFIX %s: <%s>\n", pd.Alias, pd.Iri.Full)
	}
	for _, im := range sch.Imports {
		p.printf("IMPORT <%s>\n", im.Iri.Full)
	}
	if sch.Start != nil {
		p.buf.WriteString("start = ")
		p.shapeExpression(sch.Start)
		p.semActs(sch.StartActs)
		p.buf.WriteString("\n")
	}
	for _, decl := range sch.Shapes {
		p.shapeExprDecl(decl)
		p.buf.WriteString("\n")
	}
}

func (p *printer) iriRef(r ast.IriRef) {
	p.printf("<%s>", r.Full)
}

func (p *printer) shapeExprLabel(l ast.ShapeExprLabel) {
	if l.IsBNode() {
		p.printf("_:%s", l.Bnode)
		return
	}
	p.iriRef(*l.Iri)
}

func (p *printer) tripleExprLabel(l ast.TripleExprLabel) {
	if l.IsBNode() {
		p.printf("_:%s", l.Bnode)
		return
	}
	p.iriRef(*l.Iri)
}

func (p *printer) shapeExprDecl(decl ast.ShapeExprDecl) {
	if decl.IsAbstract {
		p.buf.WriteString("ABSTRACT ")
	}
	p.shapeExprLabel(decl.Label)
	p.buf.WriteString(" ")
	if _, ok := decl.Expr.(*ast.ShapeExternal); ok {
		p.buf.WriteString("EXTERNAL")
		return
	}
	p.shapeExpression(decl.Expr)
}

func (p *printer) shapeExpression(expr ast.ShapeExpression) {
	switch v := expr.(type) {
	case *ast.ShapeAnd:
		for i, e := range v.Exprs {
			if i > 0 {
				p.buf.WriteString(" AND ")
			}
			p.shapeExpressionParen(e)
		}
	case *ast.ShapeOr:
		for i, e := range v.Exprs {
			if i > 0 {
				p.buf.WriteString(" OR ")
			}
			p.shapeExpressionParen(e)
		}
	case *ast.ShapeNot:
		p.buf.WriteString("!")
		p.shapeExpressionParen(v.Expr)
	case *ast.ShapeNodeConstraint:
		p.nodeConstraint(v.Constraint)
	case *ast.ShapeDef:
		p.shape(v.Shape)
	case *ast.ShapeExternal:
		p.buf.WriteString("EXTERNAL")
	case *ast.ShapeWildcard:
		p.buf.WriteString(".")
	case *ast.ShapeRef:
		p.buf.WriteString("@")
		p.shapeExprLabel(v.Label)
	default:
		panic(fmt.Sprintf("format: unhandled ShapeExpression %T", expr))
	}
}

// shapeExpressionParen wraps a Boolean combinator in parentheses when it
// appears as an operand of AND/OR/NOT, since ShExC's operators are not
// self-delimiting.
func (p *printer) shapeExpressionParen(expr ast.ShapeExpression) {
	switch expr.(type) {
	case *ast.ShapeAnd, *ast.ShapeOr:
		p.buf.WriteString("(")
		p.shapeExpression(expr)
		p.buf.WriteString(")")
	default:
		p.shapeExpression(expr)
	}
}

func (p *printer) shape(s *ast.Shape) {
	for i := 0; i < s.ClosedCount; i++ {
		p.buf.WriteString("CLOSED ")
	}
	if len(s.Extra) > 0 {
		p.buf.WriteString("EXTRA ")
		for i, e := range s.Extra {
			if i > 0 {
				p.buf.WriteString(" ")
			}
			p.iriRef(e)
		}
		p.buf.WriteString(" ")
	}
	for _, l := range s.Extends {
		p.buf.WriteString("EXTENDS @")
		p.shapeExprLabel(l)
		p.buf.WriteString(" ")
	}
	for _, l := range s.Restricts {
		p.buf.WriteString("RESTRICTS @")
		p.shapeExprLabel(l)
		p.buf.WriteString(" ")
	}
	p.buf.WriteString("{")
	if s.Expr != nil {
		p.tripleExpression(s.Expr)
	}
	p.buf.WriteString("}")
	p.annotations(s.Annotations)
	p.semActs(s.SemActs)
}

func (p *printer) tripleExpression(expr ast.TripleExpression) {
	switch v := expr.(type) {
	case *ast.EachOf:
		p.tripleExprGroup(v.Exprs, ";", v.Id)
		p.cardinality(v.Card)
		p.annotations(v.Annotations)
		p.semActs(v.SemActs)
	case *ast.OneOf:
		p.tripleExprGroup(v.Exprs, "|", v.Id)
		p.cardinality(v.Card)
		p.annotations(v.Annotations)
		p.semActs(v.SemActs)
	case *ast.TripleConstraint:
		if v.Id != nil {
			p.buf.WriteString("$")
			p.tripleExprLabel(*v.Id)
			p.buf.WriteString(" ")
		}
		if v.Negated {
			p.buf.WriteString("!")
		}
		if v.Inverse {
			p.buf.WriteString("^")
		}
		p.iriRef(v.Predicate)
		p.buf.WriteString(" ")
		if v.ValueExpr == nil {
			p.buf.WriteString(".")
		} else {
			p.shapeExpression(v.ValueExpr)
		}
		p.cardinality(v.Card)
		p.annotations(v.Annotations)
		p.semActs(v.SemActs)
	case *ast.TripleExprRef:
		p.buf.WriteString("&")
		p.tripleExprLabel(v.Label)
	default:
		panic(fmt.Sprintf("format: unhandled TripleExpression %T", expr))
	}
}

// tripleExprGroup renders a bracketed `( e1 sep e2 sep ... )` group; the
// label, if any, is printed before the opening parenthesis per the
// grammar's `$label ( ... )` form.
func (p *printer) tripleExprGroup(exprs []ast.TripleExpression, sep string, id *ast.TripleExprLabel) {
	if id != nil {
		p.buf.WriteString("$")
		p.tripleExprLabel(*id)
		p.buf.WriteString(" ")
	}
	p.buf.WriteString("(")
	for i, e := range exprs {
		if i > 0 {
			p.buf.WriteString(sep + " ")
		}
		p.tripleExpression(e)
	}
	p.buf.WriteString(")")
}

func (p *printer) cardinality(c ast.Cardinality) {
	switch {
	case c == ast.DefaultCardinality:
		return
	case c == ast.Star():
		p.buf.WriteString("*")
	case c == ast.Plus():
		p.buf.WriteString("+")
	case c == ast.Optional():
		p.buf.WriteString("?")
	case c.IsUnbounded():
		p.printf("{%d,*}", c.Min)
	case c.Min == c.Max:
		p.printf("{%d}", c.Min)
	default:
		p.printf("{%d,%d}", c.Min, c.Max)
	}
}

func (p *printer) nodeConstraint(nc *ast.NodeConstraint) {
	switch nc.Kind {
	case ast.IRIKind:
		p.buf.WriteString("IRI")
	case ast.BNodeKind:
		p.buf.WriteString("BNODE")
	case ast.NonLiteralKind:
		p.buf.WriteString("NONLITERAL")
	case ast.LiteralKind:
		p.buf.WriteString("LITERAL")
	}
	if nc.Datatype != nil {
		if nc.Kind != ast.NoNodeKind {
			p.buf.WriteString(" ")
		}
		p.iriRef(*nc.Datatype)
	}
	if len(nc.Values) > 0 {
		if nc.Kind != ast.NoNodeKind || nc.Datatype != nil {
			p.buf.WriteString(" ")
		}
		p.valueSet(nc.Values)
	}
	for _, f := range nc.Facets {
		p.buf.WriteString(" ")
		p.facet(f)
	}
}

func (p *printer) valueSet(values []ast.ValueSetValue) {
	p.buf.WriteString("[")
	for i, v := range values {
		if i > 0 {
			p.buf.WriteString(" ")
		}
		p.valueSetValue(v)
	}
	p.buf.WriteString("]")
}

func (p *printer) valueSetValue(v ast.ValueSetValue) {
	switch x := v.(type) {
	case *ast.Value:
		p.objectValue(x.ObjectValue)
	case *ast.IriStem:
		p.iriRef(x.Stem)
		p.buf.WriteString("~")
	case *ast.IriStemRange:
		if x.Wildcard {
			p.buf.WriteString(".")
		} else {
			p.iriRef(x.Stem)
			p.buf.WriteString("~")
		}
		for _, ex := range x.Exclusions {
			p.buf.WriteString(" -")
			p.iriRef(ex.Iri)
			if ex.IsStem {
				p.buf.WriteString("~")
			}
		}
	case *ast.LiteralStem:
		p.printf("%q~", x.Stem)
	case *ast.LiteralStemRange:
		if x.Wildcard {
			p.buf.WriteString(".")
		} else {
			p.printf("%q~", x.Stem)
		}
		for _, ex := range x.Exclusions {
			p.printf(" -%q", ex.Lexical)
			if ex.IsStem {
				p.buf.WriteString("~")
			}
		}
	case *ast.Language:
		p.printf("@%s", x.Lang)
	case *ast.LanguageStem:
		p.printf("@%s~", x.Lang)
	case *ast.LanguageStemRange:
		if x.Wildcard {
			p.buf.WriteString("@~")
		} else {
			p.printf("@%s~", x.Lang)
		}
		for _, ex := range x.Exclusions {
			p.printf(" -@%s", ex.Lang)
			if ex.IsStem {
				p.buf.WriteString("~")
			}
		}
	default:
		panic(fmt.Sprintf("format: unhandled ValueSetValue %T", v))
	}
}

func (p *printer) objectValue(ov ast.ObjectValue) {
	if ov.IsIri() {
		p.iriRef(*ov.Iri)
		return
	}
	p.printf("%q", ov.Lexical)
	switch {
	case ov.Datatype != nil:
		p.buf.WriteString("^^")
		p.iriRef(*ov.Datatype)
	case ov.Lang != "":
		p.printf("@%s", ov.Lang)
	}
}

func (p *printer) facet(f ast.XsFacet) {
	switch v := f.(type) {
	case *ast.Length:
		p.printf("LENGTH %d", v.N)
	case *ast.MinLength:
		p.printf("MINLENGTH %d", v.N)
	case *ast.MaxLength:
		p.printf("MAXLENGTH %d", v.N)
	case *ast.Pattern:
		p.printf("/%s/%s", v.Regex, v.Flags)
	case *ast.MinInclusive:
		p.printf("MININCLUSIVE %s", v.Value.String())
	case *ast.MinExclusive:
		p.printf("MINEXCLUSIVE %s", v.Value.String())
	case *ast.MaxInclusive:
		p.printf("MAXINCLUSIVE %s", v.Value.String())
	case *ast.MaxExclusive:
		p.printf("MAXEXCLUSIVE %s", v.Value.String())
	case *ast.TotalDigits:
		p.printf("TOTALDIGITS %d", v.N)
	case *ast.FractionDigits:
		p.printf("FRACTIONDIGITS %d", v.N)
	default:
		panic(fmt.Sprintf("format: unhandled XsFacet %T", f))
	}
}

func (p *printer) semActs(acts []ast.SemAct) {
	for _, a := range acts {
		p.buf.WriteString("%")
		p.iriRef(a.Name)
		if a.Code == nil {
			p.buf.WriteString("%")
			continue
		}
		p.printf("{%s%%}", *a.Code)
	}
}

func (p *printer) annotations(anns []ast.Annotation) {
	for _, a := range anns {
		p.buf.WriteString(" // ")
		p.iriRef(a.Predicate)
		p.buf.WriteString(" ")
		p.objectValue(a.Object)
	}
}

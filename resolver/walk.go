package resolver

import (
	"golang.org/x/text/language"

	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/token"
)

// resolveIriRef resolves r to an absolute IRI: a literal IRIREF against
// the base in effect at r's position, or a prefixed name against the
// prefix binding in effect at r's position. An unbound alias becomes
// UnknownPrefix, and the prefixed name is passed through best-effort
// (alias:local, with no further meaning) so the rest of the walk can
// still complete and report any other errors in the same pass.
func (s *state) resolveIriRef(r ast.IriRef) ast.IriRef {
	if !r.IsPrefixed() {
		return ast.IriRef{Span: r.Span, Full: resolveIRI(s.baseAt(r.Pos()), r.Full)}
	}
	base, ok := s.prefixAt(r.Alias, r.Pos())
	if !ok {
		s.addErr(errors.UnknownPrefix, r.Pos(), "iriRef", r.Alias)
		return ast.IriRef{Span: r.Span, Full: r.Alias + ":" + r.Local}
	}
	return ast.IriRef{Span: r.Span, Full: base + r.Local}
}

func (s *state) resolveShapeExprLabel(l ast.ShapeExprLabel) ast.ShapeExprLabel {
	if l.IsBNode() {
		return l
	}
	iri := s.resolveIriRef(*l.Iri)
	return ast.ShapeExprLabel{Span: l.Span, Iri: &iri}
}

func (s *state) resolveTripleExprLabel(l ast.TripleExprLabel) ast.TripleExprLabel {
	if l.IsBNode() {
		return l
	}
	iri := s.resolveIriRef(*l.Iri)
	return ast.TripleExprLabel{Span: l.Span, Iri: &iri}
}

func (s *state) resolveShapeExprDecl(decl ast.ShapeExprDecl) ast.ShapeExprDecl {
	label := s.resolveShapeExprLabel(decl.Label)
	return ast.ShapeExprDecl{
		Span:       decl.Span,
		Label:      label,
		IsAbstract: decl.IsAbstract,
		Expr:       s.resolveShapeExpression(decl.Expr),
	}
}

// resolveShapeExpression rewrites expr's IriRefs in place (in the new
// tree) and registers any label reference it contains as a pending
// ShapeRef to validate once every declaration is known.
func (s *state) resolveShapeExpression(expr ast.ShapeExpression) ast.ShapeExpression {
	if expr == nil {
		return nil
	}
	switch v := expr.(type) {
	case *ast.ShapeAnd:
		exprs := make([]ast.ShapeExpression, len(v.Exprs))
		for i, e := range v.Exprs {
			exprs[i] = s.resolveShapeExpression(e)
		}
		return &ast.ShapeAnd{Span: v.Span, Exprs: exprs}
	case *ast.ShapeOr:
		exprs := make([]ast.ShapeExpression, len(v.Exprs))
		for i, e := range v.Exprs {
			exprs[i] = s.resolveShapeExpression(e)
		}
		return &ast.ShapeOr{Span: v.Span, Exprs: exprs}
	case *ast.ShapeNot:
		return &ast.ShapeNot{Span: v.Span, Expr: s.resolveShapeExpression(v.Expr)}
	case *ast.ShapeNodeConstraint:
		nc := s.resolveNodeConstraint(v.Constraint)
		return &ast.ShapeNodeConstraint{Span: v.Span, Constraint: nc}
	case *ast.ShapeDef:
		return &ast.ShapeDef{Span: v.Span, Shape: s.resolveShape(v.Shape)}
	case *ast.ShapeExternal:
		return v
	case *ast.ShapeWildcard:
		return v
	case *ast.ShapeRef:
		label := s.resolveShapeExprLabel(v.Label)
		s.pendingShapeRefs = append(s.pendingShapeRefs, pendingRef{key: label.Key(), pos: label.Pos(), production: "shapeRef"})
		return &ast.ShapeRef{Span: v.Span, Label: label}
	default:
		return v
	}
}

func (s *state) resolveShape(shape *ast.Shape) *ast.Shape {
	if shape.ClosedCount > 1 {
		s.addErr(errors.DuplicateClosedQualifier, shape.Pos(), "shapeDefinition", "")
	}
	var extra []ast.IriRef
	seenExtra := make(map[string]bool, len(shape.Extra))
	for _, iri := range shape.Extra {
		r := s.resolveIriRef(iri)
		if seenExtra[r.Full] {
			continue
		}
		seenExtra[r.Full] = true
		extra = append(extra, r)
	}
	extends := make([]ast.ShapeExprLabel, len(shape.Extends))
	for i, l := range shape.Extends {
		label := s.resolveShapeExprLabel(l)
		s.pendingShapeRefs = append(s.pendingShapeRefs, pendingRef{key: label.Key(), pos: label.Pos(), production: "extends"})
		extends[i] = label
	}
	restricts := make([]ast.ShapeExprLabel, len(shape.Restricts))
	for i, l := range shape.Restricts {
		label := s.resolveShapeExprLabel(l)
		s.pendingShapeRefs = append(s.pendingShapeRefs, pendingRef{key: label.Key(), pos: label.Pos(), production: "restricts"})
		restricts[i] = label
	}
	return &ast.Shape{
		Span:        shape.Span,
		Closed:      shape.Closed,
		ClosedCount: shape.ClosedCount,
		Extra:       extra,
		Extends:     extends,
		Restricts:   restricts,
		Expr:        s.resolveTripleExpression(shape.Expr),
		Annotations: s.resolveAnnotations(shape.Annotations),
		SemActs:     s.resolveSemActs(shape.SemActs),
	}
}

func (s *state) resolveTripleExpression(expr ast.TripleExpression) ast.TripleExpression {
	if expr == nil {
		return nil
	}
	switch v := expr.(type) {
	case *ast.EachOf:
		s.checkCardinality(v.Card, v.Pos(), "eachOf")
		exprs := make([]ast.TripleExpression, len(v.Exprs))
		for i, e := range v.Exprs {
			exprs[i] = s.resolveTripleExpression(e)
		}
		id := s.registerTripleLabel(v.Id)
		return &ast.EachOf{
			Span: v.Span, Exprs: exprs, Card: v.Card,
			SemActs: s.resolveSemActs(v.SemActs), Annotations: s.resolveAnnotations(v.Annotations), Id: id,
		}
	case *ast.OneOf:
		s.checkCardinality(v.Card, v.Pos(), "oneOf")
		exprs := make([]ast.TripleExpression, len(v.Exprs))
		for i, e := range v.Exprs {
			exprs[i] = s.resolveTripleExpression(e)
		}
		id := s.registerTripleLabel(v.Id)
		return &ast.OneOf{
			Span: v.Span, Exprs: exprs, Card: v.Card,
			SemActs: s.resolveSemActs(v.SemActs), Annotations: s.resolveAnnotations(v.Annotations), Id: id,
		}
	case *ast.TripleConstraint:
		s.checkCardinality(v.Card, v.Pos(), "tripleConstraint")
		id := s.registerTripleLabel(v.Id)
		return &ast.TripleConstraint{
			Span: v.Span, Negated: v.Negated, Inverse: v.Inverse,
			Predicate:   s.resolveIriRef(v.Predicate),
			ValueExpr:   s.resolveShapeExpression(v.ValueExpr),
			Card:        v.Card,
			SemActs:     s.resolveSemActs(v.SemActs),
			Annotations: s.resolveAnnotations(v.Annotations),
			Id:          id,
		}
	case *ast.TripleExprRef:
		label := s.resolveTripleExprLabel(v.Label)
		s.pendingTripleRefs = append(s.pendingTripleRefs, pendingRef{key: label.Key(), pos: label.Pos(), production: "tripleExprRef"})
		return &ast.TripleExprRef{Span: v.Span, Label: label}
	default:
		return v
	}
}

// registerTripleLabel resolves a $label declaration (if present) and
// records it in the triple-expression label table.
func (s *state) registerTripleLabel(id *ast.TripleExprLabel) *ast.TripleExprLabel {
	if id == nil {
		return nil
	}
	label := s.resolveTripleExprLabel(*id)
	s.tripleLabels[label.Key()] = label.Pos()
	return &label
}

func (s *state) resolveNodeConstraint(nc *ast.NodeConstraint) *ast.NodeConstraint {
	out := &ast.NodeConstraint{Span: nc.Span, Kind: nc.Kind}
	if nc.Datatype != nil {
		dt := s.resolveIriRef(*nc.Datatype)
		out.Datatype = &dt
	}
	for _, f := range nc.Facets {
		out.Facets = append(out.Facets, s.resolveFacet(f))
	}
	for _, v := range nc.Values {
		out.Values = append(out.Values, s.resolveValueSetValue(v))
	}
	s.checkNodeConstraint(out, "nodeConstraint")
	return out
}

func (s *state) resolveFacet(f ast.XsFacet) ast.XsFacet {
	switch v := f.(type) {
	case *ast.Pattern:
		if s.cfg.regex != nil {
			if _, err := s.cfg.regex.Compile(v.Regex, v.Flags); err != nil {
				s.addErr(errors.BadRegexFlags, v.Pos(), "pattern", err.Error())
			}
		}
		return v
	default:
		return v
	}
}

func (s *state) resolveObjectValue(v ast.ObjectValue) ast.ObjectValue {
	out := ast.ObjectValue{Span: v.Span, Lexical: v.Lexical, Lang: v.Lang}
	if v.Iri != nil {
		iri := s.resolveIriRef(*v.Iri)
		out.Iri = &iri
	}
	if v.Datatype != nil {
		dt := s.resolveIriRef(*v.Datatype)
		out.Datatype = &dt
	}
	return out
}

func (s *state) resolveValueSetValue(v ast.ValueSetValue) ast.ValueSetValue {
	switch x := v.(type) {
	case *ast.Value:
		return &ast.Value{Span: x.Span, ObjectValue: s.resolveObjectValue(x.ObjectValue)}
	case *ast.IriStem:
		return &ast.IriStem{Span: x.Span, Stem: s.resolveIriRef(x.Stem)}
	case *ast.IriStemRange:
		out := &ast.IriStemRange{Span: x.Span, Wildcard: x.Wildcard}
		if !x.Wildcard {
			out.Stem = s.resolveIriRef(x.Stem)
		}
		for _, ex := range x.Exclusions {
			out.Exclusions = append(out.Exclusions, ast.IriExclusion{Iri: s.resolveIriRef(ex.Iri), IsStem: ex.IsStem})
		}
		return out
	case *ast.Language:
		s.checkLangTag(x.Lang, x.Pos(), "valueSetValue")
		return v
	case *ast.LanguageStem:
		s.checkLangTag(x.Lang, x.Pos(), "valueSetValue")
		return v
	case *ast.LanguageStemRange:
		s.checkLangTag(x.Lang, x.Pos(), "valueSetValue")
		for _, ex := range x.Exclusions {
			s.checkLangTag(ex.Lang, x.Pos(), "valueSetValue")
		}
		return v
	case *ast.LiteralStem, *ast.LiteralStemRange:
		return v // no IriRefs to resolve; lexical forms pass through unchanged
	default:
		return v
	}
}

// checkLangTag validates tag as a well-formed BCP47 language tag, using
// the same parser the IETF registry itself is built from rather than a
// hand-rolled ABNF check. The empty tag (the `@~` stem wildcard) is always
// valid.
func (s *state) checkLangTag(tag string, pos token.Pos, production string) {
	if tag == "" {
		return
	}
	if _, err := language.Parse(tag); err != nil {
		s.addErr(errors.BadLangTag, pos, production, tag+": "+err.Error())
	}
}

func (s *state) resolveSemActs(acts []ast.SemAct) []ast.SemAct {
	if acts == nil {
		return nil
	}
	out := make([]ast.SemAct, len(acts))
	for i, a := range acts {
		out[i] = ast.SemAct{Span: a.Span, Name: s.resolveIriRef(a.Name), Code: a.Code}
	}
	return out
}

func (s *state) resolveAnnotations(anns []ast.Annotation) []ast.Annotation {
	if anns == nil {
		return nil
	}
	out := make([]ast.Annotation, len(anns))
	for i, a := range anns {
		out[i] = ast.Annotation{Span: a.Span, Predicate: s.resolveIriRef(a.Predicate), Object: s.resolveObjectValue(a.Object)}
	}
	return out
}

func (s *state) resolveSemAct(a ast.SemAct) ast.SemAct {
	return ast.SemAct{Span: a.Span, Name: s.resolveIriRef(a.Name), Code: a.Code}
}

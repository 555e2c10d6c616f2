// Package resolver implements the three-pass resolution stage of the
// ShExC pipeline: directive collation, name resolution, and label
// binding, turning the parser's raw AST into the canonical Schema
// downstream consumers traverse.
package resolver

import (
	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/token"
)

// baseEntry is one BASE directive, already resolved against whatever
// base preceded it, in source-position order.
type baseEntry struct {
	pos token.Pos
	iri string
}

// prefixEntry is one PREFIX directive, likewise pre-resolved, in
// source-position order.
type prefixEntry struct {
	pos   token.Pos
	alias string
	iri   string
}

// pendingRef is a label reference (ShapeRef, Extends, Restricts, or
// TripleExprRef) seen during the walk, held until every declaration has
// been collected so forward references resolve correctly.
type pendingRef struct {
	key        string
	pos        token.Pos
	production string
}

// state carries one Resolve call's working data: the config, the
// directive tables, the label tables being built, and the errors
// accumulated so far.
type state struct {
	cfg  *config
	errs errors.List

	baseDirs   []baseEntry
	prefixDirs []prefixEntry

	labels       map[string]*ast.ShapeExprDecl
	tripleLabels map[string]token.Pos

	pendingShapeRefs  []pendingRef
	pendingTripleRefs []pendingRef
}

func newState(cfg *config) *state {
	return &state{
		cfg:          cfg,
		labels:       make(map[string]*ast.ShapeExprDecl),
		tripleLabels: make(map[string]token.Pos),
	}
}

func (s *state) addErr(kind errors.Kind, pos token.Pos, production, detail string) bool {
	s.errs.Add(errors.Newf(kind, pos, production, "", detail))
	return !s.cfg.failFast
}

// stop reports whether the resolver should abort early: FailFast was
// requested and at least one error has already been recorded.
func (s *state) stop() bool {
	return s.cfg.failFast && len(s.errs) > 0
}

// baseAt returns the absolute base IRI in effect immediately before pos,
// per BASE's documented monotonic-replacement semantics.
func (s *state) baseAt(pos token.Pos) string {
	cur := s.cfg.baseIRI
	for _, b := range s.baseDirs {
		if b.pos.Offset() > pos.Offset() {
			break
		}
		cur = b.iri
	}
	return cur
}

// prefixAt returns the absolute IRI bound to alias immediately before
// pos, observing the same position-monotonic redeclaration semantics as
// BASE (see spec.md §8 scenario 6: an earlier use sees the earlier
// binding, a later use sees the later one).
func (s *state) prefixAt(alias string, pos token.Pos) (string, bool) {
	var cur string
	found := false
	for _, p := range s.prefixDirs {
		if p.pos.Offset() > pos.Offset() {
			break
		}
		if p.alias == alias {
			cur = p.iri
			found = true
		}
	}
	return cur, found
}

// collateDirectives resolves every BASE/PREFIX directive's own IRIREF
// against the base active at its position, walking both lists together
// in position order (both already monotonic, since the parser appends
// them as it encounters them top to bottom).
func (s *state) collateDirectives(raw *ast.Schema) {
	bi, pi := 0, 0
	base := s.cfg.baseIRI
	for bi < len(raw.Bases) || pi < len(raw.Prefixes) {
		var baseNext, prefixNext token.Pos
		hasBase := bi < len(raw.Bases)
		hasPrefix := pi < len(raw.Prefixes)
		if hasBase {
			baseNext = raw.Bases[bi].Pos()
		}
		if hasPrefix {
			prefixNext = raw.Prefixes[pi].Pos()
		}
		if hasBase && (!hasPrefix || baseNext.Offset() <= prefixNext.Offset()) {
			b := raw.Bases[bi]
			base = resolveIRI(base, b.Iri.Full)
			s.baseDirs = append(s.baseDirs, baseEntry{pos: b.Pos(), iri: base})
			bi++
			continue
		}
		p := raw.Prefixes[pi]
		abs := resolveIRI(base, p.Iri.Full)
		s.prefixDirs = append(s.prefixDirs, prefixEntry{pos: p.Pos(), alias: p.Alias, iri: abs})
		pi++
	}
}

// resolvedPrefixMap collapses prefixDirs to the final alias->IRI mapping
// (last declaration wins), used for the Schema's own Prefixes output and
// for cross-import duplicate-alias detection.
func (s *state) resolvedPrefixMap() map[string]string {
	m := make(map[string]string, len(s.prefixDirs))
	for _, p := range s.prefixDirs {
		m[p.alias] = p.iri
	}
	return m
}

// Resolve runs the three-pass resolution over raw, expanding any IMPORT
// directives through opts' ImportResolver, and returns the canonical
// Schema together with every error collected (or, under FailFast, only
// the first).
func Resolve(raw *ast.Schema, opts ...Option) (*ast.Schema, error) {
	cfg := newConfig(opts)
	graph := newImportGraph()
	out, errs := resolveSchema(raw, cfg, graph)
	if cfg.failFast && len(errs) > 1 {
		errs = errs[:1]
	}
	errs.Sort()
	return out, errs.Err()
}

// resolveSchema is the internal entry point shared by Resolve and
// recursive import expansion; graph threads cycle detection and
// memoization across the whole import session.
func resolveSchema(raw *ast.Schema, cfg *config, graph *importGraph) (*ast.Schema, errors.List) {
	s := newState(cfg)
	s.collateDirectives(raw)

	out := &ast.Schema{Span: raw.Span}
	for _, p := range s.prefixDirs {
		out.Prefixes = append(out.Prefixes, ast.PrefixDecl{
			Span:  ast.NewSpan(p.pos, p.pos),
			Alias: p.alias,
			Iri:   ast.NewIriRefFull(p.pos, p.pos, p.iri),
		})
	}
	for _, b := range s.baseDirs {
		out.Bases = append(out.Bases, ast.BaseDecl{
			Span: ast.NewSpan(b.pos, b.pos),
			Iri:  ast.NewIriRefFull(b.pos, b.pos, b.iri),
		})
	}

	for _, decl := range raw.Shapes {
		if s.stop() {
			break
		}
		resolved := s.resolveShapeExprDecl(decl)
		key := resolved.Label.Key()
		if _, exists := s.labels[key]; exists {
			s.addErr(errors.DuplicateShapeLabel, resolved.Label.Pos(), "shapeExprDecl", key)
		} else {
			s.labels[key] = &resolved
		}
		out.Shapes = append(out.Shapes, resolved)
	}

	if raw.Start != nil {
		out.Start = s.resolveShapeExpression(raw.Start)
	}
	for _, act := range raw.StartActs {
		out.StartActs = append(out.StartActs, s.resolveSemAct(act))
	}

	s.expandImports(raw, out, cfg, graph)

	for _, ref := range s.pendingShapeRefs {
		if _, ok := s.labels[ref.key]; !ok {
			s.addErr(errors.UnresolvedShapeRef, ref.pos, ref.production, ref.key)
		}
	}
	for _, ref := range s.pendingTripleRefs {
		if _, ok := s.tripleLabels[ref.key]; !ok {
			s.addErr(errors.UnresolvedTripleExprRef, ref.pos, ref.production, ref.key)
		}
	}

	out.Labels = s.labels
	return out, s.errs
}

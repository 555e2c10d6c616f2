package resolver

import (
	"github.com/rudof-project/shex-go/ast"
	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/parser"
)

// importGraph tracks IMPORT expansion across one top-level Resolve call:
// inProgress detects cycles (an IRI re-entered while its own fetch is
// still running), memo avoids re-fetching and re-resolving an IRI
// imported from more than one place in the graph.
type importGraph struct {
	inProgress map[string]bool
	memo       map[string]*ast.Schema
}

func newImportGraph() *importGraph {
	return &importGraph{inProgress: make(map[string]bool), memo: make(map[string]*ast.Schema)}
}

// expandImports resolves raw's IMPORT directives depth-first: each
// import is fully resolved, including its own transitive imports, before
// it is merged into out and the next import in raw's own list is
// fetched. graph.inProgress is a recursion-stack, not a level set, which
// is what lets fetchImport tell a genuine cycle (an IRI that is its own
// ancestor) apart from a diamond (the same IRI reached again through an
// unrelated sibling import, which graph.memo answers from cache instead
// of re-fetching). Prefix aliases give out's own bindings precedence on
// collision (a warning is logged, not an error), but a colliding shape
// label is a hard DuplicateShapeLabel.
func (s *state) expandImports(raw *ast.Schema, out *ast.Schema, cfg *config, graph *importGraph) {
	for _, decl := range raw.Imports {
		if s.stop() {
			return
		}
		iri := s.resolveIriRef(decl.Iri).Full
		if err := cfg.ctx.Err(); err != nil {
			s.addErr(errors.Cancelled, decl.Pos(), "importDecl", iri)
			continue
		}
		resolved, ok := s.fetchImport(iri, decl, cfg, graph)
		if !ok {
			continue
		}
		s.mergeImport(resolved, out)
	}
}

func (s *state) fetchImport(iri string, decl ast.ImportDecl, cfg *config, graph *importGraph) (*ast.Schema, bool) {
	if cached, ok := graph.memo[iri]; ok {
		return cached, true
	}
	if graph.inProgress[iri] {
		s.addErr(errors.ImportCycle, decl.Pos(), "importDecl", iri)
		return nil, false
	}
	if cfg.imports == nil {
		s.addErr(errors.ImportFailed, decl.Pos(), "importDecl", iri+": no ImportResolver configured")
		return nil, false
	}

	graph.inProgress[iri] = true
	defer delete(graph.inProgress, iri)

	src, err := cfg.imports.Resolve(cfg.ctx, iri)
	if err != nil {
		s.addErr(errors.ImportFailed, decl.Pos(), "importDecl", iri+": "+err.Error())
		return nil, false
	}

	rawImported := src.Schema
	if rawImported == nil {
		parsed, err := parser.ParseFile(src.Bytes, parser.Filename(iri))
		if err != nil {
			s.addErr(errors.ImportFailed, decl.Pos(), "importDecl", iri+": "+err.Error())
			return nil, false
		}
		rawImported = parsed
	}

	resolved, importedErrs := resolveSchema(rawImported, cfg, graph)
	s.errs = append(s.errs, importedErrs...)
	graph.memo[iri] = resolved
	return resolved, true
}

// mergeImport folds an already-resolved imported schema into out,
// giving out's own prefix bindings precedence and raising
// DuplicateShapeLabel for any shape label both schemas declare.
func (s *state) mergeImport(imported *ast.Schema, out *ast.Schema) {
	ownPrefixes := s.resolvedPrefixMap()
	importedByAlias := make(map[string]ast.PrefixDecl, len(imported.Prefixes))
	for _, p := range imported.Prefixes {
		importedByAlias[p.Alias] = p
	}
	for _, alias := range sortedKeys(importedByAlias) {
		p := importedByAlias[alias]
		if existing, ok := ownPrefixes[alias]; ok {
			if existing != p.Iri.Full {
				s.cfg.logger.Warn("duplicate prefix alias across import",
					"alias", alias, "kept", existing, "dropped", p.Iri.Full)
			}
			continue
		}
		ownPrefixes[alias] = p.Iri.Full
		out.Prefixes = append(out.Prefixes, p)
	}

	for _, key := range sortedKeys(imported.Labels) {
		decl := imported.Labels[key]
		if _, exists := s.labels[key]; exists {
			s.addErr(errors.DuplicateShapeLabel, decl.Label.Pos(), "importDecl", key)
			continue
		}
		s.labels[key] = decl
		out.Shapes = append(out.Shapes, *decl)
	}
}

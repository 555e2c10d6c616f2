package ast

import "github.com/rudof-project/shex-go/token"

// NodeKind restricts the kind of RDF term a NodeConstraint accepts.
type NodeKind int

const (
	// NoNodeKind means the constraint does not restrict the term kind.
	NoNodeKind NodeKind = iota
	IRIKind
	BNodeKind
	LiteralKind
	NonLiteralKind
)

// NodeConstraint restricts the RDF term that may stand at the focus node:
// any combination of a node kind, a datatype, a list of XS facets, and a
// value set. At least one of these must be present (EmptyNodeConstraint
// otherwise, flagged by the resolver).
type NodeConstraint struct {
	Span

	Kind     NodeKind
	Datatype *IriRef
	Facets   []XsFacet
	Values   []ValueSetValue
}

// IsEmpty reports whether nc carries none of kind/datatype/facets/values,
// violating the node-constraint non-emptiness invariant.
func (nc *NodeConstraint) IsEmpty() bool {
	return nc.Kind == NoNodeKind && nc.Datatype == nil && len(nc.Facets) == 0 && len(nc.Values) == 0
}

// Shape is a structural shape expression: an optional CLOSED flag, an
// EXTRA predicate set, EXTENDS/RESTRICTS shape references, a triple
// expression body, and any annotations or semantic actions attached after
// the closing brace. A Shape is "empty" when every field is at its zero
// value except possibly Closed.
type Shape struct {
	Span

	Closed bool

	// ClosedCount records how many CLOSED qualifiers the parser saw,
	// which the grammar permits any number of; the resolver flags more
	// than one as DuplicateClosedQualifier.
	ClosedCount int

	Extra       []IriRef
	Extends     []ShapeExprLabel
	Restricts   []ShapeExprLabel
	Expr        TripleExpression // nil for an empty `{}` body
	Annotations []Annotation
	SemActs     []SemAct
}

// IsEmpty reports whether s has no body and no qualifiers beyond Closed.
func (s *Shape) IsEmpty() bool {
	return len(s.Extra) == 0 && len(s.Extends) == 0 && len(s.Restricts) == 0 &&
		s.Expr == nil && len(s.Annotations) == 0 && len(s.SemActs) == 0
}

// ShapeExpression is implemented by every Boolean combinator, node
// constraint, structural shape, external placeholder, and label reference
// that may appear wherever the grammar accepts a shapeExpression.
type ShapeExpression interface {
	Node
	shapeExprNode()
}

// ShapeAnd is the conjunction of two or more shape expressions. The parser
// flattens single-element conjuncts to their sole element, so a ShapeAnd
// in a resolved tree always has len(Exprs) >= 2.
type ShapeAnd struct {
	Span
	Exprs []ShapeExpression
}

// ShapeOr is the disjunction of two or more shape expressions, with the
// same single-element flattening as ShapeAnd.
type ShapeOr struct {
	Span
	Exprs []ShapeExpression
}

// ShapeNot is Boolean negation of a single shape expression.
type ShapeNot struct {
	Span
	Expr ShapeExpression
}

// ShapeNodeConstraint wraps a NodeConstraint as a ShapeExpression.
type ShapeNodeConstraint struct {
	Span
	Constraint *NodeConstraint
}

// ShapeDef wraps a structural Shape as a ShapeExpression.
type ShapeDef struct {
	Span
	Shape *Shape
}

// ShapeExternal is a placeholder for a shape declared but not defined in
// this schema (the `EXTERNAL` keyword); it resolves via an external
// mechanism the core does not model.
type ShapeExternal struct {
	Span
}

// ShapeWildcard is the `.` shape expression: it accepts any node, placing
// no constraint at all on the focus.
type ShapeWildcard struct {
	Span
}

// ShapeRef is a named reference (`@label`) to another shape expression.
// References are modeled as opaque labels, never as pointers to the
// referenced declaration, so resolution can validate existence without
// creating ownership cycles in the tree.
type ShapeRef struct {
	Span
	Label ShapeExprLabel
}

func (*ShapeAnd) shapeExprNode()            {}
func (*ShapeOr) shapeExprNode()             {}
func (*ShapeNot) shapeExprNode()            {}
func (*ShapeNodeConstraint) shapeExprNode() {}
func (*ShapeDef) shapeExprNode()            {}
func (*ShapeExternal) shapeExprNode()       {}
func (*ShapeRef) shapeExprNode()            {}
func (*ShapeWildcard) shapeExprNode()       {}

// NewShapeAnd builds a ShapeAnd, flattening to its sole element if exprs
// has length 1 (per the AST's conjunct/disjunct normalization invariant).
func NewShapeAnd(from, to token.Pos, exprs []ShapeExpression) ShapeExpression {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &ShapeAnd{Span: NewSpan(from, to), Exprs: exprs}
}

// NewShapeOr builds a ShapeOr, flattening to its sole element if exprs has
// length 1.
func NewShapeOr(from, to token.Pos, exprs []ShapeExpression) ShapeExpression {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &ShapeOr{Span: NewSpan(from, to), Exprs: exprs}
}

// ShapeExprDecl is a top-level (or IMPORTed) shape-expression declaration:
// `ABSTRACT? shapeExprLabel (shapeExpression | EXTERNAL)`.
type ShapeExprDecl struct {
	Span
	Label      ShapeExprLabel
	IsAbstract bool
	Expr       ShapeExpression // *ShapeExternal for the EXTERNAL form
}

package ast

// TripleExpression is implemented by every node that can appear wherever
// the grammar accepts a tripleExpression: EachOf, OneOf, TripleConstraint,
// and TripleExprRef.
type TripleExpression interface {
	Node
	tripleExprNode()
}

// EachOf is a sequence of triple expressions (`;`-separated group) that
// must all match. A bare group has Card DefaultCardinality; any other
// Card, and SemActs and Annotations, are set only when the group was
// itself wrapped in a bracketedTripleExpr
// `( ... ) cardinality? annotation* semanticActions`, and Id only when
// that group is labeled with `$`.
type EachOf struct {
	Span
	Exprs       []TripleExpression
	Card        Cardinality
	SemActs     []SemAct
	Annotations []Annotation
	Id          *TripleExprLabel
}

// OneOf is an alternation of two or more triple expressions (`|`-separated
// group), of which exactly one must match. Card, SemActs, Annotations, and
// Id follow the same bracketed-wrapping convention as EachOf.
type OneOf struct {
	Span
	Exprs       []TripleExpression
	Card        Cardinality
	SemActs     []SemAct
	Annotations []Annotation
	Id          *TripleExprLabel
}

// TripleConstraint is the atomic `predicate value-expr cardinality` unit:
// an outgoing (or, if Inverse, incoming) edge labeled Predicate, whose
// object must satisfy ValueExpr (nil means the match-any shape), repeated
// according to Card.
type TripleConstraint struct {
	Span

	Negated   bool
	Inverse   bool
	Predicate IriRef
	ValueExpr ShapeExpression // nil when the grammar's value expr was `.`

	Card        Cardinality
	SemActs     []SemAct
	Annotations []Annotation
	Id          *TripleExprLabel
}

// TripleExprRef is an `&label` include: a reference to another triple
// expression declared (via `$label`) elsewhere in the schema.
type TripleExprRef struct {
	Span
	Label TripleExprLabel
}

func (*EachOf) tripleExprNode()           {}
func (*OneOf) tripleExprNode()            {}
func (*TripleConstraint) tripleExprNode() {}
func (*TripleExprRef) tripleExprNode()    {}

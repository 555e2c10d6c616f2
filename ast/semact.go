package ast

// SemAct is a semantic action attached to a shape, triple expression, or
// start declaration: a named extension point whose CODE body is carried
// opaquely. Code is nil for the `%name%` form, which omits the body.
type SemAct struct {
	Span
	Name IriRef
	Code *string
}

// Annotation attaches a predicate/object pair to a shape or triple
// expression for downstream consumers; the core neither interprets nor
// validates annotation content.
type Annotation struct {
	Span
	Predicate IriRef
	Object    ObjectValue
}

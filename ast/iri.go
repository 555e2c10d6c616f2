package ast

import "github.com/rudof-project/shex-go/token"

// XSD datatype IRIs implicit in the numeric- and boolean-literal
// shorthand forms a value set or facet value may use in place of a
// full ^^datatype-suffixed string literal.
const (
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimal = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdDouble  = "http://www.w3.org/2001/XMLSchema#double"
	xsdBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// NumericDatatypeIRI returns the XSD datatype IRI a bare numeric literal
// of kind implies (INTEGER/DECIMAL/DOUBLE).
func NumericDatatypeIRI(kind NumericKind) string {
	switch kind {
	case NumericDecimal:
		return xsdDecimal
	case NumericDouble:
		return xsdDouble
	default:
		return xsdInteger
	}
}

// BooleanDatatypeIRI is the XSD datatype IRI a bare true/false literal
// implies.
func BooleanDatatypeIRI() string { return xsdBoolean }

// IriRef is a reference to an IRI as written in source: either a full
// IRIREF (absolute or relative to the active base), or a prefixed name
// split into its alias and local parts (PNAME_NS has an empty Local).
// Resolution does not mutate the parse tree in place; the resolver instead
// builds a new, canonical Schema in which every IriRef has Full set to an
// absolute IRI and Alias/Local cleared.
type IriRef struct {
	Span

	// Full holds the literal IRIREF text before resolution, and the
	// absolute IRI after it. It is empty for a prefixed name before
	// resolution, including a default-prefix name such as `:p`, whose
	// Alias is also empty.
	Full string

	// Alias and Local hold the two halves of a prefixed name
	// (PNAME_NS / PNAME_LN) before resolution.
	Alias string
	Local string
}

// NewIriRefFull builds an IriRef from a literal IRIREF.
func NewIriRefFull(from, to token.Pos, iri string) IriRef {
	return IriRef{Span: NewSpan(from, to), Full: iri}
}

// NewIriRefPrefixed builds an IriRef from a PNAME_NS/PNAME_LN pair.
func NewIriRefPrefixed(from, to token.Pos, alias, local string) IriRef {
	return IriRef{Span: NewSpan(from, to), Alias: alias, Local: local}
}

// IsPrefixed reports whether r is still an unresolved prefixed name.
func (r IriRef) IsPrefixed() bool { return r.Full == "" }

// ShapeExprLabel identifies a shape-expression declaration, either by an
// IRI (absolute or, before resolution, prefixed) or by a blank-node
// identifier, which is never resolved further.
type ShapeExprLabel struct {
	Span

	Iri  *IriRef // non-nil for IRI/prefixed-name labels
	Bnode string  // non-empty for blank-node labels ("_:b0" without prefix)
}

// NewShapeExprLabelIri builds an IRI-valued ShapeExprLabel.
func NewShapeExprLabelIri(from, to token.Pos, iri IriRef) ShapeExprLabel {
	return ShapeExprLabel{Span: NewSpan(from, to), Iri: &iri}
}

// NewShapeExprLabelBnode builds a blank-node ShapeExprLabel.
func NewShapeExprLabelBnode(from, to token.Pos, bnode string) ShapeExprLabel {
	return ShapeExprLabel{Span: NewSpan(from, to), Bnode: bnode}
}

// IsBNode reports whether l names a blank node rather than an IRI.
func (l ShapeExprLabel) IsBNode() bool { return l.Iri == nil }

// Key returns a stable string usable as a label-table key. It must only be
// called on a resolved label (blank nodes are always "resolved").
func (l ShapeExprLabel) Key() string {
	if l.Iri != nil {
		return l.Iri.Full
	}
	return "_:" + l.Bnode
}

// TripleExprLabel identifies a triple-expression declaration ($label) or
// reference (&label). ShExC restricts these to IRIs or blank nodes, mirroring
// ShapeExprLabel.
type TripleExprLabel struct {
	Span

	Iri   *IriRef
	Bnode string
}

// NewTripleExprLabelIri builds an IRI-valued TripleExprLabel.
func NewTripleExprLabelIri(from, to token.Pos, iri IriRef) TripleExprLabel {
	return TripleExprLabel{Span: NewSpan(from, to), Iri: &iri}
}

// NewTripleExprLabelBnode builds a blank-node TripleExprLabel.
func NewTripleExprLabelBnode(from, to token.Pos, bnode string) TripleExprLabel {
	return TripleExprLabel{Span: NewSpan(from, to), Bnode: bnode}
}

func (l TripleExprLabel) IsBNode() bool { return l.Iri == nil }

func (l TripleExprLabel) Key() string {
	if l.Iri != nil {
		return l.Iri.Full
	}
	return "_:" + l.Bnode
}

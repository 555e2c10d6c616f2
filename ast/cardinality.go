package ast

// Cardinality bounds how many times a triple expression may match: Min is
// always ≥ 0; Max of -1 denotes unbounded. The default, implicit
// cardinality is (1, 1).
type Cardinality struct {
	Min int
	Max int // -1 means unbounded
}

// DefaultCardinality is the implicit (1,1) cardinality of an unmarked
// triple expression.
var DefaultCardinality = Cardinality{Min: 1, Max: 1}

// Unbounded marks a Cardinality's Max as having no upper limit.
const Unbounded = -1

// Star is the `*` shorthand: (0, unbounded).
func Star() Cardinality { return Cardinality{Min: 0, Max: Unbounded} }

// Plus is the `+` shorthand: (1, unbounded).
func Plus() Cardinality { return Cardinality{Min: 1, Max: Unbounded} }

// Optional is the `?` shorthand: (0, 1).
func Optional() Cardinality { return Cardinality{Min: 0, Max: 1} }

// Exactly is the `{n}` shorthand: (n, n).
func Exactly(n int) Cardinality { return Cardinality{Min: n, Max: n} }

// AtLeast is the `{n,}` / `{n,*}` shorthand: (n, unbounded).
func AtLeast(n int) Cardinality { return Cardinality{Min: n, Max: Unbounded} }

// Range is the `{n,m}` shorthand: (n, m).
func Range(n, m int) Cardinality { return Cardinality{Min: n, Max: m} }

// IsUnbounded reports whether c has no upper bound.
func (c Cardinality) IsUnbounded() bool { return c.Max == Unbounded }

// WellOrdered reports whether c satisfies the cardinality-order invariant:
// Min ≥ 0, and either Max is unbounded or Min ≤ Max. Schemas that violate
// this are accepted by the parser (per the grammar) and flagged by the
// resolver as CardinalityOutOfOrder / NegativeCardinality.
func (c Cardinality) WellOrdered() bool {
	if c.Min < 0 {
		return false
	}
	return c.IsUnbounded() || c.Min <= c.Max
}

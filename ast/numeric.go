package ast

import "github.com/cockroachdb/apd/v3"

// NumericKind distinguishes the three ShExC numeric literal forms, which
// the XSD facets that reference them (MININCLUSIVE, TOTALDIGITS, ...)
// must be able to tell apart.
type NumericKind int

const (
	NumericInteger NumericKind = iota
	NumericDecimal
	NumericDouble
)

// NumericLiteral stores a parsed INTEGER/DECIMAL/DOUBLE value. Per the
// round-trip fidelity requirement, it keeps the exact source text (sign,
// digits, exponent) alongside an arbitrary-precision apd.Decimal so that
// comparisons made at validation time match XSD's decimal semantics
// instead of being rounded through a machine float64.
type NumericLiteral struct {
	Kind    NumericKind
	Raw     string // verbatim source text
	Decimal *apd.Decimal
}

// NewNumericLiteral parses raw (as produced by the INTEGER/DECIMAL/DOUBLE
// scanner rules) into a NumericLiteral. raw must already have passed the
// lexical grammar for kind; NewNumericLiteral only fails if apd itself
// rejects the text, which should not happen for well-formed input.
func NewNumericLiteral(kind NumericKind, raw string) (NumericLiteral, error) {
	d, _, err := apd.NewFromString(raw)
	if err != nil {
		return NumericLiteral{}, err
	}
	return NumericLiteral{Kind: kind, Raw: raw, Decimal: d}, nil
}

// String renders the literal's original source text.
func (n NumericLiteral) String() string { return n.Raw }

// Cmp compares n and o using exact decimal arithmetic, returning -1, 0, or
// +1, matching apd.Decimal.Cmp.
func (n NumericLiteral) Cmp(o NumericLiteral) int {
	return n.Decimal.Cmp(o.Decimal)
}

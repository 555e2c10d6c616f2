package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/scanner"
	"github.com/rudof-project/shex-go/token"
)

func newScanner(src string) *scanner.Scanner {
	var s scanner.Scanner
	f := token.NewFile("test", len(src))
	s.Init(f, []byte(src))
	return &s
}

func TestScanIRIRef(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`<http://example.org/p>`, "http://example.org/p"},
		{`<http://example.org/é>`, "http://example.org/é"},
		{`<>`, ""},
	}
	for _, tt := range tests {
		s := newScanner(tt.src)
		got, err := s.ScanIRIRef()
		require.Nil(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestScanIRIRefErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind errors.Kind
	}{
		{"<unterminated", errors.BadIRI},
		{"<bad\nnewline>", errors.BadIRI},
		{"<{}>", errors.BadIRI},
	}
	for _, tt := range tests {
		s := newScanner(tt.src)
		_, err := s.ScanIRIRef()
		require.NotNil(t, err)
		assert.Equal(t, tt.kind, err.Kind)
	}
}

func TestScanPNameOrBlank(t *testing.T) {
	s := newScanner("foo:bar")
	alias, local, isBlank, err := s.ScanPNameOrBlank()
	require.Nil(t, err)
	assert.False(t, isBlank)
	assert.Equal(t, "foo", alias)
	assert.Equal(t, "bar", local)

	s = newScanner(":bar")
	alias, local, isBlank, err = s.ScanPNameOrBlank()
	require.Nil(t, err)
	assert.False(t, isBlank)
	assert.Equal(t, "", alias)
	assert.Equal(t, "bar", local)

	s = newScanner("_:b1")
	label, _, isBlank, err := s.ScanPNameOrBlank()
	require.Nil(t, err)
	assert.True(t, isBlank)
	assert.Equal(t, "b1", label)
}

func TestScanAtPName(t *testing.T) {
	s := newScanner("@foo:bar")
	alias, local, err := s.ScanAtPName()
	require.Nil(t, err)
	assert.Equal(t, "foo", alias)
	assert.Equal(t, "bar", local)
}

func TestScanLangTag(t *testing.T) {
	s := newScanner("@en-US")
	tag, err := s.ScanLangTag()
	require.Nil(t, err)
	assert.Equal(t, "en-US", tag)
}

func TestScanLangTagError(t *testing.T) {
	s := newScanner("@1")
	_, err := s.ScanLangTag()
	require.NotNil(t, err)
	assert.Equal(t, errors.BadLangTag, err.Kind)
}

func TestScanStringLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"""multi
line"""`, "multi\nline"},
		{`"with \"escape\""`, `with "escape"`},
	}
	for _, tt := range tests {
		s := newScanner(tt.src)
		got, err := s.ScanStringLiteral()
		require.Nil(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestScanStringLiteralUnterminated(t *testing.T) {
	s := newScanner(`"no closing quote`)
	_, err := s.ScanStringLiteral()
	require.NotNil(t, err)
	assert.Equal(t, errors.UnterminatedString, err.Kind)
}

func TestScanNumber(t *testing.T) {
	tests := []struct {
		src     string
		kind    scanner.NumberKind
		rawWant string
	}{
		{"42", scanner.NumberInteger, "42"},
		{"-7", scanner.NumberInteger, "-7"},
		{"3.14", scanner.NumberDecimal, "3.14"},
		{"1.5e10", scanner.NumberDouble, "1.5e10"},
		{"1E-3", scanner.NumberDouble, "1E-3"},
	}
	for _, tt := range tests {
		s := newScanner(tt.src)
		kind, raw, err := s.ScanNumber()
		require.Nil(t, err)
		assert.Equal(t, tt.kind, kind)
		assert.Equal(t, tt.rawWant, raw)
	}
}

func TestScanNumberError(t *testing.T) {
	s := newScanner(".")
	_, _, err := s.ScanNumber()
	require.NotNil(t, err)
	assert.Equal(t, errors.BadNumeric, err.Kind)
}

func TestScanRepeatRange(t *testing.T) {
	tests := []struct {
		src      string
		min, max int
	}{
		{"{3}", 3, 3},
		{"{2,5}", 2, 5},
		{"{2,}", 2, -1},
		{"{2,*}", 2, -1},
	}
	for _, tt := range tests {
		s := newScanner(tt.src)
		min, max, err := s.ScanRepeatRange()
		require.Nil(t, err)
		assert.Equal(t, tt.min, min)
		assert.Equal(t, tt.max, max)
	}
}

func TestScanRegexp(t *testing.T) {
	s := newScanner("/ab+c/i")
	pattern, flags, err := s.ScanRegexp()
	require.Nil(t, err)
	assert.Equal(t, "ab+c", pattern)
	assert.Equal(t, "i", flags)
}

func TestScanRegexpBadFlags(t *testing.T) {
	s := newScanner("/abc/z")
	_, _, err := s.ScanRegexp()
	require.NotNil(t, err)
	assert.Equal(t, errors.BadRegexFlags, err.Kind)
}

func TestScanRegexpUnterminated(t *testing.T) {
	s := newScanner("/abc")
	_, _, err := s.ScanRegexp()
	require.NotNil(t, err)
	assert.Equal(t, errors.UnterminatedString, err.Kind)
}

func TestScanCode(t *testing.T) {
	s := newScanner("{print(1)%}")
	code, err := s.ScanCode()
	require.Nil(t, err)
	assert.Equal(t, "print(1)", code)
}

func TestScanCodeUnterminated(t *testing.T) {
	s := newScanner("{print(1)")
	_, err := s.ScanCode()
	require.NotNil(t, err)
	assert.Equal(t, errors.UnterminatedString, err.Kind)
}

func TestScanWord(t *testing.T) {
	s := newScanner("PREFIX ex")
	word := s.ScanWord()
	assert.Equal(t, "PREFIX", word)
}

func TestPeekWord(t *testing.T) {
	s := newScanner("CLOSED {")
	word, boundary := s.PeekWord()
	assert.Equal(t, "CLOSED", word)
	assert.Equal(t, ' ', boundary)

	s = newScanner("ex:foo")
	word, boundary = s.PeekWord()
	assert.Equal(t, "ex", word)
	assert.Equal(t, ':', boundary)
}

func TestPeekAndAdvance(t *testing.T) {
	s := newScanner("ab")
	assert.Equal(t, 'a', s.Peek())
	assert.Equal(t, 'b', s.PeekAt(1))
	s.Advance()
	assert.Equal(t, 'b', s.Peek())
	s.Advance()
	assert.True(t, s.AtEOF())
}

func TestSkipTWS0(t *testing.T) {
	s := newScanner("  \t\n# a comment\nfoo")
	s.SkipTWS0()
	assert.Equal(t, 'f', s.Peek())
}

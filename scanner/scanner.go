// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scanner implements the character-level lexical primitives the
// ShExC parser calls directly: IRIREF, PNAME_NS/LN, ATPNAME_NS/LN,
// BLANK_NODE_LABEL, LANGTAG, string literals, numeric literals, REGEXP,
// REPEAT_RANGE, and CODE bodies. It is combinator-style rather than a
// separate tokenizing pass — the parser invokes a Scan* method exactly
// where the grammar expects that terminal, always after consuming
// optional whitespace with SkipTWS0. The rune-at-a-time cursor (next,
// offset/rdOffset tracking, line-table population) drives every Scan*
// method from the same cursor state.
package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/literal"
	"github.com/rudof-project/shex-go/token"
)

// Scanner holds the cursor state while scanning one source file. A
// Scanner is owned by a single parser instance and is never reentrant, per
// the core's single-task ownership model.
type Scanner struct {
	file *token.File
	src  []byte

	ch       rune
	offset   int
	rdOffset int

	ErrorCount int
}

// Init prepares s to scan src, whose contents are already registered
// against file (so that file.Size() == len(src)).
func (s *Scanner) Init(file *token.File, src []byte) {
	s.file = file
	s.src = src
	s.offset = 0
	s.rdOffset = 0
	s.ch = ' '
	s.next()
}

// next advances the cursor by one rune, recording line starts as newlines
// are crossed.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
		}
		s.rdOffset += w
		s.ch = r
		return
	}
	s.offset = len(s.src)
	if s.ch == '\n' {
		s.file.AddLine(s.offset)
	}
	s.ch = -1 // EOF
}

// Pos returns the position of the rune currently under the cursor.
func (s *Scanner) Pos() token.Pos { return s.file.Pos(s.offset) }

// Peek returns the rune currently under the cursor, or -1 at EOF.
func (s *Scanner) Peek() rune { return s.ch }

// PeekAt returns the rune n runes ahead of the cursor without consuming
// anything, or -1 past EOF. Only used for small, fixed lookahead (e.g.
// distinguishing `_:` from a bare `_`).
func (s *Scanner) PeekAt(n int) rune {
	off := s.rdOffset
	for i := 0; i < n-1 && off < len(s.src); i++ {
		_, w := utf8.DecodeRune(s.src[off:])
		off += w
	}
	if off >= len(s.src) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.src[off:])
	return r
}

// AtEOF reports whether the cursor has reached the end of input.
func (s *Scanner) AtEOF() bool { return s.ch < 0 }

// Advance consumes the rune currently under the cursor. Callers use this
// to match single-character punctuation tokens that the grammar expects
// literally, after checking Peek().
func (s *Scanner) Advance() { s.next() }

// TokenText returns a short snippet of source starting at the cursor, for
// use in caller-constructed diagnostics.
func (s *Scanner) TokenText() string { return s.tokenText() }

func (s *Scanner) errorf(kind errors.Kind, production string, detail string) *errors.Error {
	s.ErrorCount++
	return errors.Newf(kind, s.Pos(), production, s.tokenText(), detail)
}

// tokenText returns a short snippet of source starting at the cursor, for
// error reporting.
func (s *Scanner) tokenText() string {
	end := s.offset + 16
	if end > len(s.src) {
		end = len(s.src)
	}
	if s.offset >= len(s.src) {
		return ""
	}
	return string(s.src[s.offset:end])
}

// SkipTWS0 consumes `tws0`: spaces, tabs, newlines, and `#`-to-end-of-line
// comments.
func (s *Scanner) SkipTWS0() {
	for {
		switch s.ch {
		case ' ', '\t', '\r', '\n':
			s.next()
		case '#':
			for s.ch != '\n' && s.ch >= 0 {
				s.next()
			}
		default:
			return
		}
	}
}

func (s *Scanner) consume(r rune) bool {
	if s.ch == r {
		s.next()
		return true
	}
	return false
}

// ScanIRIRef scans an IRIREF; the cursor must be positioned at the opening
// '<'. Returns the decoded IRI text (UCHAR escapes resolved).
func (s *Scanner) ScanIRIRef() (string, *errors.Error) {
	if !s.consume('<') {
		return "", s.errorf(errors.Expected, "IRIREF", "expected '<'")
	}
	var b strings.Builder
	for {
		switch {
		case s.ch == '>':
			s.next()
			return b.String(), nil
		case s.ch < 0 || s.ch == '\n':
			return "", s.errorf(errors.BadIRI, "IRIREF", "unterminated IRIREF")
		case s.ch == '\\':
			r, err := s.scanUchar()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		case isIriChar(s.ch):
			b.WriteRune(s.ch)
			s.next()
		default:
			return "", s.errorf(errors.BadIRI, "IRIREF", "illegal character in IRIREF")
		}
	}
}

// scanUchar scans a UCHAR (`\uXXXX` or `\UXXXXXXXX`); the cursor must be
// at the backslash.
func (s *Scanner) scanUchar() (rune, *errors.Error) {
	start := s.offset
	s.next() // consume '\'
	kind := s.ch
	if kind != 'u' && kind != 'U' {
		return 0, s.errorf(errors.BadEscape, "UCHAR", "expected \\u or \\U")
	}
	s.next()
	n := 4
	if kind == 'U' {
		n = 8
	}
	for i := 0; i < n; i++ {
		if !isHex(s.ch) {
			return 0, s.errorf(errors.BadEscape, "UCHAR", "expected hex digit")
		}
		s.next()
	}
	text := string(s.src[start:s.offset])
	decoded, err := literal.UnquoteString(text)
	if err != nil || len([]rune(decoded)) != 1 {
		return 0, s.errorf(errors.BadEscape, "UCHAR", "invalid unicode escape")
	}
	return []rune(decoded)[0], nil
}

// ScanPNameOrBlank scans whichever of PNAME_NS, PNAME_LN, or
// BLANK_NODE_LABEL begins at the cursor (all start with a PN_CHARS_BASE
// character or `_`, disambiguated by the character after ':'). alias is
// the namespace prefix (empty for the default prefix); local is non-empty
// only for PNAME_LN; isBlank indicates a blank node label was scanned
// instead, in which case alias holds the label text.
func (s *Scanner) ScanPNameOrBlank() (alias, local string, isBlank bool, err *errors.Error) {
	if s.ch == '_' && s.PeekAt(1) == ':' {
		label, e := s.scanBlankNodeLabel()
		return label, "", true, e
	}
	alias, err = s.scanPNPrefix()
	if err != nil {
		return "", "", false, err
	}
	if !s.consume(':') {
		return "", "", false, s.errorf(errors.Expected, "PNAME_NS", "expected ':'")
	}
	if isPNLocalStart(s.ch) {
		local, err = s.scanPNLocal()
		if err != nil {
			return "", "", false, err
		}
	}
	return alias, local, false, nil
}

// ScanAtPName scans ATPNAME_NS/ATPNAME_LN; the cursor must be at '@'.
func (s *Scanner) ScanAtPName() (alias, local string, err *errors.Error) {
	if !s.consume('@') {
		return "", "", s.errorf(errors.Expected, "ATPNAME", "expected '@'")
	}
	return s.ScanPNameOrBlankNoColon()
}

// ScanPNameOrBlankNoColon is ScanPNameOrBlank restricted to the IRI-label
// forms (no blank node), used right after the '@' of a shapeRef.
func (s *Scanner) ScanPNameOrBlankNoColon() (alias, local string, err *errors.Error) {
	alias, err = s.scanPNPrefix()
	if err != nil {
		return "", "", err
	}
	if !s.consume(':') {
		return "", "", s.errorf(errors.Expected, "PNAME_NS", "expected ':'")
	}
	if isPNLocalStart(s.ch) {
		local, err = s.scanPNLocal()
		if err != nil {
			return "", "", err
		}
	}
	return alias, local, nil
}

// scanPNPrefix scans PN_PREFIX (possibly empty, for the default prefix).
func (s *Scanner) scanPNPrefix() (string, *errors.Error) {
	if !isPNCharsBase(s.ch) {
		return "", nil // empty prefix: PNAME_NS = ':'
	}
	start := s.offset
	s.next()
	lastDot := -1
	for isPNChars(s.ch) || s.ch == '.' {
		if s.ch == '.' {
			lastDot = s.offset
		} else {
			lastDot = -1
		}
		s.next()
	}
	end := s.offset
	if lastDot == end-1 {
		// PN_PREFIX cannot end in '.'; back off before it.
		end = lastDot
		s.rewindTo(end)
	}
	return string(s.src[start:end]), nil
}

// rewindTo resets the cursor to byte offset off, which must be <= the
// current offset. Used for the rare one-rune lookahead correction needed
// when a trailing '.' turns out not to belong to the prefix/local name.
func (s *Scanner) rewindTo(off int) {
	s.offset = off
	s.rdOffset = off
	s.ch = ' '
	s.next()
}

func isPNLocalStart(c rune) bool {
	return isPNCharsU(c) || c == ':' || isDigit(c) || c == '%' || c == '\\'
}

// scanPNLocal scans PN_LOCAL: PN_CHARS_U | ':' | digit | PLX, then
// (PN_CHARS | '.' | ':' | PLX)* ending in (PN_CHARS | ':' | PLX).
func (s *Scanner) scanPNLocal() (string, *errors.Error) {
	var b strings.Builder
	if err := s.scanPNLocalUnit(&b); err != nil {
		return "", err
	}
	for {
		switch {
		case isPNChars(s.ch) || s.ch == ':':
			b.WriteRune(s.ch)
			s.next()
		case s.ch == '.':
			// Only consume if more PN_LOCAL content follows the run of
			// dots; '.' cannot be the final character of PN_LOCAL.
			n := 1
			for s.PeekAt(n) == '.' {
				n++
			}
			if next := s.PeekAt(n); isPNChars(next) || next == ':' || next == '%' || next == '\\' {
				b.WriteRune('.')
				s.next()
			} else {
				return b.String(), nil
			}
		case s.ch == '%' || s.ch == '\\':
			if err := s.scanPNLocalUnit(&b); err != nil {
				return "", err
			}
		default:
			return b.String(), nil
		}
	}
}

// scanPNLocalUnit scans one PN_CHARS_U/digit/':' character, or a PLX
// escape (percent-triple or backslash-escaped punctuation), appending it
// to b.
func (s *Scanner) scanPNLocalUnit(b *strings.Builder) *errors.Error {
	switch {
	case s.ch == '%':
		start := s.offset
		s.next()
		if !isHex(s.ch) {
			return s.errorf(errors.BadEscape, "PLX", "expected hex digit after '%'")
		}
		s.next()
		if !isHex(s.ch) {
			return s.errorf(errors.BadEscape, "PLX", "expected hex digit after '%'")
		}
		s.next()
		b.WriteString(string(s.src[start:s.offset]))
		return nil
	case s.ch == '\\':
		s.next()
		if !isPNLocalEsc(s.ch) {
			return s.errorf(errors.BadEscape, "PLX", "invalid PN_LOCAL_ESC character")
		}
		b.WriteRune(s.ch)
		s.next()
		return nil
	case isPNCharsU(s.ch) || s.ch == ':' || isDigit(s.ch):
		b.WriteRune(s.ch)
		s.next()
		return nil
	default:
		return s.errorf(errors.Expected, "PN_LOCAL", "expected PN_LOCAL character")
	}
}

func isPNLocalEsc(c rune) bool {
	return strings.ContainsRune("_~.-!$&'()*+,;=/?#@%", c)
}

// scanBlankNodeLabel scans BLANK_NODE_LABEL; the cursor must be at '_'.
func (s *Scanner) scanBlankNodeLabel() (string, *errors.Error) {
	if !s.consume('_') || !s.consume(':') {
		return "", s.errorf(errors.Expected, "BLANK_NODE_LABEL", "expected '_:'")
	}
	if !(isPNCharsU(s.ch) || isDigit(s.ch)) {
		return "", s.errorf(errors.Expected, "BLANK_NODE_LABEL", "expected label start character")
	}
	start := s.offset
	s.next()
	lastDot := -1
	for isPNChars(s.ch) || s.ch == '.' {
		if s.ch == '.' {
			lastDot = s.offset
		} else {
			lastDot = -1
		}
		s.next()
	}
	end := s.offset
	if lastDot == end-1 {
		end = lastDot
		s.rewindTo(end)
	}
	return string(s.src[start:end]), nil
}

// ScanLangTag scans a LANGTAG; the cursor must be at '@'.
func (s *Scanner) ScanLangTag() (string, *errors.Error) {
	if !s.consume('@') {
		return "", s.errorf(errors.Expected, "LANGTAG", "expected '@'")
	}
	start := s.offset
	if !isAlpha(s.ch) {
		return "", s.errorf(errors.BadLangTag, "LANGTAG", "expected alphabetic primary subtag")
	}
	for isAlpha(s.ch) {
		s.next()
	}
	for s.ch == '-' {
		s.next()
		if !isAlpha(s.ch) && !isDigit(s.ch) {
			return "", s.errorf(errors.BadLangTag, "LANGTAG", "expected alphanumeric subtag")
		}
		for isAlpha(s.ch) || isDigit(s.ch) {
			s.next()
		}
	}
	return string(s.src[start:s.offset]), nil
}

// ScanStringLiteral scans any of STRING_LITERAL1/2 or
// STRING_LITERAL_LONG1/2 and returns its fully unescaped value.
func (s *Scanner) ScanStringLiteral() (string, *errors.Error) {
	quote := s.ch
	if quote != '"' && quote != '\'' {
		return "", s.errorf(errors.Expected, "STRING_LITERAL", "expected a quote character")
	}
	long := s.PeekAt(1) == quote && s.PeekAt(2) == quote
	s.next()
	if long {
		s.next()
		s.next()
	}
	start := s.offset
	for {
		switch {
		case s.ch < 0:
			return "", s.errorf(errors.UnterminatedString, "STRING_LITERAL", "unterminated string")
		case s.ch == quote:
			if !long {
				body := string(s.src[start:s.offset])
				s.next()
				return literal.UnquoteString(body)
			}
			if s.PeekAt(1) == quote && s.PeekAt(2) == quote {
				body := string(s.src[start:s.offset])
				s.next()
				s.next()
				s.next()
				return literal.UnquoteString(body)
			}
			s.next()
		case s.ch == '\\':
			s.next() // consume the escaped character verbatim; decoded later
			if s.ch < 0 {
				return "", s.errorf(errors.UnterminatedString, "STRING_LITERAL", "unterminated escape")
			}
			s.next()
		case !long && s.ch == '\n':
			return "", s.errorf(errors.UnterminatedString, "STRING_LITERAL", "newline in short string")
		default:
			s.next()
		}
	}
}

// ScanNumber scans INTEGER, DECIMAL, or DOUBLE starting at the cursor and
// reports which it scanned.
func (s *Scanner) ScanNumber() (kind NumberKind, raw string, err *errors.Error) {
	start := s.offset
	if s.ch == '+' || s.ch == '-' {
		s.next()
	}
	sawDigitsBeforeDot := false
	for isDigit(s.ch) {
		s.next()
		sawDigitsBeforeDot = true
	}
	kind = NumberInteger
	if s.ch == '.' && isDigit(s.PeekAt(1)) {
		kind = NumberDecimal
		s.next()
		for isDigit(s.ch) {
			s.next()
		}
	} else if s.ch == '.' && !sawDigitsBeforeDot {
		return 0, "", s.errorf(errors.BadNumeric, "DECIMAL", "expected digit after '.'")
	}
	if s.ch == 'e' || s.ch == 'E' {
		kind = NumberDouble
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if !isDigit(s.ch) {
			return 0, "", s.errorf(errors.BadNumeric, "DOUBLE", "expected exponent digits")
		}
		for isDigit(s.ch) {
			s.next()
		}
	}
	if s.offset == start || (s.offset == start+1 && !isDigit(rune(s.src[start]))) {
		return 0, "", s.errorf(errors.BadNumeric, "numericLiteral", "expected a number")
	}
	return kind, string(s.src[start:s.offset]), nil
}

// NumberKind distinguishes which numeric terminal ScanNumber matched.
type NumberKind int

const (
	NumberInteger NumberKind = iota
	NumberDecimal
	NumberDouble
)

// ScanRepeatRange scans REPEAT_RANGE (`{` INTEGER (`,` (INTEGER|`*`)?)? `}`);
// the cursor must be at the opening '{'. min is always present; max == min
// when no comma was present (exactly {n}); max == -1 means unbounded.
func (s *Scanner) ScanRepeatRange() (min, max int, err *errors.Error) {
	if !s.consume('{') {
		return 0, 0, s.errorf(errors.Expected, "REPEAT_RANGE", "expected '{'")
	}
	min, e := s.scanUnsignedInt()
	if e != nil {
		return 0, 0, e
	}
	max = min
	if s.consume(',') {
		switch {
		case s.consume('*'):
			max = -1
		case isDigit(s.ch):
			max, e = s.scanUnsignedInt()
			if e != nil {
				return 0, 0, e
			}
		default:
			max = -1
		}
	}
	if !s.consume('}') {
		return 0, 0, s.errorf(errors.Expected, "REPEAT_RANGE", "expected '}'")
	}
	return min, max, nil
}

func (s *Scanner) scanUnsignedInt() (int, *errors.Error) {
	if !isDigit(s.ch) {
		return 0, s.errorf(errors.BadNumeric, "INTEGER", "expected digit")
	}
	n := 0
	for isDigit(s.ch) {
		n = n*10 + int(s.ch-'0')
		s.next()
	}
	return n, nil
}

// ScanRegexp scans a REGEXP (`/` pattern `/` flags); the cursor must be at
// the opening '/'. Every letter after the closing '/' is read as a flag;
// a letter outside {s,m,i,x}, or a repeated flag, is BadRegexFlags.
func (s *Scanner) ScanRegexp() (pattern, flags string, err *errors.Error) {
	if !s.consume('/') {
		return "", "", s.errorf(errors.Expected, "REGEXP", "expected '/'")
	}
	start := s.offset
	for {
		switch {
		case s.ch < 0 || s.ch == '\n':
			return "", "", s.errorf(errors.UnterminatedString, "REGEXP", "unterminated regexp")
		case s.ch == '/':
			body := string(s.src[start:s.offset])
			s.next()
			pat, perr := literal.UnescapePattern(body)
			if perr != nil {
				return "", "", s.errorf(errors.BadEscape, "REGEXP", perr.Error())
			}
			fstart := s.offset
			for isAlpha(s.ch) {
				s.next()
			}
			flags = string(s.src[fstart:s.offset])
			if !isValidRegexFlags(flags) {
				return "", "", s.errorf(errors.BadRegexFlags, "REGEXP", "invalid flag in "+flags)
			}
			return pat, flags, nil
		case s.ch == '\\':
			s.next()
			if s.ch < 0 {
				return "", "", s.errorf(errors.UnterminatedString, "REGEXP", "unterminated escape")
			}
			s.next()
		default:
			s.next()
		}
	}
}

func isValidRegexFlags(flags string) bool {
	seen := map[rune]bool{}
	for _, c := range flags {
		if !strings.ContainsRune("smix", c) || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

// ScanCode scans a CODE body (`{` ... `%}`); the cursor must be at the
// opening '{'. Only `\%`, `\\`, and UCHAR are valid escapes within.
func (s *Scanner) ScanCode() (string, *errors.Error) {
	if !s.consume('{') {
		return "", s.errorf(errors.Expected, "CODE", "expected '{'")
	}
	start := s.offset
	for {
		switch {
		case s.ch < 0:
			return "", s.errorf(errors.UnterminatedString, "CODE", "unterminated code block")
		case s.ch == '%' && s.PeekAt(1) == '}':
			body := string(s.src[start:s.offset])
			s.next()
			s.next()
			return literal.UnescapeCode(body)
		case s.ch == '\\':
			s.next()
			if s.ch < 0 {
				return "", s.errorf(errors.UnterminatedString, "CODE", "unterminated escape")
			}
			s.next()
		default:
			s.next()
		}
	}
}

// ScanWord scans a maximal run of ASCII letters, for matching
// case-insensitive keywords (PREFIX, BASE, CLOSED, ...) and the bare `a`
// RDF_TYPE token. Returns "" if the cursor is not at a letter.
func (s *Scanner) ScanWord() string {
	if !isAlpha(s.ch) {
		return ""
	}
	start := s.offset
	for isAlpha(s.ch) {
		s.next()
	}
	return string(s.src[start:s.offset])
}

// PeekWord reports the maximal run of ASCII letters starting at the
// cursor, and the rune immediately following it, without consuming
// anything. The parser uses this to decide, before committing to a scan,
// whether an upcoming bare word is a keyword (boundary rune is whitespace
// or punctuation), the start of a longer PN_PREFIX/PN_LOCAL (boundary rune
// continues PN_CHARS or is '.'), or a prefixed name (boundary rune is
// ':').
func (s *Scanner) PeekWord() (word string, boundary rune) {
	if !isAlpha(s.ch) {
		return "", s.ch
	}
	var b strings.Builder
	b.WriteRune(s.ch)
	i := 1
	for isAlpha(s.PeekAt(i)) {
		b.WriteRune(s.PeekAt(i))
		i++
	}
	return b.String(), s.PeekAt(i)
}

package literal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/literal"
)

func TestUnquoteString(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`hello`, "hello"},
		{`tab\there`, "tab\there"},
		{`quote\"here`, `quote"here`},
		{`é`, "é"},
		{`\U0001F600`, "😀"},
	}
	for _, tt := range tests {
		got, err := literal.UnquoteString(tt.body)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestUnquoteStringErrors(t *testing.T) {
	tests := []string{
		`trailing\`,
		`bad\qescape`,
		`\u12`,
	}
	for _, body := range tests {
		_, err := literal.UnquoteString(body)
		assert.Error(t, err)
	}
}

func TestUnescapePattern(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`abc`, "abc"},
		{`a\.b`, `a\.b`},
		{`a\nb`, "a\nb"},
		{`\(group\)`, `\(group\)`},
	}
	for _, tt := range tests {
		got, err := literal.UnescapePattern(tt.body)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestUnescapePatternError(t *testing.T) {
	_, err := literal.UnescapePattern(`a\qb`)
	assert.Error(t, err)
}

func TestUnescapeCode(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`print(1)`, "print(1)"},
		{`100\%`, "100%"},
		{`a\\b`, `a\b`},
		{`é`, "é"},
	}
	for _, tt := range tests {
		got, err := literal.UnescapeCode(tt.body)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestUnescapeCodeError(t *testing.T) {
	_, err := literal.UnescapeCode(`bad\qescape`)
	assert.Error(t, err)
}

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rudof-project/shex-go/token"
)

func TestFilePosition(t *testing.T) {
	src := "abc\ndef\nghi"
	f := token.NewFile("test", len(src))
	for i, c := range src {
		if c == '\n' {
			f.AddLine(i + 1)
		}
	}

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
	}
	for _, tt := range tests {
		pos := f.Pos(tt.offset)
		got := pos.Position()
		assert.Equal(t, tt.line, got.Line)
		assert.Equal(t, tt.col, got.Column)
		assert.Equal(t, "test", got.Filename)
	}
}

func TestNoPos(t *testing.T) {
	assert.False(t, token.NoPos.IsValid())
	assert.Equal(t, "-", token.NoPos.String())
}

func TestPosAdd(t *testing.T) {
	f := token.NewFile("test", 10)
	p := f.Pos(2)
	p2 := p.Add(3)
	assert.Equal(t, 5, p2.Offset())
}

func TestPositionString(t *testing.T) {
	p := token.Position{Filename: "x.shex", Line: 4, Column: 7}
	assert.Equal(t, "x.shex:4:7", p.String())

	noFile := token.Position{Line: 4, Column: 7}
	assert.Equal(t, "4:7", noFile.String())

	invalid := token.Position{}
	assert.Equal(t, "-", invalid.String())
}

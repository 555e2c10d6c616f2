package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/errors"
	"github.com/rudof-project/shex-go/token"
)

func TestErrorMessage(t *testing.T) {
	f := token.NewFile("x.shex", 10)
	err := errors.Newf(errors.UnknownPrefix, f.Pos(3), "iri", "ex:p", "alias ex not declared")
	msg := err.Error()
	assert.Contains(t, msg, "UnknownPrefix")
	assert.Contains(t, msg, "in iri")
	assert.Contains(t, msg, "alias ex not declared")
	assert.Contains(t, msg, `"ex:p"`)
}

func TestNewfTruncatesToken(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	err := errors.Newf(errors.Expected, token.NoPos, "p", string(long), "")
	assert.Len(t, err.Token, 80)
}

func TestListErr(t *testing.T) {
	var list errors.List
	assert.Nil(t, list.Err())

	list.Add(errors.Newf(errors.UnknownPrefix, token.NoPos, "p", "", ""))
	err := list.Err()
	require.Error(t, err)
	_, ok := err.(errors.List)
	assert.True(t, ok)
}

func TestListSort(t *testing.T) {
	f := token.NewFile("x", 10)
	var list errors.List
	list.Add(errors.Newf(errors.Expected, f.Pos(5), "p", "", ""))
	list.Add(errors.Newf(errors.Expected, f.Pos(1), "p", "", ""))
	list.Add(errors.Newf(errors.Expected, f.Pos(3), "p", "", ""))
	list.Sort()
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].Pos.Offset())
	assert.Equal(t, 3, list[1].Pos.Offset())
	assert.Equal(t, 5, list[2].Pos.Offset())
}

func TestListErrorJoinsMultiple(t *testing.T) {
	var list errors.List
	list.Add(errors.Newf(errors.UnknownPrefix, token.NoPos, "p", "", "first"))
	list.Add(errors.Newf(errors.DuplicateShapeLabel, token.NoPos, "p", "", "second"))
	msg := list.Error()
	assert.Contains(t, msg, "first")
	assert.Contains(t, msg, "second")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "UnknownPrefix", errors.UnknownPrefix.String())
	assert.Contains(t, errors.Kind(999).String(), "Kind(999)")
}

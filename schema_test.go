package shex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shex "github.com/rudof-project/shex-go"
)

func TestParseSchema(t *testing.T) {
	sch, err := shex.ParseSchema([]byte(`prefix ex: <http://example.org/> ex:S { ex:p . }`))
	require.NoError(t, err)
	_, ok := sch.Labels["http://example.org/S"]
	assert.True(t, ok)
}

func TestParseSchemaSyntaxError(t *testing.T) {
	_, err := shex.ParseSchema([]byte(`prefix ex <http://example.org/>`))
	assert.Error(t, err)
}

func TestParseSchemaSemanticError(t *testing.T) {
	_, err := shex.ParseSchema([]byte(`:S { :p . }`))
	assert.Error(t, err)
}

func TestParseSchemaFailFast(t *testing.T) {
	_, err := shex.ParseSchema([]byte(`:S { :p . } :T { :q . }`), shex.FailFast())
	require.Error(t, err)
}

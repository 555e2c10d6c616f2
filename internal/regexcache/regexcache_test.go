package regexcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudof-project/shex-go/internal/regexcache"
)

func TestCompileCachesByKey(t *testing.T) {
	var c regexcache.Cache
	re1, err := c.Compile("ab+c", "ab+c")
	require.NoError(t, err)
	re2, err := c.Compile("ab+c", "ab+c")
	require.NoError(t, err)
	assert.Same(t, re1, re2)
}

func TestCompileInvalidPattern(t *testing.T) {
	var c regexcache.Cache
	_, err := c.Compile("(unclosed", "(unclosed")
	assert.Error(t, err)
}

func TestCompileDistinctKeys(t *testing.T) {
	var c regexcache.Cache
	re1, err := c.Compile("(?i)abc", "(?i)abc")
	require.NoError(t, err)
	re2, err := c.Compile("abc", "abc")
	require.NoError(t, err)
	assert.NotSame(t, re1, re2)
}

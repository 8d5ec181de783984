package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRegex(t *testing.T) {
	t.Run("test_stdlib_engine_preferred", func(t *testing.T) {
		re, err := compileRegex(`\b\d+(\.\d+)?\b`)
		require.NoError(t, err, "linear-time pattern should compile")
		require.NotNil(t, re.std, "pattern should use the stdlib engine")
		assert.Nil(t, re.fallback, "pattern should not need the fallback engine")
	})

	t.Run("test_fallback_engine_for_lookahead", func(t *testing.T) {
		re, err := compileRegex(`foo(?=bar)`)
		require.NoError(t, err, "lookahead pattern should compile via fallback")
		require.Nil(t, re.std, "stdlib engine cannot compile lookahead")
		require.NotNil(t, re.fallback, "fallback engine should carry the pattern")

		loc := re.FindSubmatchIndexFrom("xx foobar", 0)
		require.NotNil(t, loc, "pattern should match")
		assert.Equal(t, 3, loc[0], "match should start at 'foo'")
		assert.Equal(t, 6, loc[1], "lookahead should not be consumed")
	})

	t.Run("test_fallback_reports_byte_offsets", func(t *testing.T) {
		re, err := compileRegex(`foo(?=bar)`)
		require.NoError(t, err)

		// Two 2-byte runes before the match.
		loc := re.FindSubmatchIndexFrom("αβ foobar", 0)
		require.NotNil(t, loc, "pattern should match")
		assert.Equal(t, 5, loc[0], "offsets should be byte-based")
		assert.Equal(t, 8, loc[1], "offsets should be byte-based")
	})

	t.Run("test_invalid_pattern", func(t *testing.T) {
		_, err := compileRegex(`(unclosed`)
		require.Error(t, err, "invalid pattern should not compile")
	})

	t.Run("test_matches_empty", func(t *testing.T) {
		re, err := compileRegex(`a*`)
		require.NoError(t, err)
		assert.True(t, re.MatchesEmpty(), "a* can match empty text")

		re, err = compileRegex(`a+`)
		require.NoError(t, err)
		assert.False(t, re.MatchesEmpty(), "a+ cannot match empty text")
	})

	t.Run("test_find_from_offset", func(t *testing.T) {
		re, err := compileRegex(`\d+`)
		require.NoError(t, err)

		loc := re.FindSubmatchIndexFrom("12 34", 2)
		require.NotNil(t, loc, "second number should match")
		assert.Equal(t, []int{3, 5}, loc[:2], "offsets should be absolute")

		assert.Nil(t, re.FindSubmatchIndexFrom("12", 2), "no match past end of text")
		assert.Nil(t, re.FindSubmatchIndexFrom("12", 5), "start beyond text should not match")
	})

	t.Run("test_unmatched_groups", func(t *testing.T) {
		re, err := compileRegex(`(a)|(b)`)
		require.NoError(t, err)

		loc := re.FindSubmatchIndexFrom("b", 0)
		require.NotNil(t, loc)
		assert.Equal(t, -1, loc[2], "group 1 should not participate")
		assert.Equal(t, 0, loc[4], "group 2 should match")
	})
}

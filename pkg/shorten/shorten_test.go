package shorten_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/shorten"
)

func TestShorten_ProseComment(t *testing.T) {
	t.Parallel()

	s := shorten.New("# aaa bbb ccc ddd eee fff\n", "", "x = 1\n",
		shorten.Options{MaxLength: 20})
	changed, newText, newNext := s.Shorten()

	require.True(t, changed)
	assert.Equal(t, "# aaa bbb ccc ddd\n# eee fff\n", newText)
	assert.Empty(t, newNext)
}

func TestShorten_DecorationComment(t *testing.T) {
	t.Parallel()

	line := "#" + strings.Repeat("-", 30) + "\n"
	s := shorten.New(line, "", "", shorten.Options{MaxLength: 10})
	changed, newText, _ := s.Shorten()

	require.True(t, changed)
	assert.Equal(t, "#"+strings.Repeat("-", 9)+"\n", newText)
}

func TestShorten_ShortCommentUnchanged(t *testing.T) {
	t.Parallel()

	s := shorten.New("# short\n", "", "", shorten.Options{MaxLength: 79})
	changed, _, _ := s.Shorten()
	assert.False(t, changed)
}

func TestShorten_TrailingComment(t *testing.T) {
	t.Parallel()

	s := shorten.New("x = call(arg)  # explains\n", "", "",
		shorten.Options{MaxLength: 15})
	changed, newText, newNext := s.Shorten()

	require.True(t, changed)
	assert.Equal(t, "x = call(arg)\n# explains\n", newText)
	assert.Empty(t, newNext)
}

func TestShorten_ReturnExpression(t *testing.T) {
	t.Parallel()

	s := shorten.New("    return aaa + bbb\n", "", "",
		shorten.Options{MaxLength: 15})
	changed, newText, _ := s.Shorten()

	require.True(t, changed)
	assert.Equal(t, "    return (\n        aaa + bbb\n    )\n", newText)
}

func TestShorten_DocString(t *testing.T) {
	t.Parallel()

	t.Run("next line blank", func(t *testing.T) {
		t.Parallel()
		s := shorten.New("    word1 word2 word3\n", "", "",
			shorten.Options{MaxLength: 16, IsDocString: true})
		changed, newText, newNext := s.Shorten()

		require.True(t, changed)
		assert.Equal(t, "    word1 word2\n    word3\n", newText)
		assert.Empty(t, newNext)
	})

	t.Run("remainder merges into next line", func(t *testing.T) {
		t.Parallel()
		s := shorten.New("    word1 word2 word3\n", "", "    tail text\n",
			shorten.Options{MaxLength: 16, IsDocString: true})
		changed, newText, newNext := s.Shorten()

		require.True(t, changed)
		assert.Equal(t, "    word1 word2\n", newText)
		assert.Equal(t, "    word3 tail text\n", newNext)
	})
}

func TestShorten_StringAssignment(t *testing.T) {
	t.Parallel()

	s := shorten.New("x = \"aaa bbb ccc ddd\"\n", "", "",
		shorten.Options{MaxLength: 20})
	changed, newText, newNext := s.Shorten()

	require.True(t, changed)
	assert.Equal(t, "x = \"aaa bbb ccc\" \\\n    \"ddd\"\n", newText)
	assert.Empty(t, newNext)
}

func TestShorten_NoRewritePossible(t *testing.T) {
	t.Parallel()

	s := shorten.New("xxxxxxxxxxxxxxxxxxxx\n", "", "",
		shorten.Options{MaxLength: 10})
	changed, _, _ := s.Shorten()
	assert.False(t, changed)
}

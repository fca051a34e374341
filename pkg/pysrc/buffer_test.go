package pysrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/pysrc"
)

func TestBuffer_Basics(t *testing.T) {
	t.Parallel()

	buf := pysrc.NewBuffer([]string{"a\n", "b\n", "c\n"})
	assert.Equal(t, 3, buf.Len())
	assert.Equal(t, "b\n", buf.Line(1))
	assert.Equal(t, "", buf.Line(-1))
	assert.Equal(t, "", buf.Line(99))
	assert.Equal(t, "a\nb\nc\n", buf.Join())
}

func TestBuffer_DefensiveCopy(t *testing.T) {
	t.Parallel()

	source := []string{"a\n", "b\n"}
	buf := pysrc.NewBuffer(source)
	source[0] = "changed\n"
	assert.Equal(t, "a\n", buf.Line(0))

	lines := buf.Lines()
	lines[1] = "changed\n"
	assert.Equal(t, "b\n", buf.Line(1))
}

func TestBuffer_SetLine(t *testing.T) {
	t.Parallel()

	buf := pysrc.NewBuffer([]string{"a\n", "b\n"})
	buf.SetLine(0, "x\n")
	assert.Equal(t, "x\nb\n", buf.Join())

	// Out of range is a no-op.
	buf.SetLine(5, "y\n")
	buf.SetLine(-1, "y\n")
	assert.Equal(t, "x\nb\n", buf.Join())
}

func TestBuffer_InsertDelete(t *testing.T) {
	t.Parallel()

	buf := pysrc.NewBuffer([]string{"a\n", "c\n"})
	buf.InsertAt(1, "b\n")
	assert.Equal(t, "a\nb\nc\n", buf.Join())

	buf.InsertAt(99, "d\n")
	assert.Equal(t, "a\nb\nc\nd\n", buf.Join())

	buf.DeleteAt(0)
	assert.Equal(t, "b\nc\nd\n", buf.Join())

	buf.DeleteAt(99)
	assert.Equal(t, 3, buf.Len())
}

func TestBuffer_Slice(t *testing.T) {
	t.Parallel()

	buf := pysrc.NewBuffer([]string{"a\n", "b\n", "c\n"})
	assert.Equal(t, []string{"b\n", "c\n"}, buf.Slice(1, 3))
	assert.Equal(t, []string{"a\n", "b\n", "c\n"}, buf.Slice(-5, 99))
	assert.Nil(t, buf.Slice(2, 1))
}

func TestFromSource(t *testing.T) {
	t.Parallel()

	buf := pysrc.FromSource("a\nb")
	require.Equal(t, 2, buf.Len())
	assert.Equal(t, "a\n", buf.Line(0))
	assert.Equal(t, "b", buf.Line(1))

	assert.Equal(t, 0, pysrc.FromSource("").Len())
}

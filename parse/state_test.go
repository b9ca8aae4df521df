package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	s := NewState([]string{"a", "b", "c"})
	assert.Equal(t, 3, s.Len())

	p, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, "a", p)

	n, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, "a", n)
	assert.Equal(t, 1, s.Pos())

	s.Push("x", "y")
	assert.Equal(t, 1, s.Pos())
	assert.Equal(t, []string{"x", "y", "b", "c"}, s.Remaining())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 5, s.Pos())

	_, ok = s.Next()
	assert.False(t, ok)
	_, ok = s.Peek()
	assert.False(t, ok)
}

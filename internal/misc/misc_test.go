package misc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxMin(t *testing.T) {
	assert.Equal(t, 5, Max(3, 5))
	assert.Equal(t, 3, Min(3, 5))
	assert.Equal(t, "b", Max("a", "b"))
	assert.Equal(t, 1.5, Min(2.5, 1.5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 14))
	assert.Equal(t, 14, Clamp(30, 0, 14))
	assert.Equal(t, 7, Clamp(7, 0, 14))
}

func TestStringLimit(t *testing.T) {
	assert.Equal(t, "", StringLimit("abcdef", -1))
	assert.Equal(t, "ab", StringLimit("abcdef", 2))
	assert.Equal(t, "abcdef", StringLimit("abcdef", 6))
	assert.Equal(t, "abc...", StringLimit("abcdefg", 6))
}

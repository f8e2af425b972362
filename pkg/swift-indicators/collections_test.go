package swiftindicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringArray(t *testing.T) {
	array := NewStringArray()
	array.Add("first").Add("second")

	assert.Equal(t, 2, array.Size())
	assert.Equal(t, "first", array.Get(0))
	assert.Equal(t, "second", array.Get(1))
	assert.Equal(t, "", array.Get(2))
	assert.Equal(t, "", array.Get(-1))
}

func TestFloatArray(t *testing.T) {
	array := NewFloatArray()
	array.Add(1.5).Add(2.5)

	assert.Equal(t, 2, array.Size())
	assert.Equal(t, 1.5, array.Get(0))
	assert.True(t, math.IsNaN(array.Get(5)))
}

func TestValuesCopies(t *testing.T) {
	array := NewFloatArray()
	array.Add(1).Add(2)

	out := values(array)
	out[0] = 42

	assert.Equal(t, 1.0, array.Get(0))
	assert.Nil(t, values(nil))
}

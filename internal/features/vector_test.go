package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromMap_SortsAndDropsZeros(t *testing.T) {
	v := FromMap(5, map[int]float64{3: 0.5, 0: 1, 2: 0})

	assert.Equal(t, []int{0, 3}, v.Indices)
	assert.Equal(t, []float64{1, 0.5}, v.Values)
	assert.Equal(t, 2, v.NNZ())
	assert.True(t, v.InBounds())
}

func TestDot(t *testing.T) {
	v := FromMap(3, map[int]float64{0: 2, 2: 3})
	assert.InDelta(t, 2*0.5+3*-1.0, v.Dot([]float64{0.5, 100, -1}), 1e-12)
}

func TestInBounds_OutOfRange(t *testing.T) {
	v := Vector{Dim: 2, Indices: []int{0, 2}, Values: []float64{1, 1}}
	assert.False(t, v.InBounds())
}

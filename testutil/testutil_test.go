package testutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVanDerCorputTablesAgree(t *testing.T) {
	require.Len(t, VanDerCorputGray, 31)
	require.Len(t, VanDerCorputNatural, 31)
	require.Len(t, VanDerCorputBase3, 26)

	// Both orders visit the same set at every 2^j - 1 boundary.
	for _, n := range []int{1, 3, 7, 15, 31} {
		a := append([]float64(nil), VanDerCorputGray[:n]...)
		b := append([]float64(nil), VanDerCorputNatural[:n]...)
		sort.Float64s(a)
		sort.Float64s(b)
		assert.Equal(t, a, b, "n=%d", n)
	}
}

func TestPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.Points(8, 3)

	assert.Len(t, p, 8)
	assert.Len(t, p[0], 3)
	assert.Less(t, p[0][0], 1.0)
	assert.GreaterOrEqual(t, p[1][0], 0.0)
	assert.Equal(t, []float64{p[0][1], p[1][1]}, Column(p[:2], 1))
}

func TestWeights(t *testing.T) {
	rng := NewRNG(4711)

	w := rng.Weights(100, 0.5, 2)
	for _, x := range w {
		assert.Greater(t, x, 0.5)
		assert.LessOrEqual(t, x, 2.0)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Float64()
	rng.Reset()
	assert.Equal(t, a, rng.Float64())
	assert.Equal(t, int64(4711), rng.Seed())
}

package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/qmc/sequence"
)

// VanDerCorputGray is the base-2 van der Corput sequence in Gray-code order,
// the order in which a one-dimensional Sobol generator emits it.
var VanDerCorputGray = []float64{
	// first cycle (zero excluded)
	0.50000,
	// second cycle
	0.75000, 0.25000,
	// third cycle
	0.37500, 0.87500, 0.62500, 0.12500,
	// fourth cycle
	0.18750, 0.68750, 0.93750, 0.43750, 0.31250, 0.81250, 0.56250, 0.06250,
	// fifth cycle
	0.09375, 0.59375, 0.84375, 0.34375, 0.46875, 0.96875, 0.71875, 0.21875,
	0.15625, 0.65625, 0.90625, 0.40625, 0.28125, 0.78125, 0.53125, 0.03125,
}

// VanDerCorputNatural is the base-2 van der Corput sequence in index order,
// the order of the first Halton dimension.
var VanDerCorputNatural = []float64{
	0.50000,
	0.25000, 0.75000,
	0.12500, 0.62500, 0.37500, 0.87500,
	0.06250, 0.56250, 0.31250, 0.81250, 0.18750, 0.68750, 0.43750, 0.93750,
	0.03125, 0.53125, 0.28125, 0.78125, 0.15625, 0.65625, 0.40625, 0.90625,
	0.09375, 0.59375, 0.34375, 0.84375, 0.21875, 0.71875, 0.46875, 0.96875,
}

// VanDerCorputBase3 is the base-3 van der Corput sequence for indices 1..26.
var VanDerCorputBase3 = []float64{
	1.0 / 3, 2.0 / 3,
	1.0 / 9, 4.0 / 9, 7.0 / 9, 2.0 / 9, 5.0 / 9, 8.0 / 9,
	1.0 / 27, 10.0 / 27, 19.0 / 27, 4.0 / 27, 13.0 / 27, 22.0 / 27,
	7.0 / 27, 16.0 / 27, 25.0 / 27, 2.0 / 27, 11.0 / 27, 20.0 / 27,
	5.0 / 27, 14.0 / 27, 23.0 / 27, 8.0 / 27, 17.0 / 27, 26.0 / 27,
}

// Draw takes n points from g.
func Draw(g sequence.Generator, n int) ([][]float64, error) {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, g.Dimension())
		if err := g.NextAt(pts[i]); err != nil {
			return nil, err
		}
	}
	return pts, nil
}

// Column returns coordinate k of every point.
func Column(pts [][]float64, k int) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p[k]
	}
	return out
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard normal variate.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// Points returns n points of dimension dim with coordinates in [0, 1).
func (r *RNG) Points(n, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dim)
		for k := range pts[i] {
			pts[i][k] = r.rand.Float64()
		}
	}
	return pts
}

// Weights returns n weights in (lo, hi].
func (r *RNG) Weights(n int, lo, hi float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := make([]float64, n)
	for i := range w {
		w[i] = hi - (hi-lo)*r.rand.Float64()
	}
	return w
}

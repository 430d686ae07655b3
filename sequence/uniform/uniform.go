// Package uniform provides the pseudo-random baseline against which the
// low-discrepancy generators are compared.
package uniform

import (
	"github.com/hupe1980/qmc/sequence"
)

// DefaultSeed seeds generators built without WithSeed. It is the seed of the
// MT19937 reference implementation.
const DefaultSeed uint64 = 5489

// Option configures a uniform Generator.
type Option func(*options)

type options struct {
	seed uint64
}

// WithSeed sets the MT19937 seed. Zero is a valid, deterministic seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// Generator emits points whose coordinates are consecutive MT19937 draws.
type Generator struct {
	dim   int
	rng   *MersenneTwister
	draws uint64
}

// New returns a uniform generator of the given dimension. There is no upper
// bound on the dimension.
func New(dim int, optFns ...Option) (*Generator, error) {
	if err := sequence.ValidateDimension(sequence.KindUniform, dim, 0); err != nil {
		return nil, err
	}

	opts := options{seed: DefaultSeed}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Generator{
		dim: dim,
		rng: NewMersenneTwister(opts.seed),
	}, nil
}

// Dimension returns the number of coordinates per point.
func (g *Generator) Dimension() int { return g.dim }

// Draws returns the number of points emitted so far.
func (g *Generator) Draws() uint64 { return g.draws }

// Next returns the next point in a freshly allocated sample.
func (g *Generator) Next() (sequence.Sample, error) {
	v := make([]float64, g.dim)
	if err := g.NextAt(v); err != nil {
		return sequence.Sample{}, err
	}
	return sequence.Sample{Value: v, Weight: 1.0}, nil
}

// NextAt writes the next point into dst.
func (g *Generator) NextAt(dst []float64) error {
	if err := sequence.CheckBuffer(dst, g.dim); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = g.rng.Float64()
	}
	g.draws++
	return nil
}

var _ sequence.Generator = (*Generator)(nil)

// Package halton implements the Halton low-discrepancy sequence, one prime
// base per dimension, with optional random start offsets and a random
// Cranley-Patterson shift.
package halton

import (
	"math"

	"github.com/hupe1980/qmc/polynomial"
	"github.com/hupe1980/qmc/sequence"
	"github.com/hupe1980/qmc/sequence/uniform"
)

// MaxDimension bounds the dimension, matching the Sobol generator.
const MaxDimension = polynomial.DefaultMaxDimension

// DefaultSeed seeds the randomized variants when WithSeed is not given.
const DefaultSeed uint64 = 0

// Option configures a Halton Generator.
type Option func(*options)

type options struct {
	seed        uint64
	randomStart bool
	randomShift bool
}

// WithSeed sets the MT19937 seed used by the randomized variants.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithRandomStart offsets the index of each dimension by an independent
// random 32-bit integer.
func WithRandomStart(enabled bool) Option {
	return func(o *options) {
		o.randomStart = enabled
	}
}

// WithRandomShift rotates each coordinate by an independent uniform shift
// modulo one.
func WithRandomShift(enabled bool) Option {
	return func(o *options) {
		o.randomShift = enabled
	}
}

// Generator produces the Halton sequence. It is not safe for concurrent use.
type Generator struct {
	dim   int
	bases []uint64
	start []uint64
	shift []float64
	draws uint64
}

// New returns a Halton generator whose dimension k uses the k-th prime.
func New(dim int, optFns ...Option) (*Generator, error) {
	if err := sequence.ValidateDimension(sequence.KindHalton, dim, MaxDimension); err != nil {
		return nil, err
	}

	opts := options{seed: DefaultSeed}
	for _, fn := range optFns {
		fn(&opts)
	}

	g := &Generator{
		dim:   dim,
		bases: Primes(dim),
	}

	if opts.randomStart || opts.randomShift {
		rng := uniform.NewMersenneTwister(opts.seed)
		if opts.randomStart {
			g.start = make([]uint64, dim)
			for k := range g.start {
				g.start[k] = uint64(rng.Uint32())
			}
		}
		if opts.randomShift {
			g.shift = make([]float64, dim)
			for k := range g.shift {
				g.shift[k] = rng.Float64()
			}
		}
	}
	return g, nil
}

// RadicalInverse reflects the base-b digits of n about the radix point.
func RadicalInverse(n, base uint64) float64 {
	b := float64(base)
	f, h := 1.0, 0.0
	for n > 0 {
		f /= b
		h += float64(n%base) * f
		n /= base
	}
	return h
}

// Dimension returns the number of coordinates per point.
func (g *Generator) Dimension() int { return g.dim }

// Draws returns the number of points emitted so far.
func (g *Generator) Draws() uint64 { return g.draws }

// Bases returns the prime base of every dimension.
func (g *Generator) Bases() []uint64 {
	return append([]uint64(nil), g.bases...)
}

// Next returns the next point in a freshly allocated sample.
func (g *Generator) Next() (sequence.Sample, error) {
	v := make([]float64, g.dim)
	if err := g.NextAt(v); err != nil {
		return sequence.Sample{}, err
	}
	return sequence.Sample{Value: v, Weight: 1.0}, nil
}

// NextAt writes the next point into dst. Index zero is skipped.
func (g *Generator) NextAt(dst []float64) error {
	if err := sequence.CheckBuffer(dst, g.dim); err != nil {
		return err
	}
	if g.draws == math.MaxUint64 {
		return sequence.ErrSequenceExhausted
	}
	g.draws++

	for k, b := range g.bases {
		n := g.draws
		if g.start != nil {
			n += g.start[k]
		}
		h := RadicalInverse(n, b)
		if g.shift != nil {
			h = wrap(h + g.shift[k])
		}
		dst[k] = h
	}
	return nil
}

// wrap reduces x in [0, 2) to [0, 1).
func wrap(x float64) float64 {
	if x >= 1 {
		x--
	}
	if x >= 1 {
		return math.Nextafter(1, 0)
	}
	return x
}

var _ sequence.Generator = (*Generator)(nil)

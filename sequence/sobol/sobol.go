// Package sobol implements the Sobol low-discrepancy sequence with Gray-code
// stepping over 32-bit direction numbers.
package sobol

import (
	"math/bits"

	"github.com/hupe1980/qmc/polynomial"
	"github.com/hupe1980/qmc/sequence"
	"github.com/hupe1980/qmc/sequence/uniform"
)

const (
	// Bits is the word size of every coordinate.
	Bits = 32

	// MaxDraws is the number of points available before the sequence is
	// exhausted.
	MaxDraws = 1<<Bits - 1

	normalization = 1.0 / (1 << Bits)
)

// DefaultSeed seeds the free direction numbers when neither WithSeed nor
// WithUnitInitialization is given.
const DefaultSeed uint64 = 0

// ErrSequenceExhausted aliases the shared sentinel so callers of this package
// can match it without importing sequence.
var ErrSequenceExhausted = sequence.ErrSequenceExhausted

// Option configures a Sobol Generator.
type Option func(*options)

type options struct {
	seed  uint64
	unit  bool
	table *polynomial.Table
}

// WithSeed sets the MT19937 seed used to draw the free direction numbers.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithUnitInitialization sets every free direction number to one instead of
// drawing it at random. The seed is then ignored.
func WithUnitInitialization(unit bool) Option {
	return func(o *options) {
		o.unit = unit
	}
}

// WithTable replaces the default polynomial table, which bounds the dimension.
func WithTable(t *polynomial.Table) Option {
	return func(o *options) {
		o.table = t
	}
}

// Generator produces the Sobol sequence. It is not safe for concurrent use.
type Generator struct {
	dim        int
	directions [][Bits]uint32
	ints       []uint32
	draws      uint64
}

// New builds the direction numbers for dim dimensions. Unsupported dimensions
// fail here rather than on the first draw.
func New(dim int, optFns ...Option) (*Generator, error) {
	opts := options{seed: DefaultSeed}
	for _, fn := range optFns {
		fn(&opts)
	}

	table := opts.table
	if table == nil {
		var err error
		if table, err = polynomial.Default(); err != nil {
			return nil, err
		}
	}

	if err := sequence.ValidateDimension(sequence.KindSobol, dim, table.Len()); err != nil {
		return nil, err
	}

	directions, err := directionNumbers(dim, table, opts)
	if err != nil {
		return nil, err
	}

	return &Generator{
		dim:        dim,
		directions: directions,
		ints:       make([]uint32, dim),
	}, nil
}

func directionNumbers(dim int, table *polynomial.Table, opts options) ([][Bits]uint32, error) {
	v := make([][Bits]uint32, dim)
	for j := range Bits {
		v[0][j] = 1 << (Bits - 1 - j)
	}
	if dim == 1 {
		return v, nil
	}

	var rng *uniform.MersenneTwister
	if !opts.unit {
		rng = uniform.NewMersenneTwister(opts.seed)
	}

	for k := 1; k < dim; k++ {
		// Dimension one is van der Corput, so dimension k+1 takes entry k-1.
		poly, degree, ok := table.Entry(k - 1)
		if !ok {
			return nil, &sequence.ErrDimensionTooLarge{Kind: sequence.KindSobol, Dimension: dim, Max: table.Len()}
		}
		g := degree

		for l := 1; l <= g; l++ {
			m := uint32(1)
			if rng != nil {
				m = oddBelow(rng, l)
			}
			v[k][l-1] = m << (Bits - l)
		}

		for l := g; l < Bits; l++ {
			n := v[k][l-g] >> g
			for j := 1; j < g; j++ {
				if (poly>>(g-j-1))&1 != 0 {
					n ^= v[k][l-j]
				}
			}
			v[k][l] = n ^ v[k][l-g]
		}
	}
	return v, nil
}

// oddBelow draws an odd integer in [1, 2^l) by rejection.
func oddBelow(rng *uniform.MersenneTwister, l int) uint32 {
	for {
		m := uint32(rng.Float64() * float64(uint64(1)<<l))
		if m&1 != 0 {
			return m
		}
	}
}

// Dimension returns the number of coordinates per point.
func (g *Generator) Dimension() int { return g.dim }

// Draws returns the number of points emitted so far.
func (g *Generator) Draws() uint64 { return g.draws }

// DirectionNumbers returns a copy of the direction numbers of the zero-based
// dimension k.
func (g *Generator) DirectionNumbers(k int) ([Bits]uint32, error) {
	if k < 0 || k >= g.dim {
		return [Bits]uint32{}, &sequence.ErrDimensionMismatch{Expected: g.dim, Actual: k + 1}
	}
	return g.directions[k], nil
}

// Next returns the next point in a freshly allocated sample.
func (g *Generator) Next() (sequence.Sample, error) {
	v := make([]float64, g.dim)
	if err := g.NextAt(v); err != nil {
		return sequence.Sample{}, err
	}
	return sequence.Sample{Value: v, Weight: 1.0}, nil
}

// NextAt writes the next point into dst. The all-zero point at index zero is
// never emitted; the first draw is index one.
func (g *Generator) NextAt(dst []float64) error {
	if err := sequence.CheckBuffer(dst, g.dim); err != nil {
		return err
	}

	if g.draws == 0 {
		for k := range g.ints {
			g.ints[k] = g.directions[k][0]
		}
	} else {
		// Gray code of draws+1 differs from that of draws in the bit just
		// above the trailing ones.
		j := bits.TrailingZeros64(^g.draws)
		if j >= Bits {
			return ErrSequenceExhausted
		}
		for k := range g.ints {
			g.ints[k] ^= g.directions[k][j]
		}
	}
	g.draws++

	for k, c := range g.ints {
		dst[k] = float64(c) * normalization
	}
	return nil
}

var _ sequence.Generator = (*Generator)(nil)

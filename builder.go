// This file implements kind-specific fluent builder APIs for creating and
// configuring generators. Builders are immutable - each method returns a new
// builder with the updated configuration.
package qmc

import (
	"github.com/hupe1980/qmc/polynomial"
	"github.com/hupe1980/qmc/sequence"
)

// base holds the settings every builder shares.
type base struct {
	dimension int
	seed      *uint64
	logger    *Logger
	metrics   MetricsCollector
}

func (b base) options() []Option {
	var opts []Option
	if b.seed != nil {
		opts = append(opts, WithSeed(*b.seed))
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	return opts
}

func seedPtr(seed uint64) *uint64 { return &seed }

// =============================================================================
// Sobol Builder (Immutable)
// =============================================================================

// Sobol creates a new Sobol generator builder with the specified dimension.
//
// Example:
//
//	gen, err := qmc.Sobol(8).
//	    Seed(123456).
//	    Build()
func Sobol(dimension int) SobolBuilder {
	return SobolBuilder{base: base{dimension: dimension}}
}

// SobolBuilder is an immutable fluent builder for Sobol generators.
type SobolBuilder struct {
	base
	unit  bool
	table *polynomial.Table
}

// Seed sets the seed of the free direction numbers.
func (b SobolBuilder) Seed(seed uint64) SobolBuilder {
	b.seed = seedPtr(seed)
	return b
}

// Unit selects unit free direction numbers. The seed is then ignored.
func (b SobolBuilder) Unit() SobolBuilder {
	b.unit = true
	return b
}

// Table sets the polynomial table, which bounds the dimension.
func (b SobolBuilder) Table(t *polynomial.Table) SobolBuilder {
	b.table = t
	return b
}

// Logger sets the construction logger.
func (b SobolBuilder) Logger(l *Logger) SobolBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b SobolBuilder) Metrics(m MetricsCollector) SobolBuilder {
	b.metrics = m
	return b
}

// Build constructs the generator.
func (b SobolBuilder) Build() (sequence.Generator, error) {
	opts := append(b.options(), WithUnitInitialization(b.unit), WithPolynomialTable(b.table))
	return New(sequence.KindSobol, b.dimension, opts...)
}

// =============================================================================
// Halton Builder (Immutable)
// =============================================================================

// Halton creates a new Halton generator builder with the specified dimension.
//
// Example:
//
//	gen, err := qmc.Halton(8).
//	    RandomStart().
//	    RandomShift().
//	    Seed(7).
//	    Build()
func Halton(dimension int) HaltonBuilder {
	return HaltonBuilder{base: base{dimension: dimension}}
}

// HaltonBuilder is an immutable fluent builder for Halton generators.
type HaltonBuilder struct {
	base
	randomStart bool
	randomShift bool
}

// Seed sets the seed of the randomized variants.
func (b HaltonBuilder) Seed(seed uint64) HaltonBuilder {
	b.seed = seedPtr(seed)
	return b
}

// RandomStart enables random per-dimension start indices.
func (b HaltonBuilder) RandomStart() HaltonBuilder {
	b.randomStart = true
	return b
}

// RandomShift enables a random shift modulo one.
func (b HaltonBuilder) RandomShift() HaltonBuilder {
	b.randomShift = true
	return b
}

// Logger sets the construction logger.
func (b HaltonBuilder) Logger(l *Logger) HaltonBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b HaltonBuilder) Metrics(m MetricsCollector) HaltonBuilder {
	b.metrics = m
	return b
}

// Build constructs the generator.
func (b HaltonBuilder) Build() (sequence.Generator, error) {
	opts := append(b.options(), WithRandomStart(b.randomStart), WithRandomShift(b.randomShift))
	return New(sequence.KindHalton, b.dimension, opts...)
}

// =============================================================================
// Uniform Builder (Immutable)
// =============================================================================

// Uniform creates a new pseudo-random baseline builder with the specified
// dimension.
func Uniform(dimension int) UniformBuilder {
	return UniformBuilder{base: base{dimension: dimension}}
}

// UniformBuilder is an immutable fluent builder for the MT19937 baseline.
type UniformBuilder struct {
	base
}

// Seed sets the MT19937 seed.
func (b UniformBuilder) Seed(seed uint64) UniformBuilder {
	b.seed = seedPtr(seed)
	return b
}

// Logger sets the construction logger.
func (b UniformBuilder) Logger(l *Logger) UniformBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector.
func (b UniformBuilder) Metrics(m MetricsCollector) UniformBuilder {
	b.metrics = m
	return b
}

// Build constructs the generator.
func (b UniformBuilder) Build() (sequence.Generator, error) {
	return New(sequence.KindUniform, b.dimension, b.options()...)
}

package qmc

import (
	"github.com/hupe1980/qmc/polynomial"
)

type options struct {
	seed             uint64
	seedSet          bool
	unit             bool
	randomStart      bool
	randomShift      bool
	table            *polynomial.Table
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures New.
//
// Options that do not apply to the requested kind are ignored, so one option
// set can build every kind of a comparison grid.
type Option func(*options)

// WithSeed sets the seed of the randomized parts of a generator: Sobol free
// direction numbers, Halton start offsets and shifts, and the uniform
// baseline. Each generator package documents its own default.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithUnitInitialization makes Sobol use unit free direction numbers.
func WithUnitInitialization(unit bool) Option {
	return func(o *options) {
		o.unit = unit
	}
}

// WithPolynomialTable sets the polynomial table for Sobol generators.
//
// If nil is passed, the shared default table is used.
func WithPolynomialTable(t *polynomial.Table) Option {
	return func(o *options) {
		o.table = t
	}
}

// WithRandomStart enables random per-dimension start indices for Halton.
func WithRandomStart(enabled bool) Option {
	return func(o *options) {
		o.randomStart = enabled
	}
}

// WithRandomShift enables a random Cranley-Patterson shift for Halton.
func WithRandomShift(enabled bool) Option {
	return func(o *options) {
		o.randomShift = enabled
	}
}

// WithLogger sets the logger for construction events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. A non-nil collector also
// wraps the returned generator so that every draw is recorded.
func WithMetricsCollector(c MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = c
	}
}

package qmc

import (
	"context"
	"time"

	"github.com/hupe1980/qmc/sequence"
	"github.com/hupe1980/qmc/sequence/halton"
	"github.com/hupe1980/qmc/sequence/sobol"
	"github.com/hupe1980/qmc/sequence/uniform"
)

// Kinds lists every generator kind New can build.
func Kinds() []sequence.Kind {
	return []sequence.Kind{sequence.KindSobol, sequence.KindHalton, sequence.KindUniform}
}

// DefaultSeed returns the seed a generator of the given kind uses when
// WithSeed is not given.
func DefaultSeed(kind sequence.Kind) uint64 {
	switch kind {
	case sequence.KindSobol:
		return sobol.DefaultSeed
	case sequence.KindHalton:
		return halton.DefaultSeed
	default:
		return uniform.DefaultSeed
	}
}

// New builds a generator of the given kind and dimension.
//
// Construction errors are translated into ErrInvalidDimension,
// ErrDimensionMismatch or ErrInvalidTable with the cause kept for
// errors.Unwrap.
func New(kind sequence.Kind, dim int, optFns ...Option) (sequence.Generator, error) {
	opts := options{logger: NoopLogger()}
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	g, err := build(kind, dim, opts)
	elapsed := time.Since(start)
	err = translateError(err)

	log := opts.logger
	if opts.seedSet {
		log = log.WithSeed(opts.seed)
	}
	log.LogConstruct(context.Background(), kind, dim, elapsed, err)

	if opts.metricsCollector != nil {
		opts.metricsCollector.RecordGenerator(kind.String(), dim, elapsed, err)
	}
	if err != nil {
		return nil, err
	}

	if opts.metricsCollector != nil {
		return &instrumented{Generator: g, kind: kind.String(), metrics: opts.metricsCollector}, nil
	}
	return g, nil
}

func build(kind sequence.Kind, dim int, opts options) (sequence.Generator, error) {
	switch kind {
	case sequence.KindSobol:
		sobolOpts := []sobol.Option{sobol.WithUnitInitialization(opts.unit)}
		if opts.seedSet {
			sobolOpts = append(sobolOpts, sobol.WithSeed(opts.seed))
		}
		if opts.table != nil {
			sobolOpts = append(sobolOpts, sobol.WithTable(opts.table))
		}
		return sobol.New(dim, sobolOpts...)
	case sequence.KindHalton:
		haltonOpts := []halton.Option{
			halton.WithRandomStart(opts.randomStart),
			halton.WithRandomShift(opts.randomShift),
		}
		if opts.seedSet {
			haltonOpts = append(haltonOpts, halton.WithSeed(opts.seed))
		}
		return halton.New(dim, haltonOpts...)
	case sequence.KindUniform:
		var uniformOpts []uniform.Option
		if opts.seedSet {
			uniformOpts = append(uniformOpts, uniform.WithSeed(opts.seed))
		}
		return uniform.New(dim, uniformOpts...)
	default:
		return nil, ErrUnknownKind
	}
}

// instrumented reports every draw to a MetricsCollector.
type instrumented struct {
	sequence.Generator
	kind    string
	metrics MetricsCollector
}

func (g *instrumented) Next() (sequence.Sample, error) {
	s, err := g.Generator.Next()
	err = translateError(err)
	g.metrics.RecordDraw(g.kind, err)
	return s, err
}

func (g *instrumented) NextAt(dst []float64) error {
	err := translateError(g.Generator.NextAt(dst))
	g.metrics.RecordDraw(g.kind, err)
	return err
}

// Unwrap returns the underlying generator.
func (g *instrumented) Unwrap() sequence.Generator { return g.Generator }

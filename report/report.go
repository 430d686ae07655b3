// Package report evaluates the discrepancy of several generators over a grid
// of dimensions and renders the comparison.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/qmc"
	"github.com/hupe1980/qmc/sequence"
	"github.com/hupe1980/qmc/stats"
)

// Cell is the outcome for one generator in one dimension.
type Cell struct {
	Generator   string        `json:"generator"`
	Dimension   int           `json:"dimension"`
	Points      int           `json:"points"`
	Discrepancy float64       `json:"discrepancy"`
	TrueRandom  float64       `json:"true_random"`
	Trace       []TracePoint  `json:"trace"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// Ratio returns the discrepancy relative to the random expectation.
func (c Cell) Ratio() float64 {
	return c.Discrepancy / c.TrueRandom
}

// TracePoint is the discrepancy after a prefix of the point set.
type TracePoint struct {
	Points      int     `json:"points"`
	Discrepancy float64 `json:"discrepancy"`
}

// Report is the full comparison grid, ordered by dimension then generator
// as configured.
type Report struct {
	Seed  uint64 `json:"seed"`
	Cells []Cell `json:"cells"`
}

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	logger  *qmc.Logger
	metrics qmc.MetricsCollector
}

// WithLogger logs every evaluated cell.
func WithLogger(l *qmc.Logger) Option {
	return func(o *runOptions) {
		o.logger = l
	}
}

// WithMetricsCollector records generator construction, draws and cells.
func WithMetricsCollector(m qmc.MetricsCollector) Option {
	return func(o *runOptions) {
		o.metrics = m
	}
}

// Run evaluates every (generator, dimension) cell of cfg. Cells are
// independent and run concurrently up to cfg.Concurrency; each owns its
// generator and accumulator. Run returns the first cell error, or ctx's
// error once it is done.
func Run(ctx context.Context, cfg Config, optFns ...Option) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := runOptions{logger: qmc.NoopLogger(), metrics: qmc.NoopMetricsCollector{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = qmc.NoopLogger()
	}
	if opts.metrics == nil {
		opts.metrics = qmc.NoopMetricsCollector{}
	}

	type job struct {
		index int
		gen   Generator
		dim   int
	}
	var jobs []job
	for _, dim := range cfg.Dimensions {
		for _, gen := range cfg.Generators {
			jobs = append(jobs, job{index: len(jobs), gen: gen, dim: dim})
		}
	}

	cells := make([]Cell, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))

	for _, j := range jobs {
		g.Go(func() error {
			cell, err := evaluate(gctx, j.gen, j.dim, cfg, opts)
			opts.logger.LogReport(gctx, j.gen.Name(), j.dim, cell.Points, cell.Discrepancy, err)
			if err != nil {
				return fmt.Errorf("%s dimension %d: %w", j.gen.Name(), j.dim, err)
			}
			opts.metrics.RecordDiscrepancy(j.gen.Name(), j.dim, cell.Points, cell.Discrepancy, cell.Elapsed)
			cells[j.index] = cell
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{Seed: cfg.Seed, Cells: cells}, nil
}

func evaluate(ctx context.Context, gen Generator, dim int, cfg Config, opts runOptions) (Cell, error) {
	start := time.Now()

	kind, err := sequence.ParseKind(gen.Kind)
	if err != nil {
		return Cell{}, err
	}
	g, err := qmc.New(kind, dim,
		qmc.WithSeed(cfg.Seed),
		qmc.WithUnitInitialization(gen.Unit),
		qmc.WithRandomStart(gen.RandomStart),
		qmc.WithRandomShift(gen.RandomShift),
		qmc.WithMetricsCollector(opts.metrics),
	)
	if err != nil {
		return Cell{}, err
	}

	acc, err := stats.NewDiscrepancy(dim, stats.WithoutCovariance())
	if err != nil {
		return Cell{}, err
	}

	cell := Cell{Generator: gen.Name(), Dimension: dim}
	p := make([]float64, dim)
	n := 0
	for i := 1; i <= cfg.Log2Points; i++ {
		if err := ctx.Err(); err != nil {
			return Cell{}, err
		}
		for ; n < 1<<i-1; n++ {
			if err := g.NextAt(p); err != nil {
				return Cell{}, err
			}
			if err := acc.Add(p); err != nil {
				return Cell{}, err
			}
		}
		d, err := acc.Discrepancy()
		if err != nil {
			return Cell{}, err
		}
		cell.Trace = append(cell.Trace, TracePoint{Points: n, Discrepancy: d})
	}

	last := cell.Trace[len(cell.Trace)-1]
	cell.Points = last.Points
	cell.Discrepancy = last.Discrepancy
	cell.TrueRandom = stats.TrueRandomDiscrepancy(dim, n)
	cell.Elapsed = time.Since(start)
	return cell, nil
}

// Find returns the cell of a generator name and dimension.
func (r *Report) Find(generator string, dim int) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Generator == generator && c.Dimension == dim {
			return c, true
		}
	}
	return Cell{}, false
}

// Best returns, per dimension, the generator with the lowest discrepancy.
func (r *Report) Best() map[int]string {
	out := make(map[int]string)
	best := make(map[int]float64)
	for _, c := range r.Cells {
		if v, ok := best[c.Dimension]; !ok || c.Discrepancy < v {
			best[c.Dimension] = c.Discrepancy
			out[c.Dimension] = c.Generator
		}
	}
	return out
}

// Dimensions returns the distinct dimensions in ascending order.
func (r *Report) Dimensions() []int {
	seen := make(map[int]struct{})
	var dims []int
	for _, c := range r.Cells {
		if _, ok := seen[c.Dimension]; !ok {
			seen[c.Dimension] = struct{}{}
			dims = append(dims, c.Dimension)
		}
	}
	sort.Ints(dims)
	return dims
}

package qmc

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see the
// metric package for a Prometheus implementation.
type MetricsCollector interface {
	// RecordGenerator is called after each generator construction.
	// duration covers direction-number and base setup, err is nil if
	// successful.
	RecordGenerator(kind string, dim int, duration time.Duration, err error)

	// RecordDraw is called after each draw of an instrumented generator.
	RecordDraw(kind string, err error)

	// RecordDiscrepancy is called after each evaluated report cell.
	RecordDiscrepancy(kind string, dim, points int, value float64, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGenerator(string, int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordDraw(string, error)                                   {}
func (NoopMetricsCollector) RecordDiscrepancy(string, int, int, float64, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GeneratorCount      atomic.Int64
	GeneratorErrors     atomic.Int64
	GeneratorTotalNanos atomic.Int64
	DrawCount           atomic.Int64
	DrawErrors          atomic.Int64
	ReportCells         atomic.Int64
	ReportPoints        atomic.Int64
	ReportTotalNanos    atomic.Int64
}

// RecordGenerator implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerator(_ string, _ int, duration time.Duration, err error) {
	b.GeneratorCount.Add(1)
	b.GeneratorTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GeneratorErrors.Add(1)
	}
}

// RecordDraw implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDraw(_ string, err error) {
	b.DrawCount.Add(1)
	if err != nil {
		b.DrawErrors.Add(1)
	}
}

// RecordDiscrepancy implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDiscrepancy(_ string, _, points int, _ float64, duration time.Duration) {
	b.ReportCells.Add(1)
	b.ReportPoints.Add(int64(points))
	b.ReportTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GeneratorCount:    b.GeneratorCount.Load(),
		GeneratorErrors:   b.GeneratorErrors.Load(),
		GeneratorAvgNanos: avg(b.GeneratorTotalNanos.Load(), b.GeneratorCount.Load()),
		DrawCount:         b.DrawCount.Load(),
		DrawErrors:        b.DrawErrors.Load(),
		ReportCells:       b.ReportCells.Load(),
		ReportPoints:      b.ReportPoints.Load(),
		ReportAvgNanos:    avg(b.ReportTotalNanos.Load(), b.ReportCells.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GeneratorCount    int64
	GeneratorErrors   int64
	GeneratorAvgNanos int64
	DrawCount         int64
	DrawErrors        int64
	ReportCells       int64
	ReportPoints      int64
	ReportAvgNanos    int64
}

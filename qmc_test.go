package qmc

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/hupe1980/qmc/polynomial"
	"github.com/hupe1980/qmc/sequence"
	"github.com/hupe1980/qmc/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("AllKinds", func(t *testing.T) {
		for _, kind := range Kinds() {
			g, err := New(kind, 4, WithSeed(1))
			require.NoError(t, err, kind.String())
			assert.Equal(t, 4, g.Dimension())

			s, err := g.Next()
			require.NoError(t, err)
			assert.Len(t, s.Value, 4)
			assert.Equal(t, 1.0, s.Weight)
		}
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := New(sequence.Kind(42), 2)
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("InvalidDimension", func(t *testing.T) {
		for _, kind := range Kinds() {
			_, err := New(kind, 0)
			var dimErr *ErrInvalidDimension
			require.ErrorAs(t, err, &dimErr, kind.String())
			assert.Equal(t, 0, dimErr.Dimension)
			assert.Zero(t, dimErr.Max)

			var cause *sequence.ErrInvalidDimension
			assert.ErrorAs(t, err, &cause)
		}
	})

	t.Run("DimensionTooLarge", func(t *testing.T) {
		for _, kind := range []sequence.Kind{sequence.KindSobol, sequence.KindHalton} {
			_, err := New(kind, polynomial.DefaultMaxDimension+1)
			var dimErr *ErrInvalidDimension
			require.ErrorAs(t, err, &dimErr, kind.String())
			assert.Equal(t, polynomial.DefaultMaxDimension, dimErr.Max)
			assert.Contains(t, err.Error(), "maximum 21200")

			var cause *sequence.ErrDimensionTooLarge
			require.ErrorAs(t, err, &cause)
			assert.Equal(t, kind, cause.Kind)
		}

		g, err := New(sequence.KindUniform, polynomial.DefaultMaxDimension+1)
		require.NoError(t, err)
		assert.Equal(t, polynomial.DefaultMaxDimension+1, g.Dimension())
	})
}

func TestNewLogsConstruction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(sequence.KindHalton, 3, WithLogger(logger), WithSeed(5))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"msg":"generator constructed"`)
	assert.Contains(t, out, `"kind":"halton"`)
	assert.Contains(t, out, `"dimension":3`)
	assert.Contains(t, out, `"seed":5`)

	buf.Reset()
	_, err = New(sequence.KindSobol, -1, WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"generator construction failed"`)
	assert.NotContains(t, buf.String(), `"seed"`)
}

func TestNilLoggerDisablesLogging(t *testing.T) {
	g, err := New(sequence.KindSobol, 2, WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, g.Dimension())
}

func TestInstrumentedGenerator(t *testing.T) {
	m := &BasicMetricsCollector{}
	g, err := New(sequence.KindSobol, 3, WithMetricsCollector(m))
	require.NoError(t, err)

	p := make([]float64, 3)
	for range 10 {
		require.NoError(t, g.NextAt(p))
	}
	_, err = g.Next()
	require.NoError(t, err)

	err = g.NextAt(make([]float64, 2))
	var mismatch *ErrDimensionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Expected)
	assert.Equal(t, 2, mismatch.Actual)

	snap := m.GetStats()
	assert.Equal(t, int64(1), snap.GeneratorCount)
	assert.Zero(t, snap.GeneratorErrors)
	assert.Equal(t, int64(12), snap.DrawCount)
	assert.Equal(t, int64(1), snap.DrawErrors)

	inner, ok := g.(interface{ Unwrap() sequence.Generator })
	require.True(t, ok)
	assert.Equal(t, 3, inner.Unwrap().Dimension())

	_, err = New(sequence.KindHalton, 0, WithMetricsCollector(m))
	require.Error(t, err)
	assert.Equal(t, int64(1), m.GetStats().GeneratorErrors)
}

func TestNoopMetricsCollector(t *testing.T) {
	g, err := New(sequence.KindUniform, 2, WithMetricsCollector(NoopMetricsCollector{}))
	require.NoError(t, err)
	_, err = g.Next()
	require.NoError(t, err)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, translateError(plain))

	err := translateError(&stats.ErrDimensionMismatch{Expected: 2, Actual: 5})
	var mismatch *ErrDimensionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 5, mismatch.Actual)
	assert.Equal(t, "dimension mismatch: expected 2, got 5", err.Error())

	err = translateError(&polynomial.ErrCountMismatch{Degree: 4, Got: 1, Want: 2})
	assert.ErrorIs(t, err, ErrInvalidTable)
	var cm *polynomial.ErrCountMismatch
	assert.ErrorAs(t, err, &cm)

	err = translateError(polynomial.ErrDegreeOutOfRange)
	assert.ErrorIs(t, err, ErrInvalidTable)

	assert.ErrorIs(t, translateError(sequence.ErrSequenceExhausted), ErrSequenceExhausted)
}

func TestBasicMetricsAverages(t *testing.T) {
	m := &BasicMetricsCollector{}
	assert.Zero(t, m.GetStats().GeneratorAvgNanos)

	m.RecordGenerator("sobol", 2, 100, nil)
	m.RecordGenerator("sobol", 2, 300, errors.New("x"))
	m.RecordDiscrepancy("sobol", 2, 1023, 1e-3, 50)

	s := m.GetStats()
	assert.Equal(t, int64(200), s.GeneratorAvgNanos)
	assert.Equal(t, int64(1), s.GeneratorErrors)
	assert.Equal(t, int64(1), s.ReportCells)
	assert.Equal(t, int64(1023), s.ReportPoints)
	assert.Equal(t, int64(50), s.ReportAvgNanos)
}

func TestDefaultSeed(t *testing.T) {
	assert.Equal(t, uint64(0), DefaultSeed(sequence.KindSobol))
	assert.Equal(t, uint64(0), DefaultSeed(sequence.KindHalton))
	assert.Equal(t, uint64(5489), DefaultSeed(sequence.KindUniform))
}

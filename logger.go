package qmc

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/qmc/sequence"
)

// Logger wraps slog.Logger with qmc-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithKind adds a generator kind field to the logger.
func (l *Logger) WithKind(kind sequence.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogConstruct logs a generator construction.
func (l *Logger) LogConstruct(ctx context.Context, kind sequence.Kind, dim int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generator construction failed",
			"kind", kind.String(),
			"dimension", dim,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "generator constructed",
			"kind", kind.String(),
			"dimension", dim,
			"elapsed", elapsed,
		)
	}
}

// LogReport logs one evaluated cell of a discrepancy report.
func (l *Logger) LogReport(ctx context.Context, kind string, dim, points int, discrepancy float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "discrepancy cell failed",
			"kind", kind,
			"dimension", dim,
			"points", points,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "discrepancy cell completed",
			"kind", kind,
			"dimension", dim,
			"points", points,
			"discrepancy", discrepancy,
		)
	}
}

package qmc

import (
	"errors"
	"fmt"

	"github.com/hupe1980/qmc/polynomial"
	"github.com/hupe1980/qmc/sequence"
	"github.com/hupe1980/qmc/stats"
)

var (
	// ErrUnknownKind is returned for a generator kind New does not know.
	ErrUnknownKind = errors.New("unknown generator kind")

	// ErrSequenceExhausted is returned once a generator has no more points.
	ErrSequenceExhausted = sequence.ErrSequenceExhausted

	// ErrInvalidTable is returned when the polynomial table fails its self-check.
	ErrInvalidTable = errors.New("invalid polynomial table")
)

// ErrDimensionMismatch indicates a point/buffer dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an unusable configured dimension, either
// non-positive or beyond what the generator supports.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	Max       int // zero when the dimension was not positive
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("invalid dimension: %d (maximum %d)", e.Dimension, e.Max)
	}
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var tl *sequence.ErrDimensionTooLarge
	if errors.As(err, &tl) {
		return &ErrInvalidDimension{Dimension: tl.Dimension, Max: tl.Max, cause: err}
	}
	var id *sequence.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}

	var dm *sequence.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var sdm *stats.ErrDimensionMismatch
	if errors.As(err, &sdm) {
		return &ErrDimensionMismatch{Expected: sdm.Expected, Actual: sdm.Actual, cause: err}
	}

	var cm *polynomial.ErrCountMismatch
	if errors.As(err, &cm) || errors.Is(err, polynomial.ErrDegreeOutOfRange) {
		return fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	return err
}

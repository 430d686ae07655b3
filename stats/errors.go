package stats

import (
	"errors"
	"fmt"
)

// ErrInvalidWeight is returned for weights that are not positive and finite.
var ErrInvalidWeight = errors.New("weight must be positive and finite")

// ErrCovarianceDisabled is returned by covariance queries on an accumulator
// built WithoutCovariance.
var ErrCovarianceDisabled = errors.New("covariance tracking disabled")

// ErrDimensionMismatch is a named error type for a point whose length does not
// match the accumulator dimension.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInsufficientSamples is returned by a query that needs more samples than
// have been added.
type ErrInsufficientSamples struct {
	Statistic string
	Required  int
	Got       int
}

// Error returns the error message for insufficient samples.
func (e *ErrInsufficientSamples) Error() string {
	return fmt.Sprintf("%s requires at least %d samples, got %d", e.Statistic, e.Required, e.Got)
}

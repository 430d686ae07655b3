package sequence

import (
	"errors"
	"fmt"
)

// ErrSequenceExhausted is returned by a generator after it has emitted every
// point its word size can represent.
var ErrSequenceExhausted = errors.New("sequence exhausted")

// ErrInvalidDimension is a named error type for a non-positive dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrDimensionTooLarge is returned at construction when a generator cannot
// support the requested dimension.
type ErrDimensionTooLarge struct {
	Kind      Kind
	Dimension int
	Max       int
}

// Error returns the error message for an unsupported dimension.
func (e *ErrDimensionTooLarge) Error() string {
	return fmt.Sprintf("%s: dimension %d exceeds maximum supported dimension %d", e.Kind, e.Dimension, e.Max)
}

// ErrDimensionMismatch is a named error type for a destination buffer whose
// length does not match the generator dimension.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Kind identifies a generator construction.
type Kind int

// Constants representing the generator constructions.
const (
	KindSobol Kind = iota
	KindHalton
	KindUniform
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindSobol:
		return "sobol"
	case KindHalton:
		return "halton"
	case KindUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// ParseKind parses the string form produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "sobol":
		return KindSobol, nil
	case "halton":
		return KindHalton, nil
	case "uniform", "mersenne":
		return KindUniform, nil
	default:
		return 0, fmt.Errorf("unknown generator kind %q", s)
	}
}

// Sample is one draw of a generator.
type Sample struct {
	// Value holds one coordinate per dimension, each in [0, 1).
	Value []float64

	// Weight is the sample weight. All generators in this module are
	// equal-weight constructions and emit 1.0.
	Weight float64
}

// Generator produces the points of a d-dimensional sequence in the unit cube.
//
// Implementations keep a single cursor and mutate it on every draw, so they are
// not safe for concurrent use.
type Generator interface {
	// Dimension returns the number of coordinates of every emitted point.
	Dimension() int

	// Next advances the cursor and returns a freshly allocated sample.
	Next() (Sample, error)

	// NextAt advances the cursor and writes the point into dst, which must have
	// exactly Dimension() elements.
	NextAt(dst []float64) error
}

// ValidateDimension checks dim against (0, limit]. A limit of zero disables the
// upper bound.
func ValidateDimension(kind Kind, dim, limit int) error {
	if dim <= 0 {
		return &ErrInvalidDimension{Dimension: dim}
	}
	if limit > 0 && dim > limit {
		return &ErrDimensionTooLarge{Kind: kind, Dimension: dim, Max: limit}
	}
	return nil
}

// CheckBuffer validates the destination buffer of NextAt.
func CheckBuffer(dst []float64, dim int) error {
	if len(dst) != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: len(dst)}
	}
	return nil
}

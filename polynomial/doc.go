// Package polynomial provides the table of primitive polynomials modulo two
// that seeds Sobol direction numbers.
//
// # Encoding
//
// A polynomial of degree n is stored without its leading x^n term and without
// its constant term, both of which are always set. The remaining n-1
// coefficients form the integer, most significant bit first:
//
//	x^3 + x + 1        -> 0b01 = 1
//	x^3 + x^2 + 1      -> 0b10 = 2
//	x^5 + x^4 + x^2 + x + 1 -> 0b1011 = 11
//
// Within a degree, polynomials are kept in ascending order of their encoding.
//
// # Lifecycle
//
// The table is computed, not embedded: each degree is enumerated once and the
// primitive members are kept in a roaring bitmap. Default returns the shared
// table of degree DefaultMaxDegree, which is built and checked against
// ReferenceCounts on first use and never mutated afterwards:
//
//	table, err := polynomial.Default()
//	if err != nil {
//	    return err // configuration error: table is inconsistent
//	}
//	p := table.At(5, 0) // first primitive polynomial of degree 5
package polynomial

// Package sequence defines the capability shared by all point generators.
//
// A Generator emits points of a fixed dimensionality in the half-open unit cube
// [0, 1)^d. Concrete constructions live in sub-packages:
//
//   - sobol: Gray-code Sobol sequence seeded from primitive polynomials mod 2
//   - halton: radical-inverse sequence with one prime base per dimension
//   - uniform: MT19937 pseudo-random baseline used for comparisons
//
// All generators are deterministic given their construction parameters and
// own exactly one cursor.
package sequence

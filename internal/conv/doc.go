// Package conv provides checked integer conversions for values that cross the
// point-set file boundary (header counts and dimensions).
//
// Conversions that are bounded by construction, such as loop indices or
// dimensions already validated against a generator limit, use plain casts.
package conv

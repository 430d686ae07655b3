// Package qmc provides deterministic low-discrepancy sequences for
// quasi-Monte-Carlo integration.
//
// qmc implements Sobol and Halton point sets over the d-dimensional unit cube,
// a Mersenne Twister baseline for comparison, and streaming statistics that
// measure how evenly a point set fills the cube:
//
//   - Sobol: Gray-code stepping over 32-bit direction numbers seeded from a
//     computed table of primitive polynomials modulo two
//   - Halton: radical inverses in the first d prime bases, with optional random
//     start and random shift
//   - Uniform: MT19937 pseudo-random points
//   - Statistics: weighted moments, co-moments and the L2-star discrepancy
//
// All generators support up to 21200 dimensions (the uniform baseline has no
// limit) and are deterministic given their dimension, seed and variant flags.
//
// # Quick Start
//
//	gen, err := qmc.New(sequence.KindSobol, 5, qmc.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	acc, _ := stats.NewDiscrepancy(5)
//	for range 1023 {
//	    s, err := gen.Next()
//	    if err != nil {
//	        return err
//	    }
//	    _ = acc.AddSample(s)
//	}
//	d, _ := acc.Discrepancy()
//
// # Fluent Builders
//
//	gen, err := qmc.Halton(10).RandomShift().Seed(7).Build()
//
// # Error Handling
//
// Invalid dimensions fail at construction, never on a draw:
//
//	_, err := qmc.New(sequence.KindSobol, 30000)
//	var dimErr *qmc.ErrInvalidDimension
//	if errors.As(err, &dimErr) {
//	    fmt.Println(dimErr.Max) // 21200
//	}
//
// Generators and accumulators are not safe for concurrent use. Build one per
// goroutine; the report package does exactly that for comparison grids.
package qmc

// Package stats accumulates streaming statistics over sequence points and
// estimates their L2-star discrepancy.
//
// Sequence keeps per-dimension moments, co-moments and extrema in O(d^2)
// memory independent of the sample count. Discrepancy additionally retains
// every point, so each Add costs O(N*d) and the estimator is meant for the
// moderate sample counts used to characterize generators.
//
//	acc, _ := stats.NewDiscrepancy(2)
//	for range 1023 {
//	    s, _ := gen.Next()
//	    _ = acc.AddSample(s)
//	}
//	d, _ := acc.Discrepancy()
//
// Accumulators are not safe for concurrent use.
package stats

// Package testutil provides testing utilities for qmc.
//
// This package is intended for use in tests and benchmarks only.
// It provides the literal reference sequences the generators are checked
// against, helpers for drawing point sets, and a seeded RNG for weights and
// synthetic data.
//
// # Reference Sequences
//
//	testutil.VanDerCorputGray    // 1-D Sobol, draws 1..31
//	testutil.VanDerCorputNatural // 1-D Halton, draws 1..31
//	testutil.VanDerCorputBase3   // base-3 Halton, draws 1..26
//
// # Drawing Points
//
//	pts, err := testutil.Draw(gen, 1023)
package testutil

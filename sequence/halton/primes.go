package halton

import (
	"math"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/qmc/polynomial"
)

var (
	primesOnce sync.Once
	primeTable []uint64
)

// Primes returns the first n primes. The first DefaultMaxDimension primes are
// sieved once and shared; larger requests sieve afresh.
func Primes(n int) []uint64 {
	if n <= 0 {
		return nil
	}
	if n > polynomial.DefaultMaxDimension {
		return sieve(n)
	}
	primesOnce.Do(func() {
		primeTable = sieve(polynomial.DefaultMaxDimension)
	})
	return primeTable[:n:n]
}

// sieve runs Eratosthenes up to an upper bound on the n-th prime.
func sieve(n int) []uint64 {
	limit := uint(nthPrimeBound(n))
	composite := bitset.New(limit + 1)
	composite.Set(0).Set(1)

	out := make([]uint64, 0, n)
	for p, ok := composite.NextClear(2); ok && p <= limit && len(out) < n; p, ok = composite.NextClear(p + 1) {
		out = append(out, uint64(p))
		for q := p * p; q <= limit; q += p {
			composite.Set(q)
		}
	}
	return out
}

// nthPrimeBound is Rosser's bound p_n < n(ln n + ln ln n), valid for n >= 6.
func nthPrimeBound(n int) int {
	if n < 6 {
		return 13
	}
	f := float64(n)
	return int(f*(math.Log(f)+math.Log(math.Log(f)))) + 1
}

package polynomial

import "math/bits"

// Polynomials over GF(2) are held in a uint64 with bit i as the coefficient
// of x^i. Every routine here assumes degrees of at most MaxDegree, so products
// before reduction never leave the word.

// mulMod returns a*b mod p, where p has degree n and a, b are already reduced.
func mulMod(a, b, p uint64, n uint) uint64 {
	var r uint64
	top := uint64(1) << n
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		b >>= 1
		a <<= 1
		if a&top != 0 {
			a ^= p
		}
	}
	return r
}

// powMod returns base^e mod p by square-and-multiply.
func powMod(base, e, p uint64, n uint) uint64 {
	r := uint64(1)
	for e != 0 {
		if e&1 != 0 {
			r = mulMod(r, base, p, n)
		}
		base = mulMod(base, base, p, n)
		e >>= 1
	}
	return r
}

// full expands an encoding of degree n into the complete polynomial by adding
// the leading x^n term and the constant term.
func full(encoding uint64, n uint) uint64 {
	return 1<<n | encoding<<1 | 1
}

// isPrimitive reports whether p (degree n) is primitive: x must have
// multiplicative order exactly 2^n - 1 modulo p. orderFactors are the distinct
// prime factors of 2^n - 1.
func isPrimitive(p uint64, n uint, orderFactors []uint64) bool {
	// An even number of terms means x+1 divides p.
	if n > 1 && bits.OnesCount64(p)%2 == 0 {
		return false
	}

	x := uint64(2)
	if x>>n&1 != 0 {
		x ^= p
	}

	order := uint64(1)<<n - 1
	if powMod(x, order, p, n) != 1 {
		return false
	}
	for _, q := range orderFactors {
		if powMod(x, order/q, p, n) == 1 {
			return false
		}
	}
	return true
}

// primeFactors returns the distinct prime factors of m in ascending order.
func primeFactors(m uint64) []uint64 {
	var factors []uint64
	for d := uint64(2); d*d <= m; d++ {
		if m%d != 0 {
			continue
		}
		factors = append(factors, d)
		for m%d == 0 {
			m /= d
		}
	}
	if m > 1 {
		factors = append(factors, m)
	}
	return factors
}

// totient returns Euler's phi of m.
func totient(m uint64) uint64 {
	phi := m
	for _, q := range primeFactors(m) {
		phi = phi / q * (q - 1)
	}
	return phi
}

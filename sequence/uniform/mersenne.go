package uniform

import "math"

const (
	mtN       = 624
	mtM       = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff

	temperingB = 0x9d2c5680
	temperingC = 0xefc60000

	// arraySeedBase is the init_genrand seed that precedes init_by_array.
	arraySeedBase = 19650218
)

// MersenneTwister is the 32-bit MT19937 generator of Matsumoto and Nishimura.
//
// It is not safe for concurrent use.
type MersenneTwister struct {
	mt  [mtN]uint32
	mti int
}

// NewMersenneTwister returns a generator seeded with seed. Seeds that fit in
// 32 bits use the scalar initialization; larger seeds are split into their low
// and high words and fed through the array initialization.
func NewMersenneTwister(seed uint64) *MersenneTwister {
	m := &MersenneTwister{}
	m.Seed(seed)
	return m
}

// Seed reinitializes the generator state.
func (m *MersenneTwister) Seed(seed uint64) {
	if seed <= math.MaxUint32 {
		m.initGenrand(uint32(seed))
		return
	}
	m.initByArray([]uint32{uint32(seed), uint32(seed >> 32)})
}

func (m *MersenneTwister) initGenrand(s uint32) {
	m.mt[0] = s
	for i := 1; i < mtN; i++ {
		m.mt[i] = 1812433253*(m.mt[i-1]^(m.mt[i-1]>>30)) + uint32(i)
	}
	m.mti = mtN
}

func (m *MersenneTwister) initByArray(key []uint32) {
	m.initGenrand(arraySeedBase)

	i, j := 1, 0
	for k := max(mtN, len(key)); k > 0; k-- {
		m.mt[i] = (m.mt[i] ^ ((m.mt[i-1] ^ (m.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k := mtN - 1; k > 0; k-- {
		m.mt[i] = (m.mt[i] ^ ((m.mt[i-1] ^ (m.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
	}
	m.mt[0] = 0x80000000
}

// twist regenerates the whole state block.
func (m *MersenneTwister) twist() {
	mag01 := [2]uint32{0, matrixA}

	var kk int
	for ; kk < mtN-mtM; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < mtN-1; kk++ {
		y := (m.mt[kk] & upperMask) | (m.mt[kk+1] & lowerMask)
		m.mt[kk] = m.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
	}
	y := (m.mt[mtN-1] & upperMask) | (m.mt[0] & lowerMask)
	m.mt[mtN-1] = m.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
	m.mti = 0
}

// Uint32 returns the next tempered 32-bit output.
func (m *MersenneTwister) Uint32() uint32 {
	if m.mti >= mtN {
		m.twist()
	}

	y := m.mt[m.mti]
	m.mti++

	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18
	return y
}

// Float64 returns a value in the open interval (0, 1), centred on one of 2^32
// equally spaced cells.
func (m *MersenneTwister) Float64() float64 {
	return (float64(m.Uint32()) + 0.5) / (1 << 32)
}

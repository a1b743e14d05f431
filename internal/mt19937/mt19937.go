// Package mt19937 implements the 32-bit Mersenne Twister generator used by
// the historical landscape/annealing tools this module replaces, ported
// from the reference mt19937ar recurrence (init_genrand / genrand_int32 /
// genrand_real3). No library in the surrounding module graph implements
// this particular generator, and the draw sequence it produces is an
// observable part of this module's behaviour, so it is reproduced here
// rather than approximated with a different source.
package mt19937

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Source is a 32-bit Mersenne Twister generator. The zero value is not
// usable; construct with New or NewSeeded.
type Source struct {
	mt  [n]uint32
	mti int
}

// New returns a generator seeded with the default seed used by the
// reference implementation (5489), matching mt19937ar's own fallback.
func New() *Source {
	s := &Source{}
	s.seed(5489)
	return s
}

// NewSeeded returns a generator seeded with seed.
func NewSeeded(seed uint64) *Source {
	s := &Source{}
	s.seed(uint32(seed))
	return s
}

func (s *Source) seed(seed uint32) {
	s.mt[0] = seed
	for i := 1; i < n; i++ {
		s.mt[i] = 1812433253*(s.mt[i-1]^(s.mt[i-1]>>30)) + uint32(i)
	}
	s.mti = n
}

// Seed implements math/rand.Source.
func (s *Source) Seed(seed int64) {
	s.seed(uint32(seed))
}

var mag01 = [2]uint32{0, matrixA}

// nextUint32 returns the next raw 32-bit output, regenerating the state
// array every n calls exactly as the reference implementation does.
func (s *Source) nextUint32() uint32 {
	if s.mti >= n {
		var kk int
		for kk = 0; kk < n-m; kk++ {
			y := (s.mt[kk] & upperMask) | (s.mt[kk+1] & lowerMask)
			s.mt[kk] = s.mt[kk+m] ^ (y >> 1) ^ mag01[y&1]
		}
		for ; kk < n-1; kk++ {
			y := (s.mt[kk] & upperMask) | (s.mt[kk+1] & lowerMask)
			s.mt[kk] = s.mt[kk+(m-n)] ^ (y >> 1) ^ mag01[y&1]
		}
		y := (s.mt[n-1] & upperMask) | (s.mt[0] & lowerMask)
		s.mt[n-1] = s.mt[m-1] ^ (y >> 1) ^ mag01[y&1]
		s.mti = 0
	}

	y := s.mt[s.mti]
	s.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return y
}

// Uint64 implements math/rand.Source64, packing two 32-bit draws into one
// 64-bit word so that *rand.Rand built on this source still gets full
// 64-bit entropy for the calls that need it.
func (s *Source) Uint64() uint64 {
	hi := uint64(s.nextUint32())
	lo := uint64(s.nextUint32())
	return hi<<32 | lo
}

// Int63 implements math/rand.Source.
func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// Float64Open63 returns the reference generator's genrand_real3: a value
// drawn uniformly from the open interval (0, 1), so that callers computing
// -ln(u) never see u == 0.
func (s *Source) Float64Open63() float64 {
	return (float64(s.nextUint32()) + 0.5) * (1.0 / 4294967296.0)
}

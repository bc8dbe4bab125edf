package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstract

type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) uint64() (uint64, bool) {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(buf[:]), true
}

func (c cryptoRNG) Float64() float64 {
	u, ok := c.uint64()
	if !ok {
		// backto math / rand/ v2
		return rand.Float64()
	}
	// 53 bits => [0, 1)
	return float64(u>>11) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	u, ok := c.uint64()
	if !ok {
		return rand.IntN(n)
	}
	// rejection sampling keeps the result unbiased
	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0)%bound+1)%bound
	for u > limit {
		if u, ok = c.uint64(); !ok {
			return rand.IntN(n)
		}
	}
	return int(u % bound)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. Monte Carlo)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func (s *seededRNG) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.IntN(n)
}

package gacha

import (
	cryptoRand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

// RandomSource abstract

type RandomSource interface {
	IntN(n int) int       // [0, n)
	Int64N(n int64) int64 // [0, n)
}

// crypto random : default generation method, stateless and safe for concurrent use
type cryptoRNG struct{}

func (c cryptoRNG) IntN(n int) int {
	return int(c.Int64N(int64(n)))
}

func (cryptoRNG) Int64N(n int64) int64 {
	if n <= 0 {
		panic("gacha: invalid argument to Int64N")
	}
	v, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(n))
	if err != nil {
		return rand.Int64N(n)
	}
	return v.Int64()
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. tests, Monte Carlo). Not safe for concurrent use.
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }

func (s *seededRNG) Int64N(n int64) int64 { return s.r.Int64N(n) }

package random

import (
	"crypto/rand"
	"math/big"
)

// Source yields uniformly distributed integers in [0, n). Word, imposter,
// and host selection all go through a Source so tests can substitute a
// deterministic one.
type Source interface {
	Intn(n int) int
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

// Pick returns a uniformly random element of a non-empty slice.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

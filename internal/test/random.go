package test

import (
	"math/rand"
	"sync"
	"time"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomArtworkID returns a pseudo-random artwork id in the catalog's
// "art-xxxxxxxx" shape, unique enough for membership tests.
func RandomArtworkID() string {
	buf := make([]byte, 12)
	copy(buf, "art-")
	rngMu.Lock()
	for i := 4; i < len(buf); i++ {
		buf[i] = idAlphabet[rng.Intn(len(idAlphabet))]
	}
	rngMu.Unlock()
	return string(buf)
}

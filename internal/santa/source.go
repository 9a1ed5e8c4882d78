package santa

import (
	"math/rand/v2"
	"sync"
)

var defaultEngine = New(Locked(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))))

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// Locked serializes draws from src so one Source can back an Engine shared
// between goroutines. *rand.Rand needs this; a crypto-backed source does not.
func Locked(src Source) Source {
	return &lockedSource{src: src}
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

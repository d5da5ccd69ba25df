package shop

import (
	mathrand "math/rand"
	"sync"
	"time"
)

// Source is the randomness every resolver draws from.
// Intn returns a value in [0, n) for n > 0, like math/rand.
type Source interface {
	Intn(n int) int
}

type lockedSource struct {
	mu   sync.Mutex
	rand *mathrand.Rand
}

func NewSource(seed int64) Source {
	return &lockedSource{rand: mathrand.New(mathrand.NewSource(seed))}
}

func newTimeSource() Source {
	return NewSource(time.Now().UnixNano())
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Intn(n)
}

// uniformInt draws from the closed range [lo, hi].
func uniformInt(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// pickWeighted returns the index chosen from non-negative weights, or -1 when
// every weight is zero.
func pickWeighted(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	roll := src.Intn(total)
	current := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		current += w
		if roll < current {
			return i
		}
	}
	return len(weights) - 1
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Package random provides the injectable uniform source used by the mock
// generators.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform floats in [0, 1)
type Source interface {
	Float64() float64
}

// Intn returns floor(src.Float64() * n)
func Intn(src Source, n int) int {
	v := int(src.Float64() * float64(n))
	if v >= n { // guards sources that return exactly 1
		v = n - 1
	}
	return v
}

// Between returns min + src.Float64()*span
func Between(src Source, min, span float64) float64 {
	return min + src.Float64()*span
}

// Locked is a Source safe for concurrent use
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Locked source. A zero seed seeds from the wall clock.
func New(seed int64) *Locked {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Locked{rng: rand.New(rand.NewSource(seed))}
}

// Float64 implements Source
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// Sequence replays fixed values in order, wrapping around at the end.
// Useful for deterministic tests.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence returns a Sequence over values
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 implements Source
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws returns how many values have been consumed
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntn(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		n        int
		expected int
	}{
		{name: "zero", value: 0, n: 999, expected: 0},
		{name: "middle", value: 0.5, n: 4, expected: 2},
		{name: "just below one", value: 0.9999999, n: 999, expected: 998},
		{name: "exactly one", value: 1, n: 4, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Intn(NewSequence(tt.value), tt.n))
		})
	}
}

func TestBetween(t *testing.T) {
	assert.InDelta(t, 50.0, Between(NewSequence(0.5), 20, 60), 1e-9)
	assert.InDelta(t, 20.0, Between(NewSequence(0), 20, 60), 1e-9)
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.2, s.Float64())
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 3, s.Draws())

	assert.Equal(t, 0.0, NewSequence().Float64())
}

func TestLockedRange(t *testing.T) {
	src := New(42)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := src.Float64()
				assert.GreaterOrEqual(t, v, 0.0)
				assert.Less(t, v, 1.0)
			}
		}()
	}
	wg.Wait()
}

func TestLockedSeedIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

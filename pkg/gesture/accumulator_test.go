package gesture

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorFirstSampleIsReference(t *testing.T) {
	a := NewAccumulator(10, 0, 100)

	assert.Equal(t, 10.0, a.Accumulate(50))
	assert.True(t, a.Primed())
	assert.Equal(t, 15.0, a.Accumulate(55))
	assert.Equal(t, 10.0, a.Accumulate(50))
	assert.Equal(t, 5.0, a.Accumulate(45))
}

func TestAccumulatorResetKeepsValue(t *testing.T) {
	a := NewAccumulator(10, 0, 100)
	a.Accumulate(20)
	before := a.Accumulate(30)

	a.Reset()
	assert.False(t, a.Primed())
	assert.Equal(t, before, a.Accumulate(5))
	assert.Equal(t, before+1, a.Accumulate(6))
}

func TestAccumulatorClamps(t *testing.T) {
	a := NewAccumulator(0, -10, 10)
	a.Accumulate(1)

	assert.Equal(t, 10.0, a.Accumulate(1000))
	assert.Equal(t, -10.0, a.Accumulate(-1000))
}

func TestAccumulatorZeroSampleIsTreatedAsFirst(t *testing.T) {
	a := NewAccumulator(0, -100, 100)
	a.Accumulate(10)

	// 10 -> 0 is a real -10 delta, but 0 also resets the reference
	assert.Equal(t, -10.0, a.Accumulate(0))
	assert.False(t, a.Primed())
	assert.Equal(t, -10.0, a.Accumulate(20), "sample after a zero contributes no delta")
}

func TestAccumulatorStaysInBounds(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAccumulator(cfg.AccumulatorInitial, cfg.AccumulatorMin, cfg.AccumulatorMax)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 10000; i++ {
		if rng.Intn(20) == 0 {
			a.Reset()
		}
		v := a.Accumulate((rng.Float64() - 0.5) * 1e6)
		if v < cfg.AccumulatorMin || v > cfg.AccumulatorMax {
			t.Fatalf("Accumulate left bounds: %v not in [%v, %v]", v, cfg.AccumulatorMin, cfg.AccumulatorMax)
		}
	}
}

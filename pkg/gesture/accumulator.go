package gesture

// Accumulator integrates successive samples into a value clamped to
// [min, max]. Only differences between samples move the value, so the
// first sample after construction or Reset contributes nothing.
//
// A reference of 0 means "no sample yet": a genuine sample of exactly 0
// is therefore treated as the first one again and yields no delta.
type Accumulator struct {
	reference float64
	value     float64
	min, max  float64
}

// NewAccumulator creates an accumulator starting at initial
func NewAccumulator(initial, min, max float64) *Accumulator {
	return &Accumulator{value: initial, min: min, max: max}
}

// Accumulate feeds one sample and returns the clamped value
func (a *Accumulator) Accumulate(sample float64) float64 {
	delta := 0.0
	if a.reference != 0 {
		delta = sample - a.reference
	}
	a.reference = sample

	a.value += delta
	if a.value < a.min {
		a.value = a.min
	}
	if a.value > a.max {
		a.value = a.max
	}
	return a.value
}

// Reset forgets the reference sample, keeping the accumulated value
func (a *Accumulator) Reset() {
	a.reference = 0
}

// Value returns the accumulated value
func (a *Accumulator) Value() float64 {
	return a.value
}

// Primed reports whether a reference sample is held
func (a *Accumulator) Primed() bool {
	return a.reference != 0
}

// Bounds returns the clamp range
func (a *Accumulator) Bounds() (min, max float64) {
	return a.min, a.max
}

package gesture

import "time"

// Config holds the tunables of a Controller
type Config struct {
	// TapThreshold is the drag distance in logical pixels below which a
	// release counts as a tap.
	TapThreshold float64
	// LogicalDPI converts logical positions to device pixels (DPI/96).
	LogicalDPI float64
	// ZoomScale maps the accumulated pinch distance to a zoom value.
	ZoomScale float64
	// WheelScale maps a raw wheel delta to a zoom increment.
	WheelScale float64

	AccumulatorInitial float64
	AccumulatorMin     float64
	AccumulatorMax     float64

	// DoubleTapWindow enables double-tap synthesis from two taps when > 0.
	DoubleTapWindow time.Duration
}

// DefaultConfig returns a configuration whose pinch zoom spans eye
// distances -100 to -5, starting at -30.
func DefaultConfig() Config {
	const zoomScale = 5.0 / 1000.0
	return Config{
		TapThreshold:       5,
		LogicalDPI:         96,
		ZoomScale:          zoomScale,
		WheelScale:         0.01,
		AccumulatorInitial: -30 / zoomScale,
		AccumulatorMin:     -100 / zoomScale,
		AccumulatorMax:     -5 / zoomScale,
	}
}

// ToDevice converts a logical position to device pixels
func (c Config) ToDevice(p Point) Point {
	scale := c.LogicalDPI / 96.0
	return Point{X: p.X * scale, Y: p.Y * scale}
}

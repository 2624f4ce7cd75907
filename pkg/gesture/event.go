package gesture

import (
	"fmt"
	"math"
	"time"
)

// Point is a 2D position in logical or device pixels
type Point struct {
	X, Y float64
}

// DistanceTo returns the euclidean distance between two points
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// EventKind identifies a raw input event
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
	Tap
)

var eventNames = map[EventKind]string{
	PointerDown: "down",
	PointerMove: "move",
	PointerUp:   "up",
	Wheel:       "wheel",
	Tap:         "tap",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind is the inverse of EventKind.String
func ParseEventKind(s string) (EventKind, error) {
	for k, name := range eventNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// Event is one raw input sample. Position is in logical pixels.
type Event struct {
	Kind      EventKind
	PointerID uint32
	Position  Point
	// WheelDelta is the raw wheel delta for Wheel events.
	WheelDelta float64
	// TapCount is the number of taps for Tap events.
	TapCount int
	// Time is optional; it enables double-tap synthesis.
	Time time.Time
}

// EffectKind identifies a request the controller makes of its host
type EffectKind int

const (
	// Rotate carries a logical-pixel delta in DX, DY.
	Rotate EffectKind = iota
	// AddZoom carries an increment in Zoom.
	AddZoom
	// SetZoom carries an absolute zoom in Zoom.
	SetZoom
	// CheckPreSelection, CheckSelection and CheckDisplaySelection carry a
	// device-pixel Position.
	CheckPreSelection
	CheckSelection
	CheckDisplaySelection
)

func (k EffectKind) String() string {
	switch k {
	case Rotate:
		return "rotate"
	case AddZoom:
		return "add-zoom"
	case SetZoom:
		return "set-zoom"
	case CheckPreSelection:
		return "check-preselection"
	case CheckSelection:
		return "check-selection"
	case CheckDisplaySelection:
		return "check-display-selection"
	default:
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
}

// Effect is a request produced by the controller
type Effect struct {
	Kind     EffectKind
	DX, DY   float64
	Zoom     float64
	Position Point
}

func (e Effect) String() string {
	switch e.Kind {
	case Rotate:
		return fmt.Sprintf("%s(%.3f, %.3f)", e.Kind, e.DX, e.DY)
	case AddZoom, SetZoom:
		return fmt.Sprintf("%s(%.3f)", e.Kind, e.Zoom)
	default:
		return fmt.Sprintf("%s(%.1f, %.1f)", e.Kind, e.Position.X, e.Position.Y)
	}
}

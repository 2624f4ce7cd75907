package gesture

import (
	"log/slog"
	"time"
)

// State is the pointer state of a Controller
type State int

const (
	Idle State = iota
	BeginDrag
	Drag
	Scale
)

func (s State) String() string {
	switch s {
	case BeginDrag:
		return "begin-drag"
	case Drag:
		return "drag"
	case Scale:
		return "scale"
	default:
		return "idle"
	}
}

type tap struct {
	at       time.Time
	position Point
}

// Controller turns raw pointer events into rotate, zoom and picking requests.
// It is not safe for concurrent use.
type Controller struct {
	cfg    Config
	logger *slog.Logger

	state        State
	pointers     map[uint32]Point
	order        []uint32
	previous     Point
	dragDistance float64
	acc          *Accumulator
	lastTap      *tap
}

// NewController creates a controller in the Idle state. A nil logger uses slog.Default().
func NewController(cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		cfg:      cfg,
		logger:   logger,
		pointers: make(map[uint32]Point, 2),
		acc:      NewAccumulator(cfg.AccumulatorInitial, cfg.AccumulatorMin, cfg.AccumulatorMax),
	}
}

// State returns the current pointer state
func (c *Controller) State() State {
	return c.state
}

// DragDistance returns the distance dragged since the last press in Idle
func (c *Controller) DragDistance() float64 {
	return c.dragDistance
}

// Accumulator returns the pinch accumulator
func (c *Controller) Accumulator() *Accumulator {
	return c.acc
}

// Tracked returns the number of pointers being tracked
func (c *Controller) Tracked() int {
	return len(c.order)
}

// Handle processes one event and returns the requests it produced
func (c *Controller) Handle(ev Event) []Effect {
	before := c.state
	var effects []Effect

	switch ev.Kind {
	case PointerDown:
		c.down(ev)
	case PointerMove:
		effects = c.move(ev)
	case PointerUp:
		effects = c.up(ev)
	case Wheel:
		effects = []Effect{
			{Kind: AddZoom, Zoom: ev.WheelDelta * c.cfg.WheelScale},
			{Kind: CheckPreSelection, Position: c.cfg.ToDevice(ev.Position)},
		}
	case Tap:
		if ev.TapCount > 1 {
			effects = []Effect{{Kind: CheckDisplaySelection, Position: c.cfg.ToDevice(ev.Position)}}
		}
	}

	if c.state != before {
		c.logger.Debug("gesture state changed", "event", ev.Kind, "pointer", ev.PointerID, "from", before, "to", c.state)
	}
	return effects
}

func (c *Controller) down(ev Event) {
	if _, tracked := c.pointers[ev.PointerID]; tracked {
		return
	}

	switch c.state {
	case Idle:
		c.dragDistance = 0
		c.track(ev.PointerID, ev.Position)
		c.state = BeginDrag
	case BeginDrag, Drag:
		if len(c.order) < 2 {
			c.track(ev.PointerID, ev.Position)
			c.state = Scale
		}
	}
}

func (c *Controller) move(ev Event) []Effect {
	if c.state == Idle {
		return []Effect{{Kind: CheckPreSelection, Position: c.cfg.ToDevice(ev.Position)}}
	}
	if _, tracked := c.pointers[ev.PointerID]; !tracked {
		return nil
	}
	c.pointers[ev.PointerID] = ev.Position

	switch c.state {
	case BeginDrag:
		c.previous = ev.Position
		c.state = Drag

	case Drag:
		dx := c.previous.X - ev.Position.X
		dy := c.previous.Y - ev.Position.Y
		c.dragDistance += c.previous.DistanceTo(ev.Position)
		c.previous = ev.Position
		return []Effect{{Kind: Rotate, DX: dx, DY: dy}}

	case Scale:
		if len(c.order) < 2 {
			return nil
		}
		p0 := c.cfg.ToDevice(c.pointers[c.order[0]])
		p1 := c.cfg.ToDevice(c.pointers[c.order[1]])
		value := c.acc.Accumulate(p0.DistanceTo(p1))
		return []Effect{{Kind: SetZoom, Zoom: value * c.cfg.ZoomScale}}
	}
	return nil
}

func (c *Controller) up(ev Event) []Effect {
	if _, tracked := c.pointers[ev.PointerID]; !tracked {
		return nil
	}
	c.untrack(ev.PointerID)

	var effects []Effect
	switch c.state {
	case BeginDrag, Drag:
		if c.dragDistance < c.cfg.TapThreshold {
			pos := c.cfg.ToDevice(ev.Position)
			effects = append(effects, Effect{Kind: CheckSelection, Position: pos})
			if c.doubleTapped(ev) {
				effects = append(effects, Effect{Kind: CheckDisplaySelection, Position: pos})
			}
		}
		c.state = Idle
	case Scale:
		c.state = BeginDrag
		c.acc.Reset()
	}
	return effects
}

// doubleTapped records a tap-like release and reports whether it completes
// a double tap.
func (c *Controller) doubleTapped(ev Event) bool {
	if c.cfg.DoubleTapWindow <= 0 || ev.Time.IsZero() {
		return false
	}
	prev := c.lastTap
	if prev != nil &&
		ev.Time.Sub(prev.at) <= c.cfg.DoubleTapWindow &&
		prev.position.DistanceTo(ev.Position) <= c.cfg.TapThreshold {
		c.lastTap = nil
		return true
	}
	c.lastTap = &tap{at: ev.Time, position: ev.Position}
	return false
}

func (c *Controller) track(id uint32, pos Point) {
	c.pointers[id] = pos
	c.order = append(c.order, id)
}

func (c *Controller) untrack(id uint32) {
	delete(c.pointers, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// PointerDown is shorthand for Handle with a PointerDown event
func (c *Controller) PointerDown(id uint32, pos Point) []Effect {
	return c.Handle(Event{Kind: PointerDown, PointerID: id, Position: pos})
}

// PointerMove is shorthand for Handle with a PointerMove event
func (c *Controller) PointerMove(id uint32, pos Point) []Effect {
	return c.Handle(Event{Kind: PointerMove, PointerID: id, Position: pos})
}

// PointerUp is shorthand for Handle with a PointerUp event
func (c *Controller) PointerUp(id uint32, pos Point) []Effect {
	return c.Handle(Event{Kind: PointerUp, PointerID: id, Position: pos})
}

// Wheel is shorthand for Handle with a Wheel event
func (c *Controller) Wheel(delta float64, pos Point) []Effect {
	return c.Handle(Event{Kind: Wheel, WheelDelta: delta, Position: pos})
}

// Tap is shorthand for Handle with a Tap event
func (c *Controller) Tap(count int, pos Point) []Effect {
	return c.Handle(Event{Kind: Tap, TapCount: count, Position: pos})
}

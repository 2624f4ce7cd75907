// Package trace reads recorded pointer sessions and replays them.
package trace

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gopick/pkg/gesture"
)

// Step is one recorded input event in logical pixels
type Step struct {
	Kind  string        `yaml:"kind"`
	ID    uint32        `yaml:"id,omitempty"`
	X     float64       `yaml:"x"`
	Y     float64       `yaml:"y"`
	Delta float64       `yaml:"delta,omitempty"`
	Count int           `yaml:"count,omitempty"`
	At    time.Duration `yaml:"at,omitempty"`
}

// Trace is a recorded session
type Trace struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"events"`
}

// Handler consumes gesture events
type Handler interface {
	Handle(ev gesture.Event) []gesture.Effect
}

// Result pairs a replayed event with the requests it produced
type Result struct {
	Event   gesture.Event
	Effects []gesture.Effect
}

// Load reads a trace file
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a YAML trace
func Decode(r io.Reader) (*Trace, error) {
	var t Trace
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &t, nil
}

// Events converts the steps into gesture events timed from start
func (t *Trace) Events(start time.Time) ([]gesture.Event, error) {
	events := make([]gesture.Event, 0, len(t.Steps))
	for i, s := range t.Steps {
		kind, err := gesture.ParseEventKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		ev := gesture.Event{
			Kind:       kind,
			PointerID:  s.ID,
			Position:   gesture.Point{X: s.X, Y: s.Y},
			WheelDelta: s.Delta,
			TapCount:   s.Count,
		}
		if !start.IsZero() {
			ev.Time = start.Add(s.At)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Replay feeds every event of t to h in order
func Replay(h Handler, t *Trace, start time.Time) ([]Result, error) {
	events, err := t.Events(start)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(events))
	for i, ev := range events {
		results[i] = Result{Event: ev, Effects: h.Handle(ev)}
	}
	return results, nil
}

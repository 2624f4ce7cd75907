package viewer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/philipparndt/gopick/pkg/gesture"
	"github.com/philipparndt/gopick/pkg/scene"
)

// MetadataHandler is called with the id of an entity whose metadata should be shown
type MetadataHandler func(id string)

// Viewer owns the loaded scene and the camera and applies gesture requests
// to them. All methods are safe for concurrent use; a renderer on another
// goroutine reads state through Snapshot or ReadScene.
type Viewer struct {
	mu         sync.Mutex
	camera     *Camera
	controller *gesture.Controller
	scene      *scene.Scene
	onMetadata MetadataHandler
	logger     *slog.Logger
}

// Snapshot is a consistent copy of the state a renderer needs
type Snapshot struct {
	Zoom        float64
	Yaw, Pitch  float64
	Entities    int
	Selected    string
	Preselected string

	// RotationAngle (degrees) and RotationAxis describe the combined model rotation.
	RotationAngle float64
	RotationAxis  geometry.Vector3
}

// New creates a viewer with no model loaded. A nil logger uses slog.Default().
func New(camera *Camera, cfg gesture.Config, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{
		camera:     camera,
		controller: gesture.NewController(cfg, logger),
		logger:     logger,
	}
}

// OnMetadataDisplay registers the handler for display-metadata requests
func (v *Viewer) OnMetadataDisplay(handler MetadataHandler) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onMetadata = handler
}

// LoadModel builds a scene from data, replacing any loaded model
func (v *Viewer) LoadModel(data []scene.EntityData) error {
	s, err := scene.NewScene(data)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.scene = s
	v.logger.Debug("model loaded", "entities", s.Len())
	return nil
}

// CloseModel drops the loaded model together with its selection
func (v *Viewer) CloseModel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scene = nil
}

// ReadScene calls fn with the loaded scene (nil when none) while holding the lock
func (v *Viewer) ReadScene(fn func(s *scene.Scene)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.scene)
}

// Snapshot returns the current camera and selection state
func (v *Viewer) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	q := v.camera.Orientation()
	snap := Snapshot{
		Zoom:          v.camera.Zoom(),
		Yaw:           v.camera.Yaw,
		Pitch:         v.camera.Pitch,
		RotationAngle: q.Angle(),
		RotationAxis:  q.Axis(),
	}
	if v.scene != nil {
		snap.Entities = v.scene.Len()
		snap.Selected, _ = v.scene.Selected()
		snap.Preselected, _ = v.scene.Preselected()
	}
	return snap
}

// Handle feeds ev to the gesture controller, applies the resulting requests
// and returns them.
func (v *Viewer) Handle(ev gesture.Event) []gesture.Effect {
	v.mu.Lock()
	effects := v.controller.Handle(ev)
	var display []string
	for _, e := range effects {
		if id, ok := v.apply(e); ok {
			display = append(display, id)
		}
	}
	handler := v.onMetadata
	v.mu.Unlock()

	v.notify(handler, display)
	return effects
}

// PointerDown handles a pointer press at a logical position
func (v *Viewer) PointerDown(id uint32, pos gesture.Point) []gesture.Effect {
	return v.Handle(gesture.Event{Kind: gesture.PointerDown, PointerID: id, Position: pos})
}

// PointerMove handles a pointer move at a logical position
func (v *Viewer) PointerMove(id uint32, pos gesture.Point) []gesture.Effect {
	return v.Handle(gesture.Event{Kind: gesture.PointerMove, PointerID: id, Position: pos})
}

// PointerUp handles a pointer release at a logical position
func (v *Viewer) PointerUp(id uint32, pos gesture.Point) []gesture.Effect {
	return v.Handle(gesture.Event{Kind: gesture.PointerUp, PointerID: id, Position: pos})
}

// Wheel handles a mouse wheel delta at a logical position
func (v *Viewer) Wheel(delta float64, pos gesture.Point) []gesture.Effect {
	return v.Handle(gesture.Event{Kind: gesture.Wheel, WheelDelta: delta, Position: pos})
}

// Tap handles a recognised tap with count taps at a logical position
func (v *Viewer) Tap(count int, pos gesture.Point) []gesture.Effect {
	return v.Handle(gesture.Event{Kind: gesture.Tap, TapCount: count, Position: pos})
}

// apply runs one request; it returns an entity id when metadata should be shown.
func (v *Viewer) apply(e gesture.Effect) (string, bool) {
	switch e.Kind {
	case gesture.Rotate:
		v.camera.Rotate(e.DX, e.DY)
	case gesture.AddZoom:
		v.camera.AddZoom(e.Zoom)
	case gesture.SetZoom:
		v.camera.SetZoom(e.Zoom)
	case gesture.CheckPreSelection:
		v.checkPreSelection(e.Position.X, e.Position.Y)
	case gesture.CheckSelection:
		v.checkSelection(e.Position.X, e.Position.Y)
	case gesture.CheckDisplaySelection:
		return v.entityUnderCursor(e.Position.X, e.Position.Y)
	}
	return "", false
}

// Rotate adds dx, dy degrees to the model rotation
func (v *Viewer) Rotate(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.Rotate(dx, dy)
}

// AddZoom moves the eye by dz within the zoom limits
func (v *Viewer) AddZoom(dz float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.AddZoom(dz)
}

// SetZoom places the eye at z
func (v *Viewer) SetZoom(z float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.SetZoom(z)
}

// Resize updates the viewport in device pixels
func (v *Viewer) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.Resize(width, height)
}

// EntityUnderCursor returns the entity hit at device pixel (x, y)
func (v *Viewer) EntityUnderCursor(x, y float64) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.entityUnderCursor(x, y)
}

// PickRay returns the entity hit by a world-space ray
func (v *Viewer) PickRay(origin geometry.Point3, direction geometry.Vector3) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scene == nil {
		return "", false
	}
	return v.scene.ClosestEntity(origin, direction.Normalize())
}

// CheckPreSelection preselects the entity at device pixel (x, y), or clears
// the preselection when there is none. It reports whether state changed.
func (v *Viewer) CheckPreSelection(x, y float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.checkPreSelection(x, y)
}

// CheckSelection selects the entity at device pixel (x, y), or clears the
// selection when there is none. It reports whether state changed.
func (v *Viewer) CheckSelection(x, y float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.checkSelection(x, y)
}

// CheckDisplaySelection calls the metadata handler for the entity at device
// pixel (x, y) and returns its id.
func (v *Viewer) CheckDisplaySelection(x, y float64) (string, bool) {
	v.mu.Lock()
	id, ok := v.entityUnderCursor(x, y)
	handler := v.onMetadata
	v.mu.Unlock()

	if ok {
		v.notify(handler, []string{id})
	}
	return id, ok
}

func (v *Viewer) entityUnderCursor(x, y float64) (string, bool) {
	if v.scene == nil {
		return "", false
	}
	origin, dir, ok := v.camera.Unproject(x, y)
	if !ok {
		return "", false
	}
	return v.scene.ClosestEntity(origin, dir)
}

func (v *Viewer) checkPreSelection(x, y float64) bool {
	if v.scene == nil {
		return false
	}
	id, ok := v.entityUnderCursor(x, y)
	if !ok {
		return v.scene.ClearPreselection()
	}
	changed := v.scene.Preselect(id)
	if changed {
		v.logger.Debug("entity preselected", "id", id)
	}
	return changed
}

func (v *Viewer) checkSelection(x, y float64) bool {
	if v.scene == nil {
		return false
	}
	id, ok := v.entityUnderCursor(x, y)
	if !ok {
		return v.scene.ClearSelection()
	}
	changed := v.scene.Select(id)
	if changed {
		v.logger.Debug("entity selected", "id", id)
	}
	return changed
}

func (v *Viewer) notify(handler MetadataHandler, ids []string) {
	if handler == nil {
		return
	}
	for _, id := range ids {
		handler(id)
	}
}

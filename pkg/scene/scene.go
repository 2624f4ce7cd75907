package scene

import (
	"fmt"
	"math"

	"github.com/philipparndt/gopick/pkg/geometry"
)

// Scene is a set of mesh entities sharing one translation offset.
// Selection and pre-selection are each held as a single entity id, so at
// most one entity can carry either flag.
type Scene struct {
	entities map[string]*MeshEntity
	order    []string
	offset   geometry.Vector3

	selected    string
	preselected string
}

// NewScene builds a scene from entity payloads. The scene offset is the
// negated mean of the payload centres; an empty payload list yields an empty
// scene with a zero offset.
func NewScene(data []EntityData) (*Scene, error) {
	s := &Scene{entities: make(map[string]*MeshEntity, len(data))}

	var sum geometry.Vector3
	for _, d := range data {
		if _, exists := s.entities[d.ID]; exists {
			return nil, fmt.Errorf("entity %q: %w", d.ID, ErrDuplicateEntity)
		}
		e, err := NewMeshEntity(d)
		if err != nil {
			return nil, fmt.Errorf("failed to load entity: %w", err)
		}
		s.entities[d.ID] = e
		s.order = append(s.order, d.ID)
		sum = sum.Add(d.Center)
	}

	if len(data) > 0 {
		s.offset = sum.Mul(-1.0 / float64(len(data)))
	}
	return s, nil
}

// Len returns the number of entities
func (s *Scene) Len() int {
	return len(s.order)
}

// Offset returns the translation applied to every entity when drawn
func (s *Scene) Offset() geometry.Vector3 {
	return s.offset
}

// Entity looks up an entity by id
func (s *Scene) Entity(id string) (*MeshEntity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Entities returns the entities in load order
func (s *Scene) Entities() []*MeshEntity {
	out := make([]*MeshEntity, len(s.order))
	for i, id := range s.order {
		out[i] = s.entities[id]
	}
	return out
}

// ClosestEntity returns the id of the entity whose hit is nearest to origin.
// origin is in world space; direction must be normalized.
func (s *Scene) ClosestEntity(origin geometry.Point3, direction geometry.Vector3) (string, bool) {
	id, _, ok := s.ClosestHit(origin, direction)
	return id, ok
}

// ClosestHit is ClosestEntity that also returns the hit point in scene-local space
func (s *Scene) ClosestHit(origin geometry.Point3, direction geometry.Vector3) (string, geometry.Point3, bool) {
	ray := geometry.NewRay(origin.Offset(s.offset.Negate()), direction)

	minDist := math.Inf(1)
	var (
		closest string
		point   geometry.Point3
	)
	for _, id := range s.order {
		p, ok := s.entities[id].Intersects(ray)
		if !ok {
			continue
		}
		if d := ray.Origin().SquaredDistanceTo(p); d < minDist {
			minDist = d
			closest = id
			point = p
		}
	}
	return closest, point, closest != ""
}

// Preselect makes id the only preselected entity. It reports whether the
// state changed; unknown ids leave the state untouched.
func (s *Scene) Preselect(id string) bool {
	if _, ok := s.entities[id]; !ok || s.preselected == id {
		return false
	}
	s.preselected = id
	return true
}

// ClearPreselection removes the preselection, reporting whether one existed
func (s *Scene) ClearPreselection() bool {
	changed := s.preselected != ""
	s.preselected = ""
	return changed
}

// Select makes id the only selected entity. It reports whether the state
// changed; unknown ids leave the state untouched.
func (s *Scene) Select(id string) bool {
	if _, ok := s.entities[id]; !ok || s.selected == id {
		return false
	}
	s.selected = id
	return true
}

// ClearSelection removes the selection, reporting whether one existed
func (s *Scene) ClearSelection() bool {
	changed := s.selected != ""
	s.selected = ""
	return changed
}

// Selected returns the selected entity id
func (s *Scene) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// Preselected returns the preselected entity id
func (s *Scene) Preselected() (string, bool) {
	return s.preselected, s.preselected != ""
}

// IsSelected reports whether id is the selected entity
func (s *Scene) IsSelected(id string) bool {
	return id != "" && s.selected == id
}

// IsPreselected reports whether id is the preselected entity
func (s *Scene) IsPreselected(id string) bool {
	return id != "" && s.preselected == id
}

// Style returns how the entity should be drawn given the current selection
func (s *Scene) Style(id string) Style {
	e, ok := s.entities[id]
	if !ok {
		return Style{}
	}
	style := materialStyle(e.colors)
	switch {
	case s.IsSelected(id):
		style.State = StateSelected
		style.Diffuse = SelectedColor
	case s.IsPreselected(id):
		style.State = StatePreselected
		style.Diffuse = PreselectedColor
	}
	return style
}

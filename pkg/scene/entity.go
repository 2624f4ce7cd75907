package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gopick/pkg/geometry"
)

var (
	// ErrMissingID is returned for entity data without an identifier
	ErrMissingID = errors.New("entity has no id")
	// ErrEmptyEntity is returned for entity data without triangles
	ErrEmptyEntity = errors.New("entity has no triangles")
	// ErrIncompleteTriangle is returned when the vertex count is not a multiple of three
	ErrIncompleteTriangle = errors.New("vertex count is not a multiple of 3")
	// ErrDuplicateEntity is returned when two entities share an id
	ErrDuplicateEntity = errors.New("duplicate entity id")
)

// EntityData is the payload a MeshEntity is built from
type EntityData struct {
	ID string
	// Vertices is a triangle soup: every three consecutive entries form one triangle.
	Vertices []geometry.Vector3
	// Center is the payload's reference point, used to recenter the scene.
	Center geometry.Vector3
	Colors []Color
}

// MeshEntity is one pickable sub-object of a scene
type MeshEntity struct {
	id       string
	vertices []geometry.Vector3
	bounds   geometry.BoundingBox
	colors   []Color
}

// NewMeshEntity validates data and builds the entity and its bounding box
func NewMeshEntity(data EntityData) (*MeshEntity, error) {
	if data.ID == "" {
		return nil, ErrMissingID
	}
	if len(data.Vertices) == 0 {
		return nil, fmt.Errorf("entity %q: %w", data.ID, ErrEmptyEntity)
	}
	if len(data.Vertices)%3 != 0 {
		return nil, fmt.Errorf("entity %q has %d vertices: %w", data.ID, len(data.Vertices), ErrIncompleteTriangle)
	}

	vertices := make([]geometry.Vector3, len(data.Vertices))
	copy(vertices, data.Vertices)
	colors := make([]Color, len(data.Colors))
	copy(colors, data.Colors)

	return &MeshEntity{
		id:       data.ID,
		vertices: vertices,
		bounds:   geometry.BoundingBoxOf(vertices),
		colors:   colors,
	}, nil
}

// ID returns the entity identifier
func (e *MeshEntity) ID() string {
	return e.id
}

// Bounds returns the axis-aligned box around the entity
func (e *MeshEntity) Bounds() geometry.BoundingBox {
	return e.bounds
}

// Colors returns the material colours of the entity
func (e *MeshEntity) Colors() []Color {
	return e.colors
}

// TriangleCount returns the number of triangles
func (e *MeshEntity) TriangleCount() int {
	return len(e.vertices) / 3
}

// Triangle returns the i-th triangle
func (e *MeshEntity) Triangle(i int) geometry.Triangle {
	return geometry.TriangleOf(e.vertices[3*i], e.vertices[3*i+1], e.vertices[3*i+2])
}

// Triangles returns all triangles of the entity
func (e *MeshEntity) Triangles() []geometry.Triangle {
	tris := make([]geometry.Triangle, e.TriangleCount())
	for i := range tris {
		tris[i] = e.Triangle(i)
	}
	return tris
}

// Intersects returns the hit closest to the ray origin, if any
func (e *MeshEntity) Intersects(ray geometry.Ray) (geometry.Point3, bool) {
	return e.intersect(ray, nil)
}

// intersect counts triangle tests into tested when it is non-nil.
func (e *MeshEntity) intersect(ray geometry.Ray, tested *int) (geometry.Point3, bool) {
	if !e.bounds.Intersects(ray) {
		return geometry.Point3{}, false
	}

	origin := ray.Origin()
	minDist := math.Inf(1)
	var closest geometry.Point3
	found := false

	for i := 0; i+2 < len(e.vertices); i += 3 {
		if tested != nil {
			*tested++
		}
		p, ok := ray.Intersect(e.vertices[i], e.vertices[i+1], e.vertices[i+2])
		if !ok {
			continue
		}
		if d := origin.SquaredDistanceTo(p); d < minDist {
			minDist = d
			closest = p
			found = true
		}
	}

	return closest, found
}

package scene

import (
	"math/rand"
	"testing"

	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad returns two triangles covering the square [-1,1]x[-1,1] at height z.
func quad(id string, z float64) EntityData {
	a := geometry.NewVector3(-1, -1, z)
	b := geometry.NewVector3(1, -1, z)
	c := geometry.NewVector3(1, 1, z)
	d := geometry.NewVector3(-1, 1, z)
	return EntityData{
		ID:       id,
		Vertices: []geometry.Vector3{a, b, c, c, d, a},
		Center:   geometry.NewVector3(0, 0, z),
	}
}

func newScene(t *testing.T, data ...EntityData) *Scene {
	t.Helper()
	s, err := NewScene(data)
	require.NoError(t, err)
	return s
}

func TestNewSceneValidation(t *testing.T) {
	_, err := NewScene([]EntityData{quad("a", 0), quad("a", 1)})
	assert.ErrorIs(t, err, ErrDuplicateEntity)

	_, err = NewScene([]EntityData{{ID: "empty"}})
	assert.ErrorIs(t, err, ErrEmptyEntity)

	bad := quad("bad", 0)
	bad.Vertices = bad.Vertices[:4]
	_, err = NewScene([]EntityData{bad})
	assert.ErrorIs(t, err, ErrIncompleteTriangle)

	_, err = NewScene([]EntityData{{Vertices: quad("", 0).Vertices}})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestSceneOffsetIsNegatedMeanCenter(t *testing.T) {
	a := quad("a", 0)
	a.Center = geometry.NewVector3(2, 0, 0)
	b := quad("b", 0)
	b.Center = geometry.NewVector3(0, 4, 6)

	s := newScene(t, a, b)
	assert.Equal(t, geometry.NewVector3(-1, -2, -3), s.Offset())
	assert.Equal(t, 2, s.Len())
}

func TestEmptySceneHasNoHit(t *testing.T) {
	s := newScene(t)

	_, ok := s.ClosestEntity(geometry.NewPoint3(0, 0, -30), geometry.ZAxis)
	assert.False(t, ok)
	assert.Equal(t, geometry.Vector3{}, s.Offset())
}

func TestClosestEntityPicksNearestHit(t *testing.T) {
	s := newScene(t, quad("far", 5), quad("near", -5), quad("middle", 0))

	id, ok := s.ClosestEntity(geometry.NewPoint3(0, 0, -30), geometry.ZAxis)
	require.True(t, ok)
	assert.Equal(t, "near", id)

	id, ok = s.ClosestEntity(geometry.NewPoint3(0, 0, 30), geometry.ZAxis.Negate())
	require.True(t, ok)
	assert.Equal(t, "far", id)
}

func TestClosestEntityUsesSceneOffset(t *testing.T) {
	e := quad("shifted", 0)
	e.Center = geometry.NewVector3(10, 0, 0)
	s := newScene(t, e)

	// the entity is drawn translated by -10 on X, so a world ray at x=-10 hits its centre
	id, hit, ok := s.ClosestHit(geometry.NewPoint3(-10, 0, -30), geometry.ZAxis)
	require.True(t, ok)
	assert.Equal(t, "shifted", id)
	assert.InDelta(t, 0, hit.DistanceTo(geometry.NewPoint3(0, 0, 0)), 1e-9)

	_, ok = s.ClosestEntity(geometry.NewPoint3(0, 0, -30), geometry.ZAxis)
	assert.False(t, ok)
}

func TestMeshEntityIntersectsClosestTriangle(t *testing.T) {
	data := quad("stack", 0)
	data.Vertices = append(data.Vertices, quad("", -2).Vertices...)
	e, err := NewMeshEntity(data)
	require.NoError(t, err)

	p, ok := e.Intersects(geometry.NewRay(geometry.NewPoint3(0.5, 0.5, -30), geometry.ZAxis))
	require.True(t, ok)
	assert.InDelta(t, -2, p.Z, 1e-9)
}

func TestMeshEntityBoxMissSkipsTriangles(t *testing.T) {
	e, err := NewMeshEntity(quad("a", 0))
	require.NoError(t, err)

	tested := 0
	_, ok := e.intersect(geometry.NewRay(geometry.NewPoint3(5, 5, -30), geometry.ZAxis), &tested)
	assert.False(t, ok)
	assert.Zero(t, tested)

	_, ok = e.intersect(geometry.NewRay(geometry.NewPoint3(0, 0, -30), geometry.ZAxis), &tested)
	assert.True(t, ok)
	assert.Equal(t, 2, tested)
}

func TestMeshEntityBoxHitTriangleMiss(t *testing.T) {
	a := geometry.NewVector3(0, 0, 0)
	b := geometry.NewVector3(2, 0, 0)
	c := geometry.NewVector3(0, 2, 0)
	e, err := NewMeshEntity(EntityData{ID: "corner", Vertices: []geometry.Vector3{a, b, c}})
	require.NoError(t, err)

	// inside the box but beyond the hypotenuse
	ray := geometry.NewRay(geometry.NewPoint3(1.8, 1.8, -1), geometry.ZAxis)
	assert.True(t, e.Bounds().Intersects(ray))
	_, ok := e.Intersects(ray)
	assert.False(t, ok)
}

func TestSelectIsExclusive(t *testing.T) {
	s := newScene(t, quad("a", 0), quad("b", 1), quad("c", 2))

	assert.True(t, s.Select("a"))
	assert.True(t, s.Select("b"))
	assert.False(t, s.IsSelected("a"))
	assert.True(t, s.IsSelected("b"))

	assert.False(t, s.Select("b"), "selecting the selected entity is a no-op")
	assert.False(t, s.Select("missing"))
	id, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	assert.True(t, s.ClearSelection())
	assert.False(t, s.ClearSelection())
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestPreselectIsIndependentOfSelect(t *testing.T) {
	s := newScene(t, quad("a", 0), quad("b", 1))

	s.Select("a")
	assert.True(t, s.Preselect("b"))
	assert.False(t, s.Preselect("b"))
	assert.True(t, s.IsSelected("a"))
	assert.True(t, s.IsPreselected("b"))

	assert.True(t, s.ClearPreselection())
	assert.True(t, s.IsSelected("a"))
	_, ok := s.Preselected()
	assert.False(t, ok)
}

func TestRandomSelectionSequenceKeepsOneSelected(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	data := make([]EntityData, len(ids))
	for i, id := range ids {
		data[i] = quad(id, float64(i))
	}
	s := newScene(t, data...)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(4) {
		case 0:
			s.Select(id)
		case 1:
			s.Preselect(id)
		case 2:
			s.ClearSelection()
		default:
			s.ClearPreselection()
		}

		selected, preselected := 0, 0
		for _, e := range s.Entities() {
			if s.IsSelected(e.ID()) {
				selected++
			}
			if s.IsPreselected(e.ID()) {
				preselected++
			}
		}
		require.LessOrEqual(t, selected, 1)
		require.LessOrEqual(t, preselected, 1)
	}
}

func TestStyle(t *testing.T) {
	red := Color{R: 1, A: 1}
	a := quad("a", 0)
	a.Colors = []Color{red}
	b := quad("b", 1)
	b.Colors = []Color{red, red, red, red}
	s := newScene(t, a, b)

	style := s.Style("a")
	assert.Equal(t, StateNormal, style.State)
	assert.Equal(t, White, style.Diffuse)
	assert.Equal(t, red, style.Specular)

	assert.Equal(t, red, s.Style("b").Diffuse)

	s.Preselect("b")
	assert.Equal(t, PreselectedColor, s.Style("b").Diffuse)
	s.Select("b")
	style = s.Style("b")
	assert.Equal(t, StateSelected, style.State)
	assert.Equal(t, SelectedColor, style.Diffuse)
}

func TestUnpackColor(t *testing.T) {
	c := UnpackColor(0xFF8000FF)
	assert.InDelta(t, 1.0, c.R, 1e-12)
	assert.InDelta(t, 128.0/255.0, c.G, 1e-12)
	assert.InDelta(t, 0.0, c.B, 1e-12)
	assert.InDelta(t, 1.0, c.A, 1e-12)
}

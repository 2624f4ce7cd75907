package geometry

import (
	"math"
	"testing"
)

func rightTriangle() Triangle {
	return NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	area := rightTriangle().Area()
	expected := 6.0 // (3 * 4) / 2

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	lengths := rightTriangle().EdgeLengths()

	for i, expected := range []float64{3, 5, 4} {
		if math.Abs(lengths[i]-expected) > 1e-10 {
			t.Errorf("Edge %d length failed: expected %v, got %v", i, expected, lengths[i])
		}
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := TriangleOf(NewVector3(0, 0, 0), NewVector3(3, 0, 0), NewVector3(0, 3, 0))

	center := tri.Center()
	expected := NewVector3(1, 1, 0)
	if center.Distance(expected) > 1e-10 {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleOfNormal(t *testing.T) {
	tri := TriangleOf(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))

	if tri.Normal.Distance(ZAxis) > 1e-10 {
		t.Errorf("Normal failed: expected %v, got %v", ZAxis, tri.Normal)
	}
}

func TestTriangleIsDegenerate(t *testing.T) {
	flat := TriangleOf(NewVector3(0, 0, 0), NewVector3(1, 1, 1), NewVector3(2, 2, 2))
	if !flat.IsDegenerate() {
		t.Errorf("IsDegenerate failed: collinear triangle not reported")
	}
	if rightTriangle().IsDegenerate() {
		t.Errorf("IsDegenerate failed: right triangle reported as degenerate")
	}
}

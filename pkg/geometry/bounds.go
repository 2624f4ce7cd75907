package geometry

import "math"

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates a new, empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// BoundingBoxOf returns the smallest box containing all points
func BoundingBoxOf(points []Vector3) BoundingBox {
	b := NewBoundingBox()
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether no point has been added to the box
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Contains reports whether point lies inside or on the box
func (b BoundingBox) Contains(point Vector3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// Corners returns the eight corners of the box. Corner 0 is Min and
// corner 4 is Max; 1-3 share Min.Y, 5-7 share Max.Y.
func (b BoundingBox) Corners() [8]Vector3 {
	lo, hi := b.Min, b.Max
	return [8]Vector3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
	}
}

// boxFaces indexes Corners() two triangles per face:
// -Y, +Z, +X, -Z, -X, +Y.
var boxFaces = [12][3]int{
	{0, 1, 2}, {2, 3, 0},
	{1, 5, 4}, {4, 2, 1},
	{3, 2, 4}, {4, 7, 3},
	{0, 3, 7}, {7, 0, 6},
	{0, 1, 6}, {1, 5, 6},
	{4, 7, 6}, {6, 5, 4},
}

// Faces returns the twelve triangles that make up the box hull
func (b BoundingBox) Faces() [12]Triangle {
	c := b.Corners()
	var faces [12]Triangle
	for i, f := range boxFaces {
		faces[i] = Triangle{V1: c[f[0]], V2: c[f[1]], V3: c[f[2]]}
	}
	return faces
}

// Intersects reports whether the line carrying ray crosses the box hull.
// It is a conservative filter: it stops at the first face hit and, like
// Ray.Intersect, does not reject hits behind the origin.
func (b BoundingBox) Intersects(ray Ray) bool {
	if b.IsEmpty() {
		return false
	}
	c := b.Corners()
	for _, f := range boxFaces {
		if _, ok := ray.Intersect(c[f[0]], c[f[1]], c[f[2]]); ok {
			return true
		}
	}
	return false
}

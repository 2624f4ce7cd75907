package geometry

import "math"

// Epsilon is the determinant threshold below which a ray is considered
// parallel to a triangle's plane.
const Epsilon = 1e-6

// Ray is a half line with a unit direction
type Ray struct {
	origin    Point3
	direction Vector3
}

// NewRay creates a ray, normalizing direction
func NewRay(origin Point3, direction Vector3) Ray {
	direction.NormalizeInPlace()
	return Ray{origin: origin, direction: direction}
}

// Origin returns the start point of the ray
func (r Ray) Origin() Point3 {
	return r.origin
}

// Direction returns the unit direction of the ray
func (r Ray) Direction() Vector3 {
	return r.direction
}

// At returns the point origin + t*direction
func (r Ray) At(t float64) Point3 {
	return r.origin.Offset(r.direction.Mul(t))
}

// Translated returns the same ray with its origin moved by offset
func (r Ray) Translated(offset Vector3) Ray {
	return Ray{origin: r.origin.Offset(offset), direction: r.direction}
}

// Intersect tests the ray against the triangle (v1, v2, v3) using the
// Möller–Trumbore algorithm. Hits behind the origin are reported as well.
func (r Ray) Intersect(v1, v2, v3 Vector3) (Point3, bool) {
	e1 := v2.Sub(v1)
	e2 := v3.Sub(v1)

	pvec := r.direction.Cross(e2)
	det := e1.Dot(pvec)
	// written as a negated >= so NaN (zero direction) falls through as a miss
	if !(math.Abs(det) >= Epsilon) {
		return Point3{}, false
	}
	inv := 1.0 / det

	tvec := r.origin.Vector().Sub(v1)
	u := tvec.Dot(pvec) * inv
	if u < 0 || u > 1 {
		return Point3{}, false
	}

	qvec := tvec.Cross(e1)
	v := r.direction.Dot(qvec) * inv
	if v < 0 || u+v > 1 {
		return Point3{}, false
	}

	t := e2.Dot(qvec) * inv
	return r.At(t), true
}

// IntersectTriangle tests the ray against a triangle
func (r Ray) IntersectTriangle(tri Triangle) (Point3, bool) {
	return r.Intersect(tri.V1, tri.V2, tri.V3)
}

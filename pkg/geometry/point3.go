package geometry

// Point3 is a mutable position in 3D space
type Point3 struct {
	X, Y, Z float64
}

// NewPoint3 creates a new point
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// PointOf converts a position vector into a point
func PointOf(v Vector3) Point3 {
	return Point3{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector returns the position vector of p
func (p Point3) Vector() Vector3 {
	return Vector3{X: p.X, Y: p.Y, Z: p.Z}
}

// Translate moves p by offset
func (p *Point3) Translate(offset Vector3) {
	p.X += offset.X
	p.Y += offset.Y
	p.Z += offset.Z
}

// Scale multiplies every coordinate of p by factor
func (p *Point3) Scale(factor float64) {
	p.X *= factor
	p.Y *= factor
	p.Z *= factor
}

// Offset returns p moved by offset, leaving p untouched
func (p Point3) Offset(offset Vector3) Point3 {
	p.Translate(offset)
	return p
}

// Sub returns the vector from other to p
func (p Point3) Sub(other Point3) Vector3 {
	return Vector3{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

// SquaredDistanceTo returns the squared euclidean distance between two points
func (p Point3) SquaredDistanceTo(other Point3) float64 {
	return p.Sub(other).LengthSquared()
}

// DistanceTo returns the euclidean distance between two points
func (p Point3) DistanceTo(other Point3) float64 {
	return p.Sub(other).Length()
}

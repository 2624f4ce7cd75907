package geometry

import "math"

// Quaternion is a rotation in 3D space stored as (X, Y, Z, W)
type Quaternion struct {
	X, Y, Z, W float64
}

// Matrix4 is a 4x4 matrix in column-major order
type Matrix4 [16]float64

// IdentityQuaternion returns the rotation that leaves vectors unchanged
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// NewQuaternion creates a rotation of degrees around axis
func NewQuaternion(axis Vector3, degrees float64) Quaternion {
	half := degrees * math.Pi / 360.0
	a := axis.Normalize().Mul(math.Sin(half))
	return Quaternion{X: a.X, Y: a.Y, Z: a.Z, W: math.Cos(half)}
}

// Multiply returns q*other, the rotation other followed by q
func (q Quaternion) Multiply(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Norm returns the length of the quaternion
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns the unit quaternion of q
func (q Quaternion) Normalize() Quaternion {
	n := q.Norm()
	if n == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Invert returns the inverse rotation
func (q Quaternion) Invert() Quaternion {
	n2 := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if n2 == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{X: -q.X / n2, Y: -q.Y / n2, Z: -q.Z / n2, W: q.W / n2}
}

// Angle returns the rotation angle in degrees
func (q Quaternion) Angle() float64 {
	w := math.Max(-1, math.Min(1, q.Normalize().W))
	return 2 * math.Acos(w) * 180.0 / math.Pi
}

// Axis returns the rotation axis; X for the identity rotation
func (q Quaternion) Axis() Vector3 {
	n := q.Normalize()
	s := math.Sqrt(1 - n.W*n.W)
	if s < 1e-12 {
		return XAxis
	}
	return Vector3{X: n.X / s, Y: n.Y / s, Z: n.Z / s}
}

// Transform rotates v by q
func (q Quaternion) Transform(v Vector3) Vector3 {
	u := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Matrix returns the homogeneous rotation matrix of q
func (q Quaternion) Matrix() Matrix4 {
	n := q.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W
	return Matrix4{
		1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0,
		2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0,
		2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// TransformPoint applies m to p as a homogeneous point
func (m Matrix4) TransformPoint(p Vector3) Vector3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vector3{X: x / w, Y: y / w, Z: z / w}
	}
	return Vector3{X: x, Y: y, Z: z}
}

package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gopick/pkg/geometry"
)

// CameraConfig describes the initial camera and viewport
type CameraConfig struct {
	EyeZ       float64
	MinZoom    float64
	MaxZoom    float64
	FOVDegrees float64
	Near, Far  float64
	Width      int
	Height     int
}

// DefaultCameraConfig looks at the origin from 30 units down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		EyeZ:       -30,
		MinZoom:    -100,
		MaxZoom:    -5,
		FOVDegrees: 45,
		Near:       0.01,
		Far:        100,
		Width:      1280,
		Height:     800,
	}
}

// Camera looks at the origin along +Z from a variable distance and rotates
// the model by yaw and pitch offsets.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FOV    float64 // Field of view in radians
	Near   float64
	Far    float64

	// Yaw and Pitch are the model rotation around Y and X in degrees.
	Yaw   float64
	Pitch float64

	MinZoom float64
	MaxZoom float64

	Width  int
	Height int
}

// NewCamera creates a camera from cfg
func NewCamera(cfg CameraConfig) *Camera {
	return &Camera{
		Eye:     mgl64.Vec3{0, 0, cfg.EyeZ},
		Target:  mgl64.Vec3{0, 0, 0},
		Up:      mgl64.Vec3{0, 1, 0},
		FOV:     mgl64.DegToRad(cfg.FOVDegrees),
		Near:    cfg.Near,
		Far:     cfg.Far,
		MinZoom: cfg.MinZoom,
		MaxZoom: cfg.MaxZoom,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}
}

// Rotate adds dx, dy degrees to the yaw and pitch offsets
func (c *Camera) Rotate(dx, dy float64) {
	c.Yaw += dx
	c.Pitch += dy
}

// AddZoom moves the eye along Z, keeping it within [MinZoom, MaxZoom]
func (c *Camera) AddZoom(dz float64) {
	c.Eye[2] = mgl64.Clamp(c.Eye[2]+dz, c.MinZoom, c.MaxZoom)
}

// SetZoom places the eye at z
func (c *Camera) SetZoom(z float64) {
	c.Eye[2] = z
}

// Zoom returns the eye Z coordinate
func (c *Camera) Zoom() float64 {
	return c.Eye[2]
}

// Resize updates the viewport size in device pixels
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// Orientation returns the model rotation: yaw about Y, then pitch about X
func (c *Camera) Orientation() geometry.Quaternion {
	return geometry.NewQuaternion(geometry.XAxis, c.Pitch).
		Multiply(geometry.NewQuaternion(geometry.YAxis, c.Yaw))
}

// Model returns the model matrix
func (c *Camera) Model() mgl64.Mat4 {
	return mgl64.Mat4(c.Orientation().Matrix())
}

// View returns the view matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective projection matrix
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	return mgl64.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Project maps a model-space point to device pixels (origin top left)
func (c *Camera) Project(p geometry.Vector3) (x, y float64) {
	modelView := c.View().Mul4(c.Model())
	win := mgl64.Project(mgl64.Vec3{p.X, p.Y, p.Z}, modelView, c.Projection(), 0, 0, c.Width, c.Height)
	return win[0], float64(c.Height) - win[1]
}

// Unproject converts a device pixel (origin top left) into a model-space
// ray starting on the near plane. ok is false when the viewport or the
// matrices are degenerate.
func (c *Camera) Unproject(x, y float64) (origin geometry.Point3, direction geometry.Vector3, ok bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return geometry.Point3{}, geometry.Vector3{}, false
	}
	modelView := c.View().Mul4(c.Model())
	projection := c.Projection()
	winY := float64(c.Height) - y

	near, err := mgl64.UnProject(mgl64.Vec3{x, winY, 0}, modelView, projection, 0, 0, c.Width, c.Height)
	if err != nil {
		return geometry.Point3{}, geometry.Vector3{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{x, winY, 1}, modelView, projection, 0, 0, c.Width, c.Height)
	if err != nil {
		return geometry.Point3{}, geometry.Vector3{}, false
	}

	dir := far.Sub(near)
	if dir.Len() == 0 || math.IsNaN(dir.Len()) {
		return geometry.Point3{}, geometry.Vector3{}, false
	}
	dir = dir.Normalize()
	return geometry.NewPoint3(near[0], near[1], near[2]), geometry.NewVector3(dir[0], dir[1], dir[2]), true
}

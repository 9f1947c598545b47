// Package camera builds the view and projection matrices a mesh is projected
// with on the CPU.
package camera

import (
	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/pkg/math"
)

// Camera is a fixed look-at camera with a perspective lens. The projection
// is baked into the vertices at load time, so it does not move while a mesh
// is on screen.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FOVDegrees float32 // Vertical field of view
	Near       float32
	Far        float32
}

// Default returns the camera a normalized mesh is framed with: slightly above
// the origin, two units back, looking at the center of the unit cube.
func Default() Camera {
	return Camera{
		Position:   math.Vec3{X: 0, Y: 0.5, Z: 2},
		Target:     math.Vec3{},
		Up:         math.Vec3{X: 0, Y: 1, Z: 0},
		FOVDegrees: 40,
		Near:       0.1,
		Far:        100,
	}
}

// FromConfig builds a camera from its configuration section.
func FromConfig(c config.CameraConfig) Camera {
	return Camera{
		Position:   math.Vec3FromArray(c.Position),
		Target:     math.Vec3FromArray(c.Target),
		Up:         math.Vec3FromArray(c.Up),
		FOVDegrees: c.FOV,
		Near:       c.Near,
		Far:        c.Far,
	}
}

// ViewMatrix returns the world-to-view transform.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection for a viewport with
// the given width/height ratio.
func (c Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOVDegrees), aspect, c.Near, c.Far)
}

// MVP returns projection * view * model.
func (c Camera) MVP(model math.Mat4, aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix()).Mul(model)
}

// Aspect returns width/height for a viewport size.
func Aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

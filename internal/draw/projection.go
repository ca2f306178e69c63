package draw

import (
	"math"

	"github.com/tomz197/tunnelrunner/internal/physics"
)

// nearPlane is the closest depth the camera draws.
const nearPlane = 0.1

// Camera is a perspective camera on the z axis looking down -z. The view
// is measured in the canvas's logical units.
type Camera struct {
	Z          float64
	FOV        float64 // Vertical field of view, degrees
	ViewWidth  float64
	ViewHeight float64
}

// Focal returns the focal length in logical units.
func (c Camera) Focal() float64 {
	return (c.ViewHeight / 2) / math.Tan(c.FOV*math.Pi/360)
}

// Project maps a world point onto the view. scale is the size in logical
// units of one world unit at that depth. ok is false for points at or
// behind the near plane.
func (c Camera) Project(p physics.Vec3) (pt Point, scale float64, ok bool) {
	depth := c.Z - p.Z
	if depth <= nearPlane {
		return Point{}, 0, false
	}
	scale = c.Focal() / depth
	return Point{
		X: c.ViewWidth/2 + p.X*scale,
		Y: c.ViewHeight/2 - p.Y*scale,
	}, scale, true
}

// Visible reports whether a disc of radius r around pt overlaps the view.
func (c Camera) Visible(pt Point, r float64) bool {
	return pt.X+r >= 0 && pt.X-r <= c.ViewWidth && pt.Y+r >= 0 && pt.Y-r <= c.ViewHeight
}

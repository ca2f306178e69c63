// Package physics provides distance and interpolation utilities.
package physics

import "math"

// Vec3 is a point or direction in world space. The tunnel axis is z;
// the camera looks down -z.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	return math.Sqrt(v.DistanceSquaredTo(o))
}

// DistanceSquaredTo returns the squared distance between v and o.
// Use this when comparing distances to avoid the sqrt cost.
func (v Vec3) DistanceSquaredTo(o Vec3) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	dz := o.Z - v.Z
	return dx*dx + dy*dy + dz*dz
}

// Within reports whether o lies strictly closer than dist to v.
func (v Vec3) Within(o Vec3, dist float64) bool {
	return v.DistanceSquaredTo(o) < dist*dist
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Lerp moves a toward b by fraction t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Polar converts an angle (radians) and radius on the tunnel cross-section
// into x/y offsets.
func Polar(angle, radius float64) (x, y float64) {
	return math.Cos(angle) * radius, math.Sin(angle) * radius
}

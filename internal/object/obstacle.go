package object

import (
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// Obstacle is a rock inside the tunnel that damages the craft on contact.
type Obstacle struct {
	Position physics.Vec3
	Scale    float64
	Spin     float64
	Removed  bool

	model Model
}

// NewObstacle creates an obstacle at pos.
func NewObstacle(pos physics.Vec3, scale float64, model Model) *Obstacle {
	return &Obstacle{Position: pos, Scale: scale, model: model}
}

// Advance moves the obstacle toward the camera and spins it.
func (o *Obstacle) Advance(speed float64) {
	o.Position.Z += speed * config.EntityAdvanceFactor
	o.Spin += config.ObstacleSpin
}

// Passed reports whether the obstacle is behind the camera plane.
func (o *Obstacle) Passed() bool {
	return o.Position.Z > config.CameraPlaneZ
}

// MarkDestroyed flags the obstacle for removal at the end of the tick.
func (o *Obstacle) MarkDestroyed() {
	o.Removed = true
}

// IsDestroyed returns true if the obstacle is flagged for removal.
func (o *Obstacle) IsDestroyed() bool {
	return o.Removed
}

// AppendParts implements Entity.
func (o *Obstacle) AppendParts(dst []Part) []Part {
	return append(dst, Part{
		Position: o.Position,
		Model:    o.model,
		Scale:    o.Scale,
		Spin:     o.Spin,
		Glow:     config.CraftBaseGlow,
		Life:     1,
	})
}

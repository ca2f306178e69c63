package object

import (
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// PowerUp is a collectible pickup.
type PowerUp struct {
	Kind     config.PowerUpKind
	Position physics.Vec3
	Spin     float64
	Removed  bool

	model Model
}

// NewPowerUp creates a pickup of kind at pos.
func NewPowerUp(kind config.PowerUpKind, pos physics.Vec3, model Model) *PowerUp {
	return &PowerUp{Kind: kind, Position: pos, model: model}
}

// Advance moves the pickup toward the camera and spins it.
func (p *PowerUp) Advance(speed float64) {
	p.Position.Z += speed * config.EntityAdvanceFactor
	p.Spin += config.PowerUpSpin
}

// Passed reports whether the pickup is behind the camera plane.
func (p *PowerUp) Passed() bool {
	return p.Position.Z > config.CameraPlaneZ
}

// MarkDestroyed flags the pickup for removal at the end of the tick.
func (p *PowerUp) MarkDestroyed() {
	p.Removed = true
}

// IsDestroyed returns true if the pickup is flagged for removal.
func (p *PowerUp) IsDestroyed() bool {
	return p.Removed
}

// AppendParts implements Entity. Pickups glow and draw slightly translucent.
func (p *PowerUp) AppendParts(dst []Part) []Part {
	return append(dst, Part{
		Position: p.Position,
		Model:    p.model,
		Scale:    config.PowerUpScale,
		Spin:     p.Spin,
		Glow:     config.CraftBoostGlow,
		Ghost:    true,
		Life:     1,
	})
}

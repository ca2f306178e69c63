// Package object holds the world entities of a run: the craft, the tunnel,
// obstacles, power-ups and particles, plus the contracts they are drawn through.
package object

import (
	"time"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// Scene receives entities to draw. Every added entity is removed exactly once.
type Scene interface {
	Add(e Entity)
	Remove(e Entity)
}

// Assets hands out model instances. Unknown or unavailable kinds come back as
// a placeholder model rather than an error.
type Assets interface {
	CloneModel(kind ModelKind) Model
}

// Scheduler defers an effect by a duration. Scheduling a key that is already
// pending replaces it.
type Scheduler interface {
	Schedule(key string, after time.Duration, fn func())
}

// Entity is anything the scene can draw.
type Entity interface {
	// AppendParts appends the entity's drawable parts to dst and returns it.
	AppendParts(dst []Part) []Part
}

// Part is one drawable element of an entity, in world space.
type Part struct {
	Position physics.Vec3
	Model    Model
	Scale    float64
	Spin     float64 // Accumulated rotation, radians
	Glow     float64 // Emissive multiplier, 1 is neutral
	Flash    bool    // Damage flash
	Ghost    bool    // Drawn translucent
	Life     float64 // Remaining life in [0, 1]; 1 for persistent parts
}

// ModelKind is the closed set of drawable models.
type ModelKind int

const (
	ModelShipDefault ModelKind = iota
	ModelShipFighter
	ModelShipCruiser
	ModelObstacle
	ModelDecoration
	ModelPowerUpShield
	ModelPowerUpPoints
	ModelPowerUpSpeed
	ModelPowerUpMultiplier
	ModelPowerUpHealth
	ModelParticle
	modelKindCount
)

var modelKeys = [modelKindCount]string{
	"ship_default", "ship_fighter", "ship_cruiser",
	"obstacle", "asteroid",
	"powerup_shield", "powerup_points", "powerup_speed", "powerup_multiplier", "powerup_health",
	"particle",
}

// ModelKinds lists every model kind.
func ModelKinds() []ModelKind {
	kinds := make([]ModelKind, modelKindCount)
	for i := range kinds {
		kinds[i] = ModelKind(i)
	}
	return kinds
}

// ParseModelKind resolves a manifest key.
func ParseModelKind(key string) (ModelKind, bool) {
	for i, k := range modelKeys {
		if k == key {
			return ModelKind(i), true
		}
	}
	return 0, false
}

func (k ModelKind) String() string {
	if k < 0 || k >= modelKindCount {
		return "unknown"
	}
	return modelKeys[k]
}

// Valid reports whether k is one of the declared kinds.
func (k ModelKind) Valid() bool {
	return k >= 0 && k < modelKindCount
}

// ShipModel maps a ship type to its model.
func ShipModel(s config.ShipType) ModelKind {
	switch s {
	case config.ShipFighter:
		return ModelShipFighter
	case config.ShipCruiser:
		return ModelShipCruiser
	default:
		return ModelShipDefault
	}
}

// PowerUpModel maps a pickup kind to its model.
func PowerUpModel(k config.PowerUpKind) ModelKind {
	switch k {
	case config.PowerUpShield:
		return ModelPowerUpShield
	case config.PowerUpPoints:
		return ModelPowerUpPoints
	case config.PowerUpSpeed:
		return ModelPowerUpSpeed
	case config.PowerUpMultiplier:
		return ModelPowerUpMultiplier
	default:
		return ModelPowerUpHealth
	}
}

// Model is a drawable descriptor. It is a value, so every clone is independent.
type Model struct {
	Kind        ModelKind
	Glyph       rune
	Color       uint32  // 0xRRGGBB
	Radius      float64 // World-space radius at scale 1
	Placeholder bool    // Substituted because the real model was unavailable
}

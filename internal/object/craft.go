package object

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// Craft is the player-controlled ship. It only owns its position and looks;
// health, speed and buffs live in the run state.
type Craft struct {
	X, Y  float64 // Offset from the tunnel axis
	Tilt  float64 // Bank angle, radians
	Ship  config.ShipType
	Stats config.ShipStats

	model  Model
	scale  float64
	limit  float64 // |X|, |Y| stay within limit
	sched  Scheduler
	rng    *rand.Rand
	glow   float64
	flash  bool
	shakeX float64
	ghost  bool
}

// NewCraft builds the craft for a ship type inside a tunnel of the given radius.
// Deferred visual reverts go through sched.
func NewCraft(ship config.ShipType, tunnelRadius float64, assets Assets, sched Scheduler, rng *rand.Rand) *Craft {
	spec := ship.Spec()
	return &Craft{
		Ship:  ship,
		Stats: spec.Stats,
		model: assets.CloneModel(ShipModel(ship)),
		scale: spec.Scale,
		limit: tunnelRadius - config.CraftEdgeMargin,
		sched: sched,
		rng:   rng,
		glow:  config.CraftBaseGlow,
	}
}

// Move shifts the craft by dx/dy scaled by agility and banks into the turn.
// Call once per tick, with zero deltas when idle, so the bank decays.
func (c *Craft) Move(dx, dy float64) {
	c.X = physics.Clamp(c.X+dx*c.Stats.Agility, -c.limit, c.limit)
	c.Y = physics.Clamp(c.Y+dy*c.Stats.Agility, -c.limit, c.limit)

	if dx != 0 {
		c.Tilt = physics.Lerp(c.Tilt, dx*config.CraftTiltPerDelta, config.CraftTiltEase)
	} else {
		c.Tilt *= config.CraftTiltDecay
	}
}

// Boost spikes the engine glow; it drops back shortly after.
func (c *Craft) Boost(intensity float64) {
	c.glow = config.CraftBoostGlow * intensity
	c.sched.Schedule("craft-glow", config.CraftBoostRevert, func() {
		c.glow = config.CraftBaseGlow
	})
}

// TakeDamage plays the hit reaction: a red flash and a short sideways shake.
func (c *Craft) TakeDamage() {
	c.flash = true
	c.sched.Schedule("craft-flash", config.CraftFlashDuration, func() {
		c.flash = false
	})
	for i := 0; i < config.CraftShakeSteps; i++ {
		c.sched.Schedule(fmt.Sprintf("craft-shake-%d", i), time.Duration(i)*config.CraftShakeInterval, func() {
			c.shakeX = (c.rng.Float64() - 0.5) * config.CraftShakeAmplitude
		})
	}
	c.sched.Schedule("craft-shake-reset", config.CraftShakeReset, func() {
		c.shakeX = 0
	})
}

// SetInvincible toggles the translucent shield look. It does not touch the
// run's invincibility timer.
func (c *Craft) SetInvincible(on bool) {
	c.ghost = on
}

// Reset centers the craft and clears its looks.
func (c *Craft) Reset() {
	c.X, c.Y, c.Tilt = 0, 0, 0
	c.glow = config.CraftBaseGlow
	c.flash = false
	c.shakeX = 0
	c.ghost = false
}

// WorldPosition is the logical position used for collisions.
func (c *Craft) WorldPosition() physics.Vec3 {
	return physics.Vec3{X: c.X, Y: c.Y}
}

// Glow returns the current emissive multiplier.
func (c *Craft) Glow() float64 { return c.glow }

// Flashing reports whether the damage flash is showing.
func (c *Craft) Flashing() bool { return c.flash }

// Ghost reports whether the shield look is on.
func (c *Craft) Ghost() bool { return c.ghost }

// Shake returns the render-only shake offset.
func (c *Craft) Shake() float64 { return c.shakeX }

// AppendParts draws the craft with the shake applied.
func (c *Craft) AppendParts(dst []Part) []Part {
	return append(dst, Part{
		Position: physics.Vec3{X: c.X + c.shakeX, Y: c.Y},
		Model:    c.model,
		Scale:    c.scale,
		Spin:     c.Tilt,
		Glow:     c.glow,
		Flash:    c.flash,
		Ghost:    c.ghost,
		Life:     1,
	})
}

package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark from an explosion or pickup.
type Particle struct {
	Position physics.Vec3
	Velocity physics.Vec3
	Life     float64 // Remaining, starts at the burst's life and fades to 0
	MaxLife  float64
	Color    uint32

	model Model
}

// NewParticle takes a particle from the pool.
func NewParticle(pos, vel physics.Vec3, life float64, color uint32, model Model) *Particle {
	p := particlePool.Get().(*Particle)
	p.Position = pos
	p.Velocity = vel
	p.Life = life
	p.MaxLife = life
	p.Color = color
	p.model = model
	p.model.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called once the particle has been removed from the scene.
func (p *Particle) Release() {
	*p = Particle{}
	particlePool.Put(p)
}

// Update moves the particle, applies drag and fades it.
// Returns true once the particle is spent.
func (p *Particle) Update() bool {
	p.Position = p.Position.Add(p.Velocity)
	p.Velocity = p.Velocity.Scale(config.ParticleDrag)
	p.Life -= config.ParticleFade
	return p.Life <= 0
}

// AppendParts implements Entity.
func (p *Particle) AppendParts(dst []Part) []Part {
	life := 0.0
	if p.MaxLife > 0 {
		life = math.Max(0, p.Life/p.MaxLife)
	}
	return append(dst, Part{
		Position: p.Position,
		Model:    p.model,
		Scale:    1,
		Glow:     config.CraftBoostGlow,
		Life:     life,
	})
}

// Particles owns the live sparks of a session.
type Particles struct {
	live   []*Particle
	scene  Scene
	assets Assets
	rng    *rand.Rand
}

// NewParticles creates an empty particle system drawing into scene.
func NewParticles(scene Scene, assets Assets, rng *rand.Rand) *Particles {
	return &Particles{scene: scene, assets: assets, rng: rng}
}

// Explosion bursts red sparks at pos in every direction.
func (ps *Particles) Explosion(pos physics.Vec3) {
	ps.burst(pos, config.ExplosionParticles, config.ExplosionLife, 0xff4400, func(r *rand.Rand) physics.Vec3 {
		return physics.Vec3{X: r.Float64() - 0.5, Y: r.Float64() - 0.5, Z: r.Float64() - 0.5}.Scale(2)
	})
}

// Collect bursts sparks at pos in the pickup's color, rising upward.
func (ps *Particles) Collect(pos physics.Vec3, color uint32) {
	ps.burst(pos, config.CollectParticles, config.CollectLife, color, func(r *rand.Rand) physics.Vec3 {
		return physics.Vec3{X: r.Float64() - 0.5, Y: r.Float64() * 2, Z: r.Float64() - 0.5}
	})
}

func (ps *Particles) burst(pos physics.Vec3, count int, life float64, color uint32, velocity func(*rand.Rand) physics.Vec3) {
	model := ps.assets.CloneModel(ModelParticle)
	for i := 0; i < count; i++ {
		p := NewParticle(pos, velocity(ps.rng), life, color, model)
		ps.live = append(ps.live, p)
		ps.scene.Add(p)
	}
}

// Update advances every spark and drops spent ones.
func (ps *Particles) Update() {
	kept := ps.live[:0]
	for _, p := range ps.live {
		if p.Update() {
			ps.scene.Remove(p)
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(ps.live); i++ {
		ps.live[i] = nil
	}
	ps.live = kept
}

// Len returns the number of live sparks.
func (ps *Particles) Len() int {
	return len(ps.live)
}

// Clear removes every spark from the scene.
func (ps *Particles) Clear() {
	for _, p := range ps.live {
		ps.scene.Remove(p)
		p.Release()
	}
	ps.live = ps.live[:0]
}

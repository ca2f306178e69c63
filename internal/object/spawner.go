package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// Spawner rolls for new obstacles and pickups each tick. Rates are read from
// the live profile on every roll so level-ups take effect immediately.
type Spawner struct {
	profile *config.Profile
	assets  Assets
	rng     *rand.Rand
}

// NewSpawner creates a spawner bound to the session's live profile.
func NewSpawner(profile *config.Profile, assets Assets, rng *rand.Rand) *Spawner {
	return &Spawner{profile: profile, assets: assets, rng: rng}
}

// SpawnObstacle returns a new obstacle, or nil when the roll fails.
// The chance grows with speed.
func (s *Spawner) SpawnObstacle(speed float64) *Obstacle {
	if s.rng.Float64() >= s.profile.ObstacleRate*speed {
		return nil
	}
	scale := config.ObstacleBaseScale + s.rng.Float64()*config.ObstacleBaseScale
	pos := s.annulus(s.profile.TunnelRadius - config.ObstacleRadiusMargin)
	return NewObstacle(pos, scale, s.assets.CloneModel(ModelObstacle))
}

// SpawnPowerUp returns a new pickup of a uniformly chosen kind, or nil when
// the roll fails.
func (s *Spawner) SpawnPowerUp() *PowerUp {
	if s.rng.Float64() >= s.profile.PowerUpRate {
		return nil
	}
	kinds := config.PowerUpKinds()
	kind := kinds[s.rng.Intn(len(kinds))]
	pos := s.annulus(s.profile.TunnelRadius - config.PowerUpRadiusMargin)
	return NewPowerUp(kind, pos, s.assets.CloneModel(PowerUpModel(kind)))
}

// annulus picks a point at the spawn depth within maxRadius of the axis.
func (s *Spawner) annulus(maxRadius float64) physics.Vec3 {
	angle := s.rng.Float64() * 2 * math.Pi
	x, y := physics.Polar(angle, s.rng.Float64()*math.Max(0, maxRadius))
	return physics.Vec3{X: x, Y: y, Z: config.EntitySpawnZ}
}

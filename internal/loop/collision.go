package loop

import (
	"github.com/tomz197/tunnelrunner/internal/audio"
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/object"
)

// removable is an entity that is flagged during the tick and compacted after.
type removable interface {
	object.Entity
	IsDestroyed() bool
}

// compact drops flagged entities, removing each from the scene exactly once.
func compact[T removable](items []T, scene object.Scene) []T {
	kept := items[:0]
	for _, it := range items {
		if it.IsDestroyed() {
			scene.Remove(it)
			continue
		}
		kept = append(kept, it)
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}

// updateObstacles spawns, advances and resolves obstacles.
func (s *Session) updateObstacles() {
	if ob := s.Spawner.SpawnObstacle(s.Run.Speed); ob != nil {
		s.Obstacles = append(s.Obstacles, ob)
		s.scene.Add(ob)
	}

	ship := s.Craft.WorldPosition()
	for _, ob := range s.Obstacles {
		ob.Advance(s.Run.Speed)

		if !s.Run.Invincible.Active && !s.Run.GameOver && ob.Position.Within(ship, config.CollisionDistance) {
			s.hitObstacle(ob)
		}
		if !ob.IsDestroyed() && ob.Passed() {
			ob.MarkDestroyed()
		}
	}
	s.Obstacles = compact(s.Obstacles, s.scene)
}

func (s *Session) hitObstacle(ob *object.Obstacle) {
	died := s.Run.TakeDamage(config.BaseDamage * s.Profile.DamageMultiplier)

	s.Craft.TakeDamage()
	s.audio.Play(audio.SoundDamage, 1)
	if s.settings.Graphics != config.GraphicsLow {
		s.Particles.Explosion(ob.Position)
	}
	ob.MarkDestroyed()

	if died {
		s.gameOver()
	}
}

func (s *Session) gameOver() {
	if mp, ok := s.audio.(audio.MusicPlayer); ok {
		mp.StopMusic()
	}
	s.audio.Play(audio.SoundGameOver, 1)
	st := s.Run.Stats()
	s.logger.Info("run over", "score", int64(st.Score), "best", int64(st.BestScore), "level", st.Level, "time", st.PlayTime)
}

// updatePowerUps spawns, advances and collects pickups.
func (s *Session) updatePowerUps() {
	if pu := s.Spawner.SpawnPowerUp(); pu != nil {
		s.PowerUps = append(s.PowerUps, pu)
		s.scene.Add(pu)
	}

	ship := s.Craft.WorldPosition()
	for _, pu := range s.PowerUps {
		pu.Advance(s.Run.Speed)

		if pu.Position.Within(ship, config.CollisionDistance) {
			s.collect(pu)
			pu.MarkDestroyed()
		}
		if !pu.IsDestroyed() && pu.Passed() {
			pu.MarkDestroyed()
		}
	}
	s.PowerUps = compact(s.PowerUps, s.scene)
}

package loop

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/tunnelrunner/internal/audio"
	settings "github.com/tomz197/tunnelrunner/internal/config"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/input"
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/object"
	"github.com/tomz197/tunnelrunner/internal/run"
	"github.com/tomz197/tunnelrunner/internal/timeline"
)

// Deps are the collaborators a session talks to.
type Deps struct {
	Scene  object.Scene
	Assets object.Assets
	Audio  audio.Sink
	HUD    hud.Sink
	Store  run.BestScoreStore // Optional
	Logger *log.Logger
	Rand   *rand.Rand
}

// Session owns everything that lives for exactly one run. It is built when a
// run starts and disposed on restart or return to menu; nothing in it is
// shared with other sessions.
type Session struct {
	Profile   config.Profile // Live copy, escalated on level-up
	Run       *run.State
	Craft     *object.Craft
	Tunnel    *object.Tunnel
	Spawner   *object.Spawner
	Obstacles []*object.Obstacle
	PowerUps  []*object.PowerUp
	Particles *object.Particles
	Effects   *timeline.Queue

	settings settings.Settings
	scene    object.Scene
	audio    audio.Sink
	hud      hud.Sink
	logger   *log.Logger
	disposed bool
}

// NewSession builds and starts a run with the given settings.
func NewSession(s settings.Settings, deps Deps) *Session {
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	if deps.HUD == nil {
		deps.HUD = hud.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sess := &Session{
		Profile:  s.Difficulty.Profile(),
		Effects:  timeline.New(),
		settings: s,
		scene:    deps.Scene,
		audio:    deps.Audio,
		hud:      deps.HUD,
		logger:   deps.Logger,
	}

	opts := []run.Option{
		run.WithLevelUpHook(sess.levelUp),
		run.WithStoreErrorHook(func(err error) {
			sess.logger.Warn("best score store failed", "err", err)
		}),
	}
	if deps.Store != nil {
		opts = append(opts, run.WithBestScoreStore(deps.Store))
	}
	sess.Run = run.New(&sess.Profile, opts...)

	sess.Craft = object.NewCraft(s.Ship, sess.Profile.TunnelRadius, deps.Assets, sess.Effects, deps.Rand)
	sess.scene.Add(sess.Craft)
	sess.Run.ApplyShipStats(s.Ship.Spec().Stats)

	sess.Tunnel = object.NewTunnel(sess.Profile.TunnelRadius, sess.scene, deps.Assets, deps.Rand)
	sess.Spawner = object.NewSpawner(&sess.Profile, deps.Assets, deps.Rand)
	sess.Particles = object.NewParticles(sess.scene, deps.Assets, deps.Rand)

	sess.Run.Start()
	sess.logger.Debug("run started", "difficulty", s.Difficulty, "ship", s.Ship)
	sess.pushHUD()
	return sess
}

// Settings returns the settings the run was started with.
func (s *Session) Settings() settings.Settings {
	return s.settings
}

// Tick advances the run by one frame. It does nothing while the run is
// paused, over, or not started.
func (s *Session) Tick(in input.Input, dt time.Duration) {
	if s.disposed || !s.Run.Running() {
		return
	}

	s.Effects.Advance(dt)
	s.controls(in)

	s.Run.UpdatePlayTime(dt)
	s.Run.UpdateTemporaryEffects(dt)
	s.Run.UpdateSpeed()
	s.Run.UpdateBoost()

	s.Run.AddScore(math.Floor(s.Run.Speed * config.BaseScorePerSpeed))
	s.Run.UpdateLevel()

	s.Tunnel.Update(s.Run.Speed)
	s.updateObstacles()
	if !s.Run.GameOver {
		s.updatePowerUps()
	}
	s.Particles.Update()

	s.pushHUD()
}

// controls applies held movement, turbo and special boost.
func (s *Session) controls(in input.Input) {
	dx, dy := in.Axes()
	s.Craft.Move(dx*s.settings.Sensitivity, dy*s.settings.Sensitivity)

	if in.Turbo {
		s.Run.Kick(config.TurboSpeedKick, s.Run.SpeedCap())
		s.audio.Play(audio.SoundBoost, config.TurboSoundVolume)
		s.Craft.Boost(config.TurboGlow)
	}

	if in.Boost && s.Run.UseBoost(config.BoostCost) {
		s.Run.Kick(config.BoostSpeedKick, s.Profile.MaxSpeed*config.BoostSpeedCapFactor)
		s.Craft.Boost(config.BoostGlow)
	}
}

func (s *Session) levelUp(_, level int) {
	s.audio.Play(audio.SoundLevelUp, 1)
	s.hud.Notify(hud.Banner{
		Text:      levelText(level),
		Color:     0xffffff,
		Duration:  config.LevelBannerDuration,
		Countdown: true,
	})
	s.logger.Debug("level up", "level", level, "obstacleRate", s.Profile.ObstacleRate)
}

func (s *Session) pushHUD() {
	st := s.Run.Stats()
	s.hud.Update(hud.Frame{
		Clock:      s.Effects.Now(),
		Score:      st.Score,
		BestScore:  st.BestScore,
		Level:      st.Level,
		Combo:      st.Combo,
		Health:     st.HealthPercent(),
		Boost:      st.BoostPercent(),
		Speed:      st.Speed,
		PlayTime:   st.PlayTime,
		Invincible: st.Invincible,
		SpeedBoost: st.SpeedBoost,
		Multiplier: st.Multiplier,
	})
}

// Dispose removes every entity of the run from the scene and drops pending
// effects. It is safe to call more than once.
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.Effects.Clear()

	for _, ob := range s.Obstacles {
		s.scene.Remove(ob)
	}
	for _, pu := range s.PowerUps {
		s.scene.Remove(pu)
	}
	clear(s.Obstacles)
	clear(s.PowerUps)
	s.Obstacles = s.Obstacles[:0]
	s.PowerUps = s.PowerUps[:0]

	s.Particles.Clear()
	s.Tunnel.Dispose()
	s.scene.Remove(s.Craft)
}

// Disposed reports whether Dispose has run.
func (s *Session) Disposed() bool {
	return s.disposed
}

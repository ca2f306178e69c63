// Package run implements the per-run scoring, health, speed and buff state.
package run

import (
	"math"
	"time"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
)

// BestScoreStore persists the best score across runs.
type BestScoreStore interface {
	LoadBestScore() (float64, error)
	SaveBestScore(score float64) error
}

// Buff is a timed status effect.
type Buff struct {
	Active    bool
	Remaining time.Duration
}

// set starts or refreshes the buff. Remaining time is replaced, not added.
func (b *Buff) set(d time.Duration) {
	b.Active = true
	b.Remaining = d
}

// tick decrements the buff and reports whether it just expired.
func (b *Buff) tick(dt time.Duration) bool {
	if !b.Active {
		return false
	}
	b.Remaining -= dt
	if b.Remaining <= 0 {
		b.Active = false
		b.Remaining = 0
		return true
	}
	return false
}

// State is the mutable aggregate of one run.
type State struct {
	Score     float64
	BestScore float64
	Health    float64
	MaxHealth float64
	Speed     float64
	Combo     int
	Level     int
	Boost     float64
	MaxBoost  float64
	PlayTime  time.Duration

	Started  bool
	Paused   bool
	GameOver bool

	Invincible      Buff
	SpeedBoost      Buff
	Multiplier      Buff
	MultiplierValue float64 // Active score factor; 1 when no multiplier is running

	ShipStats config.ShipStats

	thresholds []float64
	profile    *config.Profile
	store      BestScoreStore
	onLevelUp  func(oldLevel, newLevel int)
	onStoreErr func(err error)
}

// Option configures a State.
type Option func(*State)

// WithThresholds overrides the level thresholds (ascending, first entry 0).
func WithThresholds(thresholds []float64) Option {
	return func(s *State) {
		s.thresholds = append([]float64(nil), thresholds...)
	}
}

// WithBestScoreStore persists best scores through store.
func WithBestScoreStore(store BestScoreStore) Option {
	return func(s *State) {
		s.store = store
	}
}

// WithLevelUpHook is called after each level transition.
func WithLevelUpHook(fn func(oldLevel, newLevel int)) Option {
	return func(s *State) {
		s.onLevelUp = fn
	}
}

// WithStoreErrorHook receives best-score store failures; they never abort a run.
func WithStoreErrorHook(fn func(err error)) Option {
	return func(s *State) {
		s.onStoreErr = fn
	}
}

// New creates a run bound to the live difficulty profile. Level-ups escalate
// profile in place, so it must be the session's own copy.
func New(profile *config.Profile, opts ...Option) *State {
	s := &State{
		thresholds: config.LevelThresholds,
		profile:    profile,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset returns the run to its pre-start values and reloads the best score.
func (s *State) Reset() {
	s.Score = 0
	s.Health = config.InitialHealth
	s.MaxHealth = config.InitialHealth
	s.Speed = config.InitialSpeed
	s.Combo = 0
	s.Level = 1
	s.Boost = 0
	s.MaxBoost = config.InitialMaxBoost
	s.PlayTime = 0
	s.Started = false
	s.Paused = false
	s.GameOver = false
	s.Invincible = Buff{}
	s.SpeedBoost = Buff{}
	s.Multiplier = Buff{}
	s.MultiplierValue = 1
	s.ShipStats = config.ShipStats{SpeedFactor: 1, MaxHealth: config.InitialHealth, Agility: 1, MaxBoost: config.InitialMaxBoost}

	if s.store != nil {
		best, err := s.store.LoadBestScore()
		if err != nil {
			s.storeFailed(err)
		} else {
			s.BestScore = best
		}
	}
}

// ApplyShipStats copies the ship's stats and refills health and boost.
func (s *State) ApplyShipStats(stats config.ShipStats) {
	s.ShipStats = stats
	s.MaxHealth = stats.MaxHealth
	s.Health = stats.MaxHealth
	s.MaxBoost = stats.MaxBoost
	s.Boost = stats.MaxBoost
}

// Start marks the run as started.
func (s *State) Start() {
	s.Started = true
	s.GameOver = false
	s.Paused = false
}

// TogglePause flips the pause flag and returns the new value.
// Finished or unstarted runs cannot be paused.
func (s *State) TogglePause() bool {
	if !s.Started || s.GameOver {
		return s.Paused
	}
	s.Paused = !s.Paused
	return s.Paused
}

// Running reports whether ticks should advance the run.
func (s *State) Running() bool {
	return s.Started && !s.Paused && !s.GameOver
}

// UpdatePlayTime accumulates elapsed running time.
func (s *State) UpdatePlayTime(dt time.Duration) {
	if s.Running() {
		s.PlayTime += dt
	}
}

// AddScore awards points plus the combo bonus, scaled by the active
// multiplier, and returns the amount awarded.
func (s *State) AddScore(points float64) float64 {
	bonus := 0.0
	if s.Combo > 0 {
		bonus = float64(s.Combo) * config.ComboBonusPerStep
	}
	total := (points + bonus) * s.multiplier()
	s.Score += total
	return total
}

func (s *State) multiplier() float64 {
	if s.Multiplier.Active {
		return s.MultiplierValue
	}
	return 1
}

// IncreaseCombo bumps the combo counter and returns it.
func (s *State) IncreaseCombo() int {
	s.Combo++
	return s.Combo
}

// ResetCombo clears the combo counter.
func (s *State) ResetCombo() {
	s.Combo = 0
}

// TakeDamage subtracts amount from health unless invincible. It returns true
// when this hit exhausted health and ended the run.
func (s *State) TakeDamage(amount float64) bool {
	if s.Invincible.Active || s.GameOver {
		return false
	}
	s.Health = math.Max(0, s.Health-amount)
	s.ResetCombo()
	if s.Health <= 0 {
		s.EndGame()
		return true
	}
	return false
}

// Heal restores health up to the maximum.
func (s *State) Heal(amount float64) float64 {
	s.Health = math.Min(s.MaxHealth, s.Health+amount)
	return s.Health
}

// SetInvincible starts or refreshes invincibility.
func (s *State) SetInvincible(d time.Duration) {
	s.Invincible.set(d)
}

// SetSpeedBoost starts or refreshes the speed boost.
func (s *State) SetSpeedBoost(d time.Duration) {
	s.SpeedBoost.set(d)
}

// SetScoreMultiplier starts or refreshes the score multiplier.
func (s *State) SetScoreMultiplier(factor float64, d time.Duration) {
	s.Multiplier.set(d)
	s.MultiplierValue = factor
}

// UpdateTemporaryEffects advances every active buff by dt.
// Call exactly once per tick.
func (s *State) UpdateTemporaryEffects(dt time.Duration) {
	s.Invincible.tick(dt)
	s.SpeedBoost.tick(dt)
	if s.Multiplier.tick(dt) {
		s.MultiplierValue = 1
	}
}

// LevelFor returns the level a score maps to under thresholds.
func LevelFor(score float64, thresholds []float64) int {
	for i, t := range thresholds {
		if score < t {
			return i
		}
	}
	return len(thresholds)
}

// UpdateLevel recomputes the level. On a change the live profile escalates
// once and the level-up hook fires; the return value reports the change.
func (s *State) UpdateLevel() bool {
	level := LevelFor(s.Score, s.thresholds)
	if level == s.Level {
		return false
	}
	old := s.Level
	s.Level = level
	if s.profile != nil {
		s.profile.Escalate()
	}
	if s.onLevelUp != nil {
		s.onLevelUp(old, level)
	}
	return true
}

// SpeedCap returns the speed the run accelerates toward without boosts.
func (s *State) SpeedCap() float64 {
	maxSpeed := config.DifficultyNormal.Profile().MaxSpeed
	if s.profile != nil {
		maxSpeed = s.profile.MaxSpeed
	}
	return maxSpeed * s.ShipStats.SpeedFactor
}

// UpdateSpeed accelerates toward the speed cap; an active speed boost raises
// both the cap and the increment.
func (s *State) UpdateSpeed() {
	target := s.SpeedCap()
	s.Speed = math.Min(target, s.Speed+config.SpeedIncrease)
	if s.SpeedBoost.Active {
		s.Speed = math.Min(target*config.SpeedBoostFactor, s.Speed+config.BoostedSpeedIncrease)
	}
}

// approach adds step to v without exceeding limit. Values already above
// limit are left alone.
func approach(v, limit, step float64) float64 {
	if v >= limit {
		return v
	}
	return math.Min(limit, v+step)
}

// Kick applies an input-driven speed increase bounded by limit.
func (s *State) Kick(delta, limit float64) {
	s.Speed = approach(s.Speed, limit, delta)
}

// UpdateBoost regenerates boost; ships with an enlarged tank regenerate faster.
func (s *State) UpdateBoost() {
	regen := config.BoostRegen
	if s.MaxBoost > config.InitialMaxBoost {
		regen = config.BoostRegenUpgraded
	}
	s.Boost = math.Min(s.MaxBoost, s.Boost+regen)
}

// UseBoost consumes amount of boost and reports whether enough was available.
func (s *State) UseBoost(amount float64) bool {
	if s.Boost < amount {
		return false
	}
	s.Boost = math.Max(0, s.Boost-amount)
	return true
}

// EndGame finishes the run and ratchets the best score.
func (s *State) EndGame() {
	s.GameOver = true
	s.Started = false
	s.saveBest()
}

// saveBest persists the score only when it strictly beats the best.
func (s *State) saveBest() bool {
	if s.Score <= s.BestScore {
		return false
	}
	s.BestScore = s.Score
	if s.store != nil {
		if err := s.store.SaveBestScore(s.Score); err != nil {
			s.storeFailed(err)
		}
	}
	return true
}

func (s *State) storeFailed(err error) {
	if s.onStoreErr != nil {
		s.onStoreErr(err)
	}
}

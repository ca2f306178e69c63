package run

import (
	"fmt"
	"time"
)

// Stats is a read-only snapshot of a run for HUD and game-over screens.
type Stats struct {
	Score      float64
	BestScore  float64
	Level      int
	Combo      int
	Health     float64
	MaxHealth  float64
	Boost      float64
	MaxBoost   float64
	Speed      float64
	PlayTime   time.Duration
	Invincible bool
	SpeedBoost bool
	Multiplier float64
}

// Stats returns a snapshot of the current run.
func (s *State) Stats() Stats {
	return Stats{
		Score:      s.Score,
		BestScore:  s.BestScore,
		Level:      s.Level,
		Combo:      s.Combo,
		Health:     s.Health,
		MaxHealth:  s.MaxHealth,
		Boost:      s.Boost,
		MaxBoost:   s.MaxBoost,
		Speed:      s.Speed,
		PlayTime:   s.PlayTime,
		Invincible: s.Invincible.Active,
		SpeedBoost: s.SpeedBoost.Active,
		Multiplier: s.multiplier(),
	}
}

// HealthPercent returns health as a percentage of the maximum.
func (st Stats) HealthPercent() float64 {
	return percent(st.Health, st.MaxHealth)
}

// BoostPercent returns boost as a percentage of the maximum.
func (st Stats) BoostPercent() float64 {
	return percent(st.Boost, st.MaxBoost)
}

func percent(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return v / limit * 100
}

// FormatPlayTime renders a duration as m:ss.
func FormatPlayTime(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

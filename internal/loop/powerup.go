package loop

import (
	"fmt"
	"strconv"

	"github.com/tomz197/tunnelrunner/internal/audio"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/object"
)

// collect applies a pickup to the run.
func (s *Session) collect(pu *object.PowerUp) {
	spec := pu.Kind.Spec()
	combo := s.Run.IncreaseCombo()

	s.audio.Play(audio.PowerUpSound(pu.Kind), 1)
	if v := audio.ComboVolume(combo); v > 0 {
		s.audio.Play(audio.SoundCombo, v)
	}

	switch pu.Kind {
	case config.PowerUpShield:
		s.Run.SetInvincible(spec.Duration)
		s.Craft.SetInvincible(true)
		// Re-collecting replaces the pending revert, so the look lasts as
		// long as the refreshed buff.
		s.Effects.Schedule("shield-visual", spec.Duration, func() {
			s.Craft.SetInvincible(false)
		})
		s.buffBanner(spec)

	case config.PowerUpPoints:
		bonus := spec.Value * (1 + float64(combo)*config.PointsComboFactor)
		s.Run.AddScore(bonus)
		s.hud.Notify(hud.Banner{
			Text:     comboText(combo, bonus),
			Color:    spec.Color,
			Duration: config.ComboBannerDuration,
		})

	case config.PowerUpSpeed:
		s.Run.SetSpeedBoost(spec.Duration)
		s.buffBanner(spec)

	case config.PowerUpMultiplier:
		s.Run.SetScoreMultiplier(spec.Factor, spec.Duration)
		s.buffBanner(spec)

	case config.PowerUpHealth:
		s.Run.Heal(spec.Value)
		s.hud.Notify(hud.Banner{
			Text:     healthText(spec.Value),
			Color:    spec.Color,
			Duration: config.HealthBannerDuration,
		})
	}

	if s.settings.Graphics != config.GraphicsLow {
		s.Particles.Collect(pu.Position, spec.Color)
	}
}

func (s *Session) buffBanner(spec config.PowerUpSpec) {
	s.hud.Notify(hud.Banner{
		Text:      spec.Label,
		Color:     spec.Color,
		Duration:  spec.Duration,
		Countdown: true,
	})
}

func levelText(level int) string {
	return "LEVEL " + strconv.Itoa(level) + "!"
}

func comboText(combo int, bonus float64) string {
	return fmt.Sprintf("COMBO x%d +%s", combo, hud.FormatScore(bonus))
}

func healthText(v float64) string {
	return "HEALTH +" + strconv.FormatFloat(v, 'f', -1, 64) + "!"
}

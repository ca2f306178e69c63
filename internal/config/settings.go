package config

import (
	"errors"
	"math"

	"github.com/tomz197/tunnelrunner/internal/audio"
	gamecfg "github.com/tomz197/tunnelrunner/internal/loop/config"
)

// Settings is the user's persistent configuration.
type Settings struct {
	Difficulty   gamecfg.Difficulty
	Sensitivity  float64
	Graphics     gamecfg.Graphics
	Ship         gamecfg.ShipType
	MusicVolume  float64
	SFXVolume    float64
	MusicEnabled bool
	SFXEnabled   bool
}

// DefaultSettings returns the first-run configuration.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:   gamecfg.DifficultyNormal,
		Sensitivity:  gamecfg.DefaultSensitivity,
		Graphics:     gamecfg.GraphicsMedium,
		Ship:         gamecfg.ShipDefault,
		MusicVolume:  0.3,
		SFXVolume:    0.7,
		MusicEnabled: true,
		SFXEnabled:   true,
	}
}

// Levels returns the audio part of the settings.
func (s Settings) Levels() audio.Levels {
	return audio.Levels{
		MusicVolume:  s.MusicVolume,
		SFXVolume:    s.SFXVolume,
		MusicEnabled: s.MusicEnabled,
		SFXEnabled:   s.SFXEnabled,
	}
}

// SelectDifficulty switches difficulty by name. An unknown name keeps the
// current selection and returns ErrUnknownDifficulty.
func (s *Settings) SelectDifficulty(name string) error {
	d, err := gamecfg.ParseDifficulty(name)
	if err != nil {
		return err
	}
	s.Difficulty = d
	return nil
}

// SelectShip switches ship by key, keeping the current one on error.
func (s *Settings) SelectShip(key string) error {
	ship, err := gamecfg.ParseShipType(key)
	if err != nil {
		return err
	}
	s.Ship = ship
	return nil
}

// SelectGraphics switches the graphics tier, keeping the current one on error.
func (s *Settings) SelectGraphics(name string) error {
	g, err := gamecfg.ParseGraphics(name)
	if err != nil {
		return err
	}
	s.Graphics = g
	return nil
}

// fileSettings is the on-disk form.
type fileSettings struct {
	Difficulty   string   `toml:"difficulty"`
	Sensitivity  *float64 `toml:"sensitivity"`
	Graphics     string   `toml:"graphics"`
	Ship         string   `toml:"selected_ship"`
	MusicVolume  *float64 `toml:"music_volume"`
	SFXVolume    *float64 `toml:"sfx_volume"`
	MusicEnabled *bool    `toml:"music_enabled"`
	SFXEnabled   *bool    `toml:"sfx_enabled"`
	BestScore    float64  `toml:"best_score"`
}

func toFile(s Settings, best float64) fileSettings {
	return fileSettings{
		Difficulty:   s.Difficulty.String(),
		Sensitivity:  &s.Sensitivity,
		Graphics:     s.Graphics.String(),
		Ship:         s.Ship.String(),
		MusicVolume:  &s.MusicVolume,
		SFXVolume:    &s.SFXVolume,
		MusicEnabled: &s.MusicEnabled,
		SFXEnabled:   &s.SFXEnabled,
		BestScore:    best,
	}
}

// settings merges the file over the defaults field by field. Invalid values
// fall back to their default and are reported together.
func (f fileSettings) settings() (Settings, error) {
	s := DefaultSettings()
	var errs []error
	if f.Difficulty != "" {
		errs = append(errs, s.SelectDifficulty(f.Difficulty))
	}
	if f.Graphics != "" {
		errs = append(errs, s.SelectGraphics(f.Graphics))
	}
	if f.Ship != "" {
		errs = append(errs, s.SelectShip(f.Ship))
	}
	if f.Sensitivity != nil && *f.Sensitivity > 0 {
		s.Sensitivity = ClampSensitivity(*f.Sensitivity)
	}
	if f.MusicVolume != nil {
		s.MusicVolume = unit(*f.MusicVolume)
	}
	if f.SFXVolume != nil {
		s.SFXVolume = unit(*f.SFXVolume)
	}
	if f.MusicEnabled != nil {
		s.MusicEnabled = *f.MusicEnabled
	}
	if f.SFXEnabled != nil {
		s.SFXEnabled = *f.SFXEnabled
	}
	return s, errors.Join(errs...)
}

// ClampSensitivity limits v to the range the menu offers, rounded to
// hundredths.
func ClampSensitivity(v float64) float64 {
	v = math.Min(gamecfg.SensitivityMax, math.Max(gamecfg.SensitivityMin, v))
	return math.Round(v*100) / 100
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

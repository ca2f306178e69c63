// Package audio plays synthesized game sounds. There are no sound files:
// every effect is built from oscillators at play time.
package audio

import (
	"fmt"
	"math"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
)

// Sound is the closed set of sound events.
type Sound int

const (
	SoundEngine Sound = iota
	SoundExplosion
	SoundPowerUpCollect
	SoundPowerUpShield
	SoundPowerUpSpeed
	SoundPowerUpHealth
	SoundDamage
	SoundLevelUp
	SoundGameOver
	SoundMenuClick
	SoundBoost
	SoundCombo
	soundCount
)

var soundNames = [soundCount]string{
	"engine", "explosion", "powerupCollect", "powerupShield", "powerupSpeed",
	"powerupHealth", "damage", "levelUp", "gameOver", "menuClick", "boost", "combo",
}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return fmt.Sprintf("Sound(%d)", int(s))
	}
	return soundNames[s]
}

// Track is a looping music track.
type Track int

const (
	TrackMenu Track = iota
	TrackRun
)

// Sink receives sound events. Play never blocks and never fails loudly;
// a sound that cannot be played is skipped.
type Sink interface {
	Play(s Sound, volume float64)
}

// MusicPlayer is implemented by sinks that can also loop music.
type MusicPlayer interface {
	PlayMusic(t Track)
	PauseMusic(paused bool)
	StopMusic()
}

// Nop discards every event.
type Nop struct{}

// Play implements Sink.
func (Nop) Play(Sound, float64) {}

// PowerUpSound returns the pickup sound for kind.
func PowerUpSound(kind config.PowerUpKind) Sound {
	switch kind {
	case config.PowerUpShield:
		return SoundPowerUpShield
	case config.PowerUpSpeed:
		return SoundPowerUpSpeed
	case config.PowerUpHealth:
		return SoundPowerUpHealth
	default:
		return SoundPowerUpCollect
	}
}

// ComboVolume returns the combo chime volume, or 0 when a combo of this
// size plays no chime.
func ComboVolume(combo int) float64 {
	if combo <= 1 {
		return 0
	}
	return math.Min(1, 0.3+float64(combo)*0.1)
}

// Levels are the user's volume settings.
type Levels struct {
	MusicVolume  float64
	SFXVolume    float64
	MusicEnabled bool
	SFXEnabled   bool
}

// DefaultLevels mirrors the first-run settings.
func DefaultLevels() Levels {
	return Levels{MusicVolume: 0.3, SFXVolume: 0.7, MusicEnabled: true, SFXEnabled: true}
}

// effect returns the final gain for a sound effect at volume.
func (l Levels) effect(volume float64) float64 {
	if !l.SFXEnabled {
		return 0
	}
	return clamp01(volume) * clamp01(l.SFXVolume)
}

func (l Levels) music() float64 {
	if !l.MusicEnabled {
		return 0
	}
	return clamp01(l.MusicVolume)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

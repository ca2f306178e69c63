package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Selection errors. Callers log these and keep their previous selection.
var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownShip       = errors.New("unknown ship type")
	ErrUnknownGraphics   = errors.New("unknown graphics tier")
)

// Difficulty is a named difficulty tier.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	DifficultyInsane
	difficultyCount
)

// Profile holds the spawn/speed/damage parameters of a difficulty tier.
// The static table is never handed out by pointer; a running session owns a
// copy that level-ups escalate.
type Profile struct {
	TunnelRadius     float64
	ObstacleRate     float64 // Spawn chance per tick, scaled by current speed
	PowerUpRate      float64 // Spawn chance per tick
	MaxSpeed         float64
	DamageMultiplier float64
}

var difficultyNames = [difficultyCount]string{"easy", "normal", "hard", "insane"}

var profiles = [difficultyCount]Profile{
	DifficultyEasy:   {TunnelRadius: 18, ObstacleRate: 0.06, PowerUpRate: 0.015, MaxSpeed: 2.0, DamageMultiplier: 0.7},
	DifficultyNormal: {TunnelRadius: 15, ObstacleRate: 0.12, PowerUpRate: 0.008, MaxSpeed: 3.0, DamageMultiplier: 1.0},
	DifficultyHard:   {TunnelRadius: 12, ObstacleRate: 0.18, PowerUpRate: 0.005, MaxSpeed: 4.0, DamageMultiplier: 1.5},
	DifficultyInsane: {TunnelRadius: 10, ObstacleRate: 0.25, PowerUpRate: 0.003, MaxSpeed: 5.0, DamageMultiplier: 2.0},
}

// Difficulties lists every tier in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyInsane}
}

// ParseDifficulty resolves a tier by name (case-insensitive).
func ParseDifficulty(name string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if strings.EqualFold(n, name) {
			return Difficulty(i), nil
		}
	}
	return DifficultyNormal, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

func (d Difficulty) String() string {
	if d < 0 || d >= difficultyCount {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Profile returns a copy of the tier's static profile.
func (d Difficulty) Profile() Profile {
	if d < 0 || d >= difficultyCount {
		return profiles[DifficultyNormal]
	}
	return profiles[d]
}

// Next returns the following tier, wrapping around.
func (d Difficulty) Next() Difficulty {
	return (d + 1) % difficultyCount
}

// Escalate applies one level-up worth of difficulty drift.
func (p *Profile) Escalate() {
	p.ObstacleRate *= ObstacleRateGrowth
	if p.PowerUpRate > PowerUpRateFloor {
		p.PowerUpRate = max(PowerUpRateFloor, p.PowerUpRate*PowerUpRateDecay)
	}
}

// ShipType selects one of the fixed craft models.
type ShipType int

const (
	ShipDefault ShipType = iota
	ShipFighter
	ShipCruiser
	shipCount
)

// ShipStats are the per-ship base stats.
type ShipStats struct {
	SpeedFactor float64
	MaxHealth   float64
	Agility     float64
	MaxBoost    float64
}

// ShipSpec describes a ship type.
type ShipSpec struct {
	Key         string
	Name        string
	Description string
	Stats       ShipStats
	Scale       float64
	LightColor  uint32
}

var ships = [shipCount]ShipSpec{
	ShipDefault: {
		Key: "default", Name: "Classic", Description: "Balanced ship for beginners",
		Stats: ShipStats{SpeedFactor: 1.0, MaxHealth: 100, Agility: 1.0, MaxBoost: 100},
		Scale: 0.5, LightColor: 0x00ff00,
	},
	ShipFighter: {
		Key: "fighter", Name: "Star Fighter", Description: "Fast and agile, but fragile",
		Stats: ShipStats{SpeedFactor: 1.3, MaxHealth: 80, Agility: 1.5, MaxBoost: 120},
		Scale: 0.4, LightColor: 0x00ccff,
	},
	ShipCruiser: {
		Key: "cruiser", Name: "Heavy Cruiser", Description: "Tough but slow",
		Stats: ShipStats{SpeedFactor: 0.8, MaxHealth: 150, Agility: 0.7, MaxBoost: 80},
		Scale: 0.6, LightColor: 0xff8800,
	},
}

// ShipTypes lists every ship in menu order.
func ShipTypes() []ShipType {
	return []ShipType{ShipDefault, ShipFighter, ShipCruiser}
}

// ParseShipType resolves a ship by key (case-insensitive).
func ParseShipType(key string) (ShipType, error) {
	for i, s := range ships {
		if strings.EqualFold(s.Key, key) {
			return ShipType(i), nil
		}
	}
	return ShipDefault, fmt.Errorf("%w: %q", ErrUnknownShip, key)
}

func (s ShipType) String() string {
	if s < 0 || s >= shipCount {
		return fmt.Sprintf("ShipType(%d)", int(s))
	}
	return ships[s].Key
}

// Spec returns a copy of the ship's table entry.
func (s ShipType) Spec() ShipSpec {
	if s < 0 || s >= shipCount {
		return ships[ShipDefault]
	}
	return ships[s]
}

// Next returns the following ship type, wrapping around.
func (s ShipType) Next() ShipType {
	return (s + 1) % shipCount
}

// PowerUpKind is the closed set of pickups.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpPoints
	PowerUpSpeed
	PowerUpMultiplier
	PowerUpHealth
	powerUpCount
)

// PowerUpSpec carries the effect data of a pickup kind. Duration is zero for
// instant effects; Value is zero for timed ones.
type PowerUpSpec struct {
	Key      string
	Label    string
	Color    uint32
	Duration time.Duration
	Value    float64
	Factor   float64 // Score multiplier factor
}

var powerUps = [powerUpCount]PowerUpSpec{
	PowerUpShield:     {Key: "shield", Label: "INVINCIBLE!", Color: 0x00ff00, Duration: 5 * time.Second},
	PowerUpPoints:     {Key: "points", Label: "BONUS", Color: 0x0088ff, Value: 1000},
	PowerUpSpeed:      {Key: "speed", Label: "SPEED!", Color: 0xffff00, Duration: 3 * time.Second},
	PowerUpMultiplier: {Key: "multiplier", Label: "MULTIPLIER x2!", Color: 0xff00ff, Duration: 8 * time.Second, Factor: 2},
	PowerUpHealth:     {Key: "health", Label: "HEALTH", Color: 0xff0000, Value: 30},
}

// PowerUpKinds lists every pickup kind; spawners choose uniformly from it.
func PowerUpKinds() []PowerUpKind {
	return []PowerUpKind{PowerUpShield, PowerUpPoints, PowerUpSpeed, PowerUpMultiplier, PowerUpHealth}
}

func (k PowerUpKind) String() string {
	if k < 0 || k >= powerUpCount {
		return fmt.Sprintf("PowerUpKind(%d)", int(k))
	}
	return powerUps[k].Key
}

// Spec returns the kind's effect data.
func (k PowerUpKind) Spec() PowerUpSpec {
	if k < 0 || k >= powerUpCount {
		return PowerUpSpec{}
	}
	return powerUps[k]
}

// Graphics is the rendering detail tier.
type Graphics int

const (
	GraphicsLow Graphics = iota
	GraphicsMedium
	GraphicsHigh
	graphicsCount
)

var graphicsNames = [graphicsCount]string{"low", "medium", "high"}

// ParseGraphics resolves a graphics tier by name.
func ParseGraphics(name string) (Graphics, error) {
	for i, n := range graphicsNames {
		if strings.EqualFold(n, name) {
			return Graphics(i), nil
		}
	}
	return GraphicsMedium, fmt.Errorf("%w: %q", ErrUnknownGraphics, name)
}

func (g Graphics) String() string {
	if g < 0 || g >= graphicsCount {
		return fmt.Sprintf("Graphics(%d)", int(g))
	}
	return graphicsNames[g]
}

// Next returns the following graphics tier, wrapping around.
func (g Graphics) Next() Graphics {
	return (g + 1) % graphicsCount
}

// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Loop timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Tunnel streaming. Units are world units along the travel (z) axis;
// the camera sits at CameraZ looking down -z.
const (
	TunnelSegmentCount   = 25
	TunnelSegmentSpacing = 5.0
	TunnelRecycleZ       = 25.0  // Segments past this z are recycled to the far end
	TunnelFallbackFarZ   = -25.0 // Far coordinate used when no segment is left
	TunnelAdvanceFactor  = 0.5   // Segment z advance per tick = speed * factor
	DecorationMinCount   = 20
	DecorationExtraCount = 10 // Count is Min + rand[0, Extra)
	DecorationRadiusSpan = 2.0
	DecorationBaseScale  = 1.5
	DecorationSpinX      = 0.005 // Radians per tick
	DecorationSpinY      = 0.003
)

// Camera
const (
	CameraZ   = 5.0
	CameraFOV = 75.0 // Vertical field of view, degrees
)

// Entities
const (
	EntitySpawnZ         = -30.0
	EntityAdvanceFactor  = 1.2  // Entity z advance per tick = speed * factor
	CameraPlaneZ         = 15.0 // Entities past this z are discarded
	CollisionDistance    = 2.0
	ObstacleRadiusMargin = 3.0
	PowerUpRadiusMargin  = 2.0
	ObstacleSpin         = 0.02
	PowerUpSpin          = 0.05
	ObstacleBaseScale    = 0.05
	PowerUpScale         = 0.08
	BaseDamage           = 20.0
	PointsComboFactor    = 0.1 // Points pickup bonus = value * (1 + combo * factor)
)

// Craft
const (
	CraftEdgeMargin     = 2.0  // Craft stays within ±(radius - margin)
	CraftTiltPerDelta   = -0.3 // Target tilt = dx * factor
	CraftTiltEase       = 0.1
	CraftTiltDecay      = 0.95
	CraftBaseGlow       = 1.0
	CraftBoostGlow      = 1.5 // Glow = factor * intensity
	CraftBoostRevert    = 200 * time.Millisecond
	CraftFlashDuration  = 200 * time.Millisecond
	CraftShakeSteps     = 5
	CraftShakeInterval  = 50 * time.Millisecond
	CraftShakeReset     = 250 * time.Millisecond
	CraftShakeAmplitude = 0.2
)

// Run state
const (
	InitialHealth        = 100.0
	InitialSpeed         = 1.0
	InitialMaxBoost      = 100.0
	SpeedIncrease        = 0.002
	BoostedSpeedIncrease = 0.05
	SpeedBoostFactor     = 1.3
	BoostRegen           = 0.1
	BoostRegenUpgraded   = 0.15 // Used when a ship raises maxBoost above InitialMaxBoost
	BoostCost            = 2.0
	ComboBonusPerStep    = 5.0
	BaseScorePerSpeed    = 10.0 // Per-tick score = floor(speed * factor)
)

// Level-up escalation
const (
	ObstacleRateGrowth  = 1.1
	PowerUpRateDecay    = 0.95
	PowerUpRateFloor    = 0.001
	LevelBannerDuration = 3 * time.Second
)

// LevelThresholds are the ascending score thresholds; level is the index of
// the first threshold the score has not reached yet.
var LevelThresholds = []float64{
	0, 5000, 15000, 35000, 65000, 100000,
	150000, 220000, 300000, 400000,
}

// Input handling
const (
	DefaultSensitivity  = 0.3
	SensitivityMin      = 0.1
	SensitivityMax      = 1.0
	SensitivityStep     = 0.05
	TurboSpeedKick      = 0.05
	TurboGlow           = 1.2
	BoostSpeedKick      = 0.1
	BoostSpeedCapFactor = 1.5
	BoostGlow           = 1.5
	TurboSoundVolume    = 0.2
)

// HUD banners
const (
	ComboBannerDuration  = 2 * time.Second
	HealthBannerDuration = 2 * time.Second
)

// Particles
const (
	ExplosionParticles = 20
	ExplosionLife      = 1.0
	CollectParticles   = 10
	CollectLife        = 0.8
	ParticleDrag       = 0.98
	ParticleFade       = 0.02 // Life lost per tick
)

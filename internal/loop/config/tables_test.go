package config

import (
	"errors"
	"math"
	"testing"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"NORMAL", DifficultyNormal, false},
		{"Hard", DifficultyHard, false},
		{"insane", DifficultyInsane, false},
		{"nightmare", DifficultyNormal, true},
		{"", DifficultyNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.name)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDifficulty(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnknownDifficulty) {
			t.Fatalf("ParseDifficulty(%q) err = %v, want ErrUnknownDifficulty", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDifficulty(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProfileIsCopied(t *testing.T) {
	p := DifficultyNormal.Profile()
	p.ObstacleRate = 99
	if DifficultyNormal.Profile().ObstacleRate == 99 {
		t.Fatal("mutating a returned profile changed the static table")
	}
}

func TestEscalate(t *testing.T) {
	p := DifficultyNormal.Profile()
	p.Escalate()
	if got, want := p.ObstacleRate, 0.132; math.Abs(got-want) > 1e-12 {
		t.Fatalf("obstacle rate = %v, want %v", got, want)
	}
	if got, want := p.PowerUpRate, 0.0076; math.Abs(got-want) > 1e-12 {
		t.Fatalf("power-up rate = %v, want %v", got, want)
	}
}

func TestEscalateRespectsPowerUpFloor(t *testing.T) {
	p := Profile{ObstacleRate: 0.1, PowerUpRate: 0.00101}
	for i := 0; i < 50; i++ {
		p.Escalate()
		if p.PowerUpRate < PowerUpRateFloor {
			t.Fatalf("power-up rate %v dropped below floor after %d escalations", p.PowerUpRate, i+1)
		}
	}
	if p.PowerUpRate != PowerUpRateFloor {
		t.Fatalf("power-up rate = %v, want clamped to %v", p.PowerUpRate, PowerUpRateFloor)
	}
}

func TestParseShipType(t *testing.T) {
	for _, s := range ShipTypes() {
		got, err := ParseShipType(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseShipType(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseShipType("battleship"); !errors.Is(err, ErrUnknownShip) {
		t.Fatalf("expected ErrUnknownShip, got %v", err)
	}
}

func TestPowerUpTable(t *testing.T) {
	kinds := PowerUpKinds()
	if len(kinds) != int(powerUpCount) {
		t.Fatalf("PowerUpKinds() has %d entries, want %d", len(kinds), powerUpCount)
	}
	if PowerUpMultiplier.Spec().Factor != 2 {
		t.Fatalf("multiplier factor = %v, want 2", PowerUpMultiplier.Spec().Factor)
	}
	if PowerUpShield.Spec().Duration.Milliseconds() != 5000 {
		t.Fatalf("shield duration = %v, want 5s", PowerUpShield.Spec().Duration)
	}
	if (PowerUpKind(42)).Spec() != (PowerUpSpec{}) {
		t.Fatal("out-of-range kind should have an empty spec")
	}
}

func TestLevelThresholdsAscending(t *testing.T) {
	if LevelThresholds[0] != 0 {
		t.Fatalf("first threshold = %v, want 0", LevelThresholds[0])
	}
	for i := 1; i < len(LevelThresholds); i++ {
		if LevelThresholds[i] <= LevelThresholds[i-1] {
			t.Fatalf("thresholds not strictly ascending at %d", i)
		}
	}
}

func TestNextWraps(t *testing.T) {
	if DifficultyInsane.Next() != DifficultyEasy {
		t.Fatal("difficulty Next should wrap")
	}
	if ShipCruiser.Next() != ShipDefault {
		t.Fatal("ship Next should wrap")
	}
	if GraphicsHigh.Next() != GraphicsLow {
		t.Fatal("graphics Next should wrap")
	}
}

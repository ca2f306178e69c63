package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
)

func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if math.IsNaN(buf[i][0]) || math.Abs(buf[i][0]) > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	return total
}

func TestSynthEverySoundIsFinite(t *testing.T) {
	rate := beep.SampleRate(22050)
	for s := Sound(0); s < soundCount; s++ {
		st := Synth(s, rate)
		if st == nil {
			t.Fatalf("no synth for %v", s)
		}
		n := drain(t, st, rate.N(5*time.Second))
		if n == 0 || n >= rate.N(5*time.Second) {
			t.Fatalf("%v streamed %d samples", s, n)
		}
	}
	if Synth(soundCount, rate) != nil {
		t.Fatal("unknown sound should have no synth")
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := newOscillator(440, 100*time.Millisecond, WaveSquare, rate)
	if n := drain(t, osc, rate.N(time.Second)); n != rate.N(100*time.Millisecond) {
		t.Fatalf("oscillator streamed %d samples, want %d", n, rate.N(100*time.Millisecond))
	}
}

func TestMusicLoops(t *testing.T) {
	rate := beep.SampleRate(22050)
	m := newMusic(TrackRun, rate)
	if n := drain(t, m, rate.N(3*time.Second)); n < rate.N(3*time.Second) {
		t.Fatalf("music stopped after %d samples", n)
	}
}

func TestComboVolume(t *testing.T) {
	tests := []struct {
		combo int
		want  float64
	}{
		{0, 0}, {1, 0}, {2, 0.5}, {5, 0.8}, {20, 1},
	}
	for _, tt := range tests {
		if got := ComboVolume(tt.combo); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("ComboVolume(%d) = %v, want %v", tt.combo, got, tt.want)
		}
	}
}

func TestLevels(t *testing.T) {
	l := DefaultLevels()
	if got := l.effect(0.5); math.Abs(got-0.35) > 1e-12 {
		t.Fatalf("effect gain = %v", got)
	}
	l.SFXEnabled = false
	if l.effect(1) != 0 {
		t.Fatal("disabled sfx should be silent")
	}
	l.MusicEnabled = false
	if l.music() != 0 {
		t.Fatal("disabled music should be silent")
	}
}

func TestPowerUpSound(t *testing.T) {
	if PowerUpSound(config.PowerUpShield) != SoundPowerUpShield {
		t.Fatal("shield sound")
	}
	if PowerUpSound(config.PowerUpMultiplier) != SoundPowerUpCollect {
		t.Fatal("multiplier falls back to the generic pickup sound")
	}
}

func TestSpeakerWithoutDeviceIsSilent(t *testing.T) {
	s := NewSpeaker(DefaultLevels(), log.New(io.Discard))
	s.Play(SoundDamage, 1)
	s.PlayMusic(TrackMenu)
	s.PauseMusic(true)
	s.StopMusic()
	s.Close()
	var _ Sink = s
	var _ MusicPlayer = s
	var _ Sink = Nop{}
}

package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// newOscillator creates a tone of freq Hz lasting d.
func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= e.total-e.release {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero
// volume maps to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a shaped tone with a short attack and a release over half its length.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

func arpeggio(freqs []float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = note(f, d, wave, rate)
	}
	return beep.Seq(notes...)
}

// Synth builds the streamer for a sound effect at unit gain.
// Unknown sounds return nil.
func Synth(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundEngine:
		return newVolume(note(90, 150*time.Millisecond, WaveSaw, rate), 0.5)
	case SoundExplosion:
		d := 400 * time.Millisecond
		return newEnvelope(newOscillator(0, d, WaveNoise, rate), d, 0, 350*time.Millisecond, rate)
	case SoundPowerUpCollect:
		return arpeggio([]float64{659.25, 987.77}, 80*time.Millisecond, WaveSquare, rate)
	case SoundPowerUpShield:
		return arpeggio([]float64{523.25, 783.99, 1046.5}, 70*time.Millisecond, WaveSine, rate)
	case SoundPowerUpSpeed:
		return arpeggio([]float64{440, 659.25, 880}, 50*time.Millisecond, WaveSaw, rate)
	case SoundPowerUpHealth:
		d := 250 * time.Millisecond
		return beep.Mix(
			newVolume(note(392, d, WaveSine, rate), 0.7),
			newVolume(note(784, d, WaveSine, rate), 0.3),
		)
	case SoundDamage:
		d := 200 * time.Millisecond
		return newEnvelope(newOscillator(100, d, WaveSaw, rate), d, 10*time.Millisecond, 100*time.Millisecond, rate)
	case SoundLevelUp:
		return arpeggio([]float64{523.25, 659.25, 783.99, 1046.5}, 90*time.Millisecond, WaveSquare, rate)
	case SoundGameOver:
		return arpeggio([]float64{392, 329.63, 261.63}, 300*time.Millisecond, WaveSine, rate)
	case SoundMenuClick:
		tone, err := generators.SineTone(rate, 1200)
		if err != nil {
			return nil
		}
		return beep.Take(rate.N(30*time.Millisecond), tone)
	case SoundBoost:
		d := 120 * time.Millisecond
		return newEnvelope(newOscillator(0, d, WaveNoise, rate), d, 20*time.Millisecond, 80*time.Millisecond, rate)
	case SoundCombo:
		d := 200 * time.Millisecond
		return beep.Mix(
			newVolume(note(880, d, WaveSine, rate), 0.7),
			newVolume(note(1760, d, WaveSine, rate), 0.3),
		)
	}
	return nil
}

// musicLoop is an endless bass-and-kick pattern.
type musicLoop struct {
	rate  beep.SampleRate
	pos   int
	beat  int
	roots []float64
}

func newMusic(t Track, rate beep.SampleRate) *musicLoop {
	m := &musicLoop{rate: rate, beat: rate.N(600 * time.Millisecond), roots: []float64{110, 110, 98, 130.81}}
	if t == TrackMenu {
		m.beat = rate.N(900 * time.Millisecond)
		m.roots = []float64{82.41, 98, 110, 98}
	}
	return m
}

func (m *musicLoop) Stream(samples [][2]float64) (n int, ok bool) {
	kickLen := m.rate.N(100 * time.Millisecond)
	for i := range samples {
		beatPos := m.pos % m.beat
		bar := (m.pos / m.beat) % len(m.roots)
		t := float64(beatPos) / float64(m.rate)

		kick := 0.0
		if beatPos < kickLen {
			env := 1 - float64(beatPos)/float64(kickLen)
			kick = 0.4 * env * math.Sin(2*math.Pi*60*(1+2*env)*t)
		}
		bass := 0.15 * math.Sin(2*math.Pi*m.roots[bar]*t)

		samples[i][0] = kick + bass
		samples[i][1] = kick + bass
		m.pos++
	}
	return len(samples), true
}

func (m *musicLoop) Err() error { return nil }

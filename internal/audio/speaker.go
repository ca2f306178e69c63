package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays sounds on the local audio device through beep's speaker.
// The device is process-wide, so only one Speaker should be initialized.
type Speaker struct {
	mu          sync.Mutex
	levels      Levels
	music       *beep.Ctrl
	initialized bool
	logger      *log.Logger
}

// NewSpeaker creates a speaker with the given levels. Call Init before use.
func NewSpeaker(levels Levels, logger *log.Logger) *Speaker {
	return &Speaker{levels: levels, logger: logger}
}

// Init opens the audio device with a 100ms buffer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// SetLevels applies new volume settings; running music picks up the change
// on the next track start.
func (s *Speaker) SetLevels(l Levels) {
	s.mu.Lock()
	s.levels = l
	s.mu.Unlock()
}

// Play implements Sink. It returns immediately; mixing happens on the
// speaker goroutine.
func (s *Speaker) Play(snd Sound, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	gain := s.levels.effect(volume)
	if gain <= 0 {
		return
	}
	st := Synth(snd, sampleRate)
	if st == nil {
		s.logger.Debug("sound unavailable", "sound", snd)
		return
	}
	speaker.Play(newVolume(st, gain))
}

// PlayMusic implements MusicPlayer, replacing any running track.
func (s *Speaker) PlayMusic(t Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	s.stopMusicLocked()
	gain := s.levels.music()
	if gain <= 0 {
		return
	}
	s.music = &beep.Ctrl{Streamer: newVolume(newMusic(t, sampleRate), gain)}
	speaker.Play(s.music)
}

// PauseMusic implements MusicPlayer.
func (s *Speaker) PauseMusic(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = paused
	speaker.Unlock()
}

// StopMusic implements MusicPlayer.
func (s *Speaker) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopMusicLocked()
}

func (s *Speaker) stopMusicLocked() {
	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Streamer = nil
	speaker.Unlock()
	s.music = nil
}

// Close silences everything and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	s.stopMusicLocked()
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

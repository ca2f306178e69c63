// Package hud receives numeric status pushes and transient banners from the
// loop and renders them.
package hud

import (
	"time"
)

// Frame is one push of the status fields.
type Frame struct {
	Clock      time.Duration // Session clock, used to age banners
	Score      float64
	BestScore  float64
	Level      int
	Combo      int
	Health     float64 // Percent
	Boost      float64 // Percent
	Speed      float64
	PlayTime   time.Duration
	Invincible bool
	SpeedBoost bool
	Multiplier float64
}

// Banner is a transient notification.
type Banner struct {
	Text      string
	Color     uint32
	Duration  time.Duration
	Countdown bool // Show the remaining time next to the text
}

// Sink receives HUD pushes. It never reports failures back.
type Sink interface {
	Update(f Frame)
	Notify(b Banner)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Update(Frame)  {}
func (Nop) Notify(Banner) {}

// ActiveBanner is a banner with its remaining time.
type ActiveBanner struct {
	Banner
	Remaining time.Duration
}

// Banners ages notifications against the session clock.
type Banners struct {
	clock  time.Duration
	active []activeBanner
}

type activeBanner struct {
	Banner
	until time.Duration
}

// Tick moves the clock and drops expired banners.
func (b *Banners) Tick(clock time.Duration) {
	b.clock = clock
	kept := b.active[:0]
	for _, a := range b.active {
		if a.until > clock {
			kept = append(kept, a)
		}
	}
	b.active = kept
}

// Add shows a banner from the current clock. A banner with the same text
// replaces the earlier one so a refreshed pickup restarts its countdown.
func (b *Banners) Add(banner Banner) {
	for i := range b.active {
		if b.active[i].Text == banner.Text {
			b.active[i] = activeBanner{Banner: banner, until: b.clock + banner.Duration}
			return
		}
	}
	b.active = append(b.active, activeBanner{Banner: banner, until: b.clock + banner.Duration})
}

// Active returns the live banners, oldest first.
func (b *Banners) Active() []ActiveBanner {
	out := make([]ActiveBanner, 0, len(b.active))
	for _, a := range b.active {
		out = append(out, ActiveBanner{Banner: a.Banner, Remaining: a.until - b.clock})
	}
	return out
}

// Clear drops every banner.
func (b *Banners) Clear() {
	b.active = b.active[:0]
}

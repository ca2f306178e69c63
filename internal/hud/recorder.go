package hud

import "sync"

// Recorder keeps the latest frame and live banners for a remote renderer
// that draws the HUD itself. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	frame   Frame
	banners Banners
}

// Update implements Sink.
func (r *Recorder) Update(f Frame) {
	r.mu.Lock()
	r.frame = f
	r.banners.Tick(f.Clock)
	r.mu.Unlock()
}

// Notify implements Sink.
func (r *Recorder) Notify(b Banner) {
	r.mu.Lock()
	r.banners.Add(b)
	r.mu.Unlock()
}

// Reset drops the frame and banners.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.frame = Frame{}
	r.banners.Clear()
	r.mu.Unlock()
}

// Snapshot returns the latest frame and the banners still showing.
func (r *Recorder) Snapshot() (Frame, []ActiveBanner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame, r.banners.Active()
}

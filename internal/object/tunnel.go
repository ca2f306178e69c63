package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// Decoration is a non-colliding rock on a segment's ring.
type Decoration struct {
	Angle    float64
	Radius   float64
	Scale    float64
	Rotation physics.Vec3
	model    Model
}

// Segment is one ring of the tunnel.
type Segment struct {
	Z           float64
	Decorations []Decoration
}

// AppendParts draws every decoration of the ring.
func (s *Segment) AppendParts(dst []Part) []Part {
	for i := range s.Decorations {
		d := &s.Decorations[i]
		x, y := physics.Polar(d.Angle, d.Radius)
		dst = append(dst, Part{
			Position: physics.Vec3{X: x, Y: y, Z: s.Z},
			Model:    d.model,
			Scale:    d.Scale,
			Spin:     d.Rotation.X + d.Rotation.Y,
			Glow:     config.CraftBaseGlow,
			Life:     1,
		})
	}
	return dst
}

// Tunnel streams a constant number of segments past the camera,
// recycling passed ones to the far end.
type Tunnel struct {
	Radius float64

	segments []*Segment
	scene    Scene
	assets   Assets
	rng      *rand.Rand
}

// NewTunnel builds the initial segments at z = 0, -spacing, ... and adds them
// to the scene.
func NewTunnel(radius float64, scene Scene, assets Assets, rng *rand.Rand) *Tunnel {
	t := &Tunnel{
		Radius:   radius,
		segments: make([]*Segment, 0, config.TunnelSegmentCount),
		scene:    scene,
		assets:   assets,
		rng:      rng,
	}
	for i := 0; i < config.TunnelSegmentCount; i++ {
		t.add(float64(i) * -config.TunnelSegmentSpacing)
	}
	return t
}

func (t *Tunnel) add(z float64) {
	count := config.DecorationMinCount + t.rng.Intn(config.DecorationExtraCount)
	seg := &Segment{Z: z, Decorations: make([]Decoration, count)}
	for i := range seg.Decorations {
		seg.Decorations[i] = Decoration{
			Angle:  float64(i) / float64(count) * 2 * math.Pi,
			Radius: t.Radius + t.rng.Float64()*config.DecorationRadiusSpan,
			Scale:  config.DecorationBaseScale + t.rng.Float64()*config.DecorationBaseScale,
			Rotation: physics.Vec3{
				X: t.rng.Float64() * 2 * math.Pi,
				Y: t.rng.Float64() * 2 * math.Pi,
				Z: t.rng.Float64() * 2 * math.Pi,
			},
			model: t.assets.CloneModel(ModelDecoration),
		}
	}
	t.segments = append(t.segments, seg)
	t.scene.Add(seg)
}

// Update advances every segment by speed and refills the far end.
func (t *Tunnel) Update(speed float64) {
	kept := t.segments[:0]
	for _, seg := range t.segments {
		seg.Z += speed * config.TunnelAdvanceFactor
		for i := range seg.Decorations {
			seg.Decorations[i].Rotation.X += config.DecorationSpinX
			seg.Decorations[i].Rotation.Y += config.DecorationSpinY
		}
		if seg.Z > config.TunnelRecycleZ {
			t.scene.Remove(seg)
			continue
		}
		kept = append(kept, seg)
	}
	for i := len(kept); i < len(t.segments); i++ {
		t.segments[i] = nil
	}
	t.segments = kept

	for len(t.segments) < config.TunnelSegmentCount {
		t.add(t.farZ() - config.TunnelSegmentSpacing)
	}
}

// farZ returns the most distant segment coordinate.
func (t *Tunnel) farZ() float64 {
	if len(t.segments) == 0 {
		return config.TunnelFallbackFarZ
	}
	far := t.segments[0].Z
	for _, seg := range t.segments[1:] {
		far = math.Min(far, seg.Z)
	}
	return far
}

// Len returns the number of live segments.
func (t *Tunnel) Len() int {
	return len(t.segments)
}

// Segments returns the live segments. Order is unspecified.
func (t *Tunnel) Segments() []*Segment {
	return t.segments
}

// Dispose removes every segment from the scene.
func (t *Tunnel) Dispose() {
	for _, seg := range t.segments {
		t.scene.Remove(seg)
	}
	t.segments = t.segments[:0]
}

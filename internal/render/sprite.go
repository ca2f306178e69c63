package render

import (
	"math"

	"github.com/tomz197/tunnelrunner/internal/draw"
	"github.com/tomz197/tunnelrunner/internal/object"
	"github.com/tomz197/tunnelrunner/internal/physics"
)

// glyphRadius is the projected radius from which a sprite carries its glyph.
const glyphRadius = 2.5

const (
	flashColor  = 0xffffff
	ghostFactor = 0.6
	ringColor   = 0x334455
)

// Sprite is a projected part: a colored disc in the camera's logical view.
type Sprite struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color uint32  `json:"color"`
	Glyph string  `json:"glyph,omitempty"`
	Ghost bool    `json:"ghost,omitempty"`
}

// Project converts world parts into sprites, skipping the ones that fall
// behind the camera or outside the view. Order is preserved.
func Project(cam draw.Camera, parts []object.Part, dst []Sprite) []Sprite {
	for _, p := range parts {
		pt, scale, ok := cam.Project(p.Position)
		if !ok {
			continue
		}
		r := p.Model.Radius * p.Scale * scale
		if !cam.Visible(pt, r) {
			continue
		}
		sp := Sprite{X: pt.X, Y: pt.Y, R: r, Color: shade(p), Ghost: p.Ghost}
		if p.Model.Glyph != 0 && (p.Model.Placeholder || r >= glyphRadius) {
			sp.Glyph = string(p.Model.Glyph)
		}
		dst = append(dst, sp)
	}
	return dst
}

func shade(p object.Part) uint32 {
	if p.Flash {
		return flashColor
	}
	f := p.Life
	if p.Glow > 0 {
		f *= p.Glow
	}
	if p.Ghost {
		f *= ghostFactor
	}
	return draw.Scale(p.Model.Color, f)
}

// Paint draws sprites onto the canvas in order.
func Paint(c *draw.Canvas, sprites []Sprite) {
	for _, sp := range sprites {
		center := draw.Point{X: sp.X, Y: sp.Y}
		c.FillCircle(center, sp.R, sp.Color)
		if sp.Glyph != "" {
			for _, ch := range sp.Glyph {
				c.SetGlyph(sp.X, sp.Y, ch, flashColor)
				break
			}
		}
	}
}

// Ring is a projected tunnel segment outline.
type Ring struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// ProjectRings projects the tunnel wall at each segment depth.
func ProjectRings(cam draw.Camera, radius float64, depths []float64, dst []Ring) []Ring {
	for _, z := range depths {
		pt, scale, ok := cam.Project(physics.Vec3{Z: z})
		if !ok {
			continue
		}
		dst = append(dst, Ring{X: pt.X, Y: pt.Y, R: radius * scale})
	}
	return dst
}

// Rings outlines the tunnel wall at each segment depth.
func Rings(c *draw.Canvas, cam draw.Camera, radius float64, depths []float64) {
	for _, r := range ProjectRings(cam, radius, depths, nil) {
		segments := int(math.Min(48, math.Max(12, r.R/2)))
		c.DrawCircle(draw.Point{X: r.X, Y: r.Y}, r.R, segments, ringColor)
	}
}

package netplay

import (
	"fmt"

	"github.com/tomz197/tunnelrunner/internal/draw"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/loop"
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/object"
	"github.com/tomz197/tunnelrunner/internal/render"
	"github.com/tomz197/tunnelrunner/internal/run"
)

// sender is the write half of a connection.
type sender interface {
	Send(b []byte) error
}

// View implements loop.View by sending each tick as a Frame.
type View struct {
	out sender
	hud *hud.Recorder
	cam draw.Camera

	parts  []object.Part
	depths []float64
}

// NewView creates a view writing to out. rec must be the HUD sink the game
// was built with.
func NewView(out sender, rec *hud.Recorder) *View {
	return &View{
		out: out,
		hud: rec,
		cam: draw.Camera{
			Z:          config.CameraZ,
			FOV:        config.CameraFOV,
			ViewWidth:  config.ViewWidth,
			ViewHeight: config.ViewHeight,
		},
	}
}

// Draw implements loop.View.
func (v *View) Draw(g *loop.Game) error {
	b, err := Encode(MsgFrame, v.Frame(g))
	if err != nil {
		return err
	}
	return v.out.Send(b)
}

// Frame builds the frame for the current state of g.
func (v *View) Frame(g *loop.Game) Frame {
	s := g.Settings()
	ship := s.Ship.Spec()
	f := Frame{
		Screen:  g.Screen().String(),
		View:    ViewSize{W: v.cam.ViewWidth, H: v.cam.ViewHeight},
		Sprites: []render.Sprite{},
		Best:    g.BestScore(),
		Notice:  g.Notice(),
		Menu: Menu{
			Difficulty:  s.Difficulty.String(),
			Ship:        ship.Name,
			ShipInfo:    ship.Description,
			Graphics:    s.Graphics.String(),
			Sensitivity: s.Sensitivity,
			Music:       s.MusicEnabled,
			Sound:       s.SFXEnabled,
		},
	}

	sess := g.Session()
	if sess == nil {
		return f
	}

	v.parts = g.Scene().Parts(v.parts[:0])
	f.Sprites = render.Project(v.cam, v.parts, f.Sprites)
	if sess.Settings().Graphics == config.GraphicsHigh {
		v.depths = v.depths[:0]
		for _, seg := range sess.Tunnel.Segments() {
			v.depths = append(v.depths, seg.Z)
		}
		f.Rings = render.ProjectRings(v.cam, sess.Tunnel.Radius, v.depths, nil)
	}

	if v.hud != nil {
		hf, active := v.hud.Snapshot()
		f.HUD = &HUD{
			Score:      hf.Score,
			Best:       max(hf.Score, hf.BestScore),
			Level:      hf.Level,
			Combo:      hf.Combo,
			Health:     hf.Health,
			Boost:      hf.Boost,
			Speed:      hf.Speed,
			PlayTime:   run.FormatPlayTime(hf.PlayTime),
			Invincible: hf.Invincible,
			SpeedBoost: hf.SpeedBoost,
			Multiplier: hf.Multiplier,
			GameOver:   sess.Run.GameOver,
		}
		for _, b := range active {
			f.Banners = append(f.Banners, Banner{Text: hud.BannerText(b), Color: cssColor(b.Color)})
		}
	}
	return f
}

func cssColor(c uint32) string {
	if c == 0 {
		c = 0xffffff
	}
	return fmt.Sprintf("#%06x", c&0xffffff)
}

var _ loop.View = (*View)(nil)

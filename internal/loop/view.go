package loop

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/tunnelrunner/internal/draw"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/object"
	"github.com/tomz197/tunnelrunner/internal/render"
	"github.com/tomz197/tunnelrunner/internal/run"
)

// hudRows is the number of terminal rows above the canvas.
const hudRows = 1

// Maximum canvas size in terminal cells; larger terminals get a border.
const (
	maxCols = config.ViewWidth
	maxRows = config.ViewHeight / 2
)

// TerminalView draws a game onto an ANSI terminal: the projected scene on a
// half-block canvas, the HUD line on top and text screens for the menu,
// pause and game over.
type TerminalView struct {
	cw     *draw.ChunkWriter
	canvas *draw.Canvas
	hud    *hud.Terminal
	size   draw.TermSizeFunc
	cam    draw.Camera

	parts   []object.Part
	sprites []render.Sprite
	depths  []float64

	title lipgloss.Style
	key   lipgloss.Style
	text  lipgloss.Style
	dim   lipgloss.Style
	alert lipgloss.Style
}

// NewTerminalView creates a view writing to w. h must be the HUD sink the
// game was built with so that its pushes show up here.
func NewTerminalView(w io.Writer, size draw.TermSizeFunc, h *hud.Terminal) *TerminalView {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return &TerminalView{
		cw:     draw.NewChunkWriter(w, 0, 0),
		canvas: draw.NewScaledCanvas(maxCols, maxRows, config.ViewWidth, config.ViewHeight),
		hud:    h,
		size:   size,
		cam: draw.Camera{
			Z:          config.CameraZ,
			FOV:        config.CameraFOV,
			ViewWidth:  config.ViewWidth,
			ViewHeight: config.ViewHeight,
		},
		title: r.NewStyle().Foreground(lipgloss.Color("#33ccff")).Bold(true),
		key:   r.NewStyle().Foreground(lipgloss.Color("#ffff00")).Bold(true),
		text:  r.NewStyle().Foreground(lipgloss.Color("231")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("245")),
		alert: r.NewStyle().Foreground(lipgloss.Color("#ff3355")).Bold(true),
	}
}

// Draw implements View.
func (v *TerminalView) Draw(g *Game) error {
	cols, rows, err := v.size()
	if err != nil {
		return err
	}
	width, height, offCol, offRow := draw.Fit(cols, rows-hudRows, maxCols, maxRows)
	v.canvas.Resize(width, height)
	v.canvas.SetOffset(offCol, offRow+hudRows)
	v.cw.SetOffset(offCol, offRow)

	v.cw.WriteString("\033[H\033[2J")
	if g.Screen() == ScreenMenu {
		v.drawMenu(g, width, height+hudRows)
		return v.cw.Flush()
	}

	v.drawWorld(g)
	v.drawHUD(width)
	switch g.Screen() {
	case ScreenPaused:
		v.drawPaused(width, height+hudRows)
	case ScreenGameOver:
		v.drawGameOver(g, width, height+hudRows)
	}
	return v.cw.Flush()
}

func (v *TerminalView) drawWorld(g *Game) {
	sess := g.Session()
	if sess == nil {
		return
	}
	v.canvas.Clear()
	if sess.Settings().Graphics == config.GraphicsHigh {
		v.depths = v.depths[:0]
		for _, seg := range sess.Tunnel.Segments() {
			v.depths = append(v.depths, seg.Z)
		}
		render.Rings(v.canvas, v.cam, sess.Tunnel.Radius, v.depths)
	}

	v.parts = g.Scene().Parts(v.parts[:0])
	v.sprites = render.Project(v.cam, v.parts, v.sprites[:0])
	render.Paint(v.canvas, v.sprites)

	v.canvas.Render(v.cw)
	v.canvas.RenderBorder(v.cw)
}

func (v *TerminalView) drawHUD(width int) {
	if v.hud == nil {
		return
	}
	v.cw.WriteAt(1, 1, v.hud.StatusLine())
	for i, line := range v.hud.BannerLines() {
		v.cw.WriteCenteredWidth(hudRows+3+i, width, line, hud.Width(line))
	}
}

func (v *TerminalView) centered(row, width int, s string) {
	v.cw.WriteCenteredWidth(row, width, s, lipgloss.Width(s))
}

func (v *TerminalView) drawMenu(g *Game, width, height int) {
	s := g.Settings()
	ship := s.Ship.Spec()
	row := max(1, height/2-8)

	v.centered(row, width, v.title.Render("T U N N E L   R U N N E R"))
	row += 3
	lines := []string{
		v.option("Difficulty", s.Difficulty.String(), "1-4 / d"),
		v.option("Ship", ship.Name+" "+v.dim.Render(ship.Description), "s"),
		v.option("Graphics", s.Graphics.String(), "g"),
		v.option("Sensitivity", fmt.Sprintf("%.2f", s.Sensitivity), "+ / -"),
		v.option("Music", onOff(s.MusicEnabled), "u"),
		v.option("Sound", onOff(s.SFXEnabled), "x"),
	}
	for _, l := range lines {
		v.centered(row, width, l)
		row++
	}
	row++
	v.centered(row, width, v.dim.Render("BEST ")+v.text.Render(hud.FormatScore(g.BestScore())))
	row += 2
	v.centered(row, width, v.key.Render("ENTER")+v.dim.Render(" start   ")+
		v.key.Render("w")+v.dim.Render(" save settings   ")+
		v.key.Render("q")+v.dim.Render(" quit"))
	row += 2
	v.centered(row, width, v.dim.Render("WASD/arrows move, SPACE turbo, shift+direction or e boost, p pause"))
	if n := g.Notice(); n != "" {
		v.centered(row+2, width, v.text.Render(n))
	}
}

func (v *TerminalView) option(name, value, keys string) string {
	return v.dim.Render(fmt.Sprintf("%-12s", name)) + v.text.Render(value) + v.key.Render("  ["+keys+"]")
}

func (v *TerminalView) drawPaused(width, height int) {
	row := height / 2
	v.centered(row, width, v.title.Render("PAUSED"))
	v.centered(row+2, width, v.dim.Render("p resume   r restart   m menu   q quit"))
}

func (v *TerminalView) drawGameOver(g *Game, width, height int) {
	sess := g.Session()
	if sess == nil {
		return
	}
	st := sess.Run.Stats()
	row := max(1, height/2-4)

	v.centered(row, width, v.alert.Render("GAME OVER"))
	if st.Score > 0 && st.Score >= st.BestScore {
		v.centered(row+1, width, v.key.Render("NEW BEST!"))
	}
	v.centered(row+3, width, v.dim.Render("SCORE ")+v.text.Render(hud.FormatScore(st.Score)))
	v.centered(row+4, width, v.dim.Render("BEST ")+v.text.Render(hud.FormatScore(st.BestScore)))
	v.centered(row+5, width, v.dim.Render("LEVEL ")+v.text.Render(fmt.Sprint(st.Level)))
	v.centered(row+6, width, v.dim.Render("TIME ")+v.text.Render(run.FormatPlayTime(st.PlayTime)))
	v.centered(row+8, width, v.dim.Render("r / ENTER restart   m menu   q quit"))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

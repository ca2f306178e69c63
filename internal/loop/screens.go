package loop

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/tunnelrunner/internal/audio"
	settings "github.com/tomz197/tunnelrunner/internal/config"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/input"
	"github.com/tomz197/tunnelrunner/internal/loop/config"
	"github.com/tomz197/tunnelrunner/internal/object"
	"github.com/tomz197/tunnelrunner/internal/render"
)

// Screen is the top-level state of a game.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "gameover"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}

// Options configures a Game. Store and Assets are required.
type Options struct {
	Store  settings.Store
	Assets object.Assets
	Audio  audio.Sink
	HUD    hud.Sink
	Logger *log.Logger
	Seed   int64 // Zero seeds from the clock
}

// Game drives the screens of one player: menu, the run itself, pause and
// game over. A new Session is created for every run.
type Game struct {
	screen   Screen
	session  *Session
	settings settings.Settings
	store    settings.Store
	scene    *render.Scene
	assets   object.Assets
	audio    audio.Sink
	hud      hud.Sink
	logger   *log.Logger
	rng      *rand.Rand
	runs     int
	best     float64
	notice   string
	done     bool
}

// NewGame loads settings from the store and opens on the menu.
// A store that fails to load falls back to defaults.
func NewGame(opts Options) *Game {
	g := &Game{
		store:  opts.Store,
		assets: opts.Assets,
		audio:  opts.Audio,
		hud:    opts.HUD,
		logger: opts.Logger,
		scene:  render.NewScene(),
	}
	if g.audio == nil {
		g.audio = audio.Nop{}
	}
	if g.hud == nil {
		g.hud = hud.Nop{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	s, err := g.store.Load()
	if err != nil {
		g.logger.Warn("loading settings", "err", err)
	}
	g.settings = s
	if best, err := g.store.LoadBestScore(); err == nil {
		g.best = best
	}
	g.applyLevels()
	g.playMusic(audio.TrackMenu)
	return g
}

// Screen returns the current screen.
func (g *Game) Screen() Screen { return g.screen }

// Session returns the current run, or nil on the menu.
func (g *Game) Session() *Session { return g.session }

// Scene returns the entity set every run of this game draws into.
func (g *Game) Scene() *render.Scene { return g.scene }

// Settings returns the current menu settings.
func (g *Game) Settings() settings.Settings { return g.settings }

// Notice returns the last menu message, such as a save confirmation.
func (g *Game) Notice() string { return g.notice }

// BestScore returns the best score known to this game.
func (g *Game) BestScore() float64 {
	if g.session != nil {
		return max(g.best, g.session.Run.BestScore)
	}
	return g.best
}

// Done reports whether the player asked to quit.
func (g *Game) Done() bool { return g.done }

// Update consumes one input sample and advances the current screen.
func (g *Game) Update(in input.Input, dt time.Duration) {
	if in.Quit {
		g.Close()
		return
	}

	switch g.screen {
	case ScreenMenu:
		g.updateMenu(in)
	case ScreenPlaying:
		g.updatePlaying(in, dt)
	case ScreenPaused:
		g.updatePaused(in)
	case ScreenGameOver:
		g.updateGameOver(in)
	}
}

func (g *Game) updateMenu(in input.Input) {
	switch {
	case in.Enter || in.PressedKey(' '):
		g.click()
		g.startRun()
		return
	case in.Number >= 1 && in.Number <= len(config.Difficulties()):
		g.settings.Difficulty = config.Difficulties()[in.Number-1]
		g.click()
	case in.PressedKey('d', 'D'):
		g.settings.Difficulty = g.settings.Difficulty.Next()
		g.click()
	case in.PressedKey('s', 'S'):
		g.settings.Ship = g.settings.Ship.Next()
		g.click()
	case in.PressedKey('g', 'G'):
		g.settings.Graphics = g.settings.Graphics.Next()
		g.click()
	case in.PressedKey('+', '='):
		g.adjustSensitivity(config.SensitivityStep)
	case in.PressedKey('-', '_'):
		g.adjustSensitivity(-config.SensitivityStep)
	case in.PressedKey('u', 'U'):
		g.settings.MusicEnabled = !g.settings.MusicEnabled
		g.applyLevels()
		g.click()
	case in.PressedKey('x', 'X'):
		g.settings.SFXEnabled = !g.settings.SFXEnabled
		g.applyLevels()
		g.click()
	case in.PressedKey('w', 'W'):
		g.saveSettings()
	}
}

func (g *Game) adjustSensitivity(delta float64) {
	g.settings.Sensitivity = settings.ClampSensitivity(g.settings.Sensitivity + delta)
	g.click()
}

// saveSettings writes the menu settings. Nothing is persisted implicitly.
func (g *Game) saveSettings() {
	if err := g.store.Save(g.settings); err != nil {
		g.logger.Error("saving settings", "err", err)
		g.notice = "Could not save settings"
		return
	}
	g.notice = "Settings saved"
	g.click()
}

func (g *Game) updatePlaying(in input.Input, dt time.Duration) {
	switch {
	case in.Pause:
		g.session.Run.TogglePause()
		g.screen = ScreenPaused
		g.pauseMusic(true)
		return
	case in.Restart:
		g.startRun()
		return
	case in.Menu:
		g.toMenu()
		return
	}

	g.session.Tick(in, dt)
	if g.session.Run.GameOver {
		g.screen = ScreenGameOver
	}
}

func (g *Game) updatePaused(in input.Input) {
	switch {
	case in.Pause:
		g.session.Run.TogglePause()
		g.screen = ScreenPlaying
		g.pauseMusic(false)
	case in.Restart:
		g.pauseMusic(false)
		g.startRun()
	case in.Menu:
		g.toMenu()
	}
}

func (g *Game) updateGameOver(in input.Input) {
	switch {
	case in.Restart || in.Enter || in.PressedKey(' '):
		g.startRun()
	case in.Menu:
		g.toMenu()
	}
}

// startRun discards any current run and starts a fresh one.
func (g *Game) startRun() {
	g.endRun()
	g.runs++
	g.notice = ""
	g.session = NewSession(g.settings, Deps{
		Scene:  g.scene,
		Assets: g.assets,
		Audio:  g.audio,
		HUD:    g.hud,
		Store:  g.store,
		Logger: g.logger.With("run", g.runs),
		Rand:   g.rng,
	})
	g.screen = ScreenPlaying
	g.playMusic(audio.TrackRun)
}

func (g *Game) toMenu() {
	g.endRun()
	g.screen = ScreenMenu
	g.playMusic(audio.TrackMenu)
}

func (g *Game) endRun() {
	if g.session == nil {
		return
	}
	g.best = max(g.best, g.session.Run.BestScore)
	g.session.Dispose()
	g.session = nil
	if r, ok := g.hud.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Close ends the current run and marks the game done.
func (g *Game) Close() {
	g.endRun()
	if mp, ok := g.audio.(audio.MusicPlayer); ok {
		mp.StopMusic()
	}
	g.done = true
}

func (g *Game) click() {
	g.audio.Play(audio.SoundMenuClick, 1)
}

func (g *Game) applyLevels() {
	if l, ok := g.audio.(interface{ SetLevels(audio.Levels) }); ok {
		l.SetLevels(g.settings.Levels())
	}
}

func (g *Game) playMusic(t audio.Track) {
	if mp, ok := g.audio.(audio.MusicPlayer); ok {
		mp.PlayMusic(t)
	}
}

func (g *Game) pauseMusic(paused bool) {
	if mp, ok := g.audio.(audio.MusicPlayer); ok {
		mp.PauseMusic(paused)
	}
}

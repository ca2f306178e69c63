// Package loop provides the fixed-rate game loop, the per-run Session and
// the screens around it.
package loop

import (
	"context"
	"time"

	"github.com/tomz197/tunnelrunner/internal/input"
	"github.com/tomz197/tunnelrunner/internal/loop/config"
)

// View draws the game once per frame.
type View interface {
	Draw(g *Game) error
}

// closer is implemented by input sources whose underlying stream can end,
// such as a terminal or SSH channel.
type closer interface {
	Closed() bool
}

// Run drives g with the standard Input → Update → Draw cycle at the target
// frame rate until the player quits, the input source closes, ctx is done or
// the view fails.
func Run(ctx context.Context, g *Game, src input.Source, view View) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	lastTime := time.Now()
	for !g.Done() {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := src.Snapshot()
		if c, ok := src.(closer); ok && c.Closed() {
			in.Quit = true
		}

		// ===== UPDATE PHASE =====
		g.Update(in, min(dt, maxFrameDelta))
		if g.Done() {
			break
		}

		// ===== DRAW PHASE =====
		if err := view.Draw(g); err != nil {
			g.Close()
			return err
		}

		// ===== FRAME TIMING =====
		wait := config.TargetFrameTime - time.Since(frameStart)
		if wait <= 0 {
			wait = time.Millisecond
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			g.Close()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// maxFrameDelta caps a single step so a stalled frame does not fast-forward
// buffs and scheduled effects.
const maxFrameDelta = 100 * time.Millisecond

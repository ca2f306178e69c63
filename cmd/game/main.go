package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/tunnelrunner/internal/assets"
	"github.com/tomz197/tunnelrunner/internal/audio"
	"github.com/tomz197/tunnelrunner/internal/config"
	"github.com/tomz197/tunnelrunner/internal/draw"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/input"
	"github.com/tomz197/tunnelrunner/internal/loop"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}
	logger := newLogger()

	store := config.NewFileStore(config.GetEnv("TUNNEL_SETTINGS", config.DefaultSettingsPath()))
	provider := assets.NewProvider(logger.WithPrefix("assets"))
	if path := config.GetEnv("TUNNEL_ASSETS", ""); path != "" {
		if err := provider.LoadManifest(path); err != nil {
			logger.Warn("asset manifest ignored", "path", path, "err", err)
		}
	}

	var sink audio.Sink = audio.Nop{}
	if config.GetEnvBool("TUNNEL_AUDIO", false) {
		sp := audio.NewSpeaker(audio.DefaultLevels(), logger.WithPrefix("audio"))
		if err := sp.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sp.Close()
			sink = sp
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	draw.HideCursor(os.Stdout)
	defer func() {
		draw.ClearScreen(os.Stdout)
		draw.ShowCursor(os.Stdout)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status := hud.NewTerminal(os.Stdout)
	g := loop.NewGame(loop.Options{
		Store:  store,
		Assets: provider,
		Audio:  sink,
		HUD:    status,
		Logger: logger,
	})
	view := loop.NewTerminalView(os.Stdout, nil, status)
	keys := input.StartStream(os.Stdin)
	defer keys.Stop()
	if err := loop.Run(ctx, g, keys, view); err != nil && ctx.Err() == nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to TUNNEL_LOG, since stdout belongs to the game. Without
// a log file only errors reach stderr.
func newLogger() *log.Logger {
	level := config.GetEnv("LOG_LEVEL", "error")
	if path := config.GetEnv("TUNNEL_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return config.NewLogger(f, level)
		}
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
	}
	return config.NewLogger(os.Stderr, "error")
}

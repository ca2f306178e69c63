package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/tunnelrunner/internal/assets"
	"github.com/tomz197/tunnelrunner/internal/config"
	"github.com/tomz197/tunnelrunner/internal/draw"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/input"
	"github.com/tomz197/tunnelrunner/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScoresPath  = "/app/data/scores.toml"
)

// server holds what every SSH session shares.
type server struct {
	ctx    context.Context // Cancelled on shutdown
	scores *config.FileStore
	assets *assets.Provider
	logger *log.Logger
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}
	logger := config.NewLogger(os.Stderr, config.GetEnv("LOG_LEVEL", "info"))

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scoresPath := config.GetEnv("TUNNEL_SCORES", defaultScoresPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scores", scoresPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &server{
		ctx:    ctx,
		scores: config.NewFileStore(scoresPath),
		assets: assets.NewProvider(logger.WithPrefix("assets")),
		logger: logger,
	}
	if path := config.GetEnv("TUNNEL_ASSETS", ""); path != "" {
		if err := srv.assets.LoadManifest(path); err != nil {
			logger.Warn("asset manifest ignored", "path", path, "err", err)
		}
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	sig, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-sig.Done()
	logger.Info("shutting down server")

	// End every running game so sessions can say goodbye and close.
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := srv.logger.With("user", sess.User(), "remote", sess.RemoteAddr())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		win := watchWindow(pty.Window, winCh)

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stopOnShutdown := context.AfterFunc(srv.ctx, cancel)
		defer stopOnShutdown()

		// Settings live for the session; the best score is shared by everyone.
		store := config.NewMemoryStore(config.DefaultSettings()).WithBestScoreFrom(srv.scores)
		status := hud.NewTerminal(sess)
		g := loop.NewGame(loop.Options{
			Store:  store,
			Assets: srv.assets,
			HUD:    status,
			Logger: logger,
		})

		draw.HideCursor(sess)
		view := loop.NewTerminalView(sess, win.size, status)
		keys := input.StartStream(sess)
		defer keys.Stop()
		err := loop.Run(ctx, g, keys, view)
		draw.ClearScreen(sess)
		draw.ShowCursor(sess)
		switch {
		case srv.ctx.Err() != nil:
			fmt.Fprintln(sess, "Server is shutting down. Thanks for playing!")
		case err != nil && ctx.Err() == nil:
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "best", g.BestScore())
		next(sess)
	}
}

// window follows the pty size of a session.
type window struct {
	mu   sync.RWMutex
	cols int
	rows int
}

// watchWindow starts at w and applies every resize from ch until it closes.
func watchWindow(w ssh.Window, ch <-chan ssh.Window) *window {
	win := &window{cols: w.Width, rows: w.Height}
	go func() {
		for w := range ch {
			win.mu.Lock()
			win.cols, win.rows = w.Width, w.Height
			win.mu.Unlock()
		}
	}()
	return win
}

func (w *window) size() (int, int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cols, w.rows, nil
}

var _ draw.TermSizeFunc = (*window)(nil).size

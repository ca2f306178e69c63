package netplay

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	settings "github.com/tomz197/tunnelrunner/internal/config"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/input"
	"github.com/tomz197/tunnelrunner/internal/loop"
	"github.com/tomz197/tunnelrunner/internal/object"
)

// Options configures a Handler. Assets and NewStore are required.
type Options struct {
	Assets object.Assets
	// NewStore returns the settings store for one connection.
	NewStore func() settings.Store
	Logger   *log.Logger
	// CheckOrigin filters upgrade requests. Nil accepts every origin.
	CheckOrigin func(r *http.Request) bool
}

// Handler upgrades requests to websockets and plays one game per
// connection.
type Handler struct {
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	check := opts.CheckOrigin
	if check == nil {
		check = func(*http.Request) bool { return true }
	}
	return &Handler{
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 << 10,
			CheckOrigin:     check,
		},
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	conn := newConn(ws)
	logger := h.logger.With("remote", r.RemoteAddr)
	logger.Info("player connected")
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	held := input.NewHeld()
	rec := &hud.Recorder{}
	g := loop.NewGame(loop.Options{
		Store:  h.opts.NewStore(),
		Assets: h.opts.Assets,
		HUD:    rec,
		Logger: logger,
	})

	go readLoop(ws, held, cancel, logger)
	go pingLoop(ctx, conn)

	err = loop.Run(ctx, g, held, NewView(conn, rec))
	switch {
	case err == nil:
		_ = conn.Close(websocket.CloseNormalClosure, "bye")
	case errors.Is(err, context.Canceled):
		_ = conn.Close(websocket.CloseGoingAway, "")
	default:
		logger.Warn("game stopped", "err", err)
		_ = conn.Close(websocket.CloseInternalServerErr, "")
	}
	logger.Info("player disconnected", "duration", time.Since(start).Round(time.Second))
}

// readLoop feeds key events into held until the socket fails, then cancels
// the game.
func readLoop(ws *websocket.Conn, held *input.Held, cancel context.CancelFunc, logger *log.Logger) {
	defer cancel()
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("read failed", "err", err)
			}
			return
		}
		env, err := Decode(msg)
		if err != nil {
			logger.Debug("bad message", "err", err)
			continue
		}
		switch env.T {
		case MsgKey:
			ev, err := DecodePayload[KeyEvent](env)
			if err != nil {
				logger.Debug("bad key event", "err", err)
				continue
			}
			held.Key(ev.Key, ev.Down)
		case MsgBlur:
			held.Release()
		}
	}
}

func pingLoop(ctx context.Context, conn *Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}

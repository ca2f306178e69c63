package netplay

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/tunnelrunner/internal/assets"
	settings "github.com/tomz197/tunnelrunner/internal/config"
	"github.com/tomz197/tunnelrunner/internal/hud"
	"github.com/tomz197/tunnelrunner/internal/input"
	"github.com/tomz197/tunnelrunner/internal/loop"
)

type capture struct {
	msgs [][]byte
}

func (c *capture) Send(b []byte) error {
	c.msgs = append(c.msgs, b)
	return nil
}

func newTestGame(rec *hud.Recorder) *loop.Game {
	return loop.NewGame(loop.Options{
		Store:  settings.NewMemoryStore(settings.DefaultSettings()),
		Assets: assets.NewProvider(log.New(io.Discard)),
		HUD:    rec,
		Seed:   3,
	})
}

func decodeFrame(t *testing.T, b []byte) Frame {
	t.Helper()
	env, err := Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.T != MsgFrame {
		t.Fatalf("message type = %q, want %q", env.T, MsgFrame)
	}
	f, err := DecodePayload[Frame](env)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	return f
}

func TestEnvelope(t *testing.T) {
	b, err := Encode(MsgKey, KeyEvent{Key: "ArrowLeft", Down: true})
	if err != nil {
		t.Fatal(err)
	}
	env, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	ev, err := DecodePayload[KeyEvent](env)
	if err != nil {
		t.Fatal(err)
	}
	if env.T != MsgKey || ev.Key != "ArrowLeft" || !ev.Down {
		t.Fatalf("got %+v %+v", env, ev)
	}

	if _, err := Encode("", nil); err == nil {
		t.Fatal("empty type should not encode")
	}
	if _, err := Decode(nil); err == nil {
		t.Fatal("empty message should not decode")
	}
	blur, _ := Encode(MsgBlur, nil)
	env, _ = Decode(blur)
	if _, err := DecodePayload[KeyEvent](env); err == nil {
		t.Fatal("blur has no payload")
	}
}

func TestViewMenuFrame(t *testing.T) {
	rec := &hud.Recorder{}
	g := newTestGame(rec)
	out := &capture{}
	if err := NewView(out, rec).Draw(g); err != nil {
		t.Fatal(err)
	}
	if len(out.msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(out.msgs))
	}
	f := decodeFrame(t, out.msgs[0])
	s := settings.DefaultSettings()
	if f.Screen != "menu" || f.HUD != nil || len(f.Sprites) != 0 {
		t.Fatalf("menu frame = %+v", f)
	}
	if f.Menu.Difficulty != s.Difficulty.String() || f.Menu.Ship != s.Ship.Spec().Name || !f.Menu.Music {
		t.Fatalf("menu = %+v", f.Menu)
	}
	if f.View.W <= 0 || f.View.H <= 0 {
		t.Fatalf("view = %+v", f.View)
	}
}

func TestViewPlayingFrame(t *testing.T) {
	rec := &hud.Recorder{}
	g := newTestGame(rec)
	g.Update(input.Input{Enter: true, Number: -1}, 16*time.Millisecond)
	if g.Screen() != loop.ScreenPlaying {
		t.Fatalf("screen = %v", g.Screen())
	}
	g.Update(input.Input{Number: -1}, 16*time.Millisecond)

	f := NewView(&capture{}, rec).Frame(g)
	if f.Screen != "playing" {
		t.Fatalf("screen = %q", f.Screen)
	}
	if len(f.Sprites) == 0 {
		t.Fatal("playing frame should carry the craft")
	}
	if f.HUD == nil || f.HUD.Level != 1 || f.HUD.Health != 100 || f.HUD.PlayTime != "0:00" {
		t.Fatalf("hud = %+v", f.HUD)
	}
	if _, err := json.Marshal(f); err != nil {
		t.Fatal(err)
	}
}

func TestHandlerPlaysOverWebsocket(t *testing.T) {
	h := NewHandler(Options{
		Assets: assets.NewProvider(log.New(io.Discard)),
		NewStore: func() settings.Store {
			return settings.NewMemoryStore(settings.DefaultSettings())
		},
	})
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	read := func() Frame {
		t.Helper()
		_, msg, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return decodeFrame(t, msg)
	}
	send := func(key string, down bool) {
		t.Helper()
		b, _ := Encode(MsgKey, KeyEvent{Key: key, Down: down})
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	if f := read(); f.Screen != "menu" {
		t.Fatalf("first frame screen = %q", f.Screen)
	}

	send("Enter", true)
	send("Enter", false)
	for {
		if read().Screen == "playing" {
			break
		}
	}

	send("q", true)
	for {
		_, _, err := ws.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			t.Fatalf("want normal close, got %v", err)
		}
		break
	}
}

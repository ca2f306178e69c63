// Package netplay serves the game to browsers over a WebSocket: key events
// come in, one JSON frame per tick goes out.
package netplay

import (
	"encoding/json"
	"fmt"

	"github.com/tomz197/tunnelrunner/internal/render"
)

// Message types.
const (
	MsgKey   = "key"   // client: a key went down or up
	MsgBlur  = "blur"  // client: the page lost focus
	MsgFrame = "frame" // server: everything needed to draw one tick
)

// Envelope wraps every message on the wire.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

// KeyEvent is a browser key transition; Key follows KeyboardEvent.key.
type KeyEvent struct {
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// Frame is one drawn tick.
type Frame struct {
	Screen  string          `json:"screen"`
	View    ViewSize        `json:"view"`
	Sprites []render.Sprite `json:"sprites"`
	Rings   []render.Ring   `json:"rings,omitempty"`
	HUD     *HUD            `json:"hud,omitempty"`
	Banners []Banner        `json:"banners,omitempty"`
	Menu    Menu            `json:"menu"`
	Best    float64         `json:"best"`
	Notice  string          `json:"notice,omitempty"`
}

// ViewSize is the logical size sprite coordinates refer to.
type ViewSize struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// HUD carries the status fields of a run.
type HUD struct {
	Score      float64 `json:"score"`
	Best       float64 `json:"best"`
	Level      int     `json:"level"`
	Combo      int     `json:"combo"`
	Health     float64 `json:"health"`
	Boost      float64 `json:"boost"`
	Speed      float64 `json:"speed"`
	PlayTime   string  `json:"playTime"`
	Invincible bool    `json:"invincible,omitempty"`
	SpeedBoost bool    `json:"speedBoost,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
	GameOver   bool    `json:"gameOver,omitempty"`
}

// Banner is a live notification, already formatted.
type Banner struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Menu mirrors the selectable settings.
type Menu struct {
	Difficulty  string  `json:"difficulty"`
	Ship        string  `json:"ship"`
	ShipInfo    string  `json:"shipInfo"`
	Graphics    string  `json:"graphics"`
	Sensitivity float64 `json:"sensitivity"`
	Music       bool    `json:"music"`
	Sound       bool    `json:"sound"`
}

// Encode wraps payload in an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty message type")
	}
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t, err)
		}
		raw = b
	}
	return json.Marshal(Envelope{T: t, P: raw})
}

// Decode parses an envelope.
func Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode: %w", err)
	}
	return e, nil
}

// DecodePayload unmarshals the payload of env into a T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

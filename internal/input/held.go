package input

import "sync"

// Held is a Source fed by discrete key-down/key-up events, as browsers send
// them. Event names follow KeyboardEvent.key. Letters are tracked without
// case, since the case of a key-up depends on whether Shift was released
// first; Shift itself is tracked on its own. Safe for concurrent use: the
// transport goroutine feeds it while the loop takes snapshots.
type Held struct {
	mu      sync.Mutex
	down    map[string]bool
	pressed []byte
}

// NewHeld creates an empty Held source.
func NewHeld() *Held {
	return &Held{down: make(map[string]bool)}
}

// Key records a key transition.
func (h *Held) Key(name string, down bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	held := fold(name)
	if down && !h.down[held] {
		if b, ok := keyByte(name); ok {
			h.pressed = append(h.pressed, b)
		}
	}
	if down {
		h.down[held] = true
	} else {
		delete(h.down, held)
	}
}

// fold lower-cases single ASCII letters.
func fold(name string) string {
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return string(name[0] + 'a' - 'A')
	}
	return name
}

// Release drops every held key, used when the page loses focus.
func (h *Held) Release() {
	h.mu.Lock()
	clear(h.down)
	h.mu.Unlock()
}

// Snapshot implements Source.
func (h *Held) Snapshot() Input {
	h.mu.Lock()
	defer h.mu.Unlock()

	in := Input{Number: -1, Pressed: h.pressed}
	h.pressed = nil
	for _, b := range in.Pressed {
		applyEdge(&in, b)
	}

	isDown := func(names ...string) bool {
		for _, n := range names {
			if h.down[n] {
				return true
			}
		}
		return false
	}
	in.Left = isDown("a", "j", "ArrowLeft")
	in.Right = isDown("d", "l", "ArrowRight")
	in.Up = isDown("w", "i", "ArrowUp")
	in.Down = isDown("s", "k", "ArrowDown")
	in.Turbo = isDown(" ")
	// Shift plus a direction mirrors the terminal's uppercase WASD.
	moving := in.Left || in.Right || in.Up || in.Down
	in.Boost = isDown("e") || (isDown("Shift") && moving)
	return in
}

// keyByte maps a browser key name to the terminal byte it stands for.
func keyByte(name string) (byte, bool) {
	switch name {
	case "Escape":
		return '\x1b', true
	case "Enter":
		return '\r', true
	}
	if len(name) == 1 {
		return name[0], true
	}
	return 0, false
}

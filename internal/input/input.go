// Package input turns raw key events into per-tick control snapshots.
package input

// Input is the control state sampled once per tick.
//
// Direction, Turbo and Boost are held states. The remaining flags are edges:
// they are set only on the tick the key arrived, so a toggle never repeats
// while the key is held.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Turbo bool // Space
	Boost bool // Shifted direction or 'e'

	Pause   bool // 'p' or Esc
	Restart bool // 'r'
	Menu    bool // 'm'
	Quit    bool // 'q'
	Enter   bool
	Number  int    // Last digit pressed this tick, -1 if none
	Pressed []byte // Raw bytes seen this tick
}

// Source yields one Input per tick.
type Source interface {
	Snapshot() Input
}

// Axes returns the movement direction as -1, 0 or 1 on each axis.
// Up is positive y.
func (in Input) Axes() (dx, dy float64) {
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy++
	}
	if in.Down {
		dy--
	}
	return dx, dy
}

// PressedKey reports whether any of keys arrived this tick.
func (in Input) PressedKey(keys ...byte) bool {
	for _, b := range in.Pressed {
		for _, k := range keys {
			if b == k {
				return true
			}
		}
	}
	return false
}

// applyEdge records one-shot actions for a byte.
func applyEdge(in *Input, b byte) {
	switch b {
	case 'p', 'P', '\x1b':
		in.Pause = true
	case 'r', 'R':
		in.Restart = true
	case 'm', 'M':
		in.Menu = true
	case 'q', 'Q':
		in.Quit = true
	case '\n', '\r':
		in.Enter = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}

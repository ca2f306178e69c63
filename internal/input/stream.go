package input

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// holdDuration is how long a key counts as held after its last byte.
// Terminals only report repeats, so this has to bridge the repeat interval.
const holdDuration = 120 * time.Millisecond

type control int

const (
	ctlLeft control = iota
	ctlRight
	ctlUp
	ctlDown
	ctlTurbo
	ctlBoost
	ctlCount
)

// Stream delivers terminal input bytes via a channel and tracks when each
// control was last seen, so held keys survive between key repeats.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Escape sequence prefix cut off by the last read
	last    [ctlCount]time.Time
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
// The goroutine exits when r returns an error or Stop is called.
func StartStream(r io.Reader) *Stream {
	s := newStream()
	br := bufio.NewReader(r)
	go func() {
		defer close(s.exited)
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:     make(chan byte, 128),
		now:    time.Now,
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Stop releases the reader goroutine once nobody drains the stream anymore.
// A goroutine blocked inside the reader still exits when r fails.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Snapshot drains all available bytes without blocking and returns the
// controls for this tick. Arrow keys arrive as CSI sequences.
func (s *Stream) Snapshot() Input {
	now := s.now()
	buf := s.pending
	s.pending = nil
	fresh := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh = true
		default:
			break drain
		}
	}

	// A sequence split across reads completes on the next tick. A lone Esc
	// is held back once and then counts as Esc.
	if fresh {
		if n := csiPrefix(buf); n > 0 {
			s.pending = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	in := Input{Number: -1, Pressed: buf}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if c, ok := arrow(buf[i+2]); ok {
				s.last[c] = now
				i += 2
				continue
			}
		}
		s.applyHeld(b, now)
		applyEdge(&in, b)
	}

	held := func(c control) bool { return now.Sub(s.last[c]) < holdDuration }
	in.Left = held(ctlLeft)
	in.Right = held(ctlRight)
	in.Up = held(ctlUp)
	in.Down = held(ctlDown)
	in.Turbo = held(ctlTurbo)
	in.Boost = held(ctlBoost)
	return in
}

// csiPrefix returns the length of an unfinished CSI prefix ending buf.
func csiPrefix(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	}
	return 0
}

func arrow(b byte) (control, bool) {
	switch b {
	case 'A':
		return ctlUp, true
	case 'B':
		return ctlDown, true
	case 'C':
		return ctlRight, true
	case 'D':
		return ctlLeft, true
	}
	return 0, false
}

// applyHeld updates hold timestamps for a byte. Shifted WASD also boosts.
func (s *Stream) applyHeld(b byte, now time.Time) {
	switch b {
	case 'a', 'j', 'J':
		s.last[ctlLeft] = now
	case 'd', 'l', 'L':
		s.last[ctlRight] = now
	case 'w', 'i', 'I':
		s.last[ctlUp] = now
	case 's', 'k', 'K':
		s.last[ctlDown] = now
	case 'A':
		s.last[ctlLeft] = now
		s.last[ctlBoost] = now
	case 'D':
		s.last[ctlRight] = now
		s.last[ctlBoost] = now
	case 'W':
		s.last[ctlUp] = now
		s.last[ctlBoost] = now
	case 'S':
		s.last[ctlDown] = now
		s.last[ctlBoost] = now
	case 'e', 'E':
		s.last[ctlBoost] = now
	case ' ':
		s.last[ctlTurbo] = now
	}
}

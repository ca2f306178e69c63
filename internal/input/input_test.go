package input

import (
	"io"
	"strings"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func testStream() (*Stream, *clock) {
	c := &clock{t: time.Unix(1000, 0)}
	s := newStream()
	s.now = c.now
	return s, c
}

func feed(s *Stream, keys string) {
	for i := 0; i < len(keys); i++ {
		s.ch <- keys[i]
	}
}

func TestStreamHeldKeys(t *testing.T) {
	s, c := testStream()
	feed(s, "a ")
	in := s.Snapshot()
	if !in.Left || !in.Turbo || in.Boost {
		t.Fatalf("snapshot = %+v", in)
	}

	c.t = c.t.Add(holdDuration / 2)
	if in := s.Snapshot(); !in.Left {
		t.Fatal("key should still count as held between repeats")
	}

	c.t = c.t.Add(holdDuration)
	if in := s.Snapshot(); in.Left || in.Turbo {
		t.Fatalf("keys should be released: %+v", in)
	}
}

func TestStreamArrowKeys(t *testing.T) {
	s, _ := testStream()
	feed(s, "\x1b[A\x1b[D")
	in := s.Snapshot()
	if !in.Up || !in.Left {
		t.Fatalf("arrows not parsed: %+v", in)
	}
	if in.Pause {
		t.Fatal("an arrow sequence must not count as Esc")
	}
	if dx, dy := in.Axes(); dx != -1 || dy != 1 {
		t.Fatalf("axes = %v, %v", dx, dy)
	}
}

func TestStreamArrowSplitAcrossTicks(t *testing.T) {
	s, _ := testStream()
	feed(s, "\x1b")
	if in := s.Snapshot(); in.Pause {
		t.Fatal("escape prefix should wait for the rest of the sequence")
	}
	feed(s, "[A")
	in := s.Snapshot()
	if !in.Up || in.Pause || in.Left || in.Boost {
		t.Fatalf("split arrow misread: %+v", in)
	}

	feed(s, "x\x1b[")
	if in := s.Snapshot(); in.Pause || !in.PressedKey('x') {
		t.Fatalf("partial CSI after a key: %+v", in)
	}
	feed(s, "D")
	if in := s.Snapshot(); !in.Left || in.Boost {
		t.Fatalf("split arrow misread: %+v", in)
	}
}

func TestStreamLoneEscPauses(t *testing.T) {
	s, _ := testStream()
	feed(s, "\x1b")
	s.Snapshot()
	if in := s.Snapshot(); !in.Pause {
		t.Fatalf("lone Esc should pause once nothing follows: %+v", in)
	}
	if in := s.Snapshot(); in.Pause {
		t.Fatal("Esc edge repeated")
	}
}

func TestStreamStopReleasesReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(pr)
	go func() {
		_, _ = io.Copy(pw, strings.NewReader(strings.Repeat("a", 1000)))
	}()

	// Nobody drains, so the reader fills the channel and blocks on send.
	deadline := time.Now().Add(time.Second)
	for len(s.ch) < cap(s.ch) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Stop()
	s.Stop()

	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Stop")
	}
}

func TestStreamShiftedBoost(t *testing.T) {
	s, _ := testStream()
	feed(s, "W")
	in := s.Snapshot()
	if !in.Up || !in.Boost {
		t.Fatalf("shifted W should move up and boost: %+v", in)
	}
}

func TestStreamEdgesDoNotRepeat(t *testing.T) {
	s, _ := testStream()
	feed(s, "p3")
	in := s.Snapshot()
	if !in.Pause || in.Number != 3 {
		t.Fatalf("snapshot = %+v", in)
	}
	in = s.Snapshot()
	if in.Pause || in.Number != -1 {
		t.Fatalf("edge repeated on the next tick: %+v", in)
	}
}

func TestStreamClosed(t *testing.T) {
	s, _ := testStream()
	close(s.ch)
	s.Snapshot()
	if !s.Closed() {
		t.Fatal("expected closed stream")
	}
}

func TestHeld(t *testing.T) {
	h := NewHeld()
	h.Key("ArrowRight", true)
	h.Key("Shift", true)
	h.Key("p", true)
	in := h.Snapshot()
	if !in.Right || !in.Boost || !in.Pause {
		t.Fatalf("snapshot = %+v", in)
	}
	h.Key("p", false)
	in = h.Snapshot()
	if !in.Right || in.Pause {
		t.Fatalf("held right should persist and pause should not: %+v", in)
	}
	h.Release()
	if in := h.Snapshot(); in.Right || in.Boost {
		t.Fatalf("release left keys held: %+v", in)
	}
}

func TestHeldShiftReleasedBeforeLetter(t *testing.T) {
	h := NewHeld()
	h.Key("Shift", true)
	h.Key("A", true)
	if in := h.Snapshot(); !in.Left || !in.Boost {
		t.Fatalf("shift+a should bank left with boost: %+v", in)
	}
	h.Key("Shift", false)
	if in := h.Snapshot(); !in.Left || in.Boost {
		t.Fatalf("letter still down after shift up: %+v", in)
	}
	h.Key("a", false)
	for i := 0; i < 3; i++ {
		if in := h.Snapshot(); in.Left || in.Boost {
			t.Fatalf("snapshot %d: key stuck after release: %+v", i, in)
		}
	}
}

func TestHeldShiftAloneIsNotBoost(t *testing.T) {
	h := NewHeld()
	h.Key("Shift", true)
	if in := h.Snapshot(); in.Boost {
		t.Fatalf("shift without a direction boosted: %+v", in)
	}
	h.Key("e", true)
	if in := h.Snapshot(); !in.Boost {
		t.Fatalf("e should boost: %+v", in)
	}
}

func TestHeldIgnoresAutoRepeat(t *testing.T) {
	h := NewHeld()
	h.Key("r", true)
	h.Key("r", true)
	if in := h.Snapshot(); len(in.Pressed) != 1 || !in.Restart {
		t.Fatalf("pressed = %q", in.Pressed)
	}
}

func TestPressedKey(t *testing.T) {
	in := Input{Pressed: []byte("xg")}
	if !in.PressedKey('g', 'G') || in.PressedKey('z') {
		t.Fatal("PressedKey mismatch")
	}
}

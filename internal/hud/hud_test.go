package hud

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestBannersExpire(t *testing.T) {
	var b Banners
	b.Add(Banner{Text: "SPEED!", Duration: 3 * time.Second, Countdown: true})
	b.Tick(2 * time.Second)
	active := b.Active()
	if len(active) != 1 || active[0].Remaining != time.Second {
		t.Fatalf("active = %+v", active)
	}
	b.Tick(3 * time.Second)
	if len(b.Active()) != 0 {
		t.Fatal("banner should expire at its duration")
	}
}

func TestBannersReplaceSameText(t *testing.T) {
	var b Banners
	b.Add(Banner{Text: "INVINCIBLE!", Duration: 5 * time.Second})
	b.Tick(4 * time.Second)
	b.Add(Banner{Text: "INVINCIBLE!", Duration: 5 * time.Second})
	active := b.Active()
	if len(active) != 1 || active[0].Remaining != 5*time.Second {
		t.Fatalf("active = %+v", active)
	}
}

func TestBannerText(t *testing.T) {
	b := ActiveBanner{Banner: Banner{Text: "SPEED!", Countdown: true}, Remaining: 2500 * time.Millisecond}
	if got := BannerText(b); got != "SPEED! 3s" {
		t.Fatalf("BannerText = %q", got)
	}
	b.Countdown = false
	if got := BannerText(b); got != "SPEED!" {
		t.Fatalf("BannerText = %q", got)
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-4500.75: "-4,500",
	}
	for in, want := range tests {
		if got := FormatScore(in); got != want {
			t.Fatalf("FormatScore(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTerminalStatusLine(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{})
	term.Update(Frame{Score: 12345, Level: 3, Combo: 2, Health: 50, Boost: 100, Speed: 2.5, Invincible: true, Multiplier: 2})
	line := term.StatusLine()
	for _, want := range []string{"12,345", "LVL", "x2", "SHIELD"} {
		if !strings.Contains(line, want) {
			t.Fatalf("status line missing %q: %q", want, line)
		}
	}
	if Width(line) < len("LVL 3") {
		t.Fatalf("status line width = %d", Width(line))
	}
}

func TestTerminalBanners(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{})
	term.Update(Frame{Clock: time.Second})
	term.Notify(Banner{Text: "HEALTH +30!", Duration: 2 * time.Second, Color: 0xff0000})
	if lines := term.BannerLines(); len(lines) != 1 || !strings.Contains(lines[0], "HEALTH +30!") {
		t.Fatalf("banner lines = %q", lines)
	}
	term.Update(Frame{Clock: 3 * time.Second})
	if lines := term.BannerLines(); len(lines) != 0 {
		t.Fatalf("banner should have expired: %q", lines)
	}
	term.Notify(Banner{Text: "LEVEL 2", Duration: time.Second})
	term.Reset()
	if len(term.BannerLines()) != 0 {
		t.Fatal("reset should drop banners")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(Banner{Text: "LEVEL 2!", Duration: 3 * time.Second})
	r.Update(Frame{Clock: time.Second, Score: 42, Level: 2})

	f, banners := r.Snapshot()
	if f.Score != 42 || f.Level != 2 {
		t.Fatalf("frame = %+v", f)
	}
	if len(banners) != 1 || banners[0].Remaining != 2*time.Second {
		t.Fatalf("banners = %+v", banners)
	}

	r.Reset()
	f, banners = r.Snapshot()
	if f.Score != 0 || len(banners) != 0 {
		t.Fatalf("after reset: %+v %+v", f, banners)
	}
}

package hud

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const barWidth = 20

// Terminal renders the HUD as styled text lines for an ANSI terminal.
// Lines are positioned by the caller.
type Terminal struct {
	mu      sync.Mutex
	frame   Frame
	banners Banners

	label  lipgloss.Style
	value  lipgloss.Style
	health lipgloss.Style
	boost  lipgloss.Style
	empty  lipgloss.Style
	status lipgloss.Style
	banner lipgloss.Style
	r      *lipgloss.Renderer
}

// NewTerminal creates a HUD whose styles target w. SSH sessions do not
// advertise a color profile the way a local tty does, so 256 colors are
// forced to keep output identical everywhere.
func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return &Terminal{
		r:      r,
		label:  r.NewStyle().Foreground(lipgloss.Color("245")),
		value:  r.NewStyle().Foreground(lipgloss.Color("231")).Bold(true),
		health: r.NewStyle().Foreground(lipgloss.Color("#ff3355")),
		boost:  r.NewStyle().Foreground(lipgloss.Color("#33ccff")),
		empty:  r.NewStyle().Foreground(lipgloss.Color("238")),
		status: r.NewStyle().Foreground(lipgloss.Color("#ffff00")).Bold(true),
		banner: r.NewStyle().Bold(true).Padding(0, 2),
	}
}

// Update implements Sink.
func (t *Terminal) Update(f Frame) {
	t.mu.Lock()
	t.frame = f
	t.banners.Tick(f.Clock)
	t.mu.Unlock()
}

// Notify implements Sink.
func (t *Terminal) Notify(b Banner) {
	t.mu.Lock()
	t.banners.Add(b)
	t.mu.Unlock()
}

// Reset drops banners, used when a run is discarded.
func (t *Terminal) Reset() {
	t.mu.Lock()
	t.banners.Clear()
	t.frame = Frame{}
	t.mu.Unlock()
}

// StatusLine renders score, level, bars and combo in one line.
func (t *Terminal) StatusLine() string {
	t.mu.Lock()
	f := t.frame
	t.mu.Unlock()

	parts := []string{
		t.field("LVL", fmt.Sprintf("%d", f.Level)),
		t.field("SCORE", FormatScore(f.Score)),
		t.field("BEST", FormatScore(math.Max(f.Score, f.BestScore))),
		t.field("SPD", fmt.Sprintf("%.1f", f.Speed)),
		t.label.Render("HP ") + t.bar(f.Health, t.health),
		t.label.Render("BOOST ") + t.bar(f.Boost, t.boost),
		t.field("COMBO", fmt.Sprintf("x%d", f.Combo)),
	}
	var flags []string
	if f.Invincible {
		flags = append(flags, "SHIELD")
	}
	if f.SpeedBoost {
		flags = append(flags, "SPEED")
	}
	if f.Multiplier > 1 {
		flags = append(flags, fmt.Sprintf("x%g", f.Multiplier))
	}
	if len(flags) > 0 {
		parts = append(parts, t.status.Render(strings.Join(flags, " ")))
	}
	return strings.Join(parts, "  ")
}

func (t *Terminal) field(name, v string) string {
	return t.label.Render(name+" ") + t.value.Render(v)
}

func (t *Terminal) bar(percent float64, fill lipgloss.Style) string {
	n := int(math.Round(math.Max(0, math.Min(100, percent)) / 100 * barWidth))
	return fill.Render(strings.Repeat("█", n)) + t.empty.Render(strings.Repeat("░", barWidth-n))
}

// BannerLines renders the live banners, newest last.
func (t *Terminal) BannerLines() []string {
	t.mu.Lock()
	active := t.banners.Active()
	t.mu.Unlock()

	lines := make([]string, 0, len(active))
	for _, b := range active {
		lines = append(lines, t.banner.Foreground(lipgloss.Color(hexColor(b.Color))).Render(BannerText(b)))
	}
	return lines
}

// Width returns the printable width of a rendered line.
func Width(s string) int {
	return lipgloss.Width(s)
}

// BannerText formats a banner with its countdown, if any.
func BannerText(b ActiveBanner) string {
	if !b.Countdown {
		return b.Text
	}
	return fmt.Sprintf("%s %ds", b.Text, int(math.Ceil(b.Remaining.Seconds())))
}

// FormatScore renders a score with thousands separators.
func FormatScore(score float64) string {
	s := fmt.Sprintf("%d", int64(score))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func hexColor(c uint32) string {
	if c == 0 {
		c = 0xffffff
	}
	return fmt.Sprintf("#%06x", c&0xffffff)
}

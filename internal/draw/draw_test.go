package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/tomz197/tunnelrunner/internal/physics"
)

func TestColor256(t *testing.T) {
	tests := []struct {
		rgb  uint32
		want uint8
	}{
		{0x000000, 16},
		{0xff0000, 196},
		{0x00ff00, 46},
		{0x0000ff, 21},
		{0xffffff, 231},
	}
	for _, tt := range tests {
		if got := Color256(tt.rgb); got != tt.want {
			t.Fatalf("Color256(%06x) = %d, want %d", tt.rgb, got, tt.want)
		}
	}
}

func TestScale(t *testing.T) {
	if got := Scale(0x808080, 2); got != 0xffffff {
		t.Fatalf("Scale saturates: got %06x", got)
	}
	if got := Scale(0xff0000, 0.5); got != 0x7f0000 {
		t.Fatalf("Scale(ff0000, .5) = %06x", got)
	}
	if got := Scale(0xffffff, -1); got != 0 {
		t.Fatalf("negative factor = %06x, want 0", got)
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, 0xff0000)
	c.Set(1, 0, 0xff0000)
	c.Set(1, 1, 0xff0000)
	c.Set(2, 0, 0xff0000)
	c.Set(2, 1, 0x0000ff)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\033[1;1H\033[38;5;196m▀█") {
		t.Fatalf("unexpected start of frame %q", out)
	}
	if !strings.Contains(out, "\033[48;5;21m▀") {
		t.Fatalf("split cell should carry a background color: %q", out)
	}
	if !strings.HasSuffix(out, "\033[0m") {
		t.Fatalf("frame should reset attributes: %q", out)
	}
}

func TestRenderSkipsEmptyCells(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Set(7, 5, 0x00ff00)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[3;8H") {
		t.Fatalf("expected a jump straight to the only lit cell, got %q", buf.String())
	}
}

func TestGlyphCoversCell(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, 0xff0000)
	c.SetGlyph(0, 0, '?', 0xffffff)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[38;5;231m?") || strings.Contains(out, "▀") {
		t.Fatalf("glyph should replace the pixel cell: %q", out)
	}
}

func TestRenderOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(5, 2)
	c.Set(0, 1, 0xffffff)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[3;6H") {
		t.Fatalf("offset not applied: %q", buf.String())
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(Point{X: 10, Y: 10}, 3, 0x00ff00)

	if _, ok := c.At(10, 10); !ok {
		t.Fatal("circle center not set")
	}
	if _, ok := c.At(10, 14); ok {
		t.Fatal("pixel outside the radius was set")
	}
	if color, _ := c.At(9, 9); color != 0x00ff00 {
		t.Fatalf("fill color = %06x", color)
	}
}

func TestTinyCircleSetsCenter(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(Point{X: 3, Y: 4}, 0.1, 0x112233)
	if _, ok := c.At(3, 4); !ok {
		t.Fatal("sub-pixel disc should still light its center")
	}
}

func TestScaledLine(t *testing.T) {
	c := NewScaledCanvas(10, 5, 20, 20)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 20, Y: 0}, 0xffffff)
	for x := 0; x < 10; x++ {
		if _, ok := c.At(x, 0); !ok {
			t.Fatalf("pixel %d of the scaled line not set", x)
		}
	}
}

func TestClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 1, 0xffffff)
	c.SetGlyph(2, 2, 'x', 0xffffff)
	c.Clear()

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m" {
		t.Fatalf("cleared canvas rendered %q", buf.String())
	}
}

func TestProject(t *testing.T) {
	cam := Camera{Z: 5, FOV: 90, ViewWidth: 120, ViewHeight: 80}
	if math.Abs(cam.Focal()-40) > 1e-9 {
		t.Fatalf("focal = %v, want 40", cam.Focal())
	}

	pt, scale, ok := cam.Project(physics.Vec3{})
	if !ok || math.Abs(pt.X-60) > 1e-9 || math.Abs(pt.Y-40) > 1e-9 || math.Abs(scale-8) > 1e-9 {
		t.Fatalf("Project(origin) = %v, %v, %v", pt, scale, ok)
	}

	pt, scale, ok = cam.Project(physics.Vec3{X: 1, Y: 1, Z: -5})
	if !ok || math.Abs(scale-4) > 1e-9 || math.Abs(pt.X-64) > 1e-9 || math.Abs(pt.Y-36) > 1e-9 {
		t.Fatalf("Project(far) = %v, %v, %v", pt, scale, ok)
	}

	if _, _, ok := cam.Project(physics.Vec3{Z: 5}); ok {
		t.Fatal("point on the camera plane should not project")
	}
}

func TestFit(t *testing.T) {
	w, h, col, row := Fit(200, 60, 120, 40)
	if w != 120 || h != 40 || col != 40 || row != 10 {
		t.Fatalf("Fit = %d,%d,%d,%d", w, h, col, row)
	}
	w, h, col, row = Fit(80, 24, 120, 40)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Fatalf("Fit small = %d,%d,%d,%d", w, h, col, row)
	}
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3000))
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[4;3Hhi") {
		t.Fatalf("offset cursor not applied: %q", out.String()[:10])
	}
	if out.Len() != len("\033[4;3Hhi")+3000 {
		t.Fatalf("flushed %d bytes", out.Len())
	}
	if cw.Len() != 0 {
		t.Fatal("Flush should reset the batch")
	}
}

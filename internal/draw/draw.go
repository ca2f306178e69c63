// Package draw renders to ANSI terminals: a colored half-block canvas, a
// perspective camera and the cursor helpers the loop needs.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// Color256 maps a 0xRRGGBB color onto the xterm 6x6x6 color cube.
func Color256(rgb uint32) uint8 {
	r := cubeLevel(uint8(rgb >> 16))
	g := cubeLevel(uint8(rgb >> 8))
	b := cubeLevel(uint8(rgb))
	return 16 + 36*r + 6*g + b
}

func cubeLevel(v uint8) uint8 {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	default:
		return (v - 35) / 40
	}
}

// Scale multiplies every channel of a 0xRRGGBB color by f, saturating at 255.
func Scale(rgb uint32, f float64) uint32 {
	if f <= 0 {
		return 0
	}
	ch := func(shift uint) uint32 {
		v := float64((rgb>>shift)&0xff) * f
		if v > 255 {
			v = 255
		}
		return uint32(v) << shift
	}
	return ch(16) | ch(8) | ch(0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// lit marks a set sub-pixel so that black stays distinguishable from empty.
const lit = 1 << 24

type glyph struct {
	ch    rune
	color uint32
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. Supports scaling from logical coordinates to actual
// terminal pixels, and a glyph layer that covers whole cells.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x], lit|0xRRGGBB or 0
	glyphs         []glyph  // Flat slice: [row * termWidth + col]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64 // In sub-pixels
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1
// mapping between logical units and sub-pixels.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]uint32, c.subPixelHeight*termWidth)
		c.glyphs = make([]glyph, termHeight*termWidth)
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels and glyphs.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.glyphs)
}

func (c *Canvas) setPixel(x, y int, color uint32) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = lit | color&0xffffff
	}
}

// At returns the color at a sub-pixel and whether it is set.
func (c *Canvas) At(x, y int) (uint32, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0, false
	}
	v := c.pixels[y*c.termWidth+x]
	return v & 0xffffff, v&lit != 0
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(x, y float64, color uint32) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)), color)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, color uint32) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1, color)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillCircle fills a disc given in logical coordinates. Discs smaller than a
// sub-pixel still set their center pixel.
func (c *Canvas) FillCircle(center Point, radius float64, color uint32) {
	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY
	rx := radius * c.scaleX
	ry := radius * c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)), color)
		return
	}
	yStart := int(math.Floor(cy - ry))
	yEnd := int(math.Ceil(cy + ry))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(cx - half - 0.5)); x <= int(math.Floor(cx+half-0.5)); x++ {
			c.setPixel(x, y, color)
		}
	}
}

// DrawCircle draws a circle outline in logical coordinates using segments.
func (c *Canvas) DrawCircle(center Point, radius float64, segments int, color uint32) {
	if segments < 3 {
		segments = 3
	}
	prev := Point{X: center.X + radius, Y: center.Y}
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		next := Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		c.DrawLine(prev, next, color)
		prev = next
	}
}

// SetGlyph places a character over the cell containing the logical point.
// Glyphs take precedence over pixels in that cell.
func (c *Canvas) SetGlyph(x, y float64, ch rune, color uint32) {
	col := int(math.Round(x * c.scaleX))
	row := int(math.Round(y*c.scaleY)) / 2
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return
	}
	c.glyphs[row*c.termWidth+col] = glyph{ch: ch, color: lit | color&0xffffff}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using 256-color half-block
// characters. Empty cells are skipped, so the caller clears the screen first.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	fg, bg := -1, -1
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		cursorAt := -1 // Column the cursor sits on after the last write

		for col := 0; col < c.termWidth; col++ {
			var ch rune
			wantFg, wantBg := -1, -1

			if g := c.glyphs[row*c.termWidth+col]; g.color&lit != 0 {
				ch = g.ch
				wantFg = int(Color256(g.color))
			} else {
				top := c.pixels[topOffset+col]
				bottom := c.pixels[bottomOffset+col]
				switch {
				case top&lit != 0 && bottom&lit != 0:
					ch = BlockUpperHalf
					wantFg = int(Color256(top))
					wantBg = int(Color256(bottom))
					if wantFg == wantBg {
						ch, wantBg = BlockFull, -1
					}
				case top&lit != 0:
					ch = BlockUpperHalf
					wantFg = int(Color256(top))
				case bottom&lit != 0:
					ch = BlockLowerHalf
					wantFg = int(Color256(bottom))
				default:
					continue // Skip empty cells
				}
			}

			if cursorAt != col {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if wantFg != fg {
				c.sgr(38, wantFg)
				fg = wantFg
			}
			if wantBg != bg {
				c.sgr(48, wantBg)
				bg = wantBg
			}
			c.renderBuf.WriteRune(ch)
			cursorAt = col + 1
		}
	}
	c.renderBuf.WriteString("\033[0m")

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// sgr sets the foreground (38) or background (48) color; -1 restores the default.
func (c *Canvas) sgr(layer, color int) {
	if color < 0 {
		if layer == 38 {
			c.renderBuf.WriteString("\033[39m")
		} else {
			c.renderBuf.WriteString("\033[49m")
		}
		return
	}
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";5;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(color), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			MoveCursor(&buf, left, top)
			buf.WriteString("┌" + line + "┐")
			MoveCursor(&buf, left, bottom)
			buf.WriteString("└" + line + "┘")
		} else {
			MoveCursor(&buf, c.offsetCol+1, top)
			buf.WriteString(line)
			MoveCursor(&buf, c.offsetCol+1, bottom)
			buf.WriteString(line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			MoveCursor(&buf, left, row)
			buf.WriteString("│")
			MoveCursor(&buf, right, row)
			buf.WriteString("│")
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 { return c.logicalWidth }

// LogicalHeight returns the logical height (target resolution, in sub-pixels).
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

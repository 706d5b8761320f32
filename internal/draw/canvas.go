package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomz197/radroids/internal/physics"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// maxChunkSize is the maximum bytes to write at once for smooth SSH flow.
const maxChunkSize = 1400

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Callers draw in world coordinates; the canvas scales them to terminal pixels.
type Canvas struct {
	termWidth      int    // Terminal columns used for rendering
	termHeight     int    // Terminal rows used for rendering
	subPixelHeight int    // termHeight * 2
	pixels         []bool // [y * termWidth + x]

	worldWidth  float64
	worldHeight float64
	scaleX      float64 // termWidth / worldWidth
	scaleY      float64 // (termHeight*2) / worldHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []physics.Vec2
	intersectionBuf []float64
	polygonBuf      []physics.Vec2
}

// NewCanvas creates a canvas that maps a world of the given size onto
// termWidth x termHeight terminal cells.
func NewCanvas(termWidth, termHeight int, world physics.Bounds) *Canvas {
	c := &Canvas{worldWidth: world.Width, worldHeight: world.Height}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the world size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.worldWidth
	c.scaleY = float64(subPixelHeight) / c.worldHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// The canvas starts at terminal position (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the terminal column count used for rendering.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count used for rendering.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Lit reports whether the pixel under world point p is set.
func (c *Canvas) Lit(p physics.Vec2) bool {
	x, y := c.toPixel(p)
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) toPixel(p physics.Vec2) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Dot sets the pixel under world point p.
func (c *Canvas) Dot(p physics.Vec2) {
	c.setPixel(c.toPixel(p))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 physics.Vec2) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

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
		c.setPixel(x1, y1)

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

// DrawPolygon draws a closed polygon. If filled is true, the interior is
// filled using a scanline pass.
func (c *Canvas) DrawPolygon(points []physics.Vec2, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// DrawCircle draws a circle outline approximated by segments.
func (c *Canvas) DrawCircle(center physics.Vec2, radius float64, segments int) {
	pts := c.BorrowPoints(segments)
	for i := range pts {
		pts[i] = center.Add(physics.FromAngle(2*math.Pi*float64(i)/float64(segments), radius))
	}
	c.DrawPolygon(pts, false)
}

// fillPolygon fills a polygon using a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []physics.Vec2) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]physics.Vec2, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = physics.Vec2{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xEnd := int(math.Floor(intersections[i+1]))
			for x := int(math.Ceil(intersections[i])); x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render outputs the canvas to the writer using half-block characters.
// Empty cells are skipped, so the caller clears the screen first.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue
			}

			c.renderBuf.WriteString("\033[")
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
			c.renderBuf.WriteByte(';')
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
			c.renderBuf.WriteByte('H')
			c.renderBuf.WriteRune(ch)
		}
	}

	return writeChunked(w, c.renderBuf.String())
}

// RenderBorder draws a box around the canvas area when the terminal is
// larger than the render area on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString(cursor(left, top) + "┌" + line + "┐")
			buf.WriteString(cursor(left, bottom) + "└" + line + "┘")
		} else {
			buf.WriteString(cursor(c.offsetCol+1, top) + line)
			buf.WriteString(cursor(c.offsetCol+1, bottom) + line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row < c.offsetRow+c.termHeight+1; row++ {
			buf.WriteString(cursor(left, row) + "│" + cursor(right, row) + "│")
		}
	}
	return writeChunked(w, buf.String())
}

// WorldToTerminal converts world coordinates to a 1-based canvas position (col, row).
func (c *Canvas) WorldToTerminal(p physics.Vec2) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of points with the given length.
// The slice is only valid until the next call.
func (c *Canvas) BorrowPoints(n int) []physics.Vec2 {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]physics.Vec2, n)
	}
	return c.polygonBuf[:n]
}

func writeChunked(w io.Writer, data string) error {
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

func cursor(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

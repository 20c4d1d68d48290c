// Package draw provides a colored half-block canvas and the code that puts it
// on a terminal.
package draw

import (
	"math"
	"sort"
)

// Point is a position in logical coordinates.
type Point struct {
	X, Y float64
}

// Half-block glyphs. A terminal cell shows two stacked sub-pixels.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockFull      = '█'
)

// Shader returns the color of the sub-pixel centered at logical (x, y).
type Shader func(x, y float64) RGB

// Solid is a Shader that always returns c.
func Solid(c RGB) Shader {
	return func(float64, float64) RGB { return c }
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Callers draw in logical coordinates which are scaled to terminal sub-pixels.
type Canvas struct {
	termWidth      int   // Terminal columns covered by the canvas
	termHeight     int   // Terminal rows covered by the canvas
	subPixelHeight int   // termHeight * 2
	pixels         []RGB // Flat slice: [y * termWidth + x]
	background     RGB   // Last Fill color; monochrome output treats it as "off"

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets of the canvas' top-left cell.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point

	renderer renderState
}

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1
// mapping between logical units and sub-pixels.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight, logicalWidth, logicalHeight)
	return c
}

// Resize updates the terminal and logical dimensions. Pixel contents are
// discarded when the terminal size changes and the next Render redraws everything.
func (c *Canvas) Resize(termWidth, termHeight int, logicalWidth, logicalHeight float64) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]RGB, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.ForceRedraw()
	}

	c.logicalWidth = math.Max(logicalWidth, 1)
	c.logicalHeight = math.Max(logicalHeight, 1)
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset of the canvas on the terminal.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Fill paints every sub-pixel with col and makes it the background color.
func (c *Canvas) Fill(col RGB) {
	c.background = col
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// Background returns the last Fill color.
func (c *Canvas) Background() RGB {
	return c.background
}

// setPixel paints a sub-pixel at terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col RGB, alpha float64) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = c.pixels[i].Over(col, alpha)
	}
}

// Pixel returns the sub-pixel at terminal coordinates; out of range reads the background.
func (c *Canvas) Pixel(x, y int) RGB {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return c.background
}

// Cell returns the two sub-pixels shown by terminal cell (col, row) of the canvas.
func (c *Canvas) Cell(col, row int) (top, bottom RGB) {
	return c.Pixel(col, row*2), c.Pixel(col, row*2+1)
}

// SetFloat paints the sub-pixel under logical (x, y).
func (c *Canvas) SetFloat(x, y float64, col RGB, alpha float64) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), col, alpha)
}

// FillRect paints the logical rectangle [x, x+w) x [y, y+h). Rectangles smaller
// than a sub-pixel still cover the sub-pixel under their origin.
func (c *Canvas) FillRect(x, y, w, h float64, col RGB, alpha float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(int(math.Ceil((x+w)*c.scaleX)), x0+1)
	y1 := max(int(math.Ceil((y+h)*c.scaleY)), y0+1)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col, alpha)
		}
	}
}

// FillCircle paints every sub-pixel whose center lies inside the logical
// circle, colored by shade. The sub-pixel under the center is always painted
// so small circles stay visible when scaled down.
func (c *Canvas) FillCircle(cx, cy, r float64, shade Shader, alpha float64) {
	px0 := int(math.Floor((cx - r) * c.scaleX))
	px1 := int(math.Ceil((cx + r) * c.scaleX))
	py0 := int(math.Floor((cy - r) * c.scaleY))
	py1 := int(math.Ceil((cy + r) * c.scaleY))
	r2 := r * r

	for py := py0; py <= py1; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		for px := px0; px <= px1; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			dx, dy := lx-cx, ly-cy
			if dx*dx+dy*dy <= r2 {
				c.setPixel(px, py, shade(lx, ly), alpha)
			}
		}
	}

	centerX := int(math.Floor(cx * c.scaleX))
	centerY := int(math.Floor(cy * c.scaleY))
	lx := (float64(centerX) + 0.5) / c.scaleX
	ly := (float64(centerY) + 0.5) / c.scaleY
	if dx, dy := lx-cx, ly-cy; dx*dx+dy*dy > r2 {
		c.setPixel(centerX, centerY, shade(cx, cy), alpha)
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col RGB, alpha float64) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

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
		c.setPixel(x1, y1, col, alpha)

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

// DrawPolygon draws a polygon on the canvas. If filled is true, the interior
// is filled with the scanline algorithm. Translucent filled polygons skip the
// outline so edge pixels are not blended twice.
func (c *Canvas) DrawPolygon(points []Point, col RGB, alpha float64, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		if c.fillPolygon(points, col, alpha) && alpha < 1 {
			return
		}
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col, alpha)
	}
}

// fillPolygon fills a polygon using scanline sampling at sub-pixel centers.
// It reports whether any pixel was painted.
func (c *Canvas) fillPolygon(points []Point, col RGB, alpha float64) bool {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	painted := false
	for y := yStart; y <= yEnd; y++ {
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
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col, alpha)
				painted = true
			}
		}
	}
	return painted
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the terminal column count covered by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count covered by the canvas.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position (col, row) relative to the canvas origin.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

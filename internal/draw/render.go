package draw

import (
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// cell is what a terminal cell showed after the last Render.
type cell struct {
	top, bottom RGB
}

// renderState tracks what is on the terminal so Render only sends changes.
type renderState struct {
	profile termenv.Profile
	prev    []cell
	stale   []bool // cells overwritten by text since the last Render
	valid   bool   // prev matches the terminal
	buf     strings.Builder
	numBuf  [20]byte
	fgCache map[RGB]string
	bgCache map[RGB]string
}

// SetProfile selects the color profile used by Render.
func (c *Canvas) SetProfile(p termenv.Profile) {
	if p != c.renderer.profile {
		c.renderer.profile = p
		c.renderer.fgCache = nil
		c.renderer.bgCache = nil
		c.ForceRedraw()
	}
}

// Profile returns the color profile used by Render.
func (c *Canvas) Profile() termenv.Profile {
	return c.renderer.profile
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared or text was drawn over the canvas.
func (c *Canvas) ForceRedraw() {
	c.renderer.valid = false
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them even
// if their pixels did not change.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	rs := &c.renderer
	row--
	col--
	if row < 0 || row >= c.termHeight || len(rs.stale) != c.termWidth*c.termHeight {
		return
	}
	for x := max(col, 0); x < min(col+n, c.termWidth); x++ {
		rs.stale[row*c.termWidth+x] = true
	}
}

// Render writes the cells that changed since the previous Render to w as
// ANSI escape sequences, in chunks of at most maxChunkSize bytes. Colors are
// converted to the canvas profile; the Ascii profile draws monochrome
// half-blocks wherever a sub-pixel differs from the background.
func (c *Canvas) Render(w io.Writer) error {
	rs := &c.renderer
	cells := c.termWidth * c.termHeight
	if len(rs.prev) != cells {
		rs.prev = make([]cell, cells)
		rs.stale = make([]bool, cells)
		rs.valid = false
	}

	rs.buf.Reset()
	var lastFg, lastBg string
	cursorCol, cursorRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			top, bottom := c.Cell(col, row)
			idx := row*c.termWidth + col
			cur := cell{top: top, bottom: bottom}
			if rs.valid && !rs.stale[idx] && rs.prev[idx] == cur {
				continue
			}
			rs.prev[idx] = cur
			rs.stale[idx] = false

			if col != cursorCol || row != cursorRow {
				c.writeCursor(col, row)
			}

			if rs.profile == termenv.Ascii {
				rs.buf.WriteString(string(c.monochrome(cur)))
			} else {
				fg := rs.sequence(top, false)
				bg := rs.sequence(bottom, true)
				if fg != lastFg || bg != lastBg {
					rs.buf.WriteString(termenv.CSI)
					rs.buf.WriteString(fg)
					rs.buf.WriteByte(';')
					rs.buf.WriteString(bg)
					rs.buf.WriteByte('m')
					lastFg, lastBg = fg, bg
				}
				rs.buf.WriteRune(BlockUpperHalf)
			}
			cursorCol, cursorRow = col+1, row
		}
	}
	if lastFg != "" || lastBg != "" {
		rs.buf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}
	rs.valid = true

	return writeChunked(w, rs.buf.String())
}

// writeCursor appends an absolute cursor move to canvas cell (col, row).
func (c *Canvas) writeCursor(col, row int) {
	rs := &c.renderer
	rs.buf.WriteString(termenv.CSI)
	rs.buf.Write(strconv.AppendInt(rs.numBuf[:0], int64(row+1+c.offsetRow), 10))
	rs.buf.WriteByte(';')
	rs.buf.Write(strconv.AppendInt(rs.numBuf[:0], int64(col+1+c.offsetCol), 10))
	rs.buf.WriteByte('H')
}

func (c *Canvas) monochrome(cur cell) rune {
	top := cur.top != c.background
	bottom := cur.bottom != c.background
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return ' '
}

// sequence returns the SGR parameters for col in the current profile.
func (rs *renderState) sequence(col RGB, bg bool) string {
	cache := &rs.fgCache
	if bg {
		cache = &rs.bgCache
	}
	if *cache == nil {
		*cache = make(map[RGB]string)
	}
	if s, ok := (*cache)[col]; ok {
		return s
	}
	s := rs.profile.FromColor(col).Sequence(bg)
	(*cache)[col] = s
	return s
}

// writeChunked writes data in maxChunkSize pieces.
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

// RenderBorder frames the canvas when it is offset from the terminal edges
// (terminal larger than the maximum render size). Horizontal bars need a
// row offset, vertical bars a column offset; corners need both.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasSides := c.offsetCol >= 1
	hasBars := c.offsetRow >= 1
	if !hasSides && !hasBars {
		return nil
	}

	// 1-based border positions
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	move := func(row, col int) {
		buf.WriteString(termenv.CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H")
	}

	if hasBars {
		if hasSides {
			move(top, left)
			buf.WriteString("┌" + line + "┐")
			move(bottom, left)
			buf.WriteString("└" + line + "┘")
		} else {
			move(top, c.offsetCol+1)
			buf.WriteString(line)
			move(bottom, c.offsetCol+1)
			buf.WriteString(line)
		}
	}
	if hasSides {
		for row := c.offsetRow + 1; row < bottom; row++ {
			move(row, left)
			buf.WriteString("│")
			move(row, right)
			buf.WriteString("│")
		}
	}
	return writeChunked(w, buf.String())
}

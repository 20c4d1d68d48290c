package draw

import "github.com/gdamore/tcell/v2"

// Blit copies the canvas onto a tcell screen at the canvas offset, one
// upper-half block per cell with the top sub-pixel as foreground and the
// bottom one as background. The caller calls Show.
func (c *Canvas) Blit(s tcell.Screen) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			top, bottom := c.Cell(col, row)
			style := tcell.StyleDefault.
				Foreground(tcellColor(top)).
				Background(tcellColor(bottom))
			s.SetContent(col+c.offsetCol, row+c.offsetRow, BlockUpperHalf, nil, style)
		}
	}
}

func tcellColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

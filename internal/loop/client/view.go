package client

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/meteorfall/internal/draw"
)

// Tone selects how a display styles a label.
type Tone int

const (
	ToneText Tone = iota
	ToneHUD
	ToneTitle
	ToneHint
	ToneAlert
	toneCount
)

// toneColors are the label foregrounds, shared by every display.
var toneColors = [toneCount]string{
	ToneText:  "#e5e7eb",
	ToneHUD:   "#22d3ee",
	ToneTitle: "#fde68a",
	ToneHint:  "#9ca3af",
	ToneAlert: "#f97316",
}

// bold reports whether a tone is drawn bold.
func (t Tone) bold() bool {
	return t == ToneHUD || t == ToneTitle || t == ToneAlert
}

// Label is a line of text placed at a 1-based cell of the canvas area.
type Label struct {
	Col, Row int
	Text     string
	Tone     Tone
}

// View is everything a display shows for one frame.
type View struct {
	Canvas *draw.Canvas
	Labels []Label
	Clear  bool // the screen changed; wipe stale text before drawing
}

// reset prepares the view for a new frame, reusing the label slice.
func (v *View) reset(c *draw.Canvas) {
	v.Canvas = c
	v.Labels = v.Labels[:0]
	v.Clear = false
}

// add places text at (col, row), clipped to the canvas area.
func (v *View) add(col, row int, text string, tone Tone) {
	w, h := v.Canvas.TerminalWidth(), v.Canvas.TerminalHeight()
	if row < 1 || row > h || text == "" {
		return
	}
	runes := []rune(text)
	if col < 1 {
		if 1-col >= len(runes) {
			return
		}
		runes = runes[1-col:]
		col = 1
	}
	if over := col + len(runes) - 1 - w; over > 0 {
		if over >= len(runes) {
			return
		}
		runes = runes[:len(runes)-over]
	}
	v.Labels = append(v.Labels, Label{Col: col, Row: row, Text: string(runes), Tone: tone})
}

// center places text horizontally centered on centerX.
func (v *View) center(centerX, row int, text string, tone Tone) {
	v.add(centerX-lipgloss.Width(text)/2, row, text, tone)
}

// centerBlock places lines centered on centerX as one left-aligned block
// starting at row.
func (v *View) centerBlock(centerX, row int, lines []string, tone Tone) {
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}
	for i, line := range lines {
		v.add(centerX-width/2, row+i, line, tone)
	}
}

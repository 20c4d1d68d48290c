package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	settings "github.com/tomz197/meteorfall/internal/config"
	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/input"
)

// Display is a terminal backend: it reports the terminal size, delivers key
// presses and puts views on screen. Terminals report presses only, so the
// client emulates releases.
type Display interface {
	Size() (cols, rows int, err error)
	// Keys returns the keys pressed since the last call without blocking.
	// open is false once the input source has gone away.
	Keys() (keys []input.Key, open bool)
	Present(v *View) error
	Close() error
}

// ColorProfile maps a configured color mode to a termenv profile. "auto"
// (or anything unknown) returns detected.
func ColorProfile(mode string, detected termenv.Profile) termenv.Profile {
	switch mode {
	case settings.ColorTrueColor:
		return termenv.TrueColor
	case settings.Color256:
		return termenv.ANSI256
	case settings.ColorANSI:
		return termenv.ANSI
	case settings.ColorASCII:
		return termenv.Ascii
	}
	return detected
}

// ANSIDisplay draws with raw escape sequences on a byte stream, such as a
// raw-mode terminal or an SSH session.
type ANSIDisplay struct {
	stream   *input.Stream
	cw       *draw.ChunkWriter
	termSize draw.TermSizeFunc
	profile  termenv.Profile
	styles   [toneCount]lipgloss.Style
}

// Compile-time check that ANSIDisplay implements Display.
var _ Display = (*ANSIDisplay)(nil)

// NewANSIDisplay reads keys from r and writes frames to w. termSize reports
// the terminal size; nil uses the process' stdout.
func NewANSIDisplay(r io.Reader, w io.Writer, termSize draw.TermSizeFunc, profile termenv.Profile) *ANSIDisplay {
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	d := &ANSIDisplay{
		stream:   input.StartStream(r),
		cw:       draw.NewChunkWriter(w, 0, 0),
		termSize: termSize,
		profile:  profile,
	}
	for t := range d.styles {
		d.styles[t] = renderer.NewStyle().
			Foreground(lipgloss.Color(toneColors[t])).
			Bold(Tone(t).bold())
	}
	return d
}

// Size implements Display.
func (d *ANSIDisplay) Size() (int, int, error) {
	return d.termSize()
}

// Keys implements Display.
func (d *ANSIDisplay) Keys() ([]input.Key, bool) {
	return d.stream.Drain()
}

// Present implements Display. Only canvas cells that changed are sent;
// labels are written over the canvas and repainted next frame.
func (d *ANSIDisplay) Present(v *View) error {
	c := v.Canvas
	c.SetProfile(d.profile)
	d.cw.SetOffset(c.OffsetCol(), c.OffsetRow())

	if v.Clear {
		d.cw.HideCursor()
		d.cw.ClearScreen()
		c.ForceRedraw()
	}

	if err := c.Render(d.cw); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if v.Clear {
		if err := c.RenderBorder(d.cw); err != nil {
			return err
		}
	}

	for _, l := range v.Labels {
		d.cw.WriteAt(l.Col, l.Row, d.styles[l.Tone].Render(l.Text))
		c.MarkTextDirty(l.Col, l.Row, lipgloss.Width(l.Text))
	}
	return d.cw.Flush()
}

// Close stops the key reader, clears the screen and restores the cursor.
func (d *ANSIDisplay) Close() error {
	d.stream.Close()
	d.cw.SetOffset(0, 0)
	d.cw.ClearScreen()
	d.cw.ShowCursor()
	return d.cw.Flush()
}

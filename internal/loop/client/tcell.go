package client

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/meteorfall/internal/input"
)

// TcellDisplay draws through a tcell screen. The screen must already be
// initialized; Close finalizes it.
type TcellDisplay struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	styles [toneCount]tcell.Style
	keys   []input.Key
	open   bool
	once   sync.Once
}

// Compile-time check that TcellDisplay implements Display.
var _ Display = (*TcellDisplay)(nil)

// NewTcellDisplay starts collecting events from s.
func NewTcellDisplay(s tcell.Screen) *TcellDisplay {
	d := &TcellDisplay{
		screen: s,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		open:   true,
	}
	for t := range d.styles {
		d.styles[t] = tcell.StyleDefault.
			Foreground(tcell.GetColor(toneColors[t])).
			Background(tcell.GetColor("#030712")).
			Bold(Tone(t).bold())
	}
	s.HideCursor()
	go s.ChannelEvents(d.events, d.quit)
	return d
}

// Size implements Display.
func (d *TcellDisplay) Size() (int, int, error) {
	w, h := d.screen.Size()
	return w, h, nil
}

// Keys implements Display.
func (d *TcellDisplay) Keys() ([]input.Key, bool) {
	d.keys = d.keys[:0]
drain:
	for d.open {
		select {
		case ev, ok := <-d.events:
			if !ok {
				d.open = false
				break drain
			}
			d.handle(ev)
		default:
			break drain
		}
	}
	return d.keys, d.open
}

// handle queues the key of a key event and resyncs after a resize.
func (d *TcellDisplay) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k, ok := input.KeyFromTcell(ev); ok {
			d.keys = append(d.keys, k)
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
}

// Present implements Display.
func (d *TcellDisplay) Present(v *View) error {
	if v.Clear {
		d.screen.Clear()
	}
	v.Canvas.Blit(d.screen)

	col0, row0 := v.Canvas.OffsetCol(), v.Canvas.OffsetRow()
	for _, l := range v.Labels {
		col := col0 + l.Col - 1
		for _, r := range l.Text {
			d.screen.SetContent(col, row0+l.Row-1, r, nil, d.styles[l.Tone])
			col++
		}
	}
	d.screen.Show()
	return nil
}

// Close stops event delivery and finalizes the screen. It is safe to call
// more than once.
func (d *TcellDisplay) Close() error {
	d.once.Do(func() {
		close(d.quit)
		d.screen.Fini()
	})
	return nil
}

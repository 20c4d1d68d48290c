package client

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/input"
)

func newSimDisplay(t *testing.T, w, h int) (*TcellDisplay, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	return NewTcellDisplay(s), s
}

func TestTcellPresent(t *testing.T) {
	d, s := newSimDisplay(t, 10, 3)
	defer d.Close()

	c := draw.NewCanvas(10, 3)
	red := draw.RGB{R: 255}
	c.Fill(red)

	var v View
	v.reset(c)
	v.Clear = true
	v.add(1, 1, "Hi", ToneHUD)
	if err := d.Present(&v); err != nil {
		t.Fatalf("Present: %v", err)
	}

	cells, w, _ := s.GetContents()
	at := func(x, y int) tcell.SimCell { return cells[y*w+x] }

	if r := at(0, 0).Runes; len(r) == 0 || r[0] != 'H' {
		t.Errorf("cell (0,0) = %q, want H", r)
	}
	cell := at(5, 2)
	if len(cell.Runes) == 0 || cell.Runes[0] != draw.BlockUpperHalf {
		t.Fatalf("cell (5,2) = %q, want upper half block", cell.Runes)
	}
	fg, bg, _ := cell.Style.Decompose()
	if want := tcell.NewRGBColor(255, 0, 0); fg != want || bg != want {
		t.Errorf("cell colors = %v/%v, want %v", fg, bg, want)
	}
}

func TestTcellKeys(t *testing.T) {
	d, s := newSimDisplay(t, 10, 3)

	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	var got []input.Key
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < 2 && time.Now().Before(deadline) {
		keys, open := d.Keys()
		if !open {
			t.Fatal("input closed early")
		}
		got = append(got, keys...)
		time.Sleep(5 * time.Millisecond)
	}
	if len(got) != 2 || got[0] != input.KeyArrowRight || got[1] != "q" {
		t.Fatalf("keys = %v", got)
	}

	d.Close()
	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, open := d.Keys(); !open {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Keys still open after Close")
}

func TestKeyFromTcellFeedsClient(t *testing.T) {
	d, _ := newSimDisplay(t, 80, 24)
	defer d.Close()

	d.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	d.handle(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	d.handle(tcell.NewEventResize(80, 24))

	if len(d.keys) != 2 || d.keys[0] != input.KeyEnter || d.keys[1] != "p" {
		t.Fatalf("keys = %v", d.keys)
	}
}

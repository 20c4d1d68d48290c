package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

var (
	black = RGB{}
	white = RGB{255, 255, 255}
	red   = RGB{255, 0, 0}
)

func TestHex(t *testing.T) {
	c, err := Hex("#22d3ee")
	if err != nil {
		t.Fatalf("Hex: %v", err)
	}
	if c != (RGB{0x22, 0xd3, 0xee}) {
		t.Errorf("Hex = %+v", c)
	}
	if c.Hex() != "#22d3ee" {
		t.Errorf("round trip = %q", c.Hex())
	}
	if _, err := Hex("nope"); err == nil {
		t.Error("expected error for bad hex")
	}
}

func TestOver(t *testing.T) {
	if got := black.Over(white, 1); got != white {
		t.Errorf("opaque over = %+v", got)
	}
	if got := black.Over(white, 0); got != black {
		t.Errorf("transparent over = %+v", got)
	}
	got := black.Over(white, 0.5)
	if got.R < 126 || got.R > 129 {
		t.Errorf("half blend = %+v, want ~128", got)
	}
}

func TestFillAndCell(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Fill(red)
	if c.Background() != red {
		t.Fatalf("background = %+v", c.Background())
	}
	top, bottom := c.Cell(3, 1)
	if top != red || bottom != red {
		t.Fatalf("cell = %+v/%+v", top, bottom)
	}
	// Out of range reads the background.
	if c.Pixel(-1, 0) != red {
		t.Error("out-of-range pixel should be background")
	}
}

func TestScaledFillRect(t *testing.T) {
	// 10 columns x 5 rows = 10x10 sub-pixels, logical 100x100: 10 units per pixel.
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Fill(black)
	c.FillRect(20, 30, 20, 10, white, 1)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := black
			if x >= 2 && x < 4 && y == 3 {
				want = white
			}
			if got := c.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestTinyRectStillPaints(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Fill(black)
	c.FillRect(55, 55, 2, 2, white, 1)
	if c.Pixel(5, 5) != white {
		t.Error("2x2 star at 10x downscale should cover its origin pixel")
	}
}

func TestFillCircleShader(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Fill(black)
	calls := 0
	c.FillCircle(10, 10, 4, func(x, y float64) RGB {
		calls++
		return red
	}, 1)
	if calls == 0 {
		t.Fatal("shader never called")
	}
	if c.Pixel(10, 10) != red {
		t.Error("center not painted")
	}
	if c.Pixel(10, 15) != black {
		t.Error("pixel outside radius painted")
	}
}

func TestFillCircleTinyPaintsCenter(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Fill(black)
	c.FillCircle(53, 57, 3, Solid(white), 1)
	if c.Pixel(5, 5) != white {
		t.Error("tiny circle should paint the pixel under its center")
	}
}

func TestDrawPolygonFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Fill(black)
	tri := []Point{{10, 2}, {16, 16}, {4, 16}}
	c.DrawPolygon(tri, white, 1, true)
	if c.Pixel(10, 12) != white {
		t.Error("triangle interior not filled")
	}
	if c.Pixel(1, 1) != black {
		t.Error("pixel outside triangle painted")
	}
}

func TestDrawPolygonTranslucent(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Fill(black)
	tri := []Point{{10, 2}, {16, 16}, {4, 16}}
	c.DrawPolygon(tri, white, 0.4, true)
	got := c.Pixel(10, 12)
	if got == white || got == black {
		t.Errorf("translucent fill = %+v, want a blend", got)
	}
}

func TestRenderDiff(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetProfile(termenv.TrueColor)
	c.Fill(black)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(first.String(), string(BlockUpperHalf)); n != 3 {
		t.Fatalf("first render drew %d cells, want 3", n)
	}
	if !strings.Contains(first.String(), "38;2;0;0;0") {
		t.Errorf("missing truecolor foreground: %q", first.String())
	}

	var second bytes.Buffer
	if err := c.Render(&second); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if second.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", second.String())
	}

	c.setPixel(1, 0, red, 1)
	var third bytes.Buffer
	if err := c.Render(&third); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(third.String(), string(BlockUpperHalf)); n != 1 {
		t.Fatalf("diff render drew %d cells, want 1", n)
	}
	if !strings.Contains(third.String(), "\x1b[1;2H") {
		t.Errorf("expected cursor move to column 2: %q", third.String())
	}

	c.ForceRedraw()
	var fourth bytes.Buffer
	if err := c.Render(&fourth); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(fourth.String(), string(BlockUpperHalf)); n != 3 {
		t.Fatalf("forced render drew %d cells, want 3", n)
	}
}

func TestMarkTextDirtyRepaintsCells(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetProfile(termenv.TrueColor)
	c.Fill(black)
	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	c.MarkTextDirty(2, 2, 2)
	c.MarkTextDirty(4, 9, 5) // off the canvas
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := strings.Count(out.String(), string(BlockUpperHalf)); n != 2 {
		t.Fatalf("repainted %d cells, want 2: %q", n, out.String())
	}
	if !strings.Contains(out.String(), "\x1b[2;2H") {
		t.Errorf("expected cursor move to row 2 column 2: %q", out.String())
	}

	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("dirty marks survived a render: %q", out.String())
	}
}

func TestRenderAscii(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetProfile(termenv.Ascii)
	c.Fill(black)
	c.setPixel(0, 1, white, 1)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, string(BlockLowerHalf)) {
		t.Errorf("expected lower half block: %q", s)
	}
	if strings.Contains(s, "38;") {
		t.Errorf("ascii output contains color: %q", s)
	}
}

func TestRenderOffset(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetProfile(termenv.ANSI256)
	c.SetOffset(4, 2)
	c.Fill(white)
	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "\x1b[3;5H") {
		t.Errorf("offset cursor move missing: %q", out.String())
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(3, 1)
	var none bytes.Buffer
	if err := c.RenderBorder(&none); err != nil || none.Len() != 0 {
		t.Fatalf("border without offset wrote %q (err %v)", none.String(), err)
	}
	c.SetOffset(1, 1)
	var out bytes.Buffer
	if err := c.RenderBorder(&out); err != nil {
		t.Fatalf("RenderBorder: %v", err)
	}
	for _, want := range []string{"┌───┐", "└───┘", "│"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("border missing %q: %q", want, out.String())
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !strings.HasPrefix(out.String(), "\x1b[2;3Hhi") {
		t.Errorf("prefix = %q", out.String()[:10])
	}
	if cw.Len() != 0 {
		t.Error("buffer not reset after flush")
	}
}

func TestBlit(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer s.Fini()
	s.SetSize(4, 2)

	c := NewCanvas(2, 1)
	c.Fill(black)
	c.setPixel(1, 0, red, 1)
	c.SetOffset(1, 1)
	c.Blit(s)
	s.Show()

	cells, w, _ := s.GetContents()
	got := cells[1*w+2]
	if string(got.Runes) != string(BlockUpperHalf) {
		t.Fatalf("cell runes = %q", string(got.Runes))
	}
	fg, bg, _ := got.Style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("cell colors fg=%v bg=%v", fg, bg)
	}
}

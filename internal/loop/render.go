package loop

import (
	"math"

	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/loop/config"
	"github.com/tomz197/meteorfall/internal/object"
)

var (
	colorBackground = draw.MustHex("#030712")
	colorStar       = draw.RGB{R: 255, G: 255, B: 255}
)

// Render paints the current session onto c as of frame tick. It reads the
// session only. Paint order, back to front: background, stars, meteors,
// enemies, enemy bullets, ship, player bullets.
func (e *Engine) Render(c *draw.Canvas, tick int) {
	s := e.session
	ctx := object.DrawContext{Canvas: c, Tick: tick}

	c.Fill(colorBackground)
	drawStarfield(c, tick, e.screen)

	for _, m := range s.Meteors {
		m.Draw(ctx)
	}
	for _, en := range s.Enemies {
		en.Draw(ctx)
	}
	for _, b := range s.EnemyBullets {
		b.Draw(ctx)
	}
	s.Player.Draw(ctx)
	for _, b := range s.Bullets {
		b.Draw(ctx)
	}
}

// drawStarfield paints a parallax field whose positions depend only on the
// star index and the tick. Every third star shares a drift speed.
func drawStarfield(c *draw.Canvas, tick int, screen object.Screen) {
	for i := 0; i < config.StarCount; i++ {
		x, y := starPosition(i, tick, screen)
		c.FillRect(x, y, config.StarSize, config.StarSize, colorStar, config.StarAlpha)
	}
}

func starPosition(i, tick int, screen object.Screen) (x, y float64) {
	t := float64(tick)
	x = math.Mod(float64(i*97)+t*0.4, screen.Width)
	y = math.Mod(float64(i*53)+t*(0.3+float64(i%3)*0.2), screen.Height)
	return x, y
}

package object

import (
	"math"

	"github.com/tomz197/meteorfall/internal/draw"
)

// Player ship defaults.
const (
	PlayerRadius       = 12.0 // clamping and drawing
	PlayerHitboxRadius = 8.0  // hazard collisions
	PlayerSpeed        = 4.0  // px per frame per held direction
	PlayerFireCooldown = 8    // frames between volleys
	PlayerStartOffset  = 80.0 // distance of the spawn point from the bottom edge

	playerGunOffsetX = 6.0
	playerGunOffsetY = 12.0

	// FlickerPeriod is how many frames the ship stays dim or bright while invulnerable.
	FlickerPeriod = 8
	FlickerAlpha  = 0.4
)

// playerShape is the ship triangle relative to its center.
var playerShape = [3]draw.Point{{X: 0, Y: -16}, {X: 12, Y: 12}, {X: -12, Y: 12}}

// Player is the ship steered by the input sampler.
type Player struct {
	X, Y     float64
	R        float64
	Speed    float64
	Cooldown int // frames until the next volley
	Invuln   int // frames of invulnerability left
}

// NewPlayer places a ship at the start position for a playfield.
func NewPlayer(screen Screen) *Player {
	return &Player{
		X:     screen.Width / 2,
		Y:     screen.Height - PlayerStartOffset,
		R:     PlayerRadius,
		Speed: PlayerSpeed,
	}
}

// Center implements physics.Circle using the hazard hitbox.
func (p *Player) Center() (float64, float64) { return p.X, p.Y }

// Radius is the hazard hitbox radius, smaller than the drawn ship.
func (p *Player) Radius() float64 { return PlayerHitboxRadius }

// Move applies held directions and clamps the ship inside the playfield.
// Diagonals are not normalized.
func (p *Player) Move(ctx UpdateContext) {
	in := ctx.Input
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	if in.Up {
		p.Y -= p.Speed
	}
	if in.Down {
		p.Y += p.Speed
	}
	p.X = clamp(p.X, p.R, ctx.Screen.Width-p.R)
	p.Y = clamp(p.Y, p.R, ctx.Screen.Height-p.R)
}

// Shoot counts down the cooldown and fires two parallel bullets when fire is held.
func (p *Player) Shoot(ctx UpdateContext) {
	if p.Cooldown > 0 {
		p.Cooldown--
	}
	if !ctx.Input.Fire || p.Cooldown > 0 {
		return
	}
	ctx.Spawner.SpawnBullet(NewBullet(p.X-playerGunOffsetX, p.Y-playerGunOffsetY))
	ctx.Spawner.SpawnBullet(NewBullet(p.X+playerGunOffsetX, p.Y-playerGunOffsetY))
	p.Cooldown = PlayerFireCooldown
}

// Draw renders the ship, dimmed on alternating phases of invulnerability.
func (p *Player) Draw(ctx DrawContext) {
	alpha := 1.0
	if Flickering(p.Invuln, FlickerPeriod) {
		alpha = FlickerAlpha
	}
	drawTriangle(ctx.Canvas, p.X, p.Y, playerShape, ColorPlayer, alpha)
}

func drawTriangle(c *draw.Canvas, x, y float64, shape [3]draw.Point, col draw.RGB, alpha float64) {
	pts := c.BorrowPoints(len(shape))
	for i, v := range shape {
		pts[i] = draw.Point{X: x + v.X, Y: y + v.Y}
	}
	c.DrawPolygon(pts, col, alpha, true)
}

// clamp keeps v in [lo, hi]; lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

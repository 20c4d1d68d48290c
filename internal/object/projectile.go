package object

import "github.com/tomz197/meteorfall/internal/draw"

// Projectile defaults.
const (
	BulletRadius = 3.0
	BulletSpeed  = 8.0  // player bullets travel straight up
	BulletMargin = 20.0 // distance past the edge before a bullet is dropped
)

// Bullet is a shot fired by the player.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

// NewBullet creates a player bullet moving up from (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{X: x, Y: y, VY: -BulletSpeed, R: BulletRadius}
}

func (b *Bullet) Center() (float64, float64) { return b.X, b.Y }
func (b *Bullet) Radius() float64            { return b.R }

// Update moves the bullet and drops it once it leaves the playfield margin.
func (b *Bullet) Update(ctx UpdateContext) bool {
	b.X += b.VX
	b.Y += b.VY
	return ctx.Screen.OffScreen(b.X, b.Y, BulletMargin)
}

// Draw renders the bullet as a dot.
func (b *Bullet) Draw(ctx DrawContext) {
	ctx.Canvas.FillCircle(b.X, b.Y, b.R, draw.Solid(ColorBullet), 1)
}

// BulletTag records which fire pattern produced an enemy bullet; it picks the color.
type BulletTag int

// Enemy bullet tags.
const (
	TagRadial BulletTag = iota
	TagAimed
)

// Color returns the display color for the tag.
func (t BulletTag) Color() draw.RGB {
	if t == TagAimed {
		return ColorAimedBullet
	}
	return ColorRadialBullet
}

// EnemyBullet is a shot fired by an enemy.
type EnemyBullet struct {
	X, Y   float64
	VX, VY float64
	R      float64
	Tag    BulletTag
}

func (b *EnemyBullet) Center() (float64, float64) { return b.X, b.Y }
func (b *EnemyBullet) Radius() float64            { return b.R }

// Update moves the bullet and drops it once it leaves the playfield margin.
func (b *EnemyBullet) Update(ctx UpdateContext) bool {
	b.X += b.VX
	b.Y += b.VY
	return ctx.Screen.OffScreen(b.X, b.Y, BulletMargin)
}

// Draw renders the bullet as a dot in its pattern color.
func (b *EnemyBullet) Draw(ctx DrawContext) {
	ctx.Canvas.FillCircle(b.X, b.Y, b.R, draw.Solid(b.Tag.Color()), 1)
}

// Package object defines the game entities and how each one moves and draws itself.
package object

import (
	"math/rand/v2"

	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/input"
)

// Rand is the random source used for spawning and fire-pattern selection.
// *rand.Rand satisfies it; tests inject scripted sequences.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic PCG source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform returns a value in [lo, hi) drawn from r.
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Screen is the playfield size in logical pixels.
type Screen struct {
	Width  float64
	Height float64
}

// OffScreen reports whether (x, y) lies more than margin outside the playfield.
func (s Screen) OffScreen(x, y, margin float64) bool {
	return x < -margin || x > s.Width+margin || y < -margin || y > s.Height+margin
}

// Spawner receives entities created during an update.
type Spawner interface {
	SpawnBullet(b *Bullet)
	SpawnEnemyBullet(b *EnemyBullet)
	SpawnMeteor(m *Meteor)
	SpawnEnemy(e *Enemy)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Input   input.Snapshot
	Screen  Screen
	Spawner Spawner
	Rand    Rand
	Level   int
	Target  draw.Point // player position, aimed at by enemies
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Tick   int
}

// Object is an entity held in one of the engine's stores.
type Object interface {
	// Update advances the object by one frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)
	// Draw paints the object. It must not mutate the object.
	Draw(ctx DrawContext)
	Center() (x, y float64)
	Radius() float64
}

// Flickering reports whether an invulnerable ship is drawn dimmed this frame:
// the ship alternates every period frames of remaining invulnerability.
func Flickering(invuln, period int) bool {
	return invuln > 0 && (invuln/period)%2 == 0
}

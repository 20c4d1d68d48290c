package object

import (
	"math"

	"github.com/tomz197/meteorfall/internal/draw"
)

// Enemy tuning.
const (
	EnemyRadius         = 16.0
	EnemyEdgeMargin     = 40.0 // spawn column keeps this far from the side edges
	EnemySpawnY         = -30.0
	EnemyBaseSpeed      = 1.2
	EnemySpeedPerLevel  = 0.2
	EnemyBaseFireRate   = 60
	EnemyFireRateStep   = 3
	EnemyMaxFireRateCut = 45
	EnemyMinFireRate    = 24
	EnemyBaseHP         = 4
)

var enemyShape = [3]draw.Point{{X: 0, Y: -18}, {X: 12, Y: 10}, {X: -12, Y: 10}}

// Enemy drifts down and fires a pattern every FireInterval frames of its age.
type Enemy struct {
	X, Y     float64
	R        float64
	VY       float64
	FireRate int
	Age      int
	HP       int
}

// NewEnemy spawns an enemy above the top edge at a random column.
func NewEnemy(level int, screen Screen, r Rand) *Enemy {
	return &Enemy{
		X:        Uniform(r, EnemyEdgeMargin, screen.Width-EnemyEdgeMargin),
		Y:        EnemySpawnY,
		R:        EnemyRadius,
		VY:       EnemyBaseSpeed + float64(level)*EnemySpeedPerLevel,
		FireRate: EnemyBaseFireRate - min(EnemyMaxFireRateCut, level*EnemyFireRateStep),
		HP:       EnemyBaseHP + level,
	}
}

func (e *Enemy) Center() (float64, float64) { return e.X, e.Y }
func (e *Enemy) Radius() float64            { return e.R }

// FireInterval is the effective number of frames between volleys.
func (e *Enemy) FireInterval() int {
	return max(EnemyMinFireRate, e.FireRate)
}

// Update moves the enemy, ages it and fires a randomly chosen pattern when the
// age hits a multiple of the fire interval. Enemies below the playfield or
// with no hit points left are removed without score.
func (e *Enemy) Update(ctx UpdateContext) bool {
	e.Y += e.VY
	e.Age++
	if e.Age%e.FireInterval() == 0 {
		PickPattern(ctx.Rand).Fire(e.X, e.Y, ctx.Target, ctx.Spawner)
	}
	return e.Y-e.R > ctx.Screen.Height || e.HP <= 0
}

// Draw renders the enemy as a downward-facing triangle.
func (e *Enemy) Draw(ctx DrawContext) {
	drawTriangle(ctx.Canvas, e.X, e.Y, enemyShape, ColorEnemy, 1)
}

// FirePattern is a volley shape.
type FirePattern int

// Fire patterns.
const (
	RadialBurst FirePattern = iota
	AimedSpread
	patternCount
)

// Pattern parameters.
const (
	RadialBulletCount = 12
	RadialSpeed       = 2.2
	AimedSpeed        = 3.0
)

// AimedOffsets are the angle offsets in radians of the aimed spread.
var AimedOffsets = [3]float64{-0.25, 0, 0.25}

func (p FirePattern) String() string {
	switch p {
	case RadialBurst:
		return "radial"
	case AimedSpread:
		return "aimed"
	}
	return "unknown"
}

// PickPattern chooses a pattern uniformly with one draw from r.
func PickPattern(r Rand) FirePattern {
	p := FirePattern(r.Float64() * float64(patternCount))
	return min(max(p, 0), patternCount-1)
}

// Fire emits the pattern's bullets from (x, y).
func (p FirePattern) Fire(x, y float64, target draw.Point, s Spawner) {
	switch p {
	case RadialBurst:
		for i := 0; i < RadialBulletCount; i++ {
			a := float64(i) / RadialBulletCount * 2 * math.Pi
			s.SpawnEnemyBullet(newEnemyBullet(x, y, a, RadialSpeed, TagRadial))
		}
	case AimedSpread:
		aim := math.Atan2(target.Y-y, target.X-x)
		for _, off := range AimedOffsets {
			s.SpawnEnemyBullet(newEnemyBullet(x, y, aim+off, AimedSpeed, TagAimed))
		}
	}
}

func newEnemyBullet(x, y, angle, speed float64, tag BulletTag) *EnemyBullet {
	return &EnemyBullet{
		X:   x,
		Y:   y,
		VX:  math.Cos(angle) * speed,
		VY:  math.Sin(angle) * speed,
		R:   BulletRadius,
		Tag: tag,
	}
}

// EnemyScore is the points for shooting down an enemy at level.
func EnemyScore(level int) int {
	return 50 + level*10
}

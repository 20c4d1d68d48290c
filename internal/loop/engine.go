// Package loop runs the per-frame simulation: spawning, motion, collisions,
// scoring and rendering.
package loop

import (
	"context"
	"errors"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/input"
	"github.com/tomz197/meteorfall/internal/loop/config"
	"github.com/tomz197/meteorfall/internal/object"
	"github.com/tomz197/meteorfall/internal/physics"
)

// ErrStopped is returned by a Task to end its Scheduler cleanly.
var ErrStopped = errors.New("loop stopped")

// Phase is the engine's run state.
type Phase int

const (
	Idle     Phase = iota // entities kept, nothing updates or renders
	Running               // full frame step
	GameOver              // terminal until Restart
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game-over"
	}
	return "unknown"
}

// Options configures an Engine. Zero values pick defaults.
type Options struct {
	Width, Height float64 // playfield in logical px
	Level         int
	Seed          uint64      // used when Rand is nil; 0 seeds from the clock
	Rand          object.Rand // random source for spawns and fire patterns
	Listener      Listener
	Logger        *log.Logger
	Canvas        *draw.Canvas // drawing surface; nil disables rendering
	KeyMap        input.KeyMap
}

// Engine owns one session and advances it a frame at a time. It is not safe
// for concurrent use; drive it from a single goroutine.
type Engine struct {
	phase    Phase
	level    int
	screen   object.Screen
	session  *Session
	sampler  *input.Sampler
	spawner  object.HazardSpawner
	rand     object.Rand
	listener Listener
	log      *log.Logger
	canvas   *draw.Canvas

	meteorGrid *physics.SpatialGrid
	enemyGrid  *physics.SpatialGrid
}

// New creates an idle engine with a fresh session.
func New(opts Options) *Engine {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = config.DefaultWidth, config.DefaultHeight
	}
	if opts.Rand == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		opts.Rand = object.NewRand(seed)
	}
	if opts.Listener == nil {
		opts.Listener = nopListener{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	screen := object.Screen{Width: opts.Width, Height: opts.Height}
	e := &Engine{
		phase:      Idle,
		level:      max(opts.Level, 1),
		screen:     screen,
		session:    NewSession(screen),
		sampler:    input.NewSampler(opts.KeyMap),
		rand:       opts.Rand,
		listener:   opts.Listener,
		log:        opts.Logger,
		canvas:     opts.Canvas,
		meteorGrid: physics.NewSpatialGrid(screen.Width, screen.Height, config.GridCellSize),
		enemyGrid:  physics.NewSpatialGrid(screen.Width, screen.Height, config.GridCellSize),
	}
	return e
}

// SetPlaying switches between Idle and Running. It has no effect after game over.
func (e *Engine) SetPlaying(playing bool) {
	if e.phase == GameOver {
		return
	}
	if playing {
		e.phase = Running
	} else {
		e.phase = Idle
	}
}

// SetLevel changes the difficulty for future spawns and kills. Levels below 1 become 1.
func (e *Engine) SetLevel(level int) {
	level = max(level, 1)
	if level != e.level {
		e.log.Debug("level changed", "from", e.level, "to", level)
	}
	e.level = level
}

// Restart discards the session and starts a new one. A finished game
// returns to Idle; a running or idle engine keeps its phase.
func (e *Engine) Restart() {
	e.session = NewSession(e.screen)
	if e.phase == GameOver {
		e.phase = Idle
	}
	e.log.Debug("session restarted", "phase", e.phase)
}

// Resize changes the playfield. Entities keep their positions; the ship is
// re-centered only if the session has not started yet.
func (e *Engine) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.screen = object.Screen{Width: width, Height: height}
	e.meteorGrid.Reset(width, height, config.GridCellSize)
	e.enemyGrid.Reset(width, height, config.GridCellSize)
	if e.session.Tick == 0 {
		e.session.Player = object.NewPlayer(e.screen)
	}
	e.log.Debug("playfield resized", "width", width, "height", height)
}

// KeyDown feeds a key press to the input sampler. It reports whether the key
// is bound to a game action.
func (e *Engine) KeyDown(k input.Key) bool {
	return e.sampler.Press(k)
}

// KeyUp feeds a key release to the input sampler.
func (e *Engine) KeyUp(k input.Key) bool {
	return e.sampler.Release(k)
}

// Sampler exposes the input sampler for front ends that synthesize releases.
func (e *Engine) Sampler() *input.Sampler {
	return e.sampler
}

// Phase returns the current run state.
func (e *Engine) Phase() Phase { return e.phase }

// Level returns the current level.
func (e *Engine) Level() int { return e.level }

// Screen returns the playfield size.
func (e *Engine) Screen() object.Screen { return e.screen }

// Stats is a read-only summary of the session.
type Stats struct {
	Phase        Phase
	Level        int
	Score        int
	Lives        int
	Tick         int
	Meteors      int
	Enemies      int
	Bullets      int
	EnemyBullets int
}

// Stats returns the current session summary.
func (e *Engine) Stats() Stats {
	s := e.session
	return Stats{
		Phase:        e.phase,
		Level:        e.level,
		Score:        s.Score,
		Lives:        s.Lives,
		Tick:         s.Tick,
		Meteors:      len(s.Meteors),
		Enemies:      len(s.Enemies),
		Bullets:      len(s.Bullets),
		EnemyBullets: len(s.EnemyBullets),
	}
}

// Frame implements Task: it steps once and stops the scheduler after game over.
func (e *Engine) Frame(context.Context) error {
	if e.phase == GameOver {
		return ErrStopped
	}
	e.Step()
	if e.phase == GameOver {
		return ErrStopped
	}
	return nil
}

// Step advances the session by one frame and renders it. It does nothing
// unless the engine is Running and reports whether a step happened. The
// frame that ends the game is not rendered.
func (e *Engine) Step() bool {
	if e.phase != Running {
		return false
	}
	s := e.session
	s.Tick++

	ctx := object.UpdateContext{
		Input:   e.sampler.Snapshot(),
		Screen:  e.screen,
		Spawner: s,
		Rand:    e.rand,
		Level:   e.level,
	}

	s.Player.Move(ctx)
	s.Player.Shoot(ctx)
	ctx.Target = draw.Point{X: s.Player.X, Y: s.Player.Y}

	e.spawner.Update(s.Tick, ctx)

	s.Meteors = advance(s.Meteors, ctx)
	s.Enemies = advance(s.Enemies, ctx)
	s.Bullets = advance(s.Bullets, ctx)
	s.EnemyBullets = advance(s.EnemyBullets, ctx)

	e.resolveBulletHits()
	if e.resolvePlayerHazards() {
		return true
	}

	if e.canvas != nil {
		e.Render(e.canvas, s.Tick)
	}
	return true
}

// advance updates items from last to first and drops those whose Update asks
// for removal. Relative order of the survivors is preserved.
func advance[T object.Object](items []T, ctx object.UpdateContext) []T {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Update(ctx) {
			items = slices.Delete(items, i, i+1)
		}
	}
	return items
}

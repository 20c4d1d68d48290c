// Package client is the top-level controller around the engine: it turns
// terminal input into play, pause and restart, raises the level over time
// and draws the HUD and overlays.
package client

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	settings "github.com/tomz197/meteorfall/internal/config"
	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/input"
	"github.com/tomz197/meteorfall/internal/loop"
	"github.com/tomz197/meteorfall/internal/loop/config"
	"github.com/tomz197/meteorfall/internal/loop/server"
)

// topScoreCount is the number of leaderboard rows shown.
const topScoreCount = 3

// Client handles rendering and input for a single player.
type Client struct {
	display Display
	server  server.GameServer
	handle  *server.ClientHandle
	engine  *loop.Engine
	canvas  *draw.Canvas
	tracker *input.HoldTracker
	state   clientState
	view    View
	opts    Options
	log     *log.Logger
}

// Options configures the client.
type Options struct {
	Game     settings.GameSettings
	Server   server.GameServer // nil for local play
	Username string
	Logger   *log.Logger
	KeyMap   input.KeyMap

	// Inactivity handling; zero disables it.
	IdleWarn  time.Duration
	IdleLimit time.Duration

	Now func() time.Time // clock, for tests
}

// New creates a client drawing on d. When opts.Server is set the client
// registers with it and unregisters on Close.
func New(d Display, opts Options) *Client {
	if opts.Game.FPS <= 0 {
		opts.Game = settings.Default().Game
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Client{
		display: d,
		server:  opts.Server,
		canvas:  draw.NewCanvas(1, 1),
		opts:    opts,
		log:     opts.Logger,
	}
	if opts.Server != nil {
		c.handle = opts.Server.RegisterClient(opts.Username)
		c.log = c.log.With("user", c.handle.Username, "id", c.handle.ID)
	}

	c.engine = loop.New(loop.Options{
		Level:    opts.Game.StartLevel,
		Seed:     opts.Game.Seed,
		Listener: loop.ListenerFuncs{LifeLost: c.onLifeLost, GameOver: c.onGameOver},
		Logger:   c.log,
		Canvas:   c.canvas,
		KeyMap:   opts.KeyMap,
	})
	c.tracker = input.NewHoldTracker(c.engine.Sampler(), time.Duration(opts.Game.KeyHoldMillis)*time.Millisecond)

	c.state = clientState{
		phase:       PhaseIntro,
		lastInput:   opts.Now(),
		layoutDirty: true,
	}
	c.updateScreen()
	c.log.Info("session started")
	return c
}

// Engine exposes the engine driven by the client.
func (c *Client) Engine() *loop.Engine { return c.engine }

// Phase returns the current screen.
func (c *Client) Phase() Phase { return c.state.phase }

// Run drives the client at the configured frame rate until the player quits,
// the input closes or ctx is done, then closes the client.
func (c *Client) Run(ctx context.Context) error {
	defer c.Close()
	return loop.NewScheduler(c.opts.Game.FPS).Run(ctx, c)
}

// Frame implements loop.Task. It returns loop.ErrStopped when the session
// should end.
func (c *Client) Frame(context.Context) error {
	now := c.opts.Now()

	if err := c.processInput(now); err != nil {
		return err
	}
	if err := c.processServerEvents(now); err != nil {
		return err
	}
	c.updateScreen()

	switch c.state.phase {
	case PhasePlaying:
		c.updatePlayingState()
	case PhaseShutdown:
		if !now.Before(c.state.shutdownAt) {
			return loop.ErrStopped
		}
	}

	return c.drawFrame(now)
}

// Close unregisters from the server and restores the terminal. It is safe
// to call more than once.
func (c *Client) Close() error {
	if c.display == nil {
		return nil
	}
	if c.handle != nil {
		c.server.UnregisterClient(c.handle.ID)
		c.handle = nil
	}
	err := c.display.Close()
	c.display = nil
	c.log.Info("session ended", "phase", c.state.phase, "best", c.state.bestScore)
	return err
}

// processInput drains the pressed keys and applies them to the current phase.
func (c *Client) processInput(now time.Time) error {
	keys, open := c.display.Keys()
	if !open {
		return loop.ErrStopped
	}

	if len(keys) > 0 {
		c.state.lastInput = now
		c.state.inactive = false
	} else if idle := now.Sub(c.state.lastInput); c.opts.IdleLimit > 0 && idle > c.opts.IdleLimit {
		c.log.Info("disconnecting inactive player", "idle", idle.Round(time.Second))
		return loop.ErrStopped
	} else if c.opts.IdleWarn > 0 && idle > c.opts.IdleWarn {
		c.state.inactive = true
	}

	for _, k := range keys {
		if isQuit(k) {
			return loop.ErrStopped
		}
		c.handleKey(k, now)
	}
	c.tracker.Expire(now)
	return nil
}

func isQuit(k input.Key) bool {
	return k == "q" || k == "Q" || k == input.KeyCtrlC
}

func isPause(k input.Key) bool {
	return k == "p" || k == "P"
}

func (c *Client) handleKey(k input.Key, now time.Time) {
	switch c.state.phase {
	case PhaseIntro, PhaseGameOver:
		if k == input.KeySpace || k == input.KeyEnter {
			c.startGame()
		}
	case PhasePlaying:
		if isPause(k) {
			c.setPaused(true)
			return
		}
		c.tracker.Press(k, now)
	case PhasePaused:
		if isPause(k) {
			c.setPaused(false)
		}
	}
}

// processServerEvents handles events from the lobby.
func (c *Client) processServerEvents(now time.Time) error {
	if c.handle == nil {
		return nil
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				return loop.ErrStopped
			}
			if event.Type == server.EventServerShutdown && c.state.phase != PhaseShutdown {
				c.engine.SetPlaying(false)
				c.tracker.Reset()
				c.state.phase = PhaseShutdown
				c.state.shutdownAt = now.Add(time.Duration(config.ShutdownDisplaySeconds * float64(time.Second)))
				c.log.Info("server shutting down, notifying player")
			}
		default:
			return nil
		}
	}
}

// updateScreen fits the canvas and the playfield to the terminal, clamped to
// the max render resolution. One canvas sub-pixel covers pixel_scale logical
// px on each axis.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.display.Size()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(
		termWidth, termHeight, c.opts.Game.MaxTermWidth, c.opts.Game.MaxTermHeight)

	if !c.state.layoutDirty &&
		renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}

	scale := float64(max(c.opts.Game.PixelScale, 1))
	width := float64(renderWidth) * scale
	height := float64(renderHeight*2) * scale
	c.canvas.Resize(renderWidth, renderHeight, width, height)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.engine.Resize(width, height)
	// An idle engine is not rendered; overlays are drawn on the blank canvas.
	if c.engine.Phase() == loop.Running {
		c.engine.Render(c.canvas, c.engine.Stats().Tick)
	}
	c.state.layoutDirty = true
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if maxWidth > 0 && renderWidth > maxWidth {
		renderWidth = maxWidth
	}
	if maxHeight > 0 && renderHeight > maxHeight {
		renderHeight = maxHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updatePlayingState steps the engine and raises the level every
// level_up_seconds of play.
func (c *Client) updatePlayingState() {
	c.engine.Step()
	if c.state.phase != PhasePlaying {
		return
	}
	c.state.playFrames++
	levelUpFrames := c.opts.Game.LevelUpSeconds * c.opts.Game.FPS
	if levelUpFrames > 0 && c.state.playFrames%levelUpFrames == 0 {
		c.engine.SetLevel(c.engine.Level() + 1)
	}
}

// startGame starts a fresh session from the intro or game over screen.
func (c *Client) startGame() {
	c.tracker.Reset()
	c.engine.Restart()
	c.engine.SetLevel(c.opts.Game.StartLevel)
	c.engine.SetPlaying(true)
	c.state.playFrames = 0
	c.state.phase = PhasePlaying
	c.log.Info("game started", "level", c.engine.Level())
}

func (c *Client) setPaused(paused bool) {
	c.tracker.Reset()
	c.engine.SetPlaying(!paused)
	if paused {
		c.state.phase = PhasePaused
	} else {
		c.state.phase = PhasePlaying
	}
}

func (c *Client) onLifeLost(remaining int) {
	c.log.Debug("life lost", "remaining", remaining)
}

func (c *Client) onGameOver(finalScore int) {
	c.tracker.Reset()
	c.state.phase = PhaseGameOver
	c.state.finalScore = finalScore
	c.state.bestScore = max(c.state.bestScore, finalScore)
	if c.handle != nil {
		c.server.SubmitScore(c.handle.ID, finalScore)
	}
	c.log.Info("game over", "score", finalScore, "level", c.engine.Level(), "frames", c.state.playFrames)
}

// drawFrame builds the view for this frame and presents it. On screen
// transitions the display does a full clear so text from the previous
// screen does not persist.
func (c *Client) drawFrame(now time.Time) error {
	c.view.reset(c.canvas)
	c.view.Clear = c.state.transitioned()
	c.drawUI(now)
	return c.display.Present(&c.view)
}

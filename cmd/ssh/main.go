package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/meteorfall/internal/config"
	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/loop/client"
	gameconfig "github.com/tomz197/meteorfall/internal/loop/config"
	"github.com/tomz197/meteorfall/internal/loop/server"
)

// shutdownGrace is how long connected players get to leave after SIGTERM.
const shutdownGrace = 15 * time.Second

var configFlag = flag.String("config", config.GetEnv("METEORFALL_CONFIG", ""), "Path to a TOML settings file")

func main() {
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := config.NewLogger(settings.Log, os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", settings.SSH.Host, "port", settings.SSH.Port,
		"hostKeyPath", settings.SSH.HostKeyPath, "workingDir", workingDir)

	// One lobby shared by all SSH sessions; every session plays its own game.
	lobby := server.NewLobby(logger.WithPrefix("lobby"))

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSH.Host, settings.SSH.Port)),
		wish.WithMiddleware(
			gameMiddleware(lobby, settings.Game, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	if !lobby.Shutdown(shutdownGrace) {
		logger.Warn("players still connected, closing anyway", "players", lobby.Players())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameMiddleware runs a game client for each SSH session.
func gameMiddleware(lobby *server.Lobby, game config.GameSettings, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new game session", "user", sess.User(), "terminal", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			profile := client.ColorProfile(game.Color, sessionProfile(sess, pty.Term))
			display := client.NewANSIDisplay(sess, sess, sizeTracker.getSize, profile)
			c := client.New(display, client.Options{
				Game:      game,
				Server:    lobby,
				Username:  sess.User(),
				Logger:    logger.WithPrefix("game"),
				IdleWarn:  gameconfig.InactivityWarnUser,
				IdleLimit: gameconfig.InactivityDisconnectUser,
			})
			if err := c.Run(sess.Context()); err != nil {
				logger.Error("game error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sessionProfile detects the color profile of the client's terminal from
// the environment it sent, not from the server process.
func sessionProfile(sess ssh.Session, term string) termenv.Profile {
	out := termenv.NewOutput(sess,
		termenv.WithEnvironment(sessionEnviron{environ: append(sess.Environ(), "TERM="+term)}),
		termenv.WithTTY(true),
		termenv.WithUnsafe(),
	)
	return out.EnvColorProfile()
}

// sessionEnviron is a termenv.Environ over an SSH session's variables.
type sessionEnviron struct {
	environ []string
}

func (e sessionEnviron) Environ() []string {
	return e.environ
}

// Getenv returns the last value set for key, like a shell would.
func (e sessionEnviron) Getenv(key string) string {
	v := ""
	for _, kv := range e.environ {
		if k, val, ok := strings.Cut(kv, "="); ok && k == key {
			v = val
		}
	}
	return v
}

var _ termenv.Environ = sessionEnviron{}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/meteorfall/internal/config"
	"github.com/tomz197/meteorfall/internal/draw"
	"github.com/tomz197/meteorfall/internal/loop/client"
)

var (
	configFlag  = flag.String("config", config.GetEnv("METEORFALL_CONFIG", ""), "Path to a TOML settings file")
	backendFlag = flag.String("backend", "ansi", "Terminal backend: ansi, tcell")
	colorFlag   = flag.String("color", "", "Color mode: auto, truecolor, 256, ansi, ascii (overrides settings)")
)

// restoreTerminal undoes raw mode or finalizes tcell; set once the terminal
// has been taken over.
var restoreTerminal = func() {}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			restoreTerminal()
			fmt.Fprintf(os.Stderr, "\r\nmeteorfall crashed: %v\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *colorFlag != "" {
		settings.Game.Color = *colorFlag
		if err := settings.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	// The game owns the terminal, so logs only go to a file.
	logger, closeLog, err := config.NewLogger(settings.Log, nil, "meteorfall")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var display client.Display
	switch *backendFlag {
	case "ansi":
		display, err = newANSIDisplay(settings.Game.Color)
	case "tcell":
		display, err = newTcellDisplay()
	default:
		err = fmt.Errorf("unknown backend %q", *backendFlag)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer restoreTerminal()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "backend", *backendFlag, "fps", settings.Game.FPS, "color", settings.Game.Color)
	c := client.New(display, client.Options{
		Game:   settings.Game,
		Logger: logger,
	})
	if err := c.Run(ctx); err != nil {
		restoreTerminal()
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newANSIDisplay puts stdin in raw mode and draws on stdout.
func newANSIDisplay(colorMode string) (client.Display, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	restoreTerminal = func() {
		_ = term.Restore(fd, oldState)
	}

	profile := client.ColorProfile(colorMode, termenv.EnvColorProfile())
	return client.NewANSIDisplay(os.Stdin, os.Stdout, draw.DefaultTermSizeFunc, profile), nil
}

// newTcellDisplay takes over the terminal with tcell.
func newTcellDisplay() (client.Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	display := client.NewTcellDisplay(screen)
	restoreTerminal = func() {
		_ = display.Close()
	}
	return display, nil
}

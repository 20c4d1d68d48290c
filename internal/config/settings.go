package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Color modes accepted by GameSettings.Color.
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
	ColorANSI      = "ansi"
	ColorASCII     = "ascii"
)

// Settings is the full runtime configuration shared by all binaries.
type Settings struct {
	Game GameSettings `toml:"game"`
	SSH  SSHSettings  `toml:"ssh"`
	Web  WebSettings  `toml:"web"`
	Log  LogSettings  `toml:"log"`
}

// GameSettings tunes the frame loop and the terminal presentation.
type GameSettings struct {
	FPS            int    `toml:"fps"`
	Seed           uint64 `toml:"seed"` // 0 = seeded from the clock
	StartLevel     int    `toml:"start_level"`
	LevelUpSeconds int    `toml:"level_up_seconds"`
	PixelScale     int    `toml:"pixel_scale"` // logical px per canvas sub-pixel
	KeyHoldMillis  int    `toml:"key_hold_ms"`
	Color          string `toml:"color"`
	MaxTermWidth   int    `toml:"max_term_width"`
	MaxTermHeight  int    `toml:"max_term_height"`
}

// SSHSettings configures cmd/ssh.
type SSHSettings struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	HostKeyPath string `toml:"host_key_path"`
}

// WebSettings configures cmd/web.
type WebSettings struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	DisplayHost string `toml:"display_host"`
}

// LogSettings configures the charmbracelet logger.
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Game: GameSettings{
			FPS:            60,
			StartLevel:     1,
			LevelUpSeconds: 20,
			PixelScale:     4,
			KeyHoldMillis:  120,
			Color:          ColorAuto,
			MaxTermWidth:   200,
			MaxTermHeight:  60,
		},
		SSH: SSHSettings{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: ".ssh/meteorfall_ed25519",
		},
		Web: WebSettings{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load builds settings from defaults, the TOML file at path (skipped when empty)
// and environment overrides, in that order, and validates the result.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return s, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	s.applyEnv()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// applyEnv overrides settings from environment variables.
func (s *Settings) applyEnv() {
	s.Game.FPS = GetEnvInt("GAME_FPS", s.Game.FPS)
	s.Game.Seed = GetEnvUint64("GAME_SEED", s.Game.Seed)
	s.Game.StartLevel = GetEnvInt("GAME_START_LEVEL", s.Game.StartLevel)
	s.Game.Color = GetEnv("GAME_COLOR", s.Game.Color)

	s.SSH.Host = GetEnv("SSH_HOST", s.SSH.Host)
	s.SSH.Port = GetEnv("SSH_PORT", s.SSH.Port)
	s.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", s.SSH.HostKeyPath)

	s.Web.Host = GetEnv("WEB_HOST", s.Web.Host)
	s.Web.Port = GetEnv("WEB_PORT", s.Web.Port)
	s.Web.DisplayHost = GetEnv("SSH_DISPLAY_HOST", s.Web.DisplayHost)

	s.Log.Level = GetEnv("LOG_LEVEL", s.Log.Level)
	s.Log.File = GetEnv("LOG_FILE", s.Log.File)
}

// Validate reports the first out-of-range setting.
func (s Settings) Validate() error {
	g := s.Game
	switch {
	case g.FPS <= 0:
		return fmt.Errorf("%w: game.fps must be positive, got %d", ErrInvalid, g.FPS)
	case g.StartLevel < 1:
		return fmt.Errorf("%w: game.start_level must be >= 1, got %d", ErrInvalid, g.StartLevel)
	case g.LevelUpSeconds <= 0:
		return fmt.Errorf("%w: game.level_up_seconds must be positive, got %d", ErrInvalid, g.LevelUpSeconds)
	case g.PixelScale < 1:
		return fmt.Errorf("%w: game.pixel_scale must be >= 1, got %d", ErrInvalid, g.PixelScale)
	case g.KeyHoldMillis <= 0:
		return fmt.Errorf("%w: game.key_hold_ms must be positive, got %d", ErrInvalid, g.KeyHoldMillis)
	case g.MaxTermWidth < 10 || g.MaxTermHeight < 5:
		return fmt.Errorf("%w: game.max_term_width/height too small (%dx%d)", ErrInvalid, g.MaxTermWidth, g.MaxTermHeight)
	}
	switch g.Color {
	case ColorAuto, ColorTrueColor, Color256, ColorANSI, ColorASCII:
	default:
		return fmt.Errorf("%w: game.color %q is not one of auto, truecolor, 256, ansi, ascii", ErrInvalid, g.Color)
	}
	if _, err := log.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

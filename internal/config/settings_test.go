package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Game.FPS != 60 || s.Game.StartLevel != 1 {
		t.Fatalf("unexpected defaults: %+v", s.Game)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meteorfall.toml")
	data := `
[game]
fps = 30
seed = 42
color = "256"

[ssh]
port = "2323"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SSH_PORT", "2424")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Game.FPS != 30 {
		t.Errorf("fps = %d, want 30", s.Game.FPS)
	}
	if s.Game.Seed != 42 {
		t.Errorf("seed = %d, want 42", s.Game.Seed)
	}
	if s.Game.Color != Color256 {
		t.Errorf("color = %q, want %q", s.Game.Color, Color256)
	}
	if s.SSH.Port != "2424" {
		t.Errorf("ssh port = %q, want env override 2424", s.SSH.Port)
	}
	// Untouched keys keep their defaults.
	if s.Game.PixelScale != 4 {
		t.Errorf("pixel scale = %d, want default 4", s.Game.PixelScale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero fps", func(s *Settings) { s.Game.FPS = 0 }},
		{"level zero", func(s *Settings) { s.Game.StartLevel = 0 }},
		{"pixel scale", func(s *Settings) { s.Game.PixelScale = 0 }},
		{"hold", func(s *Settings) { s.Game.KeyHoldMillis = -1 }},
		{"color", func(s *Settings) { s.Game.Color = "sepia" }},
		{"term size", func(s *Settings) { s.Game.MaxTermWidth = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("METEORFALL_TEST_INT", "17")
	t.Setenv("METEORFALL_TEST_BAD", "x")
	if got := GetEnvInt("METEORFALL_TEST_INT", 1); got != 17 {
		t.Errorf("GetEnvInt = %d, want 17", got)
	}
	if got := GetEnvInt("METEORFALL_TEST_BAD", 5); got != 5 {
		t.Errorf("GetEnvInt bad value = %d, want fallback 5", got)
	}
	if got := GetEnvUint64("METEORFALL_TEST_UNSET", 9); got != 9 {
		t.Errorf("GetEnvUint64 unset = %d, want 9", got)
	}
	if got := GetEnv("METEORFALL_TEST_INT", "z"); got != "17" {
		t.Errorf("GetEnv = %q, want 17", got)
	}
}

func TestValidateLogLevel(t *testing.T) {
	s := Default()
	s.Log.Level = "loud"
	if err := s.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Validate() = %v, want ErrInvalid", err)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meteorfall.log")
	logger, closeLog, err := NewLogger(LogSettings{Level: "debug", File: path}, nil, "test")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("hello", "answer", 42)
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"hello", "answer=42", "test"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log %q missing %q", data, want)
		}
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	if _, _, err := NewLogger(LogSettings{Level: "chatty"}, nil, ""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("NewLogger error = %v, want ErrInvalid", err)
	}
}

package main

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestSessionEnvironGetenv(t *testing.T) {
	env := sessionEnviron{environ: []string{"TERM=xterm", "LANG=C", "TERM=xterm-256color", "EMPTY="}}
	if got := env.Getenv("TERM"); got != "xterm-256color" {
		t.Errorf("TERM = %q, want the last value", got)
	}
	if got := env.Getenv("MISSING"); got != "" {
		t.Errorf("MISSING = %q", got)
	}
	if got := env.Getenv("EMPTY"); got != "" {
		t.Errorf("EMPTY = %q", got)
	}
}

func TestSessionEnvironProfile(t *testing.T) {
	tests := []struct {
		env  []string
		want termenv.Profile
	}{
		{[]string{"TERM=xterm-256color", "COLORTERM=truecolor"}, termenv.TrueColor},
		{[]string{"TERM=xterm-256color"}, termenv.ANSI256},
		{[]string{"TERM=xterm-256color", "NO_COLOR=1"}, termenv.Ascii},
	}
	for _, tt := range tests {
		out := termenv.NewOutput(nil,
			termenv.WithEnvironment(sessionEnviron{environ: tt.env}),
			termenv.WithTTY(true),
		)
		if got := out.EnvColorProfile(); got != tt.want {
			t.Errorf("env %v: profile = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize() = %d, %d, %v", w, h, err)
	}
}

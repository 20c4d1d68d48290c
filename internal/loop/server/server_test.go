package server

import (
	"strings"
	"testing"
	"time"
)

func TestRegisterAssignsIncreasingIDs(t *testing.T) {
	l := NewLobby(nil)
	a := l.RegisterClient("alice")
	b := l.RegisterClient("bob")

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", a.ID, b.ID)
	}
	if got := l.Players(); got != 2 {
		t.Fatalf("Players() = %d, want 2", got)
	}
	if got := l.Usernames(); len(got) != 2 || got[0] != "alice" || got[1] != "bob" {
		t.Fatalf("Usernames() = %v", got)
	}
}

func TestUnregisterClosesEvents(t *testing.T) {
	l := NewLobby(nil)
	h := l.RegisterClient("alice")
	l.UnregisterClient(h.ID)
	l.UnregisterClient(h.ID) // second call is a no-op

	if _, ok := <-h.EventsCh; ok {
		t.Fatal("events channel still open after unregister")
	}
	if got := l.Players(); got != 0 {
		t.Fatalf("Players() = %d, want 0", got)
	}
}

func TestShutdownBroadcastsAndWaits(t *testing.T) {
	l := NewLobby(nil)
	h := l.RegisterClient("alice")

	go func() {
		ev := <-h.EventsCh
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %v, want %v", ev.Type, EventServerShutdown)
		}
		l.UnregisterClient(h.ID)
	}()

	if !l.Shutdown(2 * time.Second) {
		t.Fatal("Shutdown timed out with a cooperating client")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	l := NewLobby(nil)
	l.RegisterClient("stubborn")

	start := time.Now()
	if l.Shutdown(100 * time.Millisecond) {
		t.Fatal("Shutdown reported success with a client still connected")
	}
	if time.Since(start) < 100*time.Millisecond {
		t.Fatal("Shutdown returned before the timeout")
	}
}

func TestLateJoinerSeesShutdown(t *testing.T) {
	l := NewLobby(nil)
	l.Shutdown(0)

	h := l.RegisterClient("late")
	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("event = %v", ev.Type)
		}
	default:
		t.Fatal("no shutdown event queued for late joiner")
	}
}

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"alice", "alice"},
		{"  bob  ", "bob"},
		{"", "pilot"},
		{"\x1b[31mred", "[31mred"},
		{strings.Repeat("x", 40), strings.Repeat("x", 16)},
		{"ünïcödé", "ünïcödé"},
	}
	for _, tt := range tests {
		if got := SanitizeUsername(tt.in); got != tt.want {
			t.Errorf("SanitizeUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTopScoresKeepsBestPerClient(t *testing.T) {
	l := NewLobby(nil)
	a := l.RegisterClient("alice")
	b := l.RegisterClient("bob")
	c := l.RegisterClient("carol")

	l.SubmitScore(a.ID, 120)
	l.SubmitScore(a.ID, 80) // lower, ignored
	l.SubmitScore(b.ID, 300)
	l.SubmitScore(c.ID, 120)
	l.UnregisterClient(b.ID)
	l.SubmitScore(b.ID, 999) // gone, ignored

	got := l.TopScores(5)
	want := []struct {
		name  string
		score int
	}{{"bob", 300}, {"alice", 120}, {"carol", 120}}
	if len(got) != len(want) {
		t.Fatalf("TopScores len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Username != w.name || got[i].Score != w.score {
			t.Errorf("entry %d = %s/%d, want %s/%d", i, got[i].Username, got[i].Score, w.name, w.score)
		}
	}

	if top := l.TopScores(1); len(top) != 1 || top[0].Username != "bob" {
		t.Fatalf("TopScores(1) = %v", top)
	}
}

package input

import (
	"io"
	"slices"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestSamplerMapsKeys(t *testing.T) {
	s := NewSampler(nil)
	for _, k := range []Key{KeyArrowLeft, "w", KeySpace} {
		if !s.Press(k) {
			t.Fatalf("Press(%q) reported unmapped", k)
		}
	}
	got := s.Snapshot()
	want := Snapshot{Left: true, Up: true, Fire: true}
	if got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}
	if s.Press("p") {
		t.Error("p must not be mapped by the sampler")
	}
}

func TestSamplerLastEventWins(t *testing.T) {
	s := NewSampler(nil)
	s.Press("d")
	s.Press("d")
	s.Release("d")
	if s.Snapshot().Right {
		t.Error("right still held after release")
	}
	s.Release("d")
	s.Press("D")
	if !s.Snapshot().Right {
		t.Error("uppercase D should move right")
	}
}

func TestSamplerAliasedKeys(t *testing.T) {
	tests := []struct {
		name    string
		release Key
	}{
		{"release second alias", "a"},
		{"release first alias", KeyArrowLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(nil)
			s.Press(KeyArrowLeft)
			s.Press("a")
			s.Release(tt.release)
			if s.Snapshot().Left {
				t.Fatalf("left still held after releasing %q", tt.release)
			}
			s.Press("A")
			if !s.Snapshot().Left {
				t.Fatal("a later press should hold left again")
			}
		})
	}
}

func TestSamplerReset(t *testing.T) {
	s := NewSampler(nil)
	s.Press(KeySpace)
	s.Press("s")
	s.Reset()
	if got := s.Snapshot(); got != (Snapshot{}) {
		t.Fatalf("snapshot after reset = %+v", got)
	}
}

func TestSnapshotHeld(t *testing.T) {
	snap := Snapshot{Down: true}
	if !snap.Held(MoveDown) || snap.Held(Fire) {
		t.Errorf("Held mismatch for %+v", snap)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keys []Key
		rest string
	}{
		{"letters", "wa ", []Key{"w", "a", KeySpace}, ""},
		{"csi arrows", "\x1b[A\x1b[D", []Key{KeyArrowUp, KeyArrowLeft}, ""},
		{"ss3 arrows", "\x1bOC", []Key{KeyArrowRight}, ""},
		{"enter", "\r", []Key{KeyEnter}, ""},
		{"ctrl-c", "\x03", []Key{KeyCtrlC}, ""},
		{"lone escape then key", "\x1bq", []Key{KeyEscape, "q"}, ""},
		{"split sequence", "d\x1b[", []Key{"d"}, "\x1b["},
		{"unknown csi skipped", "\x1b[1;5Ca", []Key{"a"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, rest := Decode([]byte(tt.in))
			if !slices.Equal(keys, tt.keys) {
				t.Errorf("keys = %q, want %q", keys, tt.keys)
			}
			if string(rest) != tt.rest {
				t.Errorf("rest = %q, want %q", rest, tt.rest)
			}
		})
	}
}

func TestStreamDrain(t *testing.T) {
	pr, pw := io.Pipe()
	s := StartStream(pr)

	if _, err := pw.Write([]byte("\x1b[B")); err != nil {
		t.Fatal(err)
	}
	// The pipe write returns once the reader has consumed the bytes, but they
	// may still be in flight to the channel.
	var keys []Key
	deadline := time.Now().Add(time.Second)
	for len(keys) == 0 && time.Now().Before(deadline) {
		got, ok := s.Drain()
		if !ok {
			t.Fatal("stream closed early")
		}
		keys = append(keys, got...)
		time.Sleep(time.Millisecond)
	}
	if !slices.Equal(keys, []Key{KeyArrowDown}) {
		t.Fatalf("keys = %q, want [ArrowDown]", keys)
	}

	pw.Close()
	deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := s.Drain(); !ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Drain never reported the closed reader")
}

func TestStreamCloseUnblocksReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(pr)

	// More than the channel buffer, never drained.
	if _, err := pw.Write(make([]byte, 200)); err != nil {
		t.Fatal(err)
	}
	s.Close()
	s.Close()

	if _, ok := s.Drain(); ok {
		t.Error("Drain reported open after Close")
	}
	timeout := time.After(time.Second)
	for {
		select {
		case _, open := <-s.ch:
			if !open {
				return
			}
		case <-timeout:
			t.Fatal("reader goroutine did not exit after Close")
		}
	}
}

func TestHoldTracker(t *testing.T) {
	h := NewHoldTracker(NewSampler(nil), 100*time.Millisecond)
	start := time.Unix(0, 0)

	h.Press("a", start)
	h.Expire(start.Add(50 * time.Millisecond))
	if !h.Snapshot().Left {
		t.Fatal("left released too early")
	}
	// Auto-repeat refreshes the window.
	h.Press("a", start.Add(80*time.Millisecond))
	h.Expire(start.Add(150 * time.Millisecond))
	if !h.Snapshot().Left {
		t.Fatal("repeat did not extend the hold")
	}
	h.Expire(start.Add(180 * time.Millisecond))
	if h.Snapshot().Left {
		t.Fatal("left still held after window")
	}
	if h.Press("x", start) {
		t.Error("unmapped key reported as mapped")
	}
}

func TestKeyFromTcell(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want Key
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), KeyArrowLeft, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), KeySpace, true},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), "W", true},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyEnter, true},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), "", false},
	}
	for _, tt := range tests {
		got, ok := KeyFromTcell(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyFromTcell(%v) = %q, %v; want %q, %v", tt.ev.Name(), got, ok, tt.want, tt.ok)
		}
	}
}

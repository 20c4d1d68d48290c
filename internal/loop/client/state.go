package client

import "time"

// Phase is the client's top-level screen.
type Phase int

const (
	PhaseIntro    Phase = iota // Title screen
	PhasePlaying               // Engine running
	PhasePaused                // Engine idle, session kept
	PhaseGameOver              // Final score, restart prompt
	PhaseShutdown              // Server is shutting down
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game-over"
	case PhaseShutdown:
		return "shutdown"
	}
	return "unknown"
}

// clientState holds what the client shows on top of the engine.
type clientState struct {
	phase     Phase
	prevPhase Phase

	playFrames int // frames spent in PhasePlaying since the last start
	finalScore int
	bestScore  int

	lastInput   time.Time
	inactive    bool
	wasInactive bool

	shutdownAt  time.Time // when the shutdown notice ends the session
	layoutDirty bool      // terminal size or offsets changed
}

// transitioned reports whether the visible screen changed since the last
// call and records the current one.
func (s *clientState) transitioned() bool {
	changed := s.phase != s.prevPhase || s.inactive != s.wasInactive || s.layoutDirty
	s.prevPhase = s.phase
	s.wasInactive = s.inactive
	s.layoutDirty = false
	return changed
}

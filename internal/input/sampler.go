package input

// Snapshot is the held state of every action for one frame.
type Snapshot struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Fire  bool
}

// Held reports whether a is held in the snapshot.
func (s Snapshot) Held(a Action) bool {
	switch a {
	case MoveLeft:
		return s.Left
	case MoveRight:
		return s.Right
	case MoveUp:
		return s.Up
	case MoveDown:
		return s.Down
	case Fire:
		return s.Fire
	}
	return false
}

// Sampler records key down/up transitions and exposes them as held actions.
// Unmapped keys are ignored. Keys bound to the same action share one flag, so
// the last press or release of any of them wins.
type Sampler struct {
	keys KeyMap
	held [actionCount]bool
}

// NewSampler creates a sampler for the given key map (DefaultKeyMap when nil).
func NewSampler(keys KeyMap) *Sampler {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &Sampler{keys: keys}
}

// Press marks the action bound to k as held. It reports whether k is bound
// to an action, which callers use to suppress the key's default handling.
func (s *Sampler) Press(k Key) bool {
	a, ok := s.keys.Lookup(k)
	if !ok {
		return false
	}
	s.held[a] = true
	return true
}

// Release clears the action bound to k, whichever alias pressed it.
func (s *Sampler) Release(k Key) bool {
	a, ok := s.keys.Lookup(k)
	if !ok {
		return false
	}
	s.held[a] = false
	return true
}

// Reset releases every action.
func (s *Sampler) Reset() {
	s.held = [actionCount]bool{}
}

// Snapshot returns the current held state.
func (s *Sampler) Snapshot() Snapshot {
	return Snapshot{
		Left:  s.held[MoveLeft],
		Right: s.held[MoveRight],
		Up:    s.held[MoveUp],
		Down:  s.held[MoveDown],
		Fire:  s.held[Fire],
	}
}

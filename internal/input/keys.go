// Package input maps key identifiers to game actions and tracks which
// actions are currently held.
package input

// Key identifies a physical key by its browser-style name ("ArrowLeft", "a", " ").
type Key string

// Named keys understood by the game.
const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeySpace      Key = " "
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
)

// Action is a held-state game control.
type Action int

// Actions sampled every frame.
const (
	MoveLeft Action = iota
	MoveRight
	MoveUp
	MoveDown
	Fire
	actionCount
)

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case Fire:
		return "fire"
	default:
		return "unknown"
	}
}

// KeyMap binds keys to actions.
type KeyMap map[Key]Action

// DefaultKeyMap binds arrows and WASD (either case) to movement and Space to fire.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyArrowLeft:  MoveLeft,
		"a":           MoveLeft,
		"A":           MoveLeft,
		KeyArrowRight: MoveRight,
		"d":           MoveRight,
		"D":           MoveRight,
		KeyArrowUp:    MoveUp,
		"w":           MoveUp,
		"W":           MoveUp,
		KeyArrowDown:  MoveDown,
		"s":           MoveDown,
		"S":           MoveDown,
		KeySpace:      Fire,
	}
}

// Lookup returns the action bound to k.
func (m KeyMap) Lookup(k Key) (Action, bool) {
	a, ok := m[k]
	return a, ok
}

// KeyCtrlC is reported by terminal decoders for the interrupt byte.
const KeyCtrlC Key = "Ctrl+C"

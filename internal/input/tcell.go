package input

import "github.com/gdamore/tcell/v2"

// KeyFromTcell translates a tcell key event. ok is false for keys the game
// has no name for.
func KeyFromTcell(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyArrowLeft, true
	case tcell.KeyRight:
		return KeyArrowRight, true
	case tcell.KeyUp:
		return KeyArrowUp, true
	case tcell.KeyDown:
		return KeyArrowDown, true
	case tcell.KeyEnter:
		return KeyEnter, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyCtrlC:
		return KeyCtrlC, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 0x20 && r < 0x7f {
			return Key(string(r)), true
		}
	}
	return "", false
}

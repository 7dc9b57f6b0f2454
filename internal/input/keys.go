// Package input maps tcell key events to directions and command runes.
package input

import "github.com/gdamore/tcell/v2"

// Direction converts a movement key (hjklyubn or an arrow) to (dx, dy).
func Direction(ev *tcell.EventKey) (dx, dy int, ok bool) {
	if ev == nil {
		return 0, 0, false
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return 0, -1, true
	case tcell.KeyDown:
		return 0, 1, true
	case tcell.KeyRight:
		return 1, 0, true
	case tcell.KeyLeft:
		return -1, 0, true
	case tcell.KeyRune:
	default:
		return 0, 0, false
	}
	switch ev.Rune() {
	case 'k':
		return 0, -1, true
	case 'j':
		return 0, 1, true
	case 'l':
		return 1, 0, true
	case 'h':
		return -1, 0, true
	case 'y':
		return -1, -1, true
	case 'u':
		return 1, -1, true
	case 'b':
		return -1, 1, true
	case 'n':
		return 1, 1, true
	}
	return 0, 0, false
}

// Rune returns the typed character, or 0 for named keys.
func Rune(ev *tcell.EventKey) rune {
	if ev == nil || ev.Key() != tcell.KeyRune {
		return 0
	}
	return ev.Rune()
}

// IsEscape reports whether ev is the escape key.
func IsEscape(ev *tcell.EventKey) bool {
	return ev != nil && ev.Key() == tcell.KeyEscape
}

// Key builds a rune key event.
func Key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// Named builds an event for a named key such as tcell.KeyTab.
func Named(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

package app

import "github.com/gdamore/tcell/v2"

// keyString names a key event the way the keymap tables spell it.
func keyString(ev *tcell.EventKey) string {
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyUp:
		if shift {
			return "shift+up"
		}
		return "up"
	case tcell.KeyDown:
		if shift {
			return "shift+down"
		}
		return "down"
	case tcell.KeyLeft:
		if shift {
			return "shift+left"
		}
		return "left"
	case tcell.KeyRight:
		if shift {
			return "shift+right"
		}
		return "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyCtrlS:
		return "ctrl+s"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	return ""
}

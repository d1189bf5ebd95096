package input

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Key is either a printable rune or one of the named keys below.
type Key int32

const (
	KeyNone Key = 0

	KeyBackspace Key = iota + utf8.MaxRune
	KeyTab
	KeyEnter
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyDelete
)

var keyNames = map[Key]string{
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDn:      "pgdn",
	KeyDelete:    "del",
	' ':          "space",
}

type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
)

// Combo is a key plus the modifiers held with it.
type Combo struct {
	Key Key
	Mod Mod
}

func Plain(k Key) Combo        { return Combo{Key: k} }
func Ctrl(k Key) Combo         { return Combo{Key: k, Mod: ModCtrl} }
func Shift(k Key) Combo        { return Combo{Key: k, Mod: ModShift} }
func Alt(k Key) Combo          { return Combo{Key: k, Mod: ModAlt} }
func CtrlShift(k Key) Combo    { return Combo{Key: k, Mod: ModCtrl | ModShift} }
func (c Combo) Has(m Mod) bool { return c.Mod&m != 0 }

// String renders the combo the way keymaps spell it, e.g. "ctrl+shift+up".
func (c Combo) String() string {
	var b strings.Builder
	if c.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if c.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if c.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	if name, ok := keyNames[c.Key]; ok {
		b.WriteString(name)
	} else if c.Key > 0 && c.Key <= utf8.MaxRune {
		b.WriteRune(rune(c.Key))
	}
	return b.String()
}

// ParseCombo reads the keymap notation produced by String.
func ParseCombo(s string) (Combo, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Combo{}, fmt.Errorf("empty key combo")
	}
	var c Combo
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			c.Mod |= ModCtrl
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			c.Mod |= ModAlt
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			c.Mod |= ModShift
			s = s[len("shift+"):]
			continue
		}
		break
	}
	for k, name := range keyNames {
		if name == s {
			c.Key = k
			return c, nil
		}
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return Combo{}, fmt.Errorf("unknown key %q", s)
	}
	c.Key = Key(r)
	return c, nil
}

// FromTcell translates a terminal key event. The returned char is non-zero
// only for printable text typed without ctrl or alt.
func FromTcell(ev *tcell.EventKey) (Combo, rune) {
	var mod Mod
	if ev.Modifiers()&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod |= ModAlt
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		// shift is carried by the rune itself
		mod &^= ModShift
		if mod != 0 {
			return Combo{Key: Key(unicode.ToLower(r)), Mod: mod}, 0
		}
		if !unicode.IsPrint(r) {
			return Combo{Key: Key(r)}, 0
		}
		return Combo{Key: Key(r)}, r
	}

	// Tab, Enter, Backspace and Esc share codes with ctrl+i, ctrl+m, ctrl+h
	// and ctrl+[; check them first.
	switch ev.Key() {
	case tcell.KeyTab:
		return Combo{Key: KeyTab, Mod: mod &^ ModCtrl}, 0
	case tcell.KeyBacktab:
		return Combo{Key: KeyTab, Mod: ModShift}, 0
	case tcell.KeyEnter:
		return Combo{Key: KeyEnter, Mod: mod &^ ModCtrl}, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Combo{Key: KeyBackspace, Mod: mod &^ ModCtrl}, 0
	case tcell.KeyEscape:
		return Combo{Key: KeyEsc, Mod: mod &^ ModCtrl}, 0
	case tcell.KeyNUL:
		// most terminals send NUL for ctrl+` and ctrl+space
		return Combo{Key: '`', Mod: ModCtrl}, 0
	case tcell.KeyCtrlUnderscore:
		return Combo{Key: '-', Mod: ModCtrl}, 0
	case tcell.KeyCtrlRightSq:
		return Combo{Key: ']', Mod: ModCtrl}, 0
	case tcell.KeyCtrlBackslash:
		return Combo{Key: '\\', Mod: ModCtrl}, 0
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Combo{Key: Key('a' + rune(k-tcell.KeyCtrlA)), Mod: mod | ModCtrl}, 0
	}
	switch ev.Key() {
	case tcell.KeyUp:
		return Combo{Key: KeyUp, Mod: mod}, 0
	case tcell.KeyDown:
		return Combo{Key: KeyDown, Mod: mod}, 0
	case tcell.KeyLeft:
		return Combo{Key: KeyLeft, Mod: mod}, 0
	case tcell.KeyRight:
		return Combo{Key: KeyRight, Mod: mod}, 0
	case tcell.KeyHome:
		return Combo{Key: KeyHome, Mod: mod}, 0
	case tcell.KeyEnd:
		return Combo{Key: KeyEnd, Mod: mod}, 0
	case tcell.KeyPgUp:
		return Combo{Key: KeyPgUp, Mod: mod}, 0
	case tcell.KeyPgDn:
		return Combo{Key: KeyPgDn, Mod: mod}, 0
	case tcell.KeyDelete:
		return Combo{Key: KeyDelete, Mod: mod}, 0
	}
	return Combo{}, 0
}

package controller

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a keyboard shortcut: either a special key such as tcell.KeyEnter, or a
// printable character when Code is tcell.KeyRune.
type Key struct {
	Code tcell.Key
	Rune rune
}

// RuneKey returns the Key for a printable character.
func RuneKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// SpecialKey returns the Key for a non-printable key.
func SpecialKey(k tcell.Key) Key {
	return Key{Code: k}
}

// AsKey converts a key event into the Key used to look up shortcuts.
func AsKey(evt *tcell.EventKey) Key {
	if evt.Key() == tcell.KeyRune {
		return RuneKey(evt.Rune())
	}

	return SpecialKey(evt.Key())
}

func (k Key) String() string {
	if k.Code == tcell.KeyRune {
		return string(k.Rune)
	}

	if name, ok := tcell.KeyNames[k.Code]; ok {
		return name
	}

	return fmt.Sprintf("Key(%d)", k.Code)
}

// Shortcuts used on the list pages.
var (
	KeyFood        = RuneKey('1')
	KeyPlace       = RuneKey('2')
	KeyTab         = SpecialKey(tcell.KeyTab)
	KeyNew         = RuneKey('n')
	KeyNewType     = RuneKey('t')
	KeyDeleteType  = RuneKey('T')
	KeyNewBranch   = RuneKey('b')
	KeyVisitBranch = RuneKey('V')
	KeyVisited     = RuneKey('v')
	KeyDelete      = RuneKey('x')
	KeyMoveUp      = RuneKey('K')
	KeyMoveDown    = RuneKey('J')
	KeySort        = RuneKey('s')
	KeyRefresh     = RuneKey('r')
	KeyMigrate     = RuneKey('M')
	KeySync        = RuneKey('S')
	KeyQuit        = RuneKey('q')
	KeyEscape      = SpecialKey(tcell.KeyEscape)
	KeyFormSubmit  = SpecialKey(tcell.KeyCtrlS)
)

package prompt

import "fmt"

// KeyCode classifies the key of an input event.
type KeyCode int

const (
	// KeyOther is any key the engine ignores.
	KeyOther KeyCode = iota
	// KeyChar is a printable character.
	KeyChar
	// KeyBackspace removes the last typed character.
	KeyBackspace
)

// KeyPhase tells presses apart from releases.
type KeyPhase int

const (
	Press KeyPhase = iota
	Release
)

// KeyEvent is a single classified input event.
type KeyEvent struct {
	Code  KeyCode
	Char  rune
	Phase KeyPhase
	// Name is the terminal's name for KeyOther events, used only for tracing.
	Name string
}

// Char returns a press event for a printable character.
func Char(r rune) KeyEvent {
	return KeyEvent{Code: KeyChar, Char: r}
}

// Backspace returns a backspace press event.
func Backspace() KeyEvent {
	return KeyEvent{Code: KeyBackspace}
}

// Other returns a press event for a key the engine does not handle.
func Other(name string) KeyEvent {
	return KeyEvent{Code: KeyOther, Name: name}
}

// Released returns the release-phase counterpart of e.
func (e KeyEvent) Released() KeyEvent {
	e.Phase = Release
	return e
}

func (e KeyEvent) String() string {
	var s string
	switch e.Code {
	case KeyChar:
		s = fmt.Sprintf("Char(%q)", e.Char)
	case KeyBackspace:
		s = "Backspace"
	default:
		s = "Other"
		if e.Name != "" {
			s = fmt.Sprintf("Other(%s)", e.Name)
		}
	}
	if e.Phase == Release {
		s += " release"
	}
	return s
}

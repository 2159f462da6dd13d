// Package prompt compares typed input against a target text.
//
// Comparison is byte oriented: the correct span ends at the first byte that
// differs, which may fall inside a multi-byte character.
package prompt

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// State holds a target text and the input typed so far.
type State struct {
	target string
	typed  []byte
	logger *zap.Logger
}

// Spans is the decomposition of the typed input against the target.
type Spans struct {
	Correct   string
	Incorrect string
	Remaining string
}

// New returns a State with an empty input buffer. A nil logger disables tracing.
func New(target string, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{target: target, logger: logger}
}

// Target returns the text to reproduce.
func (s *State) Target() string {
	return s.target
}

// Typed returns the input typed so far.
func (s *State) Typed() string {
	return string(s.typed)
}

// ApplyKey updates the input buffer. Printable characters are appended,
// backspace drops the last character, everything else is ignored.
func (s *State) ApplyKey(ev KeyEvent) {
	if ev.Phase == Release {
		return
	}
	switch ev.Code {
	case KeyChar:
		s.typed = utf8.AppendRune(s.typed, ev.Char)
	case KeyBackspace:
		s.pop()
	}
	s.logger.Debug("Received key press",
		zap.Stringer("key", ev),
		zap.ByteString("typed", s.typed))
}

// pop removes the last UTF-8 character, or the last byte when the tail is
// not valid UTF-8.
func (s *State) pop() {
	if len(s.typed) == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(s.typed)
	s.typed = s.typed[:len(s.typed)-size]
}

// IsComplete reports whether the input equals the target byte for byte.
func (s *State) IsComplete() bool {
	return string(s.typed) == s.target
}

func (s *State) correctLength() int {
	n := min(len(s.typed), len(s.target))
	for i := 0; i < n; i++ {
		if s.typed[i] != s.target[i] {
			return i
		}
	}
	return n
}

// SplitInput splits the input at the first byte that differs from the target.
func (s *State) SplitInput() (correct, incorrect string) {
	n := s.correctLength()
	return string(s.typed[:n]), string(s.typed[n:])
}

// CorrectInput returns the longest prefix of the input matching the target.
func (s *State) CorrectInput() string {
	correct, _ := s.SplitInput()
	return correct
}

// IncorrectInput returns the input after the first mismatch.
func (s *State) IncorrectInput() string {
	_, incorrect := s.SplitInput()
	return incorrect
}

// Remaining returns the target suffix past the length of the input. It is
// empty once the input is at least as long as the target.
func (s *State) Remaining() string {
	if len(s.typed) >= len(s.target) {
		return ""
	}
	return s.target[len(s.typed):]
}

// Spans returns the correct, incorrect and remaining segments.
func (s *State) Spans() Spans {
	correct, incorrect := s.SplitInput()
	return Spans{Correct: correct, Incorrect: incorrect, Remaining: s.Remaining()}
}

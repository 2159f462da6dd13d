package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func typeString(s *State, text string) {
	for _, r := range text {
		s.ApplyKey(Char(r))
	}
}

func TestCatScenario(t *testing.T) {
	s := New("cat", nil)
	typeString(s, "cax")

	spans := s.Spans()
	assert.Equal(t, "ca", spans.Correct)
	assert.Equal(t, "x", spans.Incorrect)
	assert.Equal(t, "", spans.Remaining)
	assert.False(t, s.IsComplete())

	s.ApplyKey(Backspace())
	s.ApplyKey(Char('t'))
	assert.Equal(t, "cat", s.Typed())
	assert.True(t, s.IsComplete())
}

func TestSplitInput(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		typed     string
		correct   string
		incorrect string
		remaining string
	}{
		{name: "empty", target: "hello", typed: "", correct: "", incorrect: "", remaining: "hello"},
		{name: "strict prefix", target: "hello", typed: "hel", correct: "hel", incorrect: "", remaining: "lo"},
		{name: "diverged", target: "hello", typed: "hex", correct: "he", incorrect: "x", remaining: "lo"},
		{name: "diverged then matching", target: "hello", typed: "hxll", correct: "h", incorrect: "xll", remaining: "o"},
		{name: "longer than target", target: "hi", typed: "hi there", correct: "hi", incorrect: " there", remaining: ""},
		{name: "exact", target: "hi", typed: "hi", correct: "hi", incorrect: "", remaining: ""},
		{name: "empty target", target: "", typed: "ab", correct: "", incorrect: "ab", remaining: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.target, nil)
			typeString(s, tt.typed)
			correct, incorrect := s.SplitInput()
			assert.Equal(t, tt.correct, correct)
			assert.Equal(t, tt.incorrect, incorrect)
			assert.Equal(t, tt.correct, s.CorrectInput())
			assert.Equal(t, tt.incorrect, s.IncorrectInput())
			assert.Equal(t, tt.remaining, s.Remaining())
			assert.Equal(t, len(tt.typed), len(correct)+len(incorrect))
		})
	}
}

func TestSplitInputIsByteOriented(t *testing.T) {
	// "é" and "è" share their first UTF-8 byte.
	s := New("é", nil)
	s.ApplyKey(Char('è'))

	correct, incorrect := s.SplitInput()
	assert.Equal(t, "\xc3", correct)
	assert.Equal(t, "\xa8", incorrect)
	assert.Equal(t, "", s.Remaining())
}

func TestSpanLengthsCoverTyped(t *testing.T) {
	targets := []string{"", "a", "cat", "the quick brown fox", "naïve café"}
	buffers := []string{"", "c", "ca", "cat", "cats", "dog", "the quick", "naïve", "naive"}
	for _, target := range targets {
		for _, typed := range buffers {
			s := New(target, nil)
			typeString(s, typed)
			correct, incorrect := s.SplitInput()
			require.Equal(t, len(s.Typed()), len(correct)+len(incorrect), "target=%q typed=%q", target, typed)
			require.Equal(t, s.Typed()[:len(correct)], correct)
			require.LessOrEqual(t, len(correct), len(target))
			require.Equal(t, target[:len(correct)], correct)
			if len(correct) < len(s.Typed()) && len(correct) < len(target) {
				require.NotEqual(t, target[len(correct)], s.Typed()[len(correct)])
			}
		}
	}
}

func TestIsCompleteOnlyOnExactMatch(t *testing.T) {
	target := "type this"
	for i := 0; i < len(target); i++ {
		s := New(target, nil)
		typeString(s, target[:i])
		assert.False(t, s.IsComplete(), "prefix %q", target[:i])
	}
	s := New(target, nil)
	typeString(s, target)
	assert.True(t, s.IsComplete())

	s.ApplyKey(Char('!'))
	assert.False(t, s.IsComplete())
}

func TestEmptyTargetIsComplete(t *testing.T) {
	assert.True(t, New("", nil).IsComplete())
}

func TestBackspaceOnEmptyIsNoOp(t *testing.T) {
	s := New("abc", nil)
	for i := 0; i < 3; i++ {
		s.ApplyKey(Backspace())
	}
	assert.Equal(t, "", s.Typed())
	assert.Equal(t, "abc", s.Remaining())
}

func TestAppendThenBackspaceRestoresBuffer(t *testing.T) {
	for _, prefix := range []string{"", "a", "abc", "naïve", "日本"} {
		for _, r := range []rune{'x', ' ', 'é', '日', '!'} {
			s := New("target", nil)
			typeString(s, prefix)
			before := s.Typed()
			s.ApplyKey(Char(r))
			s.ApplyKey(Backspace())
			assert.Equal(t, before, s.Typed(), "prefix %q rune %q", prefix, r)
		}
	}
}

func TestIgnoredEvents(t *testing.T) {
	s := New("abc", nil)
	s.ApplyKey(Char('a'))

	s.ApplyKey(Other("left"))
	s.ApplyKey(Char('b').Released())
	s.ApplyKey(Backspace().Released())
	assert.Equal(t, "a", s.Typed())
}

func TestApplyKeyTracesPresses(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New("ab", zap.New(core))

	s.ApplyKey(Char('a'))
	s.ApplyKey(Char('b').Released())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Received key press", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Char('a')", fields["key"])
	assert.Equal(t, "a", fields["typed"])
}

func TestKeyEventString(t *testing.T) {
	assert.Equal(t, "Backspace", Backspace().String())
	assert.Equal(t, "Other(tab)", Other("tab").String())
	assert.Equal(t, "Other", Other("").String())
	assert.Equal(t, "Char('x') release", Char('x').Released().String())
}

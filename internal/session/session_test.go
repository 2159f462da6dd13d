package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/wpm/internal/model"
	"github.com/verte-zerg/wpm/internal/prompt"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func typeText(s *Session, text string) Phase {
	phase := s.Phase()
	for _, r := range text {
		phase = s.Handle(Key(prompt.Char(r)))
	}
	return phase
}

func TestCompletingEveryRound(t *testing.T) {
	prompts := []model.Prompt{{Text: "cat", Source: "#1"}, {Text: "dog", Source: "#2"}}
	var reported []model.RoundResult
	s := New(prompts, Options{Now: fixedNow, OnResult: func(r model.RoundResult) {
		reported = append(reported, r)
	}})

	require.Equal(t, AwaitingInput, s.Phase())
	assert.Equal(t, AwaitingInput, typeText(s, "cax"))
	s.Handle(Key(prompt.Backspace()))
	assert.Equal(t, RoundComplete, s.Handle(Key(prompt.Char('t'))))

	require.True(t, s.Next())
	pos, total := s.Position()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 2, total)
	current, ok := s.Prompt()
	require.True(t, ok)
	assert.Equal(t, "#2", current.Source)
	assert.Equal(t, RoundComplete, typeText(s, "dog"))

	assert.False(t, s.Next())
	assert.Equal(t, SessionTerminated, s.Phase())
	assert.Nil(t, s.Current())

	require.Len(t, reported, 2)
	assert.Equal(t, model.RoundResult{
		Source:     "#1",
		Outcome:    model.OutcomeCompleted,
		TargetLen:  3,
		TypedLen:   3,
		CorrectLen: 3,
		EndedAt:    fixedNow(),
	}, reported[0])
	assert.Equal(t, reported, s.Results())
}

func TestSkipAdvancesToNextRound(t *testing.T) {
	s := New([]model.Prompt{{Text: "first", Source: "a"}, {Text: "second", Source: "b"}}, Options{Now: fixedNow})
	typeText(s, "fix")

	assert.Equal(t, RoundSkipped, s.Handle(Skip()))
	// Keys between rounds do not leak into the ended round.
	assert.Equal(t, RoundSkipped, s.Handle(Key(prompt.Char('x'))))
	require.True(t, s.Next())
	assert.Equal(t, "second", s.Current().Target())
	assert.Equal(t, "", s.Current().Typed())

	results := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, model.OutcomeSkipped, results[0].Outcome)
	assert.Equal(t, 3, results[0].TypedLen)
	assert.Equal(t, 2, results[0].CorrectLen)
}

func TestReleasedSkipIsIgnored(t *testing.T) {
	s := New([]model.Prompt{{Text: "abc"}}, Options{})
	in := Skip()
	in.Key = prompt.Other("right").Released()
	assert.Equal(t, AwaitingInput, s.Handle(in))
}

func TestQuitTerminatesWholeSession(t *testing.T) {
	s := New([]model.Prompt{{Text: "one", Source: "1"}, {Text: "two", Source: "2"}}, Options{Now: fixedNow})
	typeText(s, "o")

	assert.Equal(t, SessionTerminated, s.Handle(Quit()))
	assert.False(t, s.Next())
	assert.Equal(t, SessionTerminated, s.Handle(Key(prompt.Char('n'))))

	results := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, model.OutcomeQuit, results[0].Outcome)
	assert.Equal(t, "1", results[0].Source)
}

func TestQuitBetweenRoundsReportsNothingExtra(t *testing.T) {
	s := New([]model.Prompt{{Text: "a"}, {Text: "b"}}, Options{})
	typeText(s, "a")
	assert.Equal(t, SessionTerminated, s.Handle(Quit()))
	require.Len(t, s.Results(), 1)
	assert.Equal(t, model.OutcomeCompleted, s.Results()[0].Outcome)
}

func TestEmptyPromptList(t *testing.T) {
	s := New(nil, Options{})
	assert.Equal(t, SessionTerminated, s.Phase())
	assert.Nil(t, s.Current())
	_, ok := s.Prompt()
	assert.False(t, ok)
	assert.False(t, s.Next())
}

func TestEmptyTargetCompletesImmediately(t *testing.T) {
	s := New([]model.Prompt{{Text: ""}, {Text: "x"}}, Options{})
	assert.Equal(t, RoundComplete, s.Phase())
	require.True(t, s.Next())
	assert.Equal(t, AwaitingInput, s.Phase())
}

func TestNextWhileAwaitingInputKeepsRound(t *testing.T) {
	s := New([]model.Prompt{{Text: "abc"}, {Text: "def"}}, Options{})
	typeText(s, "a")
	assert.True(t, s.Next())
	assert.Equal(t, "abc", s.Current().Target())
	assert.Equal(t, "a", s.Current().Typed())
}

func TestSessionLogsRoundLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := New([]model.Prompt{{Text: "a", Source: "#9"}, {Text: "b"}}, Options{Logger: zap.New(core)})
	typeText(s, "a")
	s.Next()
	s.Handle(Skip())

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{
		"Starting race",
		"Race completed",
		"Starting race",
		"Skipping prompt",
		"Race failed",
	}, messages)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "awaiting-input", AwaitingInput.String())
	assert.Equal(t, "session-terminated", SessionTerminated.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

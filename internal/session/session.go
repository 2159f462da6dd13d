// Package session runs typing rounds over a sequence of prompts.
package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/wpm/internal/model"
	"github.com/verte-zerg/wpm/internal/prompt"
)

// Phase is the state of the session after the last input.
type Phase int

const (
	AwaitingInput Phase = iota
	RoundComplete
	RoundSkipped
	SessionTerminated
)

func (p Phase) String() string {
	switch p {
	case AwaitingInput:
		return "awaiting-input"
	case RoundComplete:
		return "round-complete"
	case RoundSkipped:
		return "round-skipped"
	case SessionTerminated:
		return "session-terminated"
	default:
		return "unknown"
	}
}

// Signal classifies an input before it reaches the prompt engine.
type Signal int

const (
	// SignalKey forwards the key event to the current round.
	SignalKey Signal = iota
	// SignalSkip abandons the current round.
	SignalSkip
	// SignalQuit ends the whole session.
	SignalQuit
)

// Input is a classified input event.
type Input struct {
	Signal Signal
	Key    prompt.KeyEvent
}

// Key wraps a key event for the current round.
func Key(ev prompt.KeyEvent) Input {
	return Input{Signal: SignalKey, Key: ev}
}

// Skip returns a skip input.
func Skip() Input {
	return Input{Signal: SignalSkip}
}

// Quit returns a quit input.
func Quit() Input {
	return Input{Signal: SignalQuit}
}

// Options configures a Session.
type Options struct {
	Logger *zap.Logger
	// OnResult is called for every finished round.
	OnResult func(model.RoundResult)
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session owns the prompt queue and the state of the active round.
type Session struct {
	prompts  []model.Prompt
	index    int
	round    *prompt.State
	phase    Phase
	logger   *zap.Logger
	onResult func(model.RoundResult)
	now      func() time.Time
	results  []model.RoundResult
}

// New starts a session on the first prompt. An empty prompt list starts terminated.
func New(prompts []model.Prompt, opts Options) *Session {
	s := &Session{
		prompts:  prompts,
		logger:   opts.Logger,
		onResult: opts.OnResult,
		now:      opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if len(prompts) == 0 {
		s.phase = SessionTerminated
		return s
	}
	s.startRound()
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Current returns the active round, or nil once the session is terminated.
func (s *Session) Current() *prompt.State {
	if s.phase == SessionTerminated {
		return nil
	}
	return s.round
}

// Prompt returns the prompt of the active round.
func (s *Session) Prompt() (model.Prompt, bool) {
	if s.phase == SessionTerminated || s.index >= len(s.prompts) {
		return model.Prompt{}, false
	}
	return s.prompts[s.index], true
}

// Position returns the 1-based index of the active round and the total count.
func (s *Session) Position() (int, int) {
	return s.index + 1, len(s.prompts)
}

// Results returns the results reported so far.
func (s *Session) Results() []model.RoundResult {
	return append([]model.RoundResult(nil), s.results...)
}

// Handle applies an input and returns the resulting phase. Inputs other than
// quit are ignored unless the session is awaiting input.
func (s *Session) Handle(in Input) Phase {
	if s.phase == SessionTerminated {
		return s.phase
	}
	if in.Signal == SignalQuit {
		s.logger.Info("Kill signal received: Exiting race")
		if s.phase == AwaitingInput {
			s.finishRound(model.OutcomeQuit)
		}
		s.phase = SessionTerminated
		return s.phase
	}
	if s.phase != AwaitingInput {
		return s.phase
	}
	switch in.Signal {
	case SignalSkip:
		if in.Key.Phase == prompt.Release {
			return s.phase
		}
		s.logger.Info("Skipping prompt")
		s.finishRound(model.OutcomeSkipped)
		s.phase = RoundSkipped
	case SignalKey:
		s.round.ApplyKey(in.Key)
		if s.round.IsComplete() {
			s.completeRound()
		}
	}
	return s.phase
}

// Next advances to the following prompt after a round has ended. It returns
// false and terminates the session when no prompts are left.
func (s *Session) Next() bool {
	switch s.phase {
	case SessionTerminated:
		return false
	case AwaitingInput:
		return true
	}
	s.index++
	if s.index >= len(s.prompts) {
		s.phase = SessionTerminated
		return false
	}
	s.startRound()
	return true
}

func (s *Session) startRound() {
	s.round = prompt.New(s.prompts[s.index].Text, s.logger)
	s.phase = AwaitingInput
	s.logger.Info("Starting race", zap.String("source", s.prompts[s.index].Source))
	if s.round.IsComplete() {
		s.completeRound()
	}
}

func (s *Session) completeRound() {
	s.logger.Info("Race completed")
	s.finishRound(model.OutcomeCompleted)
	s.phase = RoundComplete
}

func (s *Session) finishRound(outcome model.Outcome) {
	if outcome != model.OutcomeCompleted {
		s.logger.Info("Race failed", zap.String("outcome", string(outcome)))
	}
	result := model.RoundResult{
		Source:     s.prompts[s.index].Source,
		Outcome:    outcome,
		TargetLen:  len(s.round.Target()),
		TypedLen:   len(s.round.Typed()),
		CorrectLen: len(s.round.CorrectInput()),
		EndedAt:    s.now(),
	}
	s.results = append(s.results, result)
	if s.onResult != nil {
		s.onResult(result)
	}
}

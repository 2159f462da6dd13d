package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wpm/internal/model"
	"github.com/verte-zerg/wpm/internal/prompt"
	"github.com/verte-zerg/wpm/internal/session"
)

func newTestModel(t *testing.T, prompts []model.Prompt) (*Model, *session.Session) {
	t.Helper()
	keys, err := NewKeyMap("ctrl+c", "right")
	require.NoError(t, err)
	sess := session.New(prompts, session.Options{})
	return NewModel(sess, keys, nil, 0.5), sess
}

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestUpdateTypesAndCompletesRounds(t *testing.T) {
	m, sess := newTestModel(t, []model.Prompt{{Text: "a b"}, {Text: "cd"}})

	_, cmd := m.Update(runesMsg("a"))
	assert.Nil(t, cmd)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(runesMsg("x"))
	assert.Equal(t, "a x", sess.Current().Typed())

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	_, cmd = m.Update(runesMsg("b"))
	assert.Nil(t, cmd)
	assert.Equal(t, "cd", sess.Current().Target())

	_, cmd = m.Update(runesMsg("cd"))
	assert.True(t, isQuit(cmd))
	assert.Equal(t, session.SessionTerminated, sess.Phase())
}

func TestUpdateIgnoresOtherKeys(t *testing.T) {
	m, sess := newTestModel(t, []model.Prompt{{Text: "ab"}})
	m.Update(runesMsg("a"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, "a", sess.Current().Typed())
}

func TestKeyEventsOnlyBackspaceErases(t *testing.T) {
	assert.Equal(t, []prompt.KeyEvent{prompt.Backspace()}, keyEvents(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, []prompt.KeyEvent{prompt.Other("delete")}, keyEvents(tea.KeyMsg{Type: tea.KeyDelete}))
}

func TestPasteDoesNotCarryIntoNextRound(t *testing.T) {
	m, sess := newTestModel(t, []model.Prompt{{Text: "ab"}, {Text: "cd"}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abcd"), Paste: true})
	assert.Equal(t, "cd", sess.Current().Target())
	assert.Equal(t, "", sess.Current().Typed())
}

func TestSkipAndQuitKeys(t *testing.T) {
	m, sess := newTestModel(t, []model.Prompt{{Text: "one", Source: "1"}, {Text: "two", Source: "2"}, {Text: "six"}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, "two", sess.Current().Target())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))

	results := sess.Results()
	require.Len(t, results, 2)
	assert.Equal(t, model.OutcomeSkipped, results[0].Outcome)
	assert.Equal(t, model.OutcomeQuit, results[1].Outcome)
	assert.Equal(t, "2", results[1].Source)
}

func TestSkippingLastPromptQuits(t *testing.T) {
	m, _ := newTestModel(t, []model.Prompt{{Text: "only"}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, isQuit(cmd))
}

func TestInitQuitsWithoutPrompts(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.True(t, isQuit(m.Init()))
	assert.Equal(t, "", m.View())
}

func TestNewModelSkipsEmptyTargets(t *testing.T) {
	m, sess := newTestModel(t, []model.Prompt{{Text: ""}, {Text: "go"}})
	assert.Nil(t, m.Init())
	assert.Equal(t, "go", sess.Current().Target())
}

func TestViewRendersSpans(t *testing.T) {
	m, _ := newTestModel(t, []model.Prompt{{Text: "cat"}})
	m.Update(runesMsg("cx"))
	view := m.View()
	assert.Equal(t, renderStyledRunes(buildStyledRunes(prompt.Spans{Correct: "c", Incorrect: "x", Remaining: "t"})), view)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.View(), "Text 1/1")
}

func TestNewKeyMapValidation(t *testing.T) {
	_, err := NewKeyMap("", "right")
	assert.Error(t, err)
	_, err = NewKeyMap("ctrl+c", " , ")
	assert.Error(t, err)
	_, err = NewKeyMap("ctrl+c,right", "Right")
	assert.ErrorContains(t, err, "both")

	keys, err := NewKeyMap("ctrl+c, esc", "right,tab")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+c", "esc"}, keys.Quit.Keys())
	assert.Equal(t, "right/tab", keys.Skip.Help().Key)
}

// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/wpm/internal/prompt"
	"github.com/verte-zerg/wpm/internal/session"
)

const (
	defaultWidthPct = 0.70
	margin          = 5
)

// Model implements the Bubble Tea typing UI on top of a session.
type Model struct {
	session  *session.Session
	keys     KeyMap
	logger   *zap.Logger
	widthPct float64

	width  int
	height int
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Background(lipgloss.Color("#FF4D4F")).Bold(true)
	pendingStyle   = lipgloss.NewStyle()
	cursorStyle    = pendingStyle.Underline(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a typing TUI model. widthPct is the share of the
// terminal width used for the text; values outside (0,1] use the default.
func NewModel(sess *session.Session, keys KeyMap, logger *zap.Logger, widthPct float64) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if widthPct <= 0 || widthPct > 1 {
		widthPct = defaultWidthPct
	}
	m := &Model{
		session:  sess,
		keys:     keys,
		logger:   logger,
		widthPct: widthPct,
	}
	m.advance()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.session.Phase() == session.SessionTerminated {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		for _, in := range m.classify(msg) {
			if m.session.Handle(in) == session.AwaitingInput {
				continue
			}
			// The rest of a paste does not carry over into the next round.
			if !m.advance() {
				return m, tea.Quit
			}
			break
		}
		return m, nil
	default:
		return m, nil
	}
}

// advance moves past finished rounds. It returns false once the session is over.
func (m *Model) advance() bool {
	for {
		switch m.session.Phase() {
		case session.AwaitingInput:
			return true
		case session.SessionTerminated:
			return false
		}
		if !m.session.Next() {
			m.logger.Info("No prompts left")
			return false
		}
	}
}

func (m *Model) classify(msg tea.KeyMsg) []session.Input {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []session.Input{session.Quit()}
	case key.Matches(msg, m.keys.Skip):
		return []session.Input{session.Skip()}
	}
	events := keyEvents(msg)
	inputs := make([]session.Input, 0, len(events))
	for _, ev := range events {
		inputs = append(inputs, session.Key(ev))
	}
	return inputs
}

// keyEvents translates a terminal key message. Pasted text yields one event per rune.
func keyEvents(msg tea.KeyMsg) []prompt.KeyEvent {
	switch msg.Type {
	case tea.KeyBackspace:
		return []prompt.KeyEvent{prompt.Backspace()}
	case tea.KeySpace:
		return []prompt.KeyEvent{prompt.Char(' ')}
	case tea.KeyRunes:
		events := make([]prompt.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, prompt.Char(r))
		}
		return events
	default:
		return []prompt.KeyEvent{prompt.Other(msg.String())}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	round := m.session.Current()
	if round == nil {
		return ""
	}
	styledRunes := buildStyledRunes(round.Spans())
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := min(int(float64(m.width)*m.widthPct), m.width-2*margin)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	round := m.session.Current()
	if round == nil {
		return ""
	}
	pos, total := m.session.Position()
	segments := []string{fmt.Sprintf("Text %d/%d", pos, total)}
	if p, ok := m.session.Prompt(); ok && p.Source != "" {
		segments = append(segments, p.Source)
	}
	progress := 100
	if target := len(round.Target()); target > 0 {
		progress = len(round.CorrectInput()) * 100 / target
	}
	segments = append(segments,
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("%s %s", m.keys.Skip.Help().Key, m.keys.Skip.Help().Desc),
		fmt.Sprintf("%s %s", m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc),
	)
	return footerStyle.Render(strings.Join(segments, "  "))
}

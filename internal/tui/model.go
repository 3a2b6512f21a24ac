package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timed-quiz/internal/quiz"
)

// Options configures the quiz UI model.
type Options struct {
	Questions    []quiz.Question
	NoColor      bool
	QuitOnFinish bool
	TickInterval time.Duration
	SessionOpts  []quiz.SessionOption
}

// Model renders a quiz session using Bubble Tea. Key presses and countdown
// ticks reach the session only through Update, which serializes them.
type Model struct {
	session      *quiz.Session
	screen       *screen
	ticker       *genTicker
	keys         keyMap
	help         help.Model
	noColor      bool
	quitOnFinish bool
	quitting     bool
}

// NewModel constructs a UI model with a fresh session over opts.Questions,
// or the built-in questions when none are given.
func NewModel(opts Options) Model {
	questions := opts.Questions
	if questions == nil {
		questions = quiz.Load()
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	view := &screen{}
	ticker := &genTicker{interval: interval}
	return Model{
		session:      quiz.NewSession(questions, view, ticker, opts.SessionOpts...),
		screen:       view,
		ticker:       ticker,
		keys:         defaultKeyMap(),
		help:         help.New(),
		noColor:      opts.NoColor,
		quitOnFinish: opts.QuitOnFinish,
	}
}

// Session exposes the underlying session, mainly to read its result.
func (m Model) Session() *quiz.Session {
	return m.session
}

// Init starts the session and schedules the first tick.
func (m Model) Init() tea.Cmd {
	m.session.Start()
	return m.afterEvent()
}

// Update consumes key presses and countdown ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case tickMsg:
		if !m.ticker.accept(typed) {
			return m, m.ticker.next()
		}
		m.session.OnTick()
		return m, m.afterEvent()
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen.terminated {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.ticker.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.screen.cursor = (m.screen.cursor + quiz.OptionCount - 1) % quiz.OptionCount
	case key.Matches(msg, m.keys.Down):
		m.screen.cursor = (m.screen.cursor + 1) % quiz.OptionCount
	case key.Matches(msg, m.keys.Pick):
		if index, ok := quiz.OptionIndex(msg.String()); ok {
			m.screen.cursor = index
			m.session.Select(m.screen.options[index])
		}
	case key.Matches(msg, m.keys.Choose):
		m.session.Select(m.screen.options[m.screen.cursor])
	case key.Matches(msg, m.keys.Submit):
		m.session.SubmitAt(m.screen.index)
	}
	return m, m.afterEvent()
}

// afterEvent quits once a finished session should close, and otherwise keeps
// exactly one tick in flight for the running generation.
func (m Model) afterEvent() tea.Cmd {
	if m.screen.terminated {
		if m.quitOnFinish {
			return tea.Quit
		}
		return nil
	}
	return m.ticker.next()
}

// View renders the quiz UI.
func (m Model) View() string {
	if m.quitting {
		return stylize("Quiz abandoned.", m.noColor, lipgloss.Color("244")) + "\n"
	}
	if m.screen.terminated {
		return renderFinal(m.screen, m.noColor)
	}

	state := m.session.State()
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.screen, state, m.noColor),
		"",
		renderQuestion(m.screen, m.noColor),
		"",
		renderOptions(m.screen, state, m.noColor),
		"",
		renderCountdown(m.screen.remaining, m.noColor),
		"",
		m.help.View(m.keys),
	) + "\n"
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg is one countdown tick for the ticker generation that scheduled it.
type tickMsg struct {
	gen int
}

// genTicker implements quiz.Ticker on top of tea.Tick. Every Start opens a new
// generation, and ticks scheduled under an older generation are dropped.
type genTicker struct {
	interval  time.Duration
	gen       int
	running   bool
	scheduled int
}

func (t *genTicker) Start() {
	t.gen++
	t.running = true
}

func (t *genTicker) Stop() {
	t.running = false
}

// accept reports whether msg belongs to the running generation and clears the
// in-flight marker so the next tick can be scheduled.
func (t *genTicker) accept(msg tickMsg) bool {
	if msg.gen == t.scheduled {
		t.scheduled = 0
	}
	return t.running && msg.gen == t.gen
}

// next schedules a tick for the current generation unless one is in flight.
func (t *genTicker) next() tea.Cmd {
	if !t.running || t.scheduled == t.gen {
		return nil
	}
	gen := t.gen
	t.scheduled = gen
	return tea.Tick(t.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

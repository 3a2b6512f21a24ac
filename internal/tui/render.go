package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"timed-quiz/internal/quiz"
)

const warnThreshold = 3

// renderHeader renders the title with progress and score.
func renderHeader(view *screen, state quiz.Snapshot, noColor bool) string {
	line := fmt.Sprintf("Quiz Application | Question %d/%d | Score: %d", view.index+1, view.total, state.Score)
	return stylizeBold(line, noColor, lipgloss.Color("33"))
}

func renderQuestion(view *screen, noColor bool) string {
	return stylizeBold(view.text, noColor, lipgloss.Color("255"))
}

// renderOptions renders the options as radio buttons with a cursor marker.
func renderOptions(view *screen, state quiz.Snapshot, noColor bool) string {
	lines := make([]string, 0, len(view.options))
	for idx, option := range view.options {
		cursor := "  "
		if idx == view.cursor {
			cursor = "> "
		}
		radio := "( )"
		selected := state.HasSelection && state.Selected == option
		if selected {
			radio = "(•)"
		}
		line := fmt.Sprintf("%s%s %d. %s", cursor, radio, idx+1, option)
		switch {
		case selected:
			line = stylize(line, noColor, lipgloss.Color("42"))
		case idx == view.cursor:
			line = stylize(line, noColor, lipgloss.Color("39"))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderCountdown renders the time remaining, highlighted near zero.
func renderCountdown(seconds int, noColor bool) string {
	line := fmt.Sprintf("Time Remaining: %d seconds", seconds)
	if seconds <= warnThreshold {
		return stylizeBold(line, noColor, lipgloss.Color("196"))
	}
	return stylize(line, noColor, lipgloss.Color("242"))
}

func renderFinal(view *screen, noColor bool) string {
	title := stylizeBold("Quiz Over!", noColor, lipgloss.Color("33"))
	score := fmt.Sprintf("Your Score: %d/%d", view.finalScore, view.finalTotal)
	hint := stylize("Press any key to exit.", noColor, lipgloss.Color("244"))
	return lipgloss.JoinVertical(lipgloss.Left, title, score, "", hint) + "\n"
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func stylizeBold(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
}

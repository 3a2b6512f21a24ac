package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"timed-quiz/internal/quiz"
)

// Run plays one session full screen and blocks until the UI exits. The bool
// result is false when the player quit before the session finished.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) (quiz.Result, bool, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	model := NewModel(opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return quiz.Result{}, false, fmt.Errorf("run quiz ui: %w", err)
	}

	result, ok := model.Session().Result()
	return result, ok, nil
}

package tui

import "timed-quiz/internal/quiz"

// screen implements quiz.Presenter by recording what the view should show.
type screen struct {
	index      int
	total      int
	text       string
	options    [quiz.OptionCount]string
	cursor     int
	remaining  int
	finalScore int
	finalTotal int
	terminated bool
}

func (s *screen) RenderQuestion(index, total int, text string, options [quiz.OptionCount]string) {
	s.index = index
	s.total = total
	s.text = text
	s.options = options
	s.cursor = 0
}

func (s *screen) RenderTimeRemaining(seconds int) {
	s.remaining = seconds
}

func (s *screen) RenderFinalScore(score, total int) {
	s.finalScore = score
	s.finalTotal = total
}

func (s *screen) Terminate() {
	s.terminated = true
}

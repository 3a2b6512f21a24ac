package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"timed-quiz/internal/quiz"
)

const defaultTickInterval = time.Second

type Options struct {
	Questions    []quiz.Question
	TickInterval time.Duration
	SessionOpts  []quiz.SessionOption
}

// Run plays one session over a line-oriented terminal. Each input line is one
// answer: a letter or number selects and submits, an empty line submits with no
// selection. Closing in does not end the session; the remaining questions time out.
// The input goroutine stops once Run returns.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) (quiz.Result, error) {
	questions := opts.Questions
	if questions == nil {
		questions = quiz.Load()
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printer := &linePresenter{out: out}
	ticker := newClockTicker(interval)
	defer ticker.Stop()

	session := quiz.NewSession(questions, printer, ticker, opts.SessionOpts...)

	lines := readLines(ctx, in, printer.displayed)
	session.Start()

	for !printer.terminated {
		select {
		case <-ctx.Done():
			return quiz.Result{}, ctx.Err()
		case <-ticker.C():
			session.OnTick()
		case event, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			handleLine(session, printer, event)
		}
	}

	result, _ := session.Result()
	return result, nil
}

// lineEvent is one input line tagged with the question that was on screen
// when the line was read.
type lineEvent struct {
	index int
	text  string
}

// handleLine applies a line to the question it was typed for. A line that
// arrives after that question already advanced is dropped.
func handleLine(session *quiz.Session, printer *linePresenter, event lineEvent) {
	answer := strings.TrimSpace(event.text)
	if answer == "" {
		session.SubmitAt(event.index)
		return
	}

	optionIndex, ok := quiz.OptionIndex(answer)
	if !ok {
		fmt.Fprintf(printer.out, "Invalid input. Enter a letter A-%s or a number 1-%d, or press Enter to skip.\n",
			quiz.OptionLetter(quiz.OptionCount-1), quiz.OptionCount)
		return
	}
	session.Answer(event.index, printer.options[optionIndex])
}

func readLines(ctx context.Context, in io.Reader, displayed func() int) <-chan lineEvent {
	lines := make(chan lineEvent)
	go func() {
		defer close(lines)

		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" || err == nil {
				event := lineEvent{index: displayed(), text: line}
				select {
				case lines <- event:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// linePresenter prints session updates as plain lines. All calls happen on the
// Run loop goroutine; only shown is read from the input goroutine.
type linePresenter struct {
	out        io.Writer
	shown      atomic.Int64
	options    [quiz.OptionCount]string
	terminated bool
}

// displayed returns the index of the question currently on screen.
func (p *linePresenter) displayed() int {
	return int(p.shown.Load())
}

func (p *linePresenter) RenderQuestion(index, total int, text string, options [quiz.OptionCount]string) {
	p.shown.Store(int64(index))
	p.options = options

	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Q%d/%d: %s\n\n", index+1, total, text)
	for idx, option := range options {
		fmt.Fprintf(p.out, "%s. %s\n", quiz.OptionLetter(idx), option)
	}
	fmt.Fprintln(p.out)
}

func (p *linePresenter) RenderTimeRemaining(seconds int) {
	switch {
	case seconds <= 0:
		fmt.Fprintln(p.out, "Time's up!")
	case seconds == quiz.TimeLimit, seconds == 5, seconds <= 3:
		fmt.Fprintf(p.out, "Time remaining: %d seconds\n", seconds)
	}
}

func (p *linePresenter) RenderFinalScore(score, total int) {
	fmt.Fprintf(p.out, "\nQuiz Over! Your Score: %d/%d\n", score, total)
}

func (p *linePresenter) Terminate() {
	p.terminated = true
}

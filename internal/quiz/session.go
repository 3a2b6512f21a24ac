package quiz

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Presenter receives rendering requests from a Session. Calls are made while
// the session lock is held, so implementations must not call back into the
// session synchronously.
type Presenter interface {
	RenderQuestion(index, total int, text string, options [OptionCount]string)
	RenderTimeRemaining(seconds int)
	RenderFinalScore(score, total int)
	Terminate()
}

// Ticker delivers Session.OnTick once per second between Start and Stop.
// Start after Stop begins a fresh period.
type Ticker interface {
	Start()
	Stop()
}

type Snapshot struct {
	Index         int
	Total         int
	Score         int
	TimeRemaining int
	Selected      string
	HasSelection  bool
	Finished      bool
}

type SessionOption func(*Session)

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFinishHook registers fn to run once the session finishes. It runs after
// the session lock is released.
func WithFinishHook(fn func(Result)) SessionOption {
	return func(s *Session) {
		s.onFinish = fn
	}
}

func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session runs one pass over a question list: it shows each question, counts
// down TimeLimit seconds, scores the submitted option and advances until every
// question has been answered or has timed out.
type Session struct {
	mu sync.Mutex

	id        string
	questions []Question
	presenter Presenter
	ticker    Ticker
	now       func() time.Time
	onFinish  func(Result)

	started       bool
	finished      bool
	ticking       bool
	index         int
	score         int
	timeRemaining int
	selected      string
	hasSelection  bool
	answers       []AnswerRecord
	startedAt     time.Time
	finishedAt    time.Time
}

func NewSession(questions []Question, presenter Presenter, ticker Ticker, opts ...SessionOption) *Session {
	if presenter == nil {
		presenter = nopPresenter{}
	}
	if ticker == nil {
		ticker = nopTicker{}
	}

	owned := make([]Question, len(questions))
	copy(owned, questions)

	s := &Session{
		id:        uuid.NewString(),
		questions: owned,
		presenter: presenter,
		ticker:    ticker,
		now:       time.Now,
		answers:   make([]AnswerRecord, 0, len(owned)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Start displays the first question and starts the countdown. Calling it more
// than once has no effect.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.startedAt = s.now()

	var (
		result Result
		done   bool
	)
	if len(s.questions) == 0 {
		result, done = s.finishLocked(), true
	} else {
		s.displayLocked()
		s.startTickingLocked()
	}
	s.mu.Unlock()

	if done {
		s.notifyFinish(result)
	}
}

func (s *Session) Select(option string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingLocked() {
		return
	}
	s.selected = option
	s.hasSelection = true
}

func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingLocked() {
		return
	}
	s.selected = ""
	s.hasSelection = false
}

// OnTick counts down one second. When the countdown reaches zero the current
// selection, if any, is submitted.
func (s *Session) OnTick() {
	s.mu.Lock()
	if !s.awaitingLocked() || !s.ticking {
		s.mu.Unlock()
		return
	}

	s.timeRemaining--
	if s.timeRemaining > 0 {
		s.presenter.RenderTimeRemaining(s.timeRemaining)
		s.mu.Unlock()
		return
	}

	s.timeRemaining = 0
	s.presenter.RenderTimeRemaining(0)
	s.stopTickingLocked()
	result, done := s.submitLocked(true)
	s.mu.Unlock()

	if done {
		s.notifyFinish(result)
	}
}

// OnSubmit submits the current selection for whichever question is active.
func (s *Session) OnSubmit() {
	s.mu.Lock()
	if !s.awaitingLocked() {
		s.mu.Unlock()
		return
	}
	result, done := s.submitLocked(false)
	s.mu.Unlock()

	if done {
		s.notifyFinish(result)
	}
}

// SubmitAt submits the current selection only if index is still the active
// question. A repeated submit for a question that already advanced returns
// false and changes nothing.
func (s *Session) SubmitAt(index int) bool {
	return s.answerAt(index, "", false)
}

// Answer selects option and submits it for question index in one step.
func (s *Session) Answer(index int, option string) bool {
	return s.answerAt(index, option, true)
}

func (s *Session) answerAt(index int, option string, selectOption bool) bool {
	s.mu.Lock()
	if !s.awaitingLocked() || index != s.index {
		s.mu.Unlock()
		return false
	}
	if selectOption {
		s.selected = option
		s.hasSelection = true
	}
	result, done := s.submitLocked(false)
	s.mu.Unlock()

	if done {
		s.notifyFinish(result)
	}
	return true
}

func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Index:         s.index,
		Total:         len(s.questions),
		Score:         s.score,
		TimeRemaining: s.timeRemaining,
		Selected:      s.selected,
		HasSelection:  s.hasSelection,
		Finished:      s.finished,
	}
}

// Result returns the final result once the session has finished.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finished {
		return Result{}, false
	}
	return s.resultLocked(), true
}

func (s *Session) awaitingLocked() bool {
	return s.started && !s.finished && s.index < len(s.questions)
}

func (s *Session) submitLocked(timedOut bool) (Result, bool) {
	s.stopTickingLocked()

	question := s.questions[s.index]
	correct := s.hasSelection && s.selected == question.CorrectAnswer
	if correct {
		s.score++
	}

	s.answers = append(s.answers, AnswerRecord{
		Index:        s.index,
		Selected:     s.selected,
		HasSelection: s.hasSelection,
		Correct:      correct,
		TimedOut:     timedOut,
		TimeTaken:    time.Duration(TimeLimit-s.timeRemaining) * time.Second,
	})

	s.index++
	if s.index < len(s.questions) {
		s.displayLocked()
		s.startTickingLocked()
		return Result{}, false
	}
	return s.finishLocked(), true
}

func (s *Session) displayLocked() {
	question := s.questions[s.index]

	s.timeRemaining = TimeLimit
	s.selected = ""
	s.hasSelection = false

	s.presenter.RenderQuestion(s.index, len(s.questions), question.Text, question.Options)
	s.presenter.RenderTimeRemaining(s.timeRemaining)
}

func (s *Session) finishLocked() Result {
	s.stopTickingLocked()
	s.finished = true
	s.finishedAt = s.now()
	s.selected = ""
	s.hasSelection = false

	s.presenter.RenderFinalScore(s.score, len(s.questions))
	s.presenter.Terminate()
	return s.resultLocked()
}

func (s *Session) resultLocked() Result {
	answers := make([]AnswerRecord, len(s.answers))
	copy(answers, s.answers)

	return Result{
		SessionID:  s.id,
		Score:      s.score,
		Total:      len(s.questions),
		Answers:    answers,
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
	}
}

func (s *Session) startTickingLocked() {
	if s.ticking {
		s.ticker.Stop()
	}
	s.ticking = true
	s.ticker.Start()
}

func (s *Session) stopTickingLocked() {
	if !s.ticking {
		return
	}
	s.ticking = false
	s.ticker.Stop()
}

func (s *Session) notifyFinish(result Result) {
	if s.onFinish != nil {
		s.onFinish(result)
	}
}

type nopPresenter struct{}

func (nopPresenter) RenderQuestion(int, int, string, [OptionCount]string) {}
func (nopPresenter) RenderTimeRemaining(int)                             {}
func (nopPresenter) RenderFinalScore(int, int)                           {}
func (nopPresenter) Terminate()                                          {}

type nopTicker struct{}

func (nopTicker) Start() {}
func (nopTicker) Stop()  {}

package quiz

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicateSession = errors.New("session already recorded")

// AnswerRecord captures how one question was resolved.
type AnswerRecord struct {
	Index        int
	Selected     string
	HasSelection bool
	Correct      bool
	TimedOut     bool
	TimeTaken    time.Duration
}

type Result struct {
	SessionID  string
	Score      int
	Total      int
	Answers    []AnswerRecord
	StartedAt  time.Time
	FinishedAt time.Time
}

// Ratio returns the share of correct answers, or 0 for an empty session.
func (r Result) Ratio() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total)
}

type HistoryStats struct {
	Sessions     int
	BestScore    int
	BestTotal    int
	AverageRatio float64
}

type ResultRepository interface {
	SaveResult(ctx context.Context, result Result) error
	ListRecent(ctx context.Context, limit int) ([]Result, error)
	Stats(ctx context.Context) (HistoryStats, error)
}

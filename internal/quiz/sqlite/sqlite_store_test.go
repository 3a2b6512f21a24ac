package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"timed-quiz/internal/quiz"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-wal")
		_ = os.Remove(path + "-shm")
		_ = os.Remove(path + "-journal")
	})
	return store
}

func sampleResult(id string, score int, finishedAt time.Time) quiz.Result {
	return quiz.Result{
		SessionID: id,
		Score:     score,
		Total:     5,
		Answers: []quiz.AnswerRecord{
			{Index: 0, Selected: "Paris", HasSelection: true, Correct: true, TimeTaken: 3 * time.Second},
			{Index: 1, TimedOut: true, TimeTaken: 10 * time.Second},
		},
		StartedAt:  finishedAt.Add(-time.Minute),
		FinishedAt: finishedAt,
	}
}

func TestSQLiteStoreSaveAndListRecent(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	older := sampleResult("s-older", 2, time.Unix(1700000000, 0).UTC())
	newer := sampleResult("s-newer", 4, time.Unix(1700000500, 0).UTC())
	for _, result := range []quiz.Result{older, newer} {
		if err := store.SaveResult(ctx, result); err != nil {
			t.Fatalf("SaveResult(%s) failed: %v", result.SessionID, err)
		}
	}

	recent, err := store.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(recent))
	}
	if recent[0].SessionID != "s-newer" || recent[1].SessionID != "s-older" {
		t.Fatalf("sessions not ordered newest first: %+v", recent)
	}

	got := recent[0]
	if got.Score != 4 || got.Total != 5 || !got.FinishedAt.Equal(newer.FinishedAt) || !got.StartedAt.Equal(newer.StartedAt) {
		t.Fatalf("unexpected session row: %+v", got)
	}
	if len(got.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(got.Answers))
	}
	if got.Answers[0] != newer.Answers[0] || got.Answers[1] != newer.Answers[1] {
		t.Fatalf("answers did not round-trip: got %+v want %+v", got.Answers, newer.Answers)
	}

	limited, err := store.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent(1) failed: %v", err)
	}
	if len(limited) != 1 || limited[0].SessionID != "s-newer" {
		t.Fatalf("unexpected limited list: %+v", limited)
	}
}

func TestSQLiteStoreRejectsDuplicateSession(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first := sampleResult("s-1", 3, time.Unix(1700000000, 0).UTC())
	if err := store.SaveResult(ctx, first); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	second := sampleResult("s-1", 5, time.Unix(1700000100, 0).UTC())
	err := store.SaveResult(ctx, second)
	if !errors.Is(err, quiz.ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}

	recent, err := store.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Score != 3 || len(recent[0].Answers) != 2 {
		t.Fatalf("original session should be unchanged, got %+v", recent)
	}
}

func TestSQLiteStoreRequiresSessionID(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.SaveResult(context.Background(), quiz.Result{Total: 5}); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}

func TestSQLiteStoreStats(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats on empty store failed: %v", err)
	}
	if empty != (quiz.HistoryStats{}) {
		t.Fatalf("expected zero stats, got %+v", empty)
	}

	base := time.Unix(1700000000, 0).UTC()
	for idx, score := range []int{1, 4, 4} {
		result := sampleResult("s-"+string(rune('a'+idx)), score, base.Add(time.Duration(idx)*time.Minute))
		if err := store.SaveResult(ctx, result); err != nil {
			t.Fatalf("SaveResult failed: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Sessions != 3 || stats.BestScore != 4 || stats.BestTotal != 5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	wantAverage := (0.2 + 0.8 + 0.8) / 3
	if diff := stats.AverageRatio - wantAverage; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("average ratio = %f, want %f", stats.AverageRatio, wantAverage)
	}
}

func TestSQLiteStoreReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := store.SaveResult(ctx, sampleResult("s-1", 5, time.Unix(1700000000, 0).UTC())); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	recent, err := reopened.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(recent) != 1 || recent[0].SessionID != "s-1" {
		t.Fatalf("expected persisted session, got %+v", recent)
	}
}

var _ quiz.ResultRepository = (*SQLiteStore)(nil)

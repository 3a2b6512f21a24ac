package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"timed-quiz/internal/quiz"
)

const defaultListLimit = 10

// SaveResult stores a finished session and its answers in one transaction.
// A session ID that is already present is rejected with quiz.ErrDuplicateSession
// and the stored row is left unchanged.
func (s *SQLiteStore) SaveResult(ctx context.Context, result quiz.Result) error {
	if result.SessionID == "" {
		return errors.New("session id is required")
	}

	finishedAt := result.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}
	startedAt := result.StartedAt
	if startedAt.IsZero() {
		startedAt = finishedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertResult, err := tx.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO sessions (session_id, score, total, started_at_unix, finished_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		result.SessionID,
		result.Score,
		result.Total,
		startedAt.UnixNano(),
		finishedAt.UnixNano(),
	)
	if err != nil {
		return err
	}

	inserted, err := insertResult.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return quiz.ErrDuplicateSession
	}

	for _, answer := range result.Answers {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO session_answers (session_id, position, selected, has_selection, correct, timed_out, time_taken_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			result.SessionID,
			answer.Index,
			answer.Selected,
			boolToInt(answer.HasSelection),
			boolToInt(answer.Correct),
			boolToInt(answer.TimedOut),
			answer.TimeTaken.Milliseconds(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListRecent returns the most recently finished sessions first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]quiz.Result, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id, score, total, started_at_unix, finished_at_unix
		 FROM sessions
		 ORDER BY finished_at_unix DESC, session_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}

	results := make([]quiz.Result, 0)
	for rows.Next() {
		var (
			item           quiz.Result
			startedAtUnix  int64
			finishedAtUnix int64
		)
		if err := rows.Scan(&item.SessionID, &item.Score, &item.Total, &startedAtUnix, &finishedAtUnix); err != nil {
			_ = rows.Close()
			return nil, err
		}
		item.StartedAt = time.Unix(0, startedAtUnix).UTC()
		item.FinishedAt = time.Unix(0, finishedAtUnix).UTC()
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// The pool holds a single connection, so answers are loaded only after the
	// session rows are closed.
	for idx := range results {
		answers, err := s.loadAnswers(ctx, results[idx].SessionID)
		if err != nil {
			return nil, err
		}
		results[idx].Answers = answers
	}

	return results, nil
}

func (s *SQLiteStore) Stats(ctx context.Context) (quiz.HistoryStats, error) {
	var stats quiz.HistoryStats

	if err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COALESCE(AVG(CASE WHEN total > 0 THEN CAST(score AS REAL) / total END), 0)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.AverageRatio); err != nil {
		return quiz.HistoryStats{}, err
	}

	err := s.db.QueryRowContext(
		ctx,
		`SELECT score, total
		 FROM sessions
		 -- Ties go to the earliest session.
		 ORDER BY CASE WHEN total > 0 THEN CAST(score AS REAL) / total ELSE 0 END DESC,
		          score DESC,
		          finished_at_unix ASC
		 LIMIT 1`,
	).Scan(&stats.BestScore, &stats.BestTotal)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return quiz.HistoryStats{}, err
	}

	return stats, nil
}

func (s *SQLiteStore) loadAnswers(ctx context.Context, sessionID string) ([]quiz.AnswerRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT position, selected, has_selection, correct, timed_out, time_taken_ms
		 FROM session_answers
		 WHERE session_id = ?
		 ORDER BY position ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make([]quiz.AnswerRecord, 0)
	for rows.Next() {
		var (
			answer       quiz.AnswerRecord
			hasSelection int
			correct      int
			timedOut     int
			timeTakenMs  int64
		)
		if err := rows.Scan(&answer.Index, &answer.Selected, &hasSelection, &correct, &timedOut, &timeTakenMs); err != nil {
			return nil, err
		}
		answer.HasSelection = hasSelection != 0
		answer.Correct = correct != 0
		answer.TimedOut = timedOut != 0
		answer.TimeTaken = time.Duration(timeTakenMs) * time.Millisecond
		answers = append(answers, answer)
	}

	return answers, rows.Err()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

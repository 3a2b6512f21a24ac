package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"timed-quiz/internal/cli"
	"timed-quiz/internal/config"
	"timed-quiz/internal/quiz"
	"timed-quiz/internal/quiz/sqlite"
	"timed-quiz/internal/tui"
)

const persistTimeout = 2 * time.Second

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, in io.Reader, out io.Writer) error {
	var history quiz.ResultRepository
	if cfg.History.Enabled || cfg.ShowHistory {
		store, err := sqlite.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		history = store
	}

	if cfg.ShowHistory {
		return printHistory(ctx, out, history, cfg.History.Limit)
	}

	questions := quiz.Load()
	for idx, question := range questions {
		if !question.HasCorrectOption() {
			log.Warn("question can never be answered correctly",
				zap.Int("index", idx),
				zap.String("question", question.Text),
			)
		}
	}

	log.Info("session starting", zap.String("mode", cfg.Mode), zap.Int("questions", len(questions)))
	result, finished, err := play(ctx, cfg, in, out, questions)
	if err != nil {
		return err
	}
	if !finished {
		log.Info("session abandoned")
		return nil
	}

	log.Info("session finished",
		zap.String("session_id", result.SessionID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
	)

	// The alternate screen is gone once the UI exits, so repeat the tally.
	if cfg.Mode == config.ModeTUI {
		fmt.Fprintf(out, "Quiz Over! Your Score: %d/%d\n", result.Score, result.Total)
	}

	if cfg.History.Enabled {
		saveCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := history.SaveResult(saveCtx, result); err != nil {
			log.Warn("failed to record session", zap.String("session_id", result.SessionID), zap.Error(err))
		}
	}
	return nil
}

func play(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, questions []quiz.Question) (quiz.Result, bool, error) {
	switch cfg.Mode {
	case config.ModeLine:
		result, err := cli.Run(ctx, in, out, cli.Options{Questions: questions})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return quiz.Result{}, false, nil
			}
			return quiz.Result{}, false, err
		}
		return result, true, nil
	case config.ModeTUI:
		result, finished, err := tui.Run(ctx, in, out, tui.Options{
			Questions: questions,
			NoColor:   cfg.NoColor,
		})
		if err != nil && ctx.Err() != nil {
			return quiz.Result{}, false, nil
		}
		return result, finished, err
	}
	return quiz.Result{}, false, fmt.Errorf("%w: %q", config.ErrInvalidMode, cfg.Mode)
}

func printHistory(ctx context.Context, out io.Writer, history quiz.ResultRepository, limit int) error {
	stats, err := history.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load history stats: %w", err)
	}
	if stats.Sessions == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		return nil
	}

	recent, err := history.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("load recent sessions: %w", err)
	}

	fmt.Fprintf(out, "Sessions: %d | Best: %d/%d | Average: %.0f%%\n\n",
		stats.Sessions, stats.BestScore, stats.BestTotal, stats.AverageRatio*100)
	for _, item := range recent {
		timeouts := 0
		for _, answer := range item.Answers {
			if answer.TimedOut {
				timeouts++
			}
		}
		fmt.Fprintf(out, "%s  %d/%d  timeouts=%d  %s\n",
			item.FinishedAt.Local().Format("2006-01-02 15:04"), item.Score, item.Total, timeouts, item.SessionID)
	}
	return nil
}

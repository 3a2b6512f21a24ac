package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timed-quiz/internal/config"
)

func TestNewWritesToLogFile(t *testing.T) {
	for _, env := range []string{"local", "production"} {
		t.Run(env, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "quiz.log")
			log, err := New(&config.Config{Env: env, Log: config.Log{File: path}})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			log.Info("session finished")
			_ = log.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			if !strings.Contains(string(data), "session finished") {
				t.Fatalf("log file missing entry: %q", data)
			}
		})
	}
}

func TestNewWithoutFileIsNop(t *testing.T) {
	log, err := New(&config.Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	log.Info("dropped")
}

package logger

import (
	"strings"

	"go.uber.org/zap"

	"timed-quiz/internal/config"
)

// New builds a logger that writes to cfg.Log.File. The terminal belongs to the
// quiz UI, so logs never go to stdout.
func New(cfg *config.Config) (*zap.Logger, error) {
	output := strings.TrimSpace(cfg.Log.File)
	if output == "" {
		return zap.NewNop(), nil
	}

	var zapCfg zap.Config
	if cfg.Env == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.OutputPaths = []string{output}
	zapCfg.ErrorOutputPaths = []string{output}

	return zapCfg.Build()
}

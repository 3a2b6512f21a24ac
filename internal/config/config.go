package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeTUI  = "tui"
	ModeLine = "line"
)

var ErrInvalidMode = errors.New("invalid ui mode")

// Config holds application configuration loaded from flags, files and environment variables.
type Config struct {
	Env         string  `mapstructure:"env"`          // local, production
	Mode        string  `mapstructure:"mode"`         // tui or line
	NoColor     bool    `mapstructure:"no_color"`     // disable terminal colors
	ShowHistory bool    `mapstructure:"show_history"` // print recent sessions and exit
	History     History `mapstructure:"history"`
	Log         Log     `mapstructure:"log"`
}

// History configures the sqlite record of finished sessions.
type History struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Limit   int    `mapstructure:"limit"` // sessions shown by --history
}

type Log struct {
	File string `mapstructure:"file"`
}

// Load reads configuration from command-line args, QUIZ_* environment variables
// and an optional config file, in decreasing precedence. A .env file only
// seeds environment variables that are not already set.
func Load(args []string, stderr io.Writer) (*Config, error) {
	// Missing .env is fine; the real environment still applies.
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("quiz", pflag.ContinueOnError)
	if stderr != nil {
		flags.SetOutput(stderr)
	}
	flags.String("mode", ModeTUI, "ui mode: tui or line")
	flags.Bool("no-color", false, "disable colors")
	flags.Bool("history", false, "print recent sessions and exit")
	flags.String("history-db", "", "path to the history database")
	flags.Bool("no-history", false, "do not record finished sessions")
	flags.String("log-file", "", "log file path")
	configPath := flags.String("config", "", "path to a config file")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if *configPath != "" {
		v.SetConfigFile(*configPath)
	}

	v.SetDefault("env", "local")
	v.SetDefault("mode", ModeTUI)
	v.SetDefault("no_color", false)
	v.SetDefault("show_history", false)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "quiz-history.db")
	v.SetDefault("history.limit", 10)
	v.SetDefault("log.file", "quiz.log")

	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	bindings := map[string]string{
		"mode":         "mode",
		"no_color":     "no-color",
		"show_history": "history",
		"history.path": "history-db",
		"log.file":     "log-file",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if noHistory, _ := flags.GetBool("no-history"); noHistory {
		cfg.History.Enabled = false
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeTUI, ModeLine:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	if c.History.Limit <= 0 {
		c.History.Limit = 10
	}
	return nil
}

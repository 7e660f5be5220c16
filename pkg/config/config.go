package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Config holds the environment driven settings shared by all commands.
type Config struct {
	FFprobePath string `env:"FRAMEFIND_FFPROBE" envDefault:"ffprobe"`
	FFmpegPath  string `env:"FRAMEFIND_FFMPEG"  envDefault:"ffmpeg"`
	FFplayPath  string `env:"FRAMEFIND_FFPLAY"  envDefault:"ffplay"`
	LogLevel    string `env:"LOG_LEVEL"         envDefault:"warn"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return cfg, nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, errors.Newf("unknown log level %q", name)
	}
}

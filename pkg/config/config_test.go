package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FRAMEFIND_FFPROBE", "FRAMEFIND_FFMPEG", "FRAMEFIND_FFPLAY", "LOG_LEVEL"} {
		// Setenv registers the restore, Unsetenv clears the value for this test.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ffprobe", cfg.FFprobePath)
	require.Equal(t, "ffmpeg", cfg.FFmpegPath)
	require.Equal(t, "ffplay", cfg.FFplayPath)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FRAMEFIND_FFPROBE", "/opt/ffmpeg/bin/ffprobe")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/opt/ffmpeg/bin/ffprobe", cfg.FFprobePath)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"":        slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

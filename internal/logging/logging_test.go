package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	t.Setenv("DEBUG", "")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "hyprevents.log")
	c, err := Setup(Options{Level: "warn", File: path})
	require.NoError(t, err)

	slog.Info("dropped")
	slog.Warn("kept", "key", "value")
	require.NoError(t, c.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "msg=kept key=value")
}

func TestSetLevel_DebugEnv(t *testing.T) {
	t.Setenv("DEBUG", "true")
	SetLevel(slog.LevelError)
	assert.Equal(t, slog.LevelDebug, level.Level())
}

package logging_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tvshell/internal/platform/logging"
)

func TestSetupWritesTextLinesAtLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "logs", "tvshell.log")
	closer, err := logging.Setup(logging.Options{Path: path, Level: "warn"})
	require.NoError(t, err)

	slog.Info("hidden")
	slog.Warn("tile store slow", "elapsed_ms", 12)
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	log := string(raw)
	require.NotContains(t, log, "hidden")
	require.Contains(t, log, `level=WARN msg="tile store slow" elapsed_ms=12`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	require.Equal(t, slog.LevelDebug, logging.ParseLevel(" DEBUG "))
	require.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, logging.ParseLevel("loud"))
}

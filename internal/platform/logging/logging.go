package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where structured logs go. The TUI passes Stderr=false so
// nothing is written over the alternate screen.
type Options struct {
	Path   string
	Level  string
	Stderr bool
}

// Setup installs a slog text handler writing to a size-rotated file and returns
// the closer for that file.
func Setup(opts Options) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	writer := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}
	var out io.Writer = writer
	if opts.Stderr {
		out = io.MultiWriter(os.Stderr, writer)
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	slog.SetDefault(slog.New(handler))
	return writer, nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

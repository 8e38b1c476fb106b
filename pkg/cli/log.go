package cli

import (
	"io"
	"log/slog"
)

// newLogger returns the logger for command output. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

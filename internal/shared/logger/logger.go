package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON logger on stdout tagged with app and env. Unknown levels
// fall back to info.
func New(app, env, level string) *slog.Logger {
	return NewWriter(os.Stdout, app, env, level)
}

func NewWriter(w io.Writer, app, env, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})

	return slog.New(h).With(
		slog.String("app", app),
		slog.String("env", env),
	)
}

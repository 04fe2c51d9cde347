// Package applog centralizes the engine's zerolog setup so every component
// logs through the same sink, level, and field conventions.
package applog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a base logger writing to w (os.Stderr if nil) at the given
// level ("debug", "info", "warn", "error"; unrecognized values fall back
// to "info").
func New(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, used by constructors and
// tests that don't care about log output.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

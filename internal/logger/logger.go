// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a logger for the given environment. Development gets a
// human-readable console writer, everything else gets JSON lines.
func New(environment, level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if environment == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Setup builds the logger and installs it as the zerolog global.
func Setup(environment, level string) zerolog.Logger {
	l := New(environment, level, os.Stderr)
	log.Logger = l
	return l
}

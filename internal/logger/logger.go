// Package logger builds the zerolog logger shared by every entry point.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"querydemo/internal/config"
)

// New returns a logger writing to stderr. JSON is the default format;
// "console" switches to zerolog's human readable writer.
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	loc := cfg.Location()
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

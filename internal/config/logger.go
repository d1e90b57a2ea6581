package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the application logger writing to stdout.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	return NewLoggerWithWriter(cfg, os.Stdout)
}

// NewLoggerWithWriter creates a logger based on the configuration writing to w.
func NewLoggerWithWriter(cfg LoggerConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "storefront").
		Logger()
}

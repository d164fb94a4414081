package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LoggerConfig defines the logger configuration
type LoggerConfig struct {
	// Log format (console/json)
	Format string
	// Minimum level (trace, debug, info, warn, error)
	Level string
	// Output stream (os.Stdout, file, etc.)
	Output io.Writer
	// Enable/disable colors in console format
	EnableColors bool
}

// InitLogger initializes and returns the application logger
func InitLogger(config ...LoggerConfig) zerolog.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			NoColor:    !cfg.EnableColors,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "classroom-dashboard").
		Logger()
}

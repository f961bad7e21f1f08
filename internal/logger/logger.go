package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. The level is read from LOG_LEVEL and falls
// back to debug in development and info everywhere else.
func New() zerolog.Logger {
	// For Google Cloud Logging, the level field name should be "severity".
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	env := os.Getenv("ENV")
	if env == "" || env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(levelFor(env, os.Getenv("LOG_LEVEL")))
}

func levelFor(env, raw string) zerolog.Level {
	if raw != "" {
		if lvl, err := zerolog.ParseLevel(raw); err == nil {
			return lvl
		}
	}
	if env == "" || env == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

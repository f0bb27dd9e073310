package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shak0x90/steadygainsinvestments-sub000/config"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the global logger from the application config.
// Development gets a human-readable console writer, everything else JSON.
func Init(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if strings.EqualFold(cfg.App.Environment, "development") {
		level = zerolog.DebugLevel
	}

	if strings.EqualFold(cfg.App.Environment, "development") {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		log = zerolog.New(out).Level(level).With().Timestamp().Str("app", cfg.App.Name).Logger()
		return
	}

	log = zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("app", cfg.App.Name).Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// Package logging configures the process-wide zerolog logger. The
// computation engine never logs; logging belongs to the CLI, server
// and UI shells around it.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel parses a log level string, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup installs the global logger. With pretty set, output goes
// through a console writer for human consumption; otherwise raw JSON
// lines are emitted.
func Setup(level zerolog.Level, pretty bool) {
	var w io.Writer = os.Stderr
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetupWriter installs the global logger onto an arbitrary writer.
// The TUI uses this to keep log lines off the alternate screen.
func SetupWriter(level zerolog.Level, w io.Writer) {
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

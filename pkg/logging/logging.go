package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Verbosity 0 keeps warnings and errors,
// 1 adds info, 2 adds debug plus caller information, 3 and above enables
// trace.
func Setup(verbosity int, out io.Writer) {
	if out == nil {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	level := zerolog.WarnLevel
	switch {
	case verbosity >= 3:
		level = zerolog.TraceLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp()
	if verbosity >= 2 {
		logger = logger.Caller()
	}
	log.Logger = logger.Logger()
}

// GetLogger returns a contextualized logger for the named component.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

var Nop zerolog.Logger = zerolog.Nop()

// New builds the process logger. format is "json" or "terminal".
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return Nop, xerrors.Errorf("invalid log level: %w", err)
	}

	switch format {
	case "json":
	case "terminal":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return Nop, xerrors.Errorf("invalid log format: %q", format)
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(lvl), nil
}

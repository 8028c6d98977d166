package soc

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package logger. Library code logs through sub-loggers derived
// from it; applications can replace it or lower the level to see clock and
// register sequencing detail.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

// Package logger configures zerolog output for the CLI process.
// Components get child loggers tagged with their name so log lines can
// be traced back to the subsystem that emitted them.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var root = zerolog.New(console(os.Stderr)).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetVerbose lowers the global threshold to debug.
func SetVerbose(verbose bool) {
	if verbose {
		root = root.Level(zerolog.DebugLevel)
	} else {
		root = root.Level(zerolog.InfoLevel)
	}
}

// New returns a child logger tagged with the component name.
func New(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}

func console(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
}

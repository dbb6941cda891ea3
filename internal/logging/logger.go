// Package logging provides structured logging for the Asista core.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	global zerolog.Logger
	once   sync.Once
)

// Init initializes the global logger. Level is one of debug, info, warn,
// error; anything else falls back to info. Safe to call more than once;
// only the first call takes effect.
func Init(out io.Writer, level string) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		global = zerolog.New(out).
			Level(parseLevel(level)).
			With().
			Timestamp().
			Logger()
	})
}

// Get returns the global logger instance.
func Get() zerolog.Logger {
	Init(os.Stdout, "info")
	return global
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Convenience helpers using the global logger.

// Debug starts a debug-level event.
func Debug() *zerolog.Event { l := Get(); return l.Debug() }

// Info starts an info-level event.
func Info() *zerolog.Event { l := Get(); return l.Info() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { l := Get(); return l.Warn() }

// Error starts an error-level event.
func Error() *zerolog.Event { l := Get(); return l.Error() }

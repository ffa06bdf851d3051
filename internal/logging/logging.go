// Package logging provides the diagnostic channel for debugtrace: config
// warnings, sink fallbacks and CLI progress. Trace output itself never goes
// through here.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, zerolog.WarnLevel, false)
)

// Setup configures the diagnostic logger based on verbosity level.
// 0 logs warnings, 1 info, 2 debug and anything higher trace.
func Setup(verbosity int) {
	SetupWriter(os.Stderr, verbosity)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, verbosity int) {
	var level zerolog.Level
	switch verbosity {
	case 0:
		level = zerolog.WarnLevel
	case 1:
		level = zerolog.InfoLevel
	case 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}

	l := newLogger(w, level, verbosity >= 2)

	mu.Lock()
	logger = l
	mu.Unlock()

	l.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// Get returns a contextualized logger with the given component name.
func Get(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With().Str("component", component).Logger()
}

// ConsoleWriter returns a zerolog console writer on w. Colors are only used
// when w is a terminal.
func ConsoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !IsTerminal(w),
	}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newLogger(w io.Writer, level zerolog.Level, caller bool) zerolog.Logger {
	ctx := zerolog.New(ConsoleWriter(w)).Level(level).With().Timestamp()
	if caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

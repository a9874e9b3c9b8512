package logger

import (
	"sync"

	"go.uber.org/zap/zapcore"
)

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options select the level, encoding and destination of a logger.
// Zero values mean info, console and stdout.
type Options struct {
	Level  string
	Format string
	Output zapcore.WriteSyncer
}

var (
	process     *Logger
	processOnce sync.Once
)

// Get returns the process-wide logger, building it from o on first use.
// Later calls ignore o; use SetLevel to change the level at runtime.
func Get(o Options) *Logger {
	processOnce.Do(func() {
		process = New(o)
	})
	return process
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return newNopLogger()
}

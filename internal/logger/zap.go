package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a sugared zap logger whose level can be changed after construction.
type Logger struct {
	*zap.SugaredLogger
	level zap.AtomicLevel
}

// New builds a standalone logger from o.
func New(o Options) *Logger {
	level := zap.NewAtomicLevelAt(parseLevel(o.Level))
	out := o.Output
	if out == nil {
		out = zapcore.Lock(os.Stdout)
	}
	core := zapcore.NewCore(newEncoder(o.Format), out, level)
	return &Logger{
		SugaredLogger: zap.New(core).Sugar(),
		level:         level,
	}
}

// parseLevel maps a config string to a zap level; unknown text means info.
func parseLevel(s string) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = WarnLevel
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil || s == "" {
		return zapcore.InfoLevel
	}
	return lvl
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if strings.EqualFold(format, FormatJSON) {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// SetLevel changes the level of l and of every logger derived from it.
func (l *Logger) SetLevel(level string) {
	l.level.SetLevel(parseLevel(level))
}

// Level returns the current level as text.
func (l *Logger) Level() string {
	return l.level.Level().String()
}

func newNopLogger() *Logger {
	return &Logger{
		SugaredLogger: zap.NewNop().Sugar(),
		level:         zap.NewAtomicLevelAt(zapcore.ErrorLevel),
	}
}

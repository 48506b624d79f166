// Package logger wraps zerolog with the small leveled API the rest of finboard uses.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Field is a structured key/value attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is a leveled structured logger.
type Logger struct {
	zl zerolog.Logger
}

// New returns a logger writing JSON lines to w. Production logs at info,
// anything else at debug.
func New(env string, w io.Writer) *Logger {
	level := zerolog.DebugLevel
	if env == "production" {
		level = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Console returns a human-readable logger on stderr.
func Console(env string) *Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return New(env, w)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func convert(fields []Field) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.zl.Debug().Fields(convert(fields)).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.zl.Info().Fields(convert(fields)).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.zl.Warn().Fields(convert(fields)).Msg(msg)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.zl.Error().Fields(convert(fields)).Msg(msg)
}

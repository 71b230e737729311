package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggerOptions controls how NewLoggerWithOptions builds a Logger.
type LoggerOptions struct {
	Env     string    // "development" selects the human-readable console writer
	Level   string    // debug | info | warn | error
	Out     io.Writer // defaults to stderr so command output on stdout stays clean
	Service string
}

// Logger provides structured, leveled logging throughout the application.
// It keeps a printf-style surface on top of zerolog.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a console Logger writing to stderr at info level.
func NewLogger() *Logger {
	return NewLoggerWithOptions(LoggerOptions{Env: "development"})
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// NewLoggerWithOptions builds a Logger: console output in development,
// JSON lines with timestamps otherwise.
func NewLoggerWithOptions(opts LoggerOptions) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	service := opts.Service
	if service == "" {
		service = "freelancer-analyzer"
	}

	var zl zerolog.Logger
	if opts.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
		}).With().Timestamp().Logger()
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
		zl = zerolog.New(out).With().
			Timestamp().
			Str("service", service).
			Logger()
	}

	return &Logger{zl: zl.Level(parseLevel(opts.Level))}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With returns a child Logger that attaches key=value to every entry.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

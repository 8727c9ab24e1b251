package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger wraps zerolog.Logger to implement the Logger interface.
type ZeroLogger struct {
	zlog *zerolog.Logger
}

// Ensure ZeroLogger implements the interface
var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger with the specified log level and formatting.
// If pretty is true, output is formatted for human readability.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithOutput(level, pretty, os.Stdout)
}

// NewWithOutput creates a ZeroLogger writing to the given output, which
// tests use to capture log lines.
func NewWithOutput(level string, pretty bool, out io.Writer) *ZeroLogger {
	var l zerolog.Logger
	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(out).With().Timestamp().Logger()
	}

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l}
}

// Debug creates a debug-level log event.
func (l *ZeroLogger) Debug() LogEvent { return &event{e: l.zlog.Debug()} }

// Info creates an info-level log event.
func (l *ZeroLogger) Info() LogEvent { return &event{e: l.zlog.Info()} }

// Warn creates a warn-level log event.
func (l *ZeroLogger) Warn() LogEvent { return &event{e: l.zlog.Warn()} }

// Error creates an error-level log event.
func (l *ZeroLogger) Error() LogEvent { return &event{e: l.zlog.Error()} }

// Fatal creates a fatal-level log event that exits after logging.
func (l *ZeroLogger) Fatal() LogEvent { return &event{e: l.zlog.Fatal()} }

// WithFields returns a logger with additional fields attached to all
// subsequent log entries.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log}
}

// event adapts zerolog events to the LogEvent interface.
type event struct {
	e *zerolog.Event
}

func (ev *event) Msg(msg string)                  { ev.e.Msg(msg) }
func (ev *event) Msgf(format string, args ...any) { ev.e.Msgf(format, args...) }

func (ev *event) Err(err error) LogEvent { return &event{e: ev.e.Err(err)} }

func (ev *event) Str(key, value string) LogEvent { return &event{e: ev.e.Str(key, value)} }

func (ev *event) Int(key string, value int) LogEvent { return &event{e: ev.e.Int(key, value)} }

func (ev *event) Interface(key string, i any) LogEvent { return &event{e: ev.e.Interface(key, i)} }

// Package logger defines the logging interface used throughout the
// generator. It provides a contract for structured logging implementations.
package logger

// Logger defines the contract for structured logging. It provides methods
// for creating log events at different severity levels and for contextual
// logging.
type Logger interface {
	Debug() LogEvent
	Info() LogEvent
	Warn() LogEvent
	Error() LogEvent
	Fatal() LogEvent
	WithFields(fields map[string]any) Logger
}

// LogEvent represents a structured log event that can be built with fields
// and sent.
type LogEvent interface {
	Msg(msg string)
	Msgf(format string, args ...any)
	Err(err error) LogEvent
	Str(key, value string) LogEvent
	Int(key string, value int) LogEvent
	Interface(key string, i any) LogEvent
}

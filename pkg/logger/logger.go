// Package logger defines the logging contract shared by every cryptopallab component.
package logger

import "strings"

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for request/response dumps.
	DebugLevel              // DebugLevel is used for debugging information.
	InfoLevel               // InfoLevel is used for lifecycle events.
	WarnLevel               // WarnLevel is used for degraded upstream responses.
	ErrorLevel              // ErrorLevel is used for failed fetches and sends.
	FatalLevel              // FatalLevel logs and exits the process.
	PanicLevel              // PanicLevel logs and panics.
	NoLevel                 // NoLevel is used when the level is unknown.
)

// ParseLevel maps a textual level ("debug", "info", ...) to a Level.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info", "":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	case "panic":
		return PanicLevel
	case "disabled", "off":
		return Disabled
	}
	return NoLevel
}

type Logger interface {
	// Contextual loggers
	WithField(key string, value any) Logger  // WithField returns a logger with the given key-value pair.
	WithFields(fields map[string]any) Logger // WithFields returns a logger with the given fields.
	WithError(err error) Logger              // WithError returns a logger carrying err.

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any) // Fatal logs the message and then exits the program.

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	SetLevel(level Level)
	GetLevel() Level
}

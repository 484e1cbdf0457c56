// Package logger provides levelled loggers for the server and CLI.
//
// Messages are format strings that double as translation keys: the console
// logger looks them up through go-l10n before formatting, so a message must be
// passed as a constant and its values as arguments.
package logger

import "strings"

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for per-operation details such as cache hits and
	// computed geometry.
	LevelDebug Level = iota
	// LevelInfo is for request-level progress.
	LevelInfo
	// LevelWarn is for recoverable problems.
	LevelWarn
	// LevelError is for failed operations.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. Unknown names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet", "off":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging operations with multi-language support.
type Logger interface {
	// Debug logs a debug message with optional format arguments.
	Debug(msg string, args ...interface{})

	// Info logs an informational message with optional format arguments.
	Info(msg string, args ...interface{})

	// Warn logs a warning message with optional format arguments.
	Warn(msg string, args ...interface{})

	// Error logs an error message with optional format arguments.
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with the
	// component name.
	WithComponent(component string) Logger
}

// New returns a console logger writing to stderr, or a no-op logger when
// level is LevelQuiet.
func New(level Level) Logger {
	if level == LevelQuiet {
		return NewNoop()
	}
	return NewConsole(level, nil)
}

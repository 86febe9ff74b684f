// Package logging defines the minimal structured-logging interface used
// across the archive client. The repositories depend on it to record
// swallowed remote failures without surfacing them to callers.
package logging

// Logger is a structured logger. The variadic args are interpreted as
// key-value pairs:
//
//	log.Info("dossier saved", "id", id)
type Logger interface {
	// Debug logs fine-grained diagnostic messages.
	Debug(msg string, args ...any)

	// Info logs an informational message.
	Info(msg string, args ...any)

	// Warn logs a warning for unusual but non-fatal conditions, e.g. a
	// remote write that failed and was skipped.
	Warn(msg string, args ...any)

	// Error logs an error message for failures.
	Error(msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs.
	With(args ...any) Logger
}

// Discard returns a Logger that drops everything. Useful as a default in
// constructors and in tests.
func Discard() Logger {
	return discard{}
}

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
func (d discard) With(...any) Logger { return d }

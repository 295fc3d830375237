// Package logging decouples the expense tracker from a concrete logging
// framework. Components depend on the Logger interface and receive an
// implementation through their constructors.
package logging

// Logger is the structured logger used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal logs and terminates the process.
	Fatal(msg string, fields ...Field)

	// WithError returns a derived logger carrying err.
	WithError(err error) Logger

	// WithField returns a derived logger carrying a single field.
	WithField(key string, value interface{}) Logger

	// WithFields returns a derived logger carrying all given fields.
	WithFields(fields ...Field) Logger
}

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field inline.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

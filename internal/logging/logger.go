// Package logging provides a logging abstraction layer that decouples the
// application from the underlying logging framework.
package logging

import "github.com/sirupsen/logrus"

// Logger defines the interface for structured logging throughout the
// application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// SetAllLogLevels sets the global logrus level so every package-level logger
// created before or after this call honours the configured verbosity.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
}

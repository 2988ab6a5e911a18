// Package logging is the leveled, structured logger of geocam. Entries are zap entries handed
// to appenders: a console writer, a rotated log file or, in tests, the test log and an observer.
package logging

import (
	"os"
	"sync"
)

// Logger writes leveled messages followed by alternating keys and values.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	// With returns a logger that adds keysAndValues to every entry. It shares the level of its
	// parent.
	With(keysAndValues ...interface{}) Logger
	SetLevel(level Level)
	AddAppender(appender Appender)
	Sync() error
}

var (
	globalOnce   sync.Once
	globalLogger Logger
)

// Global returns the logger used by operations that were given none. It writes INFO and above
// to stderr.
func Global() Logger {
	globalOnce.Do(func() {
		globalLogger = NewLogger("geocam", NewWriterAppender(os.Stderr))
		globalLogger.SetLevel(INFO)
	})
	return globalLogger
}

// NewLogger returns a DEBUG level logger that writes to appenders.
func NewLogger(name string, appenders ...Appender) Logger {
	return &logger{name: name, level: NewAtomicLevelAt(DEBUG), appenders: appenders}
}

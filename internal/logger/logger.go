package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects the level and encoding of the process logger.
type Config struct {
	Level  string
	Format string
}

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided config.
// The first call initializes the logger; subsequent calls ignore cfg
// and return the already initialized instance.
func Get(cfg Config) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(cfg)
	})
	return globalLogger
}

package render

import "fmt"

// Logger receives progress and end-of-run diagnostics from the engine.
type Logger interface {
	Printf(format string, args ...interface{})
}

// defaultLogger implements Logger by writing to stdout.
type defaultLogger struct{}

func (defaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a logger that writes to stdout.
func NewDefaultLogger() Logger {
	return defaultLogger{}
}

// Package logger provides the prefixed, color-coded console logger shared
// by every component of the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const colorReset = "\033[0m"

// Logger writes tagged log lines like "[MAZE] [INFO] ..." with the prefix
// colored per component.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a logger with the given component prefix and ANSI color,
// writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix must not be empty")
	}
	if w == nil {
		return nil, errors.New("logger writer must not be nil")
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.out.Printf("%s[%s] [INFO]%s %s", l.color, l.prefix, colorReset, msg)
}

// Warning logs a non-fatal diagnostic.
func (l *Logger) Warning(msg string) {
	l.out.Printf("%s[%s] [WARNING]%s %s", l.color, l.prefix, colorReset, msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.out.Printf("%s[%s] [ERROR]%s %s", l.color, l.prefix, colorReset, msg)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

package i

// Logger defines the leveled logging methods components depend on.
type Logger interface {
	// Info logs an informational message.
	Info(msg string)

	// Warning logs a non-fatal diagnostic.
	Warning(msg string)

	// Error logs an error message.
	Error(msg string)
}

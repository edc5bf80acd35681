package logger

import "io"

// Component returns a logger tagged with component=name. Before Init it
// returns a logger that discards everything, so packages can grab one at
// construction time without caring about startup order.
func Component(name string) *Logger {
	if globalLogger != nil {
		return globalLogger.WithFields(F("component", name))
	}
	return Discard().WithFields(F("component", name))
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	return &Logger{sink: &sink{config: Config{Level: ERROR + 1, Output: io.Discard}}}
}

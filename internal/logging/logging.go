package logging

import "log"

// Minimal logger used across the services. Debug output only appears
// with the -v flag.

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type StdLogger struct {
	Verbose bool
}

func (l StdLogger) Debug(msg string, args ...any) {
	if l.Verbose {
		log.Printf("DEBUG: "+msg, args...)
	}
}

func (l StdLogger) Info(msg string, args ...any)  { log.Printf("INFO: "+msg, args...) }
func (l StdLogger) Error(msg string, args ...any) { log.Printf("ERROR: "+msg, args...) }

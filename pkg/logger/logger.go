package logger

import (
	"io"
	"log"
	"os"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l     *log.Logger
	debug bool
}

// New logs to stderr. Debug lines are dropped unless LOG_LEVEL=debug.
func New() Logger {
	return &stdLogger{
		l:     log.New(os.Stderr, "", log.LstdFlags),
		debug: os.Getenv("LOG_LEVEL") == "debug",
	}
}

// NewWriter is New with an explicit destination, mostly for tests.
func NewWriter(w io.Writer, debug bool) Logger {
	return &stdLogger{l: log.New(w, "", 0), debug: debug}
}

// Nop discards everything.
func Nop() Logger { return NewWriter(io.Discard, false) }

func (s *stdLogger) Debugf(format string, v ...any) {
	if s.debug {
		s.l.Printf("[DEBUG] "+format, v...)
	}
}
func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Warnf(format string, v ...any)  { s.l.Printf("[WARN] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }

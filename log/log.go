// Package log provides level-scoped loggers backed by logrus.
package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the interface for logging.
type Logger interface {
	// Printf prints a formated message to the log.
	Printf(format string, v ...interface{})

	// Print prints a message to the log.
	Print(v ...interface{})

	// Level returns the logging level.
	Level() Level
}

// Level represents the log level.
type Level int

const (
	// DebugLevel represents the debug-level.
	DebugLevel Level = iota
	// InfoLevel represents the info-level.
	InfoLevel
	// ErrorLevel represents the error-level.
	ErrorLevel
	// DisabledLevel represents that the logger is disabled.
	DisabledLevel
)

var (
	// Debug is a debug-level logger.
	Debug Logger = &logger{DebugLevel}
	// Info is an info-level logger.
	Info Logger = &logger{InfoLevel}
	// Error is an error-level logger.
	Error Logger = &logger{ErrorLevel}
)

var (
	mu      sync.RWMutex
	current = InfoLevel
	backend = newBackend(os.Stderr)
)

func newBackend(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})
	l.SetLevel(logrus.DebugLevel)
	return l
}

type logger struct {
	level Level
}

func (l *logger) entry() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if l.level < current {
		return nil
	}
	return backend
}

func (l *logger) Printf(format string, v ...interface{}) {
	b := l.entry()
	if b == nil {
		return
	}
	switch l.level {
	case DebugLevel:
		b.Debugf(format, v...)
	case InfoLevel:
		b.Infof(format, v...)
	default:
		b.Errorf(format, v...)
	}
}

func (l *logger) Print(v ...interface{}) {
	b := l.entry()
	if b == nil {
		return
	}
	switch l.level {
	case DebugLevel:
		b.Debug(v...)
	case InfoLevel:
		b.Info(v...)
	default:
		b.Error(v...)
	}
}

func (l *logger) Level() Level {
	return l.level
}

// Enabled returns true if messages of the given level are printed.
func Enabled(level Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return level >= current && current != DisabledLevel
}

// SetLevel sets the current logging level.
func SetLevel(level Level) {
	mu.Lock()
	current = level
	mu.Unlock()
}

// SetLevelByName sets the current logging level with a name.
// It returns false if the name is unknown.
func SetLevelByName(level string) bool {
	switch strings.ToLower(level) {
	case "debug":
		SetLevel(DebugLevel)
	case "info":
		SetLevel(InfoLevel)
	case "error":
		SetLevel(ErrorLevel)
	case "disabled":
		SetLevel(DisabledLevel)
	default:
		return false
	}
	return true
}

// SetOutput redirects the log to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	backend.SetOutput(w)
	mu.Unlock()
}

package givenergy

import (
	"fmt"
	"os"
)

// LeveledLogger is the logging interface used throughout the package. A nil
// LeveledLogger passed to the framer, plant or session falls back to a
// default instance that writes to stdout/stderr. (A typed nil *Logger is a
// non-nil interface value and does not fall back.)
type LeveledLogger interface {
	Debug(msg string)
	Debugf(format string, msg ...interface{})
	Info(msg string)
	Infof(format string, msg ...interface{})
	Warning(msg string)
	Warningf(format string, msg ...interface{})
	Error(msg string)
	Errorf(format string, msg ...interface{})
}

var _ LeveledLogger = (*Logger)(nil)

// Logger is the default LeveledLogger implementation: a prefixed writer to
// stdout (debug/info/warning) or stderr (error).
type Logger struct {
	prefix string
}

// NewLogger returns a Logger that prefixes every line with prefix.
func NewLogger(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

func (l *Logger) Debug(msg string) {
	l.write(false, fmt.Sprintf("%s [debug]: %s\n", l.prefix, msg))
}

func (l *Logger) Debugf(format string, msg ...interface{}) {
	l.write(false, fmt.Sprintf("%s [debug]: %s\n", l.prefix, fmt.Sprintf(format, msg...)))
}

func (l *Logger) Info(msg string) {
	l.write(false, fmt.Sprintf("%s [info]: %s\n", l.prefix, msg))
}

func (l *Logger) Infof(format string, msg ...interface{}) {
	l.write(false, fmt.Sprintf("%s [info]: %s\n", l.prefix, fmt.Sprintf(format, msg...)))
}

func (l *Logger) Warning(msg string) {
	l.write(false, fmt.Sprintf("%s [warn]: %s\n", l.prefix, msg))
}

func (l *Logger) Warningf(format string, msg ...interface{}) {
	l.write(false, fmt.Sprintf("%s [warn]: %s\n", l.prefix, fmt.Sprintf(format, msg...)))
}

func (l *Logger) Error(msg string) {
	l.write(true, fmt.Sprintf("%s [error]: %s\n", l.prefix, msg))
}

func (l *Logger) Errorf(format string, msg ...interface{}) {
	l.write(true, fmt.Sprintf("%s [error]: %s\n", l.prefix, fmt.Sprintf(format, msg...)))
}

func (l *Logger) write(stderr bool, msg string) {
	if stderr {
		os.Stderr.WriteString(msg)
	} else {
		os.Stdout.WriteString(msg)
	}
}

func defaultLogger(prefix string) LeveledLogger {
	return NewLogger(prefix)
}

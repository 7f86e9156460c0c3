package logger

import (
	"fmt"
	"io"
	"log"
)

type logger struct {
	errorLogger *log.Logger
	warnLogger  *log.Logger
	infoLogger  *log.Logger
	debugLogger *log.Logger
	traceLogger *log.Logger
}

func (l *logger) Error(v ...any) {
	if l.errorLogger != nil {
		_ = l.errorLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *logger) Warn(v ...any) {
	if l.warnLogger != nil {
		_ = l.warnLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *logger) Info(v ...any) {
	if l.infoLogger != nil {
		_ = l.infoLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *logger) Debug(v ...any) {
	if l.debugLogger != nil {
		_ = l.debugLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *logger) Trace(v ...any) {
	if l.traceLogger != nil {
		_ = l.traceLogger.Output(2, fmt.Sprintln(v...))
	}
}

func (l *logger) Errorf(format string, v ...any) {
	if l.errorLogger != nil {
		_ = l.errorLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *logger) Warnf(format string, v ...any) {
	if l.warnLogger != nil {
		_ = l.warnLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *logger) Infof(format string, v ...any) {
	if l.infoLogger != nil {
		_ = l.infoLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *logger) Debugf(format string, v ...any) {
	if l.debugLogger != nil {
		_ = l.debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

func (l *logger) Tracef(format string, v ...any) {
	if l.traceLogger != nil {
		_ = l.traceLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// NewLogger returns a logger that writes every message at or below level to
// output. Loggers for disabled levels stay nil and their methods no-op.
func NewLogger(level Level, output io.Writer) *logger {
	l := &logger{}
	flag := log.LstdFlags | log.Lshortfile

	if level >= LevelError {
		l.errorLogger = log.New(output, "ERROR:", flag)
	}
	if level >= LevelWarn {
		l.warnLogger = log.New(output, "WARN :", flag)
	}
	if level >= LevelInfo {
		l.infoLogger = log.New(output, "INFO :", flag)
	}
	if level >= LevelDebug {
		l.debugLogger = log.New(output, "DEBUG:", flag)
	}
	if level >= LevelTrace {
		l.traceLogger = log.New(output, "TRACE:", flag)
	}

	return l
}

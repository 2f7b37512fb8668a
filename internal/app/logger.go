package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// Logger is shared by every component. component names the subsystem.
type Logger interface {
	Debugf(component string, format string, args ...interface{})
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Debugf(component, format string, args ...interface{}) {}
func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Warnf(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes plain lines, one per message. Debug lines are only
// written when Debug is set.
type FileLogger struct {
	w     io.Writer
	Debug bool
}

func NewFileLogger(w io.Writer, debug bool) FileLogger { return FileLogger{w: w, Debug: debug} }

func (l FileLogger) Debugf(component string, format string, args ...interface{}) {
	if l.Debug {
		writeLog(l.w, "DEBUG", component, format, args...)
	}
}
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Warnf(component string, format string, args ...interface{}) {
	writeLog(l.w, "WARN", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}

// SlogLogger forwards to log/slog with a colored console handler.
type SlogLogger struct{ l *slog.Logger }

func NewSlogLogger(w io.Writer, debug bool) SlogLogger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.TimeOnly})
	return SlogLogger{l: slog.New(h)}
}

func (s SlogLogger) Debugf(component string, format string, args ...interface{}) {
	s.l.Debug(fmt.Sprintf(format, args...), "component", component)
}
func (s SlogLogger) Infof(component string, format string, args ...interface{}) {
	s.l.Info(fmt.Sprintf(format, args...), "component", component)
}
func (s SlogLogger) Warnf(component string, format string, args ...interface{}) {
	s.l.Warn(fmt.Sprintf(format, args...), "component", component)
}
func (s SlogLogger) Errorf(component string, format string, args ...interface{}) {
	s.l.Error(fmt.Sprintf(format, args...), "component", component)
}

// MultiLogger sends every message to all of its loggers.
type MultiLogger []Logger

func (m MultiLogger) Debugf(component string, format string, args ...interface{}) {
	for _, l := range m {
		l.Debugf(component, format, args...)
	}
}
func (m MultiLogger) Infof(component string, format string, args ...interface{}) {
	for _, l := range m {
		l.Infof(component, format, args...)
	}
}
func (m MultiLogger) Warnf(component string, format string, args ...interface{}) {
	for _, l := range m {
		l.Warnf(component, format, args...)
	}
}
func (m MultiLogger) Errorf(component string, format string, args ...interface{}) {
	for _, l := range m {
		l.Errorf(component, format, args...)
	}
}

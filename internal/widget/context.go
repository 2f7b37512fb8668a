package widget

import (
	"time"

	"github.com/rook-computer/girder/internal/render"
)

// Logger is the application logger as seen by widgets.
type Logger interface {
	Debugf(component, format string, args ...interface{})
	Infof(component, format string, args ...interface{})
	Warnf(component, format string, args ...interface{})
	Errorf(component, format string, args ...interface{})
}

// RenderContext carries the driver state for one widget operation: the
// current time, the global brightness and where to draw.
type RenderContext struct {
	Now        time.Time
	Brightness int
	Sink       render.Sink
	Logger     Logger
}

func (c *RenderContext) log() Logger {
	if c == nil || c.Logger == nil {
		return nopLogger{}
	}
	return c.Logger
}

type nopLogger struct{}

func (nopLogger) Debugf(string, string, ...interface{}) {}
func (nopLogger) Infof(string, string, ...interface{})  {}
func (nopLogger) Warnf(string, string, ...interface{})  {}
func (nopLogger) Errorf(string, string, ...interface{}) {}

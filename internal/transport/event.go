// Package transport delivers inbound (topic, payload) events to the
// driver loop. Sources only ever push into a channel; they never touch
// widgets.
package transport

import (
	"context"
	"time"
)

// Event is one inbound message.
type Event struct {
	Topic    string
	Payload  []byte
	Received time.Time
}

// Source produces events until ctx is cancelled.
type Source interface {
	Run(ctx context.Context, events chan<- Event) error
}

// Logger is the application logger as seen by transports.
type Logger interface {
	Debugf(component, format string, args ...interface{})
	Infof(component, format string, args ...interface{})
	Warnf(component, format string, args ...interface{})
	Errorf(component, format string, args ...interface{})
}

// Send blocks until ev is queued or ctx is done.
func Send(ctx context.Context, events chan<- Event, ev Event) error {
	if ev.Received.IsZero() {
		ev.Received = time.Now()
	}
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

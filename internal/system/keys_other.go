//go:build !linux

package system

import "context"

const (
	KeyF4 uint16 = 62
	KeyF5 uint16 = 63
	KeyF6 uint16 = 64
	KeyF7 uint16 = 65
)

// WatchKeys is only implemented on Linux.
func WatchKeys(ctx context.Context, logger logger, bindings map[uint16]func()) {
	if logger != nil && len(bindings) > 0 {
		logger.Infof("input", "key bindings unsupported on this platform")
	}
}

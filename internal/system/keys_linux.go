//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const evKey = 0x01

// Linux input-event-codes.h
const (
	KeyF4 uint16 = 62
	KeyF5 uint16 = 63
	KeyF6 uint16 = 64
	KeyF7 uint16 = 65
)

// WatchKeys reads every evdev device under /dev/input/event* and calls the
// binding for each key press. Watching stops when ctx is done.
//
// It is best-effort: if no input devices are available, it logs and returns.
func WatchKeys(ctx context.Context, logger logger, bindings map[uint16]func()) {
	if len(bindings) == 0 {
		return
	}

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices found for key bindings")
		}
		return
	}

	presses := make(chan uint16, 8)
	for _, path := range paths {
		go readKeys(ctx, path, tvSize, eventSize, presses)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case code := <-presses:
				if fn, ok := bindings[code]; ok {
					if logger != nil {
						logger.Infof("input", "key %d pressed", code)
					}
					fn()
				}
			}
		}
	}()
}

func readKeys(ctx context.Context, path string, tvSize, eventSize int, presses chan<- uint16) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if typ != evKey || value != 1 {
				continue
			}
			select {
			case presses <- code:
			case <-ctx.Done():
				return
			}
		}
	}
}

package transport

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sys/unix"
)

// LinearBackOff waits Initial, then grows by Step per attempt up to Max.
type LinearBackOff struct {
	Initial time.Duration
	Step    time.Duration
	Max     time.Duration

	current time.Duration
}

var _ backoff.BackOff = (*LinearBackOff)(nil)

func (b *LinearBackOff) NextBackOff() time.Duration {
	if b.current == 0 {
		b.current = b.Initial
	} else if b.current < b.Max {
		b.current += b.Step
	}
	if b.Max > 0 && b.current > b.Max {
		b.current = b.Max
	}
	return b.current
}

func (b *LinearBackOff) Reset() { b.current = 0 }

// fatalErrnos end the process instead of retrying.
var fatalErrnos = []unix.Errno{unix.EMFILE, unix.ENFILE, unix.ENOMEM, unix.EACCES}

// classify marks errors caused by a failing system call as permanent.
func classify(err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) {
		for _, fatal := range fatalErrnos {
			if errno == fatal {
				return backoff.Permanent(err)
			}
		}
	}
	return err
}

// IsFatal reports whether err came from a system call the process cannot
// recover from.
func IsFatal(err error) bool {
	var permanent *backoff.PermanentError
	if errors.As(classify(err), &permanent) {
		return true
	}
	return false
}

//go:build windows

package ttyctl

import (
	"os"
	"time"

	"golang.org/x/sys/windows"
)

const (
	pollDelayStart = 5 * time.Millisecond
	pollDelayStep  = 10 * time.Millisecond
	pollDelayMax   = 100 * time.Millisecond
)

// poll is the Windows readiness wait: PeekNamedPipe on each handle,
// returning on the first ready pipe, otherwise sleeping a backoff delay
// that starts at 5ms and grows by 10ms up to a 100ms cap. Elapsed sleep
// time is deducted from timeout; a negative timeout waits forever.
func poll(files []*os.File, timeout time.Duration) (int, []bool, error) {
	isSet := make([]bool, len(files))
	if len(files) == 0 {
		return 0, isSet, nil
	}

	infinite := timeout < 0
	remaining := timeout
	delay := pollDelayStart

	for {
		for i, f := range files {
			h := windows.Handle(f.Fd())
			var avail uint32
			if err := windows.PeekNamedPipe(h, nil, 0, nil, &avail, nil); err != nil {
				return -1, isSet, newError(ErrIOFailed, "poll", err)
			}
			if avail > 0 {
				isSet[i] = true
				return 1, isSet, nil
			}
		}

		if !infinite && remaining <= 0 {
			return 0, isSet, nil
		}

		time.Sleep(delay)
		if !infinite {
			remaining -= delay
		}
		if delay < pollDelayMax {
			delay += pollDelayStep
			if delay > pollDelayMax {
				delay = pollDelayMax
			}
		}
	}
}

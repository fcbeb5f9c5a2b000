package ttyctl

import (
	"os"
	"time"
)

// Poll waits for at least one of files to become readable. A negative
// timeout waits indefinitely. It returns the number of descriptors that
// became ready (0 on timeout), and a per-file readiness slice the same
// length as files.
//
// Poll is defined per-platform: poll_unix.go uses select(2) (plus
// exceptional-condition handling, on the POSIX targets where Go actually
// builds); poll_windows.go polls each pipe with PeekNamedPipe and backs
// off between rounds, since Windows has no select-equivalent over
// anonymous pipe handles.
func Poll(files []*os.File, timeout time.Duration) (int, []bool, error) {
	return poll(files, timeout)
}
